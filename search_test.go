package bptree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounds(t *testing.T) {
	keys := []int32{10, 20, 20, 30, 40}

	tests := []struct {
		key         int32
		lower, upper int
	}{
		{5, 0, 0},
		{10, 0, 1},
		{15, 1, 1},
		{20, 1, 3},
		{25, 3, 3},
		{40, 4, 5},
		{45, 5, 5},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.lower, lowerBound(keys, len(keys), tc.key), "lowerBound(%d)", tc.key)
		assert.Equal(t, tc.upper, upperBound(keys, len(keys), tc.key), "upperBound(%d)", tc.key)
	}

	assert.Equal(t, 0, lowerBound(keys, 0, 10))
	assert.Equal(t, 0, upperBound(keys, 0, 10))
}

// TestSearchAgreement is the core correctness property: the three
// strategies agree bit-for-bit on (found, value) for present and absent
// keys alike, across fanouts that exercise padding lanes and multi-chunk
// nodes.
func TestSearchAgreement(t *testing.T) {
	for _, fanout := range []int{4, 8, 16, 64, 256} {
		t.Run(fmt.Sprintf("fanout=%d", fanout), func(t *testing.T) {
			tr, err := New[int32, int32](newTestArena(t), WithFanout(fanout))
			require.NoError(t, err)

			rng := rand.New(rand.NewSource(int64(fanout)))
			inserted := make(map[int32]int32)
			for i := 0; i < 5000; i++ {
				k := int32(rng.Intn(20000))
				v := int32(rng.Intn(1 << 30))
				require.NoError(t, tr.Insert(k, v))
				inserted[k] = v
			}

			for probe := int32(0); probe < 20000; probe++ {
				lv, lok := tr.FindLinear(probe)
				bv, bok := tr.FindBinary(probe)
				sv, sok := tr.FindVector(probe)

				require.Equal(t, lok, bok, "linear/binary disagree on %d", probe)
				require.Equal(t, lok, sok, "linear/vector disagree on %d", probe)
				if lok {
					require.Equal(t, lv, bv, "linear/binary value mismatch on %d", probe)
					require.Equal(t, lv, sv, "linear/vector value mismatch on %d", probe)
				}

				want, wantOK := inserted[probe]
				require.Equal(t, wantOK, lok, "tree/model disagree on %d", probe)
				if wantOK {
					require.Equal(t, want, lv)
				}
			}
		})
	}
}

func TestSearchNegativeKeys(t *testing.T) {
	tr, err := New[int32, int32](newTestArena(t), WithFanout(8))
	require.NoError(t, err)

	for k := int32(-500); k <= 500; k += 5 {
		require.NoError(t, tr.Insert(k, -k))
	}

	for k := int32(-500); k <= 500; k++ {
		lv, lok := tr.FindLinear(k)
		sv, sok := tr.FindVector(k)
		require.Equal(t, lok, sok, "disagree on %d", k)
		if lok {
			require.Equal(t, lv, sv)
		}
		assert.Equal(t, k%5 == 0, lok, "membership wrong for %d", k)
	}
}

func TestFindVectorFallback(t *testing.T) {
	// uint64 keys are not vector-eligible; FindVector must transparently
	// serve binary results.
	tr, err := New[uint64, uint64](newTestArena(t), WithFanout(16))
	require.NoError(t, err)
	require.False(t, tr.VectorEligible())

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 3000; i++ {
		k := rng.Uint64() % 100000
		require.NoError(t, tr.Insert(k, k+1))
	}

	for probe := uint64(0); probe < 100000; probe += 37 {
		bv, bok := tr.FindBinary(probe)
		sv, sok := tr.FindVector(probe)
		require.Equal(t, bok, sok, "fallback diverges on %d", probe)
		require.Equal(t, bv, sv)
	}
}

func TestFindDispatch(t *testing.T) {
	for _, s := range []Strategy{StrategyLinear, StrategyBinary, StrategyVector} {
		t.Run(s.String(), func(t *testing.T) {
			tr, err := New[int32, int32](newTestArena(t), WithFanout(8), WithStrategy(s))
			require.NoError(t, err)
			require.Equal(t, s, tr.Strategy())

			for k := int32(0); k < 100; k++ {
				require.NoError(t, tr.Insert(k, k*3))
			}
			for k := int32(0); k < 100; k++ {
				v, ok := tr.Find(k)
				require.True(t, ok)
				require.Equal(t, k*3, v)
			}
			_, ok := tr.Find(1000)
			assert.False(t, ok)
		})
	}
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "auto", StrategyAuto.String())
	assert.Equal(t, "linear", StrategyLinear.String())
	assert.Equal(t, "binary", StrategyBinary.String())
	assert.Equal(t, "vector", StrategyVector.String())
	assert.Equal(t, "unknown", Strategy(99).String())
}
