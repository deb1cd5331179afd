package benchmark_test

import (
	"math/rand"
	"testing"

	"github.com/kairveeehh/bptree"
	"github.com/kairveeehh/bptree/arena"
)

// ============================================================================
// Benchmark Configuration
// ============================================================================

// Standard dataset sizes used across benchmarks for consistency.
const (
	sizeSmall  = 10_000    // Quick iteration
	sizeMedium = 100_000   // Default CI
	sizeLarge  = 1_000_000 // Production-scale
)

// Fanouts exercised by the parameterized benchmarks. 256 is the default;
// 16 keeps trees tall enough to stress descent.
var benchFanouts = []int{16, 64, 256}

// Seed for deterministic benchmarks - enables reproducible comparisons.
const benchSeed = 42

// arenaFor sizes an arena generously for n keys at the given fanout. Nodes
// are never freed, so splits roughly double the leaf count over a packed
// tree; 4x headroom keeps every benchmark far from exhaustion.
func arenaFor(b *testing.B, n, fanout int) *arena.Arena {
	b.Helper()
	nodeBytes := 64 + fanout*8 + 64
	nodes := n/max(fanout/2, 1) + 16
	a, err := arena.New(max(nodes*nodeBytes*4, 1<<20))
	if err != nil {
		b.Fatalf("failed to create arena: %v", err)
	}
	return a
}

// newBenchTree creates a tree sized for n keys.
func newBenchTree(b *testing.B, n, fanout int, opts ...bptree.Option) *bptree.Tree[int32, int32] {
	b.Helper()
	allOpts := append([]bptree.Option{bptree.WithFanout(fanout)}, opts...)
	tree, err := bptree.New[int32, int32](arenaFor(b, n, fanout), allOpts...)
	if err != nil {
		b.Fatalf("failed to create tree: %v", err)
	}
	return tree
}

// makeKeys generates n distinct keys in random order.
func makeKeys(n int) []int32 {
	perm := rand.New(rand.NewSource(benchSeed)).Perm(n)
	keys := make([]int32, n)
	for i, k := range perm {
		keys[i] = int32(k)
	}
	return keys
}

// makeProbes generates lookup keys, roughly half of which are present in a
// tree loaded from makeKeys(n).
func makeProbes(n, count int) []int32 {
	rng := rand.New(rand.NewSource(benchSeed + 1)) // Different seed from data
	probes := make([]int32, count)
	for i := range probes {
		probes[i] = int32(rng.Intn(2 * n))
	}
	return probes
}

// loadTree inserts every key, failing the benchmark on arena exhaustion.
func loadTree(b *testing.B, tree *bptree.Tree[int32, int32], keys []int32) {
	b.Helper()
	for _, k := range keys {
		if err := tree.Insert(k, k*2); err != nil {
			b.Fatalf("insert %d: %v", k, err)
		}
	}
}

func benchSize() int {
	if testing.Short() {
		return sizeSmall
	}
	return sizeMedium
}
