package bptree

import (
	"cmp"
	"math/bits"
	"time"
	"unsafe"

	"github.com/kairveeehh/bptree/internal/simd"
)

// Strategy selects how Find locates keys. All strategies return
// identical results for any key and tree state; they differ only in how
// each node's key array is scanned.
type Strategy uint8

const (
	// StrategyAuto picks StrategyVector for eligible key types and
	// StrategyBinary otherwise. Resolved once at construction.
	StrategyAuto Strategy = iota
	// StrategyLinear scans key arrays left to right.
	StrategyLinear
	// StrategyBinary binary-searches each key array.
	StrategyBinary
	// StrategyVector compares keys in simd.Lanes-wide chunks, with a
	// transparent binary-search fallback for ineligible key types.
	StrategyVector
)

// String returns the string representation of a Strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyLinear:
		return "linear"
	case StrategyBinary:
		return "binary"
	case StrategyVector:
		return "vector"
	default:
		return "unknown"
	}
}

func resolveStrategy(s Strategy, vectorOK bool) Strategy {
	if s == StrategyAuto {
		if vectorOK {
			return StrategyVector
		}
		return StrategyBinary
	}
	return s
}

// lowerBound returns the first index in keys[:n] whose key is >= key,
// or n if there is none.
func lowerBound[K cmp.Ordered](keys []K, n int, key K) int {
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if keys[mid] < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBound returns the first index in keys[:n] whose key is > key, or
// n if there is none. Used for descent so that keys equal to a
// separator route into the right child, where copy-up leaf splits place
// them.
func upperBound[K cmp.Ordered](keys []K, n int, key K) int {
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if keys[mid] <= key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Find reports whether key is present and returns its value, using the
// strategy the tree was constructed with.
func (t *Tree[K, V]) Find(key K) (V, bool) {
	if t.metrics == nil {
		return t.find(key)
	}

	start := time.Now()
	value, found := t.find(key)
	t.metrics.RecordSearch(t.strategy, time.Since(start), found)
	return value, found
}

func (t *Tree[K, V]) find(key K) (V, bool) {
	switch t.strategy {
	case StrategyLinear:
		return t.FindLinear(key)
	case StrategyVector:
		return t.FindVector(key)
	default:
		return t.FindBinary(key)
	}
}

// FindLinear locates key by scanning each node's key array left to
// right. O(M) per node; the reference against which the other
// strategies are verified.
func (t *Tree[K, V]) FindLinear(key K) (V, bool) {
	ref := t.root
	for {
		h := t.header(ref)
		keys := t.keys(ref)
		n := int(h.numKeys)

		if h.leaf {
			for i := 0; i < n; i++ {
				if keys[i] == key {
					return t.values(ref)[i], true
				}
			}
			var zero V
			return zero, false
		}

		i := 0
		for i < n && key >= keys[i] {
			i++
		}
		ref = t.children(ref)[i]
	}
}

// FindBinary locates key with a bounds binary search per node. O(log M)
// per node, same results as FindLinear.
func (t *Tree[K, V]) FindBinary(key K) (V, bool) {
	ref := t.root
	for {
		h := t.header(ref)
		keys := t.keys(ref)
		n := int(h.numKeys)

		if h.leaf {
			i := lowerBound(keys, n, key)
			if i < n && keys[i] == key {
				return t.values(ref)[i], true
			}
			var zero V
			return zero, false
		}

		ref = t.children(ref)[upperBound(keys, n, key)]
	}
}

// FindVector locates key by comparing simd.Lanes keys per step with the
// vector kernels, prefetching the next node while descending. Key types
// other than 32-bit signed integers fall back to FindBinary; results
// are identical either way.
func (t *Tree[K, V]) FindVector(key K) (V, bool) {
	if !t.vectorOK {
		return t.FindBinary(key)
	}

	// Sound because vectorOK implies K has kind int32.
	target := *(*int32)(unsafe.Pointer(&key))

	ref := t.root
	for {
		h := t.header(ref)
		lanes := t.keyLanes(ref)
		n := int(h.numKeys)

		if h.leaf {
			for i := 0; i < n; i += simd.Lanes {
				mask := simd.MaskEq32(lanes[i:i+simd.Lanes], target)
				if mask != 0 {
					// Lowest set bit is the leftmost matching lane; bits
					// beyond numKeys are padding garbage.
					if idx := i + bits.TrailingZeros32(mask); idx < n {
						return t.values(ref)[idx], true
					}
				}
			}
			var zero V
			return zero, false
		}

		// Default to the rightmost child; any greater-than hit within
		// the populated prefix overrides it.
		next := n
		for i := 0; i < n; i += simd.Lanes {
			mask := simd.MaskGt32(lanes[i:i+simd.Lanes], target)
			if mask != 0 {
				if idx := i + bits.TrailingZeros32(mask); idx < n {
					next = idx
					break
				}
			}
		}

		child := t.children(ref)[next]
		// Hide the next hop's memory latency: pull in the child's header
		// and the first two cache lines of its key array.
		p := t.arena.Pointer(child)
		simd.Prefetch(p)
		simd.Prefetch(unsafe.Add(p, t.layout.keysOff))
		simd.Prefetch(unsafe.Add(p, t.layout.keysOff+64))
		ref = child
	}
}
