// Package bptree provides an in-memory B+ tree backed by a bump
// allocator, with a vectorized search path.
//
// The tree targets workloads that need sorted-key point lookups, range
// traversal and high insert throughput without per-node heap allocation:
// every node lives in a caller-supplied arena, cache-line aligned,
// addressed by stable offsets.
//
// # Quick Start
//
//	a, _ := arena.New(64 << 20) // one arena per tree or test
//	t, _ := bptree.New[int32, int64](a)
//
//	t.Insert(42, 420)
//	v, ok := t.Find(42)      // vectorized for int32 keys
//	v, ok = t.FindBinary(42) // always available
//	t.Remove(42)
//
// # Search Strategies
//
// Three interchangeable strategies produce identical results for any
// tree state: linear scan, binary search, and a vectorized path that
// compares 8 keys per step and prefetches the next node during descent.
// The vectorized path requires 32-bit signed integer keys and silently
// serves other key types via binary search. Find dispatches to the
// strategy chosen at construction; StrategyAuto picks the best one for
// the key type.
//
// # Memory Model
//
// The arena never frees individual nodes. Resetting it invalidates the
// whole tree; build a new tree after a reset. Keys and values must be
// pointer-free types, since node storage is arena memory the garbage
// collector does not scan.
//
// # Limitations
//
// Single mutator, no reader isolation during mutation, and removal is
// leaf-only (no underflow rebalancing). See Remove for the consequences.
package bptree
