package benchmark_test

import (
	"strconv"
	"testing"
)

// ============================================================================
// Insert Benchmarks
// ============================================================================

// BenchmarkInsert measures random-order insert throughput per fanout.
// Reports: ns/op, allocs, and keys/sec.
func BenchmarkInsert(b *testing.B) {
	for _, fanout := range benchFanouts {
		b.Run("fanout="+strconv.Itoa(fanout), func(b *testing.B) {
			keys := makeKeys(max(b.N, 1))
			tree := newBenchTree(b, len(keys), fanout)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if err := tree.Insert(keys[i], keys[i]); err != nil {
					b.Fatal(err)
				}
			}

			b.StopTimer()
			b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "keys/sec")
		})
	}
}

// BenchmarkInsertSequential measures the append-heavy pattern where every
// insert lands in the rightmost leaf.
func BenchmarkInsertSequential(b *testing.B) {
	for _, fanout := range benchFanouts {
		b.Run("fanout="+strconv.Itoa(fanout), func(b *testing.B) {
			tree := newBenchTree(b, max(b.N, 1), fanout)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if err := tree.Insert(int32(i), int32(i)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkUpsert measures update-in-place on a fully loaded tree: every
// insert hits an existing key, so no node ever splits.
func BenchmarkUpsert(b *testing.B) {
	n := benchSize()
	keys := makeKeys(n)
	tree := newBenchTree(b, n, 256)
	loadTree(b, tree, keys)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k := keys[i%n]
		if err := tree.Insert(k, int32(i)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRemove measures leaf deletion on a loaded tree, reinserting in
// batches so the tree never drains.
func BenchmarkRemove(b *testing.B) {
	n := benchSize()
	keys := makeKeys(n)
	tree := newBenchTree(b, n, 256)
	loadTree(b, tree, keys)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		k := keys[i%n]
		tree.Remove(k)
		if i%n == n-1 {
			b.StopTimer()
			loadTree(b, tree, keys)
			b.StartTimer()
		}
	}
}
