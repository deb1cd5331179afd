// Package simd provides the vectorized compare kernels used by the
// tree's search path.
//
// # Kernels
//
//   - MaskGt32 / MaskEq32: compare 8 keys against a target in one step
//     and return a lane bitmask
//   - Prefetch: software prefetch hint for upcoming node accesses
//
// Runtime CPU feature detection selects the implementation at init time.
// Build with -tags noasm, or set BPTREE_SIMD=generic, to force the pure
// Go fallback.
package simd
