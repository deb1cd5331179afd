package simd

import "unsafe"

// Lanes is the number of 32-bit keys compared by one kernel invocation.
const Lanes = 8

// Kernel function pointers - set once at init, zero runtime overhead.
// Generic implementations are the default; platform-specific init()
// functions override with SIMD versions when available.
var (
	kernelMaskGt32 = maskGt32Generic
	kernelMaskEq32 = maskEq32Generic
	kernelPrefetch = prefetchGeneric
)

// MaskGt32 compares one chunk of Lanes keys against target and returns a
// bitmask with bit i set when chunk[i] > target. Bit 0 corresponds to
// chunk[0], so the lowest set bit is the leftmost qualifying key.
//
// SAFETY: Assumes len(chunk) >= Lanes. Caller MUST ensure the chunk is
// fully in bounds; lanes beyond the logically populated keys are
// compared too and must be filtered by the caller.
func MaskGt32(chunk []int32, target int32) uint32 {
	return kernelMaskGt32(chunk, target)
}

// MaskEq32 compares one chunk of Lanes keys against target and returns a
// bitmask with bit i set when chunk[i] == target.
//
// SAFETY: Assumes len(chunk) >= Lanes.
func MaskEq32(chunk []int32, target int32) uint32 {
	return kernelMaskEq32(chunk, target)
}

// Prefetch hints the CPU to pull the cache line at p into L1. It is a
// no-op on platforms without a prefetch instruction.
func Prefetch(p unsafe.Pointer) {
	kernelPrefetch(p)
}

// maskGt32Generic is the pure Go fallback. The comparisons are laid out
// one per lane so the compiler can pipeline them; correctness, not
// vectorization, is its job.
func maskGt32Generic(chunk []int32, target int32) uint32 {
	_ = chunk[Lanes-1]
	c0, c1, c2, c3 := chunk[0], chunk[1], chunk[2], chunk[3]
	c4, c5, c6, c7 := chunk[4], chunk[5], chunk[6], chunk[7]

	return boolToBit(c0 > target) |
		boolToBit(c1 > target)<<1 |
		boolToBit(c2 > target)<<2 |
		boolToBit(c3 > target)<<3 |
		boolToBit(c4 > target)<<4 |
		boolToBit(c5 > target)<<5 |
		boolToBit(c6 > target)<<6 |
		boolToBit(c7 > target)<<7
}

// maskEq32Generic is the pure Go fallback for the equality mask.
func maskEq32Generic(chunk []int32, target int32) uint32 {
	_ = chunk[Lanes-1]
	c0, c1, c2, c3 := chunk[0], chunk[1], chunk[2], chunk[3]
	c4, c5, c6, c7 := chunk[4], chunk[5], chunk[6], chunk[7]

	return boolToBit(c0 == target) |
		boolToBit(c1 == target)<<1 |
		boolToBit(c2 == target)<<2 |
		boolToBit(c3 == target)<<3 |
		boolToBit(c4 == target)<<4 |
		boolToBit(c5 == target)<<5 |
		boolToBit(c6 == target)<<6 |
		boolToBit(c7 == target)<<7
}

func prefetchGeneric(unsafe.Pointer) {}

// boolToBit converts a bool to 0 or 1 without branching.
// The compiler typically optimizes this to a conditional move.
func boolToBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
