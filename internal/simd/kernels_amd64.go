//go:build amd64 && !noasm

package simd

import "unsafe"

func init() {
	// PREFETCHT0 predates AVX2; always available on amd64.
	kernelPrefetch = prefetchT0

	if ActiveISA() == AVX2 {
		kernelMaskGt32 = maskGt32AVX2Wrapper
		kernelMaskEq32 = maskEq32AVX2Wrapper
	}
}

// AVX2 kernel wrappers

func maskGt32AVX2Wrapper(chunk []int32, target int32) uint32 {
	_ = chunk[Lanes-1]
	return maskGt32AVX2(&chunk[0], target)
}

func maskEq32AVX2Wrapper(chunk []int32, target int32) uint32 {
	_ = chunk[Lanes-1]
	return maskEq32AVX2(&chunk[0], target)
}

// maskGt32AVX2 compares 8 contiguous int32 keys at chunk against target
// with VPCMPGTD and returns the lane bitmask.
//
//go:noescape
func maskGt32AVX2(chunk *int32, target int32) uint32

// maskEq32AVX2 compares 8 contiguous int32 keys at chunk against target
// with VPCMPEQD and returns the lane bitmask.
//
//go:noescape
func maskEq32AVX2(chunk *int32, target int32) uint32

// prefetchT0 issues PREFETCHT0 for the cache line at p.
//
//go:noescape
func prefetchT0(p unsafe.Pointer)
