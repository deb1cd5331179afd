// Package mem provides aligned memory allocation helpers.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of every buffer handed out by this
// package: one cache line, which is also wide enough for any vector load
// the search kernels issue.
const Alignment = 64

// AlignUp rounds n up to the next multiple of align. align must be a
// power of two.
func AlignUp(n, align int) int {
	mask := align - 1
	return (n + mask) &^ mask
}

// IsAligned reports whether p is aligned to align bytes. align must be a
// power of two.
func IsAligned(p unsafe.Pointer, align int) bool {
	return uintptr(p)&uintptr(align-1) == 0
}

// AllocAligned allocates a byte slice of the given size whose first byte
// sits on an Alignment boundary. It over-allocates by Alignment bytes and
// returns the sub-slice starting at the first aligned address; the
// underlying array stays alive through the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+Alignment)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // required to compute the aligned offset
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}
