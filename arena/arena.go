// Package arena provides a fixed-capacity bump allocator backing the
// tree's node storage.
//
// The arena owns one contiguous, cache-line-aligned buffer and serves
// allocations by advancing a cursor. Individual allocations are never
// freed; Reset rewinds the cursor and invalidates every offset handed
// out before it (callers are responsible for dropping stale offsets).
//
// Allocations are identified by stable byte offsets rather than raw
// pointers, so node references survive without hiding heap pointers in
// unscanned memory.
//
// The arena is single-threaded: one mutator at a time, no internal
// locking.
package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/kairveeehh/bptree/internal/mem"
)

// Alignment is the boundary every allocation is rounded up to. One cache
// line keeps sequentially allocated nodes from sharing lines and keeps
// key arrays friendly to wide vector loads.
const Alignment = mem.Alignment

var (
	// ErrInvalidCapacity is returned by New for a non-positive capacity.
	ErrInvalidCapacity = errors.New("arena: invalid capacity")
	// ErrInvalidSize is returned by Alloc for a non-positive size.
	ErrInvalidSize = errors.New("arena: invalid allocation size")
	// ErrOutOfMemory is returned when an allocation would exceed the
	// arena's capacity. The cursor is left untouched.
	ErrOutOfMemory = errors.New("arena: out of memory")
)

// Offset is a stable handle to an allocation, valid until the next Reset.
type Offset uint64

// Stats tracks arena usage.
//
//   - Capacity: total backing buffer size
//   - Used: current cursor position (includes alignment padding)
//   - Wasted: padding added by rounding requests up to Alignment
//   - Allocs: cumulative allocation count (survives Reset)
//   - Resets: cumulative Reset count
type Stats struct {
	Capacity int
	Used     int
	Wasted   int
	Allocs   uint64
	Resets   uint64
}

// Arena is a bump allocator over a single aligned backing buffer.
type Arena struct {
	buf    []byte
	off    int
	wasted int
	allocs uint64
	resets uint64
}

// New creates an arena with the given capacity in bytes. The backing
// buffer is obtained once, up front; allocation failures after this
// point mean the arena itself is exhausted, not the system.
func New(capacity int) (*Arena, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Arena{buf: mem.AllocAligned(capacity)}, nil
}

// Alloc reserves size bytes rounded up to Alignment and returns the
// offset of the reservation. On ErrOutOfMemory the cursor is not
// advanced. The memory is not re-zeroed after a Reset.
func (a *Arena) Alloc(size int) (Offset, error) {
	if size <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	aligned := mem.AlignUp(size, Alignment)
	if a.off+aligned > len(a.buf) {
		return 0, fmt.Errorf("%w: need %d, %d of %d in use", ErrOutOfMemory, aligned, a.off, len(a.buf))
	}

	off := Offset(a.off)
	a.off += aligned
	a.wasted += aligned - size
	a.allocs++
	return off, nil
}

// Pointer returns the address of the allocation at off. No bounds or
// liveness checking is performed; off must come from Alloc and must not
// be retained across Reset.
func (a *Arena) Pointer(off Offset) unsafe.Pointer {
	return unsafe.Pointer(&a.buf[off]) //nolint:gosec // offset-addressed node storage
}

// Bytes returns the size-byte region at off.
func (a *Arena) Bytes(off Offset, size int) []byte {
	return a.buf[off : int(off)+size : int(off)+size]
}

// Used returns the current cursor position.
func (a *Arena) Used() int { return a.off }

// Capacity returns the total backing buffer size.
func (a *Arena) Capacity() int { return len(a.buf) }

// Remaining returns the bytes still available.
func (a *Arena) Remaining() int { return len(a.buf) - a.off }

// Reset rewinds the cursor to zero. Memory is not zeroed; every offset
// issued before the call becomes invalid.
func (a *Arena) Reset() {
	a.off = 0
	a.wasted = 0
	a.resets++
}

// Stats returns a snapshot of the arena's usage counters.
func (a *Arena) Stats() Stats {
	return Stats{
		Capacity: len(a.buf),
		Used:     a.off,
		Wasted:   a.wasted,
		Allocs:   a.allocs,
		Resets:   a.resets,
	}
}

func (a *Arena) String() string {
	s := a.Stats()
	return fmt.Sprintf(
		"Arena{capacity: %.2f MB, used: %.2f MB (%.1f%%), wasted: %.2f KB, allocs: %d}",
		float64(s.Capacity)/(1024*1024),
		float64(s.Used)/(1024*1024),
		float64(s.Used)/float64(s.Capacity)*100,
		float64(s.Wasted)/1024,
		s.Allocs,
	)
}
