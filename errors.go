package bptree

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNilArena is returned by New when no arena is supplied. Every
	// node allocation routes through the arena, so a tree cannot exist
	// without one.
	ErrNilArena = errors.New("bptree: nil arena")

	// ErrNodeOverfull is returned by Insert when a node still holds a
	// full complement of keys because an earlier split failed with an
	// arena exhaustion. The tree remains searchable but can no longer
	// grow; reconstitute it on a fresh arena.
	ErrNodeOverfull = errors.New("bptree: node overfull after failed split")
)

// ErrInvalidFanout indicates a fanout below the supported minimum.
type ErrInvalidFanout struct {
	Fanout int
}

func (e *ErrInvalidFanout) Error() string {
	return fmt.Sprintf("bptree: invalid fanout %d (minimum %d)", e.Fanout, MinFanout)
}

// ErrUnsupportedType indicates a key or value type that cannot live in
// arena memory. Node storage is raw arena bytes the garbage collector
// does not scan as typed memory, so types carrying pointers (strings,
// slices, pointerful structs) would hide references from the GC.
type ErrUnsupportedType struct {
	Type reflect.Type
	Role string // "key" or "value"
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("bptree: unsupported %s type %s: contains pointers", e.Role, e.Type)
}
