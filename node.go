package bptree

import (
	"reflect"
	"unsafe"

	"github.com/kairveeehh/bptree/arena"
	"github.com/kairveeehh/bptree/internal/mem"
	"github.com/kairveeehh/bptree/internal/simd"
)

// nodeRef is a stable handle to a node: its byte offset in the arena.
// Refs stay valid until the arena is reset, regardless of later
// allocations.
type nodeRef = arena.Offset

// nodeHeader sits at the start of every node allocation. The role tag
// is fixed at allocation time and never changes: the payload region
// that follows the key array is values for a leaf and child refs for an
// internal node, so the header is the tag of that variant.
type nodeHeader struct {
	leaf    bool
	_       uint8
	numKeys uint16
}

const headerSize = int(unsafe.Sizeof(nodeHeader{}))

// nodeLayout describes where a node's arrays live inside its single
// arena allocation:
//
//	[ header | pad | keys (keyCap entries) | pad | values or children ]
//
// The key array starts on a cache-line boundary so vector loads never
// split a line, and keyCap is fanout rounded up to a whole number of
// simd lanes so chunked compares always read in-bounds memory. Lanes
// past numKeys hold garbage; every search path masks them out.
type nodeLayout struct {
	keyCap       int // key slots allocated, >= fanout
	keysOff      int
	payloadOff   int
	leafSize     int
	internalSize int
}

func computeLayout[K any, V any](fanout int) nodeLayout {
	var (
		keySize   = int(unsafe.Sizeof(*new(K)))
		valueSize = int(unsafe.Sizeof(*new(V)))
		refSize   = int(unsafe.Sizeof(nodeRef(0)))
	)

	l := nodeLayout{
		keyCap:  mem.AlignUp(fanout, simd.Lanes),
		keysOff: mem.AlignUp(headerSize, mem.Alignment),
	}
	l.payloadOff = mem.AlignUp(l.keysOff+l.keyCap*keySize, 8)
	l.leafSize = l.payloadOff + fanout*valueSize
	l.internalSize = l.payloadOff + (fanout+1)*refSize
	return l
}

// newLeaf allocates a leaf node. The arena does not zero recycled
// memory, so every header field is set explicitly; key and value slots
// beyond numKeys are garbage by design.
func (t *Tree[K, V]) newLeaf() (nodeRef, error) {
	off, err := t.arena.Alloc(t.layout.leafSize)
	if err != nil {
		return 0, err
	}
	*t.header(off) = nodeHeader{leaf: true}
	t.leaves++
	t.nodes++
	return off, nil
}

// newInternal allocates an internal node.
func (t *Tree[K, V]) newInternal() (nodeRef, error) {
	off, err := t.arena.Alloc(t.layout.internalSize)
	if err != nil {
		return 0, err
	}
	*t.header(off) = nodeHeader{}
	t.nodes++
	return off, nil
}

// Typed views over a node's arena allocation. These are the only places
// raw arena memory is reinterpreted; the casts are sound because New
// rejects pointer-carrying key and value types, the layout offsets are
// computed from unsafe.Sizeof, and the arena's 64-byte allocation
// alignment covers every element alignment below it.

func (t *Tree[K, V]) header(ref nodeRef) *nodeHeader {
	return (*nodeHeader)(t.arena.Pointer(ref))
}

func (t *Tree[K, V]) keys(ref nodeRef) []K {
	p := t.arena.Pointer(ref + nodeRef(t.layout.keysOff))
	return unsafe.Slice((*K)(p), t.layout.keyCap)
}

// keyLanes reinterprets the key array as int32 lanes for the vector
// kernels. Only valid when the tree is vector-eligible (K has kind
// int32).
func (t *Tree[K, V]) keyLanes(ref nodeRef) []int32 {
	p := t.arena.Pointer(ref + nodeRef(t.layout.keysOff))
	return unsafe.Slice((*int32)(p), t.layout.keyCap)
}

// values is valid only for leaf nodes.
func (t *Tree[K, V]) values(ref nodeRef) []V {
	p := t.arena.Pointer(ref + nodeRef(t.layout.payloadOff))
	return unsafe.Slice((*V)(p), t.fanout)
}

// children is valid only for internal nodes.
func (t *Tree[K, V]) children(ref nodeRef) []nodeRef {
	p := t.arena.Pointer(ref + nodeRef(t.layout.payloadOff))
	return unsafe.Slice((*nodeRef)(p), t.fanout+1)
}

// typeHasPointers reports whether values of type typ embed pointers the
// garbage collector would need to scan. Such types cannot be stored in
// arena memory.
func typeHasPointers(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return typeHasPointers(typ.Elem())
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if typeHasPointers(typ.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointers, strings, slices, maps, channels, funcs, interfaces.
		return true
	}
}
