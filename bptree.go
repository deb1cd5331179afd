package bptree

import (
	"cmp"
	"reflect"

	"github.com/kairveeehh/bptree/arena"
)

// Tree is an in-memory B+ tree keyed by an ordered type. All node
// storage comes from the arena passed to New; the tree itself performs
// no per-node heap allocation. Internal nodes hold separator keys only;
// every key/value pair lives in a leaf.
//
// A Tree is single-threaded: one mutator at a time, and readers are not
// isolated from an in-progress mutation. The arena must outlive the
// tree, and resetting the arena invalidates the tree and any node data
// previously returned from it.
type Tree[K cmp.Ordered, V any] struct {
	arena    *arena.Arena
	logger   *Logger
	metrics  MetricsCollector
	layout   nodeLayout
	fanout   int
	strategy Strategy
	vectorOK bool

	root   nodeRef
	height int
	length int
	nodes  int
	leaves int
}

// Stats is a snapshot of a tree's shape and memory usage.
type Stats struct {
	Len      int
	Height   int
	Fanout   int
	Strategy Strategy
	Nodes    int
	Leaves   int
	Arena    arena.Stats
}

// New creates a tree backed by the given arena. The root is allocated
// immediately, so New fails if the arena cannot hold a single leaf.
//
// Keys and values must be pointer-free types (integers, floats, or
// arrays/structs of those): node storage is arena memory the garbage
// collector does not scan, and a hidden pointer there would keep
// nothing alive.
func New[K cmp.Ordered, V any](a *arena.Arena, opts ...Option) (*Tree[K, V], error) {
	if a == nil {
		return nil, ErrNilArena
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.fanout < MinFanout {
		return nil, &ErrInvalidFanout{Fanout: o.fanout}
	}

	keyType := reflect.TypeOf(*new(K))
	if typeHasPointers(keyType) {
		return nil, &ErrUnsupportedType{Type: keyType, Role: "key"}
	}
	valueType := reflect.TypeOf(*new(V))
	if valueType != nil && typeHasPointers(valueType) {
		return nil, &ErrUnsupportedType{Type: valueType, Role: "value"}
	}

	t := &Tree[K, V]{
		arena:    a,
		logger:   o.logger,
		metrics:  o.metrics,
		layout:   computeLayout[K, V](o.fanout),
		fanout:   o.fanout,
		vectorOK: keyType.Kind() == reflect.Int32,
	}
	t.strategy = resolveStrategy(o.strategy, t.vectorOK)

	root, err := t.newLeaf()
	if err != nil {
		return nil, err
	}
	t.root = root
	t.height = 1

	t.logger.Info("tree created",
		"fanout", t.fanout,
		"strategy", t.strategy.String(),
		"vector_eligible", t.vectorOK,
		"node_bytes", t.layout.internalSize,
	)
	return t, nil
}

// Len returns the number of key/value pairs currently stored.
func (t *Tree[K, V]) Len() int { return t.length }

// Height returns the number of levels, counting the root. A freshly
// created tree has height 1 (the root leaf); only a root split
// increases it.
func (t *Tree[K, V]) Height() int { return t.height }

// Fanout returns the node capacity M the tree was built with.
func (t *Tree[K, V]) Fanout() int { return t.fanout }

// Strategy returns the search strategy Find dispatches to.
func (t *Tree[K, V]) Strategy() Strategy { return t.strategy }

// VectorEligible reports whether the key type supports the vectorized
// search path. Ineligible trees serve FindVector via binary search.
func (t *Tree[K, V]) VectorEligible() bool { return t.vectorOK }

// Stats returns a snapshot of the tree's shape and arena usage.
func (t *Tree[K, V]) Stats() Stats {
	return Stats{
		Len:      t.length,
		Height:   t.height,
		Fanout:   t.fanout,
		Strategy: t.strategy,
		Nodes:    t.nodes,
		Leaves:   t.leaves,
		Arena:    t.arena.Stats(),
	}
}
