package bptree

import (
	"time"
)

// Remove deletes the entry for key from its leaf, if present, and
// reports whether anything was deleted.
//
// Removal is deliberately leaf-only: no sibling borrowing, no node
// merging, no separator correction in ancestors. Leaves may underflow
// and stale separators may linger, neither of which affects search
// correctness for the keys that remain. Callers that interleave heavy
// deletion with insertion should rebuild the tree periodically instead.
func (t *Tree[K, V]) Remove(key K) bool {
	var start time.Time
	if t.metrics != nil {
		start = time.Now()
	}

	removed := t.removeRec(t.root, key)
	if removed {
		t.length--
	}

	if t.metrics != nil {
		t.metrics.RecordRemove(time.Since(start), removed)
	}
	return removed
}

func (t *Tree[K, V]) removeRec(ref nodeRef, key K) bool {
	h := t.header(ref)
	keys := t.keys(ref)
	n := int(h.numKeys)

	if !h.leaf {
		// Same boundary rule as search: equal keys live to the right.
		return t.removeRec(t.children(ref)[upperBound(keys, n, key)], key)
	}

	i := lowerBound(keys, n, key)
	if i >= n || keys[i] != key {
		return false
	}

	values := t.values(ref)
	copy(keys[i:n-1], keys[i+1:n])
	copy(values[i:n-1], values[i+1:n])
	h.numKeys--
	return true
}
