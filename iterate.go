package bptree

// Ascend visits every key/value pair in ascending key order until fn
// returns false.
//
// The callback must not mutate the tree.
func (t *Tree[K, V]) Ascend(fn func(key K, value V) bool) {
	t.ascend(t.root, fn)
}

func (t *Tree[K, V]) ascend(ref nodeRef, fn func(key K, value V) bool) bool {
	h := t.header(ref)
	n := int(h.numKeys)

	if h.leaf {
		keys := t.keys(ref)
		values := t.values(ref)
		for i := 0; i < n; i++ {
			if !fn(keys[i], values[i]) {
				return false
			}
		}
		return true
	}

	children := t.children(ref)
	for i := 0; i <= n; i++ {
		if !t.ascend(children[i], fn) {
			return false
		}
	}
	return true
}

// AscendRange visits pairs with lo <= key < hi in ascending order until
// fn returns false. Subtrees that cannot intersect the range are
// pruned using the separators; separators left stale by removals only
// make pruning less tight, never wrong.
func (t *Tree[K, V]) AscendRange(lo, hi K, fn func(key K, value V) bool) {
	if hi <= lo {
		return
	}
	t.ascendRange(t.root, lo, hi, fn)
}

func (t *Tree[K, V]) ascendRange(ref nodeRef, lo, hi K, fn func(key K, value V) bool) bool {
	h := t.header(ref)
	keys := t.keys(ref)
	n := int(h.numKeys)

	if h.leaf {
		values := t.values(ref)
		for i := lowerBound(keys, n, lo); i < n; i++ {
			if keys[i] >= hi {
				return true
			}
			if !fn(keys[i], values[i]) {
				return false
			}
		}
		return true
	}

	children := t.children(ref)
	for i := 0; i <= n; i++ {
		// children[i] covers [keys[i-1], keys[i]) with open outer bounds.
		if i > 0 && keys[i-1] >= hi {
			return true
		}
		if i < n && keys[i] <= lo {
			continue
		}
		if !t.ascendRange(children[i], lo, hi, fn) {
			return false
		}
	}
	return true
}
