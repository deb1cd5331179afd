package bptree

import (
	"time"
)

// Insert upserts a key/value pair. An existing key has its value
// overwritten in place with no structural change; a new key is placed
// at its sorted leaf position and may trigger splits up the descent
// path.
//
// The only failure mode is arena exhaustion. When a split cannot
// allocate its sibling, the triggering entry is already in place and
// the tree stays searchable, but the overfull node cannot accept
// further keys (see ErrNodeOverfull).
func (t *Tree[K, V]) Insert(key K, value V) error {
	var start time.Time
	if t.metrics != nil {
		start = time.Now()
	}

	err := t.insert(key, value)

	if t.metrics != nil {
		t.metrics.RecordInsert(time.Since(start), err)
	}
	t.logger.LogInsert(err)
	return err
}

func (t *Tree[K, V]) insert(key K, value V) error {
	sibling, median, split, err := t.insertRec(t.root, key, value)
	if err != nil || !split {
		return err
	}

	// The root itself split: grow the tree by one level with a new root
	// holding the promoted median and both halves.
	newRoot, err := t.newInternal()
	if err != nil {
		// The sibling exists but cannot be linked. Fold it back into the
		// root so no entry becomes unreachable; the root stays overfull.
		t.mergeSibling(t.root, sibling, median)
		return err
	}

	t.header(newRoot).numKeys = 1
	t.keys(newRoot)[0] = median
	ch := t.children(newRoot)
	ch[0] = t.root
	ch[1] = sibling
	t.root = newRoot
	t.height++
	t.logger.LogRootSplit(t.height)
	return nil
}

// insertRec descends to the owning leaf, inserts, and reports a split
// to the caller as a (sibling, median) pair to be linked into the
// parent.
func (t *Tree[K, V]) insertRec(ref nodeRef, key K, value V) (sibling nodeRef, median K, split bool, err error) {
	h := t.header(ref)
	keys := t.keys(ref)
	n := int(h.numKeys)

	if h.leaf {
		// Lower bound: first slot whose key is >= the new key.
		pos := lowerBound(keys, n, key)
		if pos < n && keys[pos] == key {
			t.values(ref)[pos] = value
			return 0, median, false, nil
		}

		if n >= t.fanout {
			// A previous split of this node failed; there is no slot left.
			return 0, median, false, ErrNodeOverfull
		}

		values := t.values(ref)
		copy(keys[pos+1:n+1], keys[pos:n])
		copy(values[pos+1:n+1], values[pos:n])
		keys[pos] = key
		values[pos] = value
		h.numKeys++
		t.length++

		if int(h.numKeys) == t.fanout {
			return t.splitLeaf(ref)
		}
		return 0, median, false, nil
	}

	// Equal keys route right: descend into the child after the last
	// separator <= key.
	pos := upperBound(keys, n, key)
	childSibling, childMedian, childSplit, err := t.insertRec(t.children(ref)[pos], key, value)
	if err != nil || !childSplit {
		return 0, median, false, err
	}

	if n >= t.fanout {
		// An earlier failed split left this node without a free slot for
		// the promotion. Fold the child's new sibling back into the child
		// so its keys stay reachable.
		t.mergeSibling(t.children(ref)[pos], childSibling, childMedian)
		return 0, median, false, ErrNodeOverfull
	}

	// Link the promoted separator and the new child after the slot we
	// descended through.
	children := t.children(ref)
	copy(keys[pos+1:n+1], keys[pos:n])
	copy(children[pos+2:n+2], children[pos+1:n+1])
	keys[pos] = childMedian
	children[pos+1] = childSibling
	h.numKeys++

	if int(h.numKeys) == t.fanout {
		return t.splitInternal(ref)
	}
	return 0, median, false, nil
}

// splitLeaf moves the upper half of a full leaf into a new sibling. The
// separator is copied up: it stays as the sibling's first entry because
// leaves must retain every key.
func (t *Tree[K, V]) splitLeaf(ref nodeRef) (nodeRef, K, bool, error) {
	var median K

	sibling, err := t.newLeaf()
	if err != nil {
		// No mutation yet; the node stays (over)full but intact.
		return 0, median, false, err
	}

	h, sh := t.header(ref), t.header(sibling)
	mid := t.fanout / 2
	moving := int(h.numKeys) - mid

	copy(t.keys(sibling)[:moving], t.keys(ref)[mid:int(h.numKeys)])
	copy(t.values(sibling)[:moving], t.values(ref)[mid:int(h.numKeys)])
	sh.numKeys = uint16(moving)
	h.numKeys = uint16(mid)

	if t.metrics != nil {
		t.metrics.RecordSplit(true)
	}
	return sibling, t.keys(sibling)[0], true, nil
}

// splitInternal promotes the median separator of a full internal node.
// Unlike a leaf split the median moves up: it is removed from both
// halves, since separators carry no values and need exist only once.
func (t *Tree[K, V]) splitInternal(ref nodeRef) (nodeRef, K, bool, error) {
	var median K

	sibling, err := t.newInternal()
	if err != nil {
		return 0, median, false, err
	}

	h, sh := t.header(ref), t.header(sibling)
	mid := t.fanout / 2
	median = t.keys(ref)[mid]
	moving := int(h.numKeys) - (mid + 1)

	copy(t.keys(sibling)[:moving], t.keys(ref)[mid+1:int(h.numKeys)])
	copy(t.children(sibling)[:moving+1], t.children(ref)[mid+1:int(h.numKeys)+1])
	sh.numKeys = uint16(moving)
	h.numKeys = uint16(mid)

	if t.metrics != nil {
		t.metrics.RecordSplit(false)
	}
	return sibling, median, true, nil
}

// mergeSibling undoes a split whose sibling could not be linked into a
// parent, re-appending the sibling's entries to the node that split. The
// node ends up full again but intact; the sibling's arena space is
// abandoned.
func (t *Tree[K, V]) mergeSibling(ref, sibling nodeRef, median K) {
	h, sh := t.header(ref), t.header(sibling)
	n, sn := int(h.numKeys), int(sh.numKeys)
	keys, siblingKeys := t.keys(ref), t.keys(sibling)

	if h.leaf {
		copy(keys[n:n+sn], siblingKeys[:sn])
		copy(t.values(ref)[n:n+sn], t.values(sibling)[:sn])
		h.numKeys = uint16(n + sn)
		return
	}

	keys[n] = median
	copy(keys[n+1:n+1+sn], siblingKeys[:sn])
	copy(t.children(ref)[n+1:n+2+sn], t.children(sibling)[:sn+1])
	h.numKeys = uint16(n + 1 + sn)
}
