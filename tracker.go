package replicapool

// selectionTracker hands out replica indices without replacement so that a
// multi-connection acquisition fans out across distinct replicas. The
// prefix handles[0:unallocatedSize] is the set of indices still eligible;
// consuming a slot swaps it behind the prefix and shrinks it, so the handle
// multiset never loses or duplicates an index. Prefix order after a consume
// is unspecified; the selector re-ranks from scratch each round.
type selectionTracker struct {
	handles         []int
	unallocatedSize int
}

func newSelectionTracker(n int) *selectionTracker {
	t := &selectionTracker{
		handles:         make([]int, n),
		unallocatedSize: n,
	}
	for i := range t.handles {
		t.handles[i] = i
	}
	return t
}

func (t *selectionTracker) size() int {
	return t.unallocatedSize
}

// handleAt performs no bounds check; the selector keeps i inside the
// unallocated prefix.
func (t *selectionTracker) handleAt(i int) int {
	return t.handles[i]
}

func (t *selectionTracker) consume(i int) {
	last := t.unallocatedSize - 1
	t.handles[i], t.handles[last] = t.handles[last], t.handles[i]
	t.unallocatedSize--
}
