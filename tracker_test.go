package replicapool

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleMultiset(t *selectionTracker) []int {
	all := make([]int, len(t.handles))
	copy(all, t.handles)
	sort.Ints(all)
	return all
}

func TestTrackerCreate(t *testing.T) {
	tracker := newSelectionTracker(4)

	assert.Equal(t, 4, tracker.size())
	for i := 0; i < 4; i++ {
		assert.Equal(t, i, tracker.handleAt(i))
	}
}

func TestTrackerConsume(t *testing.T) {
	tracker := newSelectionTracker(5)

	tracker.consume(1)
	assert.Equal(t, 4, tracker.size())

	// the consumed handle left the unallocated prefix
	for i := 0; i < tracker.size(); i++ {
		assert.NotEqual(t, 1, tracker.handleAt(i))
	}

	// no handle is ever lost or duplicated
	assert.Equal(t, []int{0, 1, 2, 3, 4}, handleMultiset(tracker))
}

func TestTrackerConsumeAll(t *testing.T) {
	tracker := newSelectionTracker(3)

	seen := map[int]bool{}
	for tracker.size() > 0 {
		h := tracker.handleAt(0)
		require.False(t, seen[h])
		seen[h] = true
		tracker.consume(0)
		assert.Equal(t, []int{0, 1, 2}, handleMultiset(tracker))
	}

	assert.Equal(t, 0, tracker.size())
	assert.Len(t, seen, 3)
}

func TestTrackerConsumeLastSlot(t *testing.T) {
	tracker := newSelectionTracker(3)

	tracker.consume(2)
	assert.Equal(t, 2, tracker.size())
	tracker.consume(1)
	assert.Equal(t, 1, tracker.size())
	tracker.consume(0)
	assert.Equal(t, 0, tracker.size())
	assert.Equal(t, []int{0, 1, 2}, handleMultiset(tracker))
}
