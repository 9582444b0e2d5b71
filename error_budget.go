package replicapool

import (
	"sync"
	"time"
)

// ringBuffer keeps the timestamps of a replica's most recent attempt
// outcomes so Statistics can report failure counts over a bounded window.
// It carries its own mutex because the selector's failure path runs outside
// the set mutex.
type ringBuffer struct {
	mu    sync.Mutex
	size  int
	index int
	items []time.Time
}

func NewRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		size:  size,
		items: make([]time.Time, size),
	}
}

func (r *ringBuffer) insert(ts time.Time) {
	r.mu.Lock()
	r.index = (r.index + 1) % r.size
	r.items[r.index] = ts
	r.mu.Unlock()
}

// Since we have time.Time values, we can make use of the zero value to
// filter the whole buffer.
func (r *ringBuffer) since(t time.Time) int {
	if r == nil {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for i := 0; i < r.size; i++ {
		if r.items[i].After(t) {
			count += 1
		}
	}
	return count
}
