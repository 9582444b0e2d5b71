package replicapool

import (
	"math/rand"
	"sync/atomic"
	"time"
	"unsafe"
)

// replicaEntry holds the scheduling state of one replica: the nested pool
// that owns its connections, the operator-assigned priority, and the error
// counter the selector ranks on.
type replicaEntry[P any] struct {
	pool     P
	priority int64

	// errorCount is incremented by the selector on every failed acquisition
	// attempt and halved in bulk by the set's decay step. Snapshot readers
	// tolerate observing either side of a concurrent increment.
	errorCount atomic.Uint64

	// rnd and random are only touched under the owning set's mutex.
	rnd    *rand.Rand
	random uint32

	failures  *ringBuffer
	successes *ringBuffer
}

func newReplicaEntry[P any](pool P, priority int64) *replicaEntry[P] {
	e := &replicaEntry[P]{
		pool:      pool,
		priority:  priority,
		failures:  NewRingBuffer(windowSlots),
		successes: NewRingBuffer(windowSlots),
	}
	// Seed from the clock XOR the entry's own identity so distinct entries
	// produce uncorrelated streams.
	e.rnd = rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(uintptr(unsafe.Pointer(e)))))
	return e
}

// randomize draws a fresh tie-breaker for the next snapshot.
func (e *replicaEntry[P]) randomize() {
	e.random = e.rnd.Uint32()
}

func (e *replicaEntry[P]) incrementErrors() {
	e.errorCount.Add(1)
}
