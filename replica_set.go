package replicapool

import (
	"sync"
	"time"
)

// sortKey ranks one replica for one selection round. Keys compare
// lexicographically ascending: lower priority first, then fewer errors,
// then the random tie-breaker, which keeps equi-ranked replicas from
// starving each other.
type sortKey struct {
	priority   int64
	errorCount uint64
	random     uint32
}

func (k sortKey) less(other sortKey) bool {
	if k.priority != other.priority {
		return k.priority < other.priority
	}
	if k.errorCount != other.errorCount {
		return k.errorCount < other.errorCount
	}
	return k.random < other.random
}

// replicaSet owns the replica entries, applies the periodic error decay,
// and produces consistent per-round snapshots of every entry's sort key.
// The entries slice is immutable after construction; indices into it are
// what the selection tracker hands around.
type replicaSet[P any] struct {
	mu      sync.Mutex
	entries []*replicaEntry[P]

	// lastDecreaseTime is the unix second of the last decay. Zero means no
	// snapshot has been taken yet.
	lastDecreaseTime    int64
	decreaseErrorPeriod int64 // seconds

	now func() time.Time
}

func newReplicaSet[P any](entries []*replicaEntry[P], decreaseErrorPeriod time.Duration) *replicaSet[P] {
	seconds := int64(decreaseErrorPeriod / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return &replicaSet[P]{
		entries:             entries,
		decreaseErrorPeriod: seconds,
		now:                 time.Now,
	}
}

// snapshot re-randomizes every entry, applies any pending error decay, and
// returns a copy of each entry's sort key, all inside one critical section.
func (s *replicaSet[P]) snapshot() []sortKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		e.randomize()
	}

	current := s.now().Unix()
	if s.lastDecreaseTime != 0 {
		delta := current - s.lastDecreaseTime
		// Non-monotonic time going backwards yields no decay this round.
		if delta >= 0 {
			// Every decreaseErrorPeriod seconds the error counts halve. The
			// clock advances only on a non-zero shift, otherwise a stream of
			// sub-period snapshots would keep resetting it and the counters
			// would never decrease.
			shift := uint64(delta) / uint64(s.decreaseErrorPeriod)
			if shift > 0 {
				s.lastDecreaseTime = current
			}
			if shift >= 64 {
				for _, e := range s.entries {
					e.errorCount.Store(0)
				}
			} else if shift > 0 {
				for _, e := range s.entries {
					e.errorCount.Store(e.errorCount.Load() >> shift)
				}
			}
		}
	} else {
		s.lastDecreaseTime = current
	}

	keys := make([]sortKey, len(s.entries))
	for i, e := range s.entries {
		keys[i] = sortKey{
			priority:   e.priority,
			errorCount: e.errorCount.Load(),
			random:     e.random,
		}
	}
	return keys
}
