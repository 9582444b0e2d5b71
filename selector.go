package replicapool

import (
	"context"
	"sort"
	"strings"
)

// candidate pairs one replica with the sort key it drew for this round.
// trackerIndex is the replica's position in the tracker's unallocated
// prefix, or -1 when there is no tracker.
type candidate struct {
	key          sortKey
	trackerIndex int
	poolIndex    int
}

// acquireOne runs the retry loop for a single connection. Per try it sweeps
// every candidate in ranked order before retrying any one of them, so a
// live alternate surfaces on the first round when one exists instead of
// burning retries on a dead host. Each failed attempt increments the
// replica's error count, bumps the fail-try counter, and appends the reason
// to failMessages.
func (p *Pool[P, C]) acquireOne(ctx context.Context, tracker *selectionTracker, s *Settings, failMessages *strings.Builder) (conn C, ok bool) {
	keys := p.set.snapshot()

	size := len(p.set.entries)
	if tracker != nil {
		size = tracker.size()
	}

	candidates := make([]candidate, size)
	for i := 0; i < size; i++ {
		poolIndex := i
		trackerIndex := -1
		if tracker != nil {
			poolIndex = tracker.handleAt(i)
			trackerIndex = i
		}
		candidates[i] = candidate{
			key:          keys[poolIndex],
			trackerIndex: trackerIndex,
			poolIndex:    poolIndex,
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].key.less(candidates[j].key)
	})

	for tryNo := 1; tryNo <= p.maxTries; tryNo++ {
		for _, c := range candidates {
			entry := p.set.entries[c.poolIndex]

			acquired, err := p.acquire(ctx, entry.pool, s)
			if err == nil {
				entry.successes.insert(p.set.now())
				if tracker != nil {
					tracker.consume(c.trackerIndex)
				}
				return acquired, true
			}

			failTryCounter.Inc()
			p.logger.Printf("connection failed at try %d, reason: %s", tryNo, err)
			failMessages.WriteString(err.Error())
			failMessages.WriteByte('\n')
			entry.incrementErrors()
			entry.failures.insert(p.set.now())
		}
	}

	failAtAllCounter.Inc()
	return conn, false
}
