package replicapool

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Pool acquires connections across the replicas of one shard, preferring
// healthy, high-priority replicas and falling over to alternates on
// failure. It is safe for concurrent use; acquisition may block inside the
// injected AcquireFunc, which deliberately propagates nested-pool
// backpressure to the caller.
type Pool[P, C any] struct {
	set     *replicaSet[P]
	acquire AcquireFunc[P, C]

	maxTries      int
	failureWindow time.Duration
	logger        Logger
}

type Options struct {
	Logger Logger

	// MaxTries is the per-candidate retry ceiling of one acquisition.
	MaxTries int

	// DecreaseErrorPeriod is the interval between successive halvings of
	// every replica's error count.
	DecreaseErrorPeriod time.Duration

	// Priorities assigns one priority per nested pool, in order; smaller is
	// more preferred. Missing entries default to zero.
	Priorities []int64

	// FailureWindow bounds the windowed failure statistics reported by
	// Statistics. It does not affect selection.
	FailureWindow time.Duration
}

// ------ constants -------------------

const defaultMaxTries = 3
const defaultDecreaseErrorPeriod = time.Duration(300) * time.Second
const defaultFailureWindow = time.Duration(60) * time.Second

// windowSlots bounds how many attempt timestamps each replica retains for
// the windowed failure statistics.
const windowSlots = 64

// Construct a Pool over the nested pools provided, with default options.
func New[P, C any](pools []P, acquire AcquireFunc[P, C]) (*Pool[P, C], error) {
	return NewWithOptions(pools, acquire, Options{})
}

// NewWithOptions constructs a Pool, initialising with defaults and
// overriding from options.
func NewWithOptions[P, C any](pools []P, acquire AcquireFunc[P, C], options Options) (*Pool[P, C], error) {
	if acquire == nil {
		return nil, errors.New("replicapool: acquire func can't be nil")
	}
	if options.MaxTries < 0 {
		return nil, errors.New("replicapool: max tries can't be negative")
	}
	if options.DecreaseErrorPeriod < 0 {
		return nil, errors.New("replicapool: decrease error period can't be negative")
	}
	if len(options.Priorities) > len(pools) {
		return nil, errors.Errorf("replicapool: %d priorities for %d pools", len(options.Priorities), len(pools))
	}

	p := &Pool[P, C]{
		acquire:       acquire,
		maxTries:      defaultMaxTries,
		failureWindow: defaultFailureWindow,
		logger:        DefaultLogger{},
	}
	if options.Logger != nil {
		p.logger = options.Logger
	}
	if options.MaxTries > 0 {
		p.maxTries = options.MaxTries
	}
	if options.FailureWindow > 0 {
		p.failureWindow = options.FailureWindow
	}

	decreaseErrorPeriod := defaultDecreaseErrorPeriod
	if options.DecreaseErrorPeriod > 0 {
		decreaseErrorPeriod = options.DecreaseErrorPeriod
	}

	entries := make([]*replicaEntry[P], len(pools))
	for i, pool := range pools {
		var priority int64
		if i < len(options.Priorities) {
			priority = options.Priorities[i]
		}
		entries[i] = newReplicaEntry(pool, priority)
	}
	p.set = newReplicaSet(entries, decreaseErrorPeriod)

	return p, nil
}

// AcquireOne hands out a single connection. The second result reports
// whether a connection was acquired: with SkipUnavailableShards set, the
// complete absence of a live replica is a silent (zero, false, nil) result
// instead of an *AllTriesFailedError.
func (p *Pool[P, C]) AcquireOne(ctx context.Context, s *Settings) (C, bool, error) {
	skipUnavailable := s != nil && s.SkipUnavailableShards

	var failMessages strings.Builder
	conn, ok := p.acquireOne(ctx, nil, s, &failMessages)
	if ok {
		return conn, true, nil
	}

	var zero C
	if skipUnavailable {
		return zero, false, nil
	}
	return zero, false, &AllTriesFailedError{Diagnostics: failMessages.String()}
}

// AcquireMany hands out up to MaxParallelReplicas connections, each from a
// distinct replica. The result may be shorter than requested, or empty:
// exhaustion is an error only when the very first slot fails and
// SkipUnavailableShards is off; later slots short-circuit to whatever has
// been collected.
func (p *Pool[P, C]) AcquireMany(ctx context.Context, s *Settings) ([]C, error) {
	maxConnections := 1
	skipUnavailable := false
	if s != nil {
		if s.MaxParallelReplicas > 0 {
			maxConnections = s.MaxParallelReplicas
		}
		skipUnavailable = s.SkipUnavailableShards
	}

	tracker := newSelectionTracker(len(p.set.entries))
	connections := make([]C, 0, maxConnections)

	for i := 0; i < maxConnections; i++ {
		var failMessages strings.Builder

		conn, ok := p.acquireOne(ctx, tracker, s, &failMessages)
		switch {
		case ok:
			connections = append(connections, conn)
		case i == 0 && !skipUnavailable:
			return nil, &AllTriesFailedError{Diagnostics: failMessages.String()}
		default:
			return connections, nil
		}
	}

	return connections, nil
}

// SetPriority reassigns one replica's priority. Owner-only: call it between
// sessions, not from selection paths.
func (p *Pool[P, C]) SetPriority(index int, priority int64) error {
	if index < 0 || index >= len(p.set.entries) {
		return errors.Errorf("replicapool: replica index %d out of range", index)
	}
	p.set.mu.Lock()
	p.set.entries[index].priority = priority
	p.set.mu.Unlock()
	return nil
}

// ErrorCounts returns the live error counter of every replica, in
// configuration order.
func (p *Pool[P, C]) ErrorCounts() []uint64 {
	counts := make([]uint64, len(p.set.entries))
	for i, e := range p.set.entries {
		counts[i] = e.errorCount.Load()
	}
	return counts
}

// Size returns the number of replicas.
func (p *Pool[P, C]) Size() int {
	return len(p.set.entries)
}

// Statistics returns a sample of properties of the pool that would be
// useful to monitor: the replica count, the accumulated error count, and
// how many attempts failed within the configured failure window.
func (p *Pool[P, C]) Statistics() Statistics {
	var totalErrors uint64
	failuresInWindow := 0
	cutoff := p.set.now().Add(-p.failureWindow)
	for _, e := range p.set.entries {
		totalErrors += e.errorCount.Load()
		failuresInWindow += e.failures.since(cutoff)
	}

	return Statistics{
		Gauges: []Gauge{
			{
				Name:  PoolGaugeNumberOfReplicas,
				Value: int64(len(p.set.entries)),
			},
			{
				Name:  PoolGaugeTotalErrorCount,
				Value: int64(totalErrors),
			},
			{
				Name:  PoolGaugeFailuresInWindow,
				Value: int64(failuresInWindow),
			},
		},
	}
}
