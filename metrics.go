package replicapool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// A gauge is a metric which represents a single value, whose value
// may increase or decrease. A pool specific example could be
// the number of replicas in the pool.
type Gauge struct {
	Name  string
	Value int64
}

// Statistics represents a single sample of possible statistics associated
// with a pool
type Statistics struct {
	Gauges []Gauge
}

const (
	PoolGaugeNumberOfReplicas = "replicapool_number_of_replicas"
	PoolGaugeTotalErrorCount  = "replicapool_total_error_count"
	PoolGaugeFailuresInWindow = "replicapool_failures_in_window"
)

// Process-wide counters shared by every pool, in the manner of the owning
// database's profile events.
var (
	failTryCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "replicapool_distributed_connection_fail_try_total",
		Help: "Connection acquisition attempts that failed against a single replica.",
	})
	failAtAllCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "replicapool_distributed_connection_fail_at_all_total",
		Help: "Acquisitions that exhausted every candidate replica and every try.",
	})
)
