package replicapool

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func gaugeWithName(t *testing.T, stats Statistics, name string) Gauge {
	t.Helper()

	for _, gauge := range stats.Gauges {
		if gauge.Name == name {
			return gauge
		}
	}

	require.FailNow(t, "Couldn't find named gauge", "Wanted %s but had %v", name, stats.Gauges)
	return Gauge{} //unreachable
}

func TestStatisticsBasics(t *testing.T) {
	acquirer := newScriptedAcquirer()
	acquirer.failAlways("a", errors.New("conn refused"))
	p := newTestPool(t, acquirer, []string{"a", "b"}, Options{MaxTries: 3, Priorities: []int64{-1, 0}})

	stats := p.Statistics()
	require.Equal(t, int64(2), gaugeWithName(t, stats, PoolGaugeNumberOfReplicas).Value)
	require.Equal(t, int64(0), gaugeWithName(t, stats, PoolGaugeTotalErrorCount).Value)
	require.Equal(t, int64(0), gaugeWithName(t, stats, PoolGaugeFailuresInWindow).Value)

	// a is preferred, fails, and the round sweeps on to b
	conn, _, err := p.AcquireOne(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, "conn-b", conn)

	stats = p.Statistics()
	require.Equal(t, int64(2), gaugeWithName(t, stats, PoolGaugeNumberOfReplicas).Value)
	require.Equal(t, int64(1), gaugeWithName(t, stats, PoolGaugeTotalErrorCount).Value)
	require.Equal(t, int64(1), gaugeWithName(t, stats, PoolGaugeFailuresInWindow).Value)
}

func TestFailureCountersAdvance(t *testing.T) {
	acquirer := newScriptedAcquirer()
	acquirer.failAlways("a", errors.New("conn refused"))
	p := newTestPool(t, acquirer, []string{"a"}, Options{MaxTries: 3})

	failTryBefore := testutil.ToFloat64(failTryCounter)
	failAtAllBefore := testutil.ToFloat64(failAtAllCounter)

	_, ok, err := p.AcquireOne(context.Background(), nil)
	require.False(t, ok)
	require.Error(t, err)

	require.Equal(t, float64(3), testutil.ToFloat64(failTryCounter)-failTryBefore)
	require.Equal(t, float64(1), testutil.ToFloat64(failAtAllCounter)-failAtAllBefore)
}

func TestFailureCountersUntouchedOnSuccess(t *testing.T) {
	acquirer := newScriptedAcquirer()
	p := newTestPool(t, acquirer, []string{"a"}, Options{})

	failTryBefore := testutil.ToFloat64(failTryCounter)
	failAtAllBefore := testutil.ToFloat64(failAtAllCounter)

	_, ok, err := p.AcquireOne(context.Background(), nil)
	require.True(t, ok)
	require.NoError(t, err)

	require.Equal(t, float64(0), testutil.ToFloat64(failTryCounter)-failTryBefore)
	require.Equal(t, float64(0), testutil.ToFloat64(failAtAllCounter)-failAtAllBefore)
}
