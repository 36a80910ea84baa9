package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector_RecordsCycles(t *testing.T) {
	mc := NewMetricsCollector()

	mc.OnCycleStarted("t1", "input")
	assert.Equal(t, 1, mc.InFlight())
	mc.OnCycleCompleted("t1", 10*time.Millisecond)

	mc.OnCycleStarted("t2", "input")
	mc.OnCycleFailed("t2", errors.New("boom"), 30*time.Millisecond)

	c := mc.Cycles()
	assert.Equal(t, 2, c.CycleCount)
	assert.Equal(t, 1, c.SuccessCount)
	assert.Equal(t, 1, c.FailureCount)
	assert.Equal(t, 10*time.Millisecond, c.MinDuration)
	assert.Equal(t, 30*time.Millisecond, c.MaxDuration)
	assert.Equal(t, 20*time.Millisecond, c.AverageDuration)
	assert.Zero(t, mc.InFlight())
}

func TestMetricsCollector_RecordsAspects(t *testing.T) {
	mc := NewMetricsCollector()
	mc.OnAspectCompleted("t1", "analytical", 1, time.Millisecond)
	mc.OnAspectCompleted("t2", "analytical", 2, time.Millisecond)

	m, ok := mc.Aspect("analytical")
	require.True(t, ok)
	assert.Equal(t, 2, m.Invocations)
	assert.Equal(t, 3, m.Outputs)

	_, ok = mc.Aspect("unknown")
	assert.False(t, ok)
}

func TestMetricsCollector_RecordsPropagation(t *testing.T) {
	mc := NewMetricsCollector()
	mc.OnPropagationCompleted("t1", "CPU", 3)
	mc.OnPropagationCompleted("t2", "CPU", 9)

	p := mc.Propagation()
	assert.Equal(t, 2, p.Runs)
	assert.Equal(t, 12, p.TotalSteps)
	assert.Equal(t, 9, p.MaxSteps)
	assert.Equal(t, "CPU", p.Backend)
}

var _ CycleObserver = (*MetricsCollector)(nil)
