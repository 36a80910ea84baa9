package aspect

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PMeeske/hypergrid/internal/domain"
)

func TestTemporal_WindowScenario(t *testing.T) {
	tp := NewTemporalWithWindow(2)
	pos := domain.MustCoordinate(2, 0, 0)

	inputs := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		inputs = append(inputs, fmt.Sprintf("thought-%d", i))
	}
	out := runOver(t, tp, pos, inputs...)

	require.Len(t, out, 5)
	for i, th := range out {
		assert.Contains(t, th.Payload(), fmt.Sprintf("step=%d", i+1))
	}
	assert.Equal(t, []string{"thought-4", "thought-5"}, tp.Window())
}

func TestTemporal_InitialPrior(t *testing.T) {
	tp := NewTemporal()
	out := tp.TransformLocal("first ever", domain.MustCoordinate(2, 0, 0))
	assert.Contains(t, out, `prior="(initial)"`)
	assert.Contains(t, out, "context=1/5")
}

func TestTemporal_PriorIsPreviousInput(t *testing.T) {
	tp := NewTemporal()
	pos := domain.MustCoordinate(2, 0, 0)

	tp.TransformLocal("alpha", pos)
	out := tp.TransformLocal("beta", pos)
	assert.Contains(t, out, `prior="alpha"`)
	assert.Contains(t, out, "context=2/5")
	assert.Contains(t, out, "| beta")
}

func TestTemporal_PriorTruncated(t *testing.T) {
	tp := NewTemporal()
	pos := domain.MustCoordinate(2, 0, 0)

	long := "this prior input is far longer than the preview allows"
	tp.TransformLocal(long, pos)
	out := tp.TransformLocal("next", pos)
	assert.Contains(t, out, truncate(long, priorPreviewLen))
	assert.Contains(t, out, "...")
}

func TestTemporal_EnqueuesBeforeEnvironmentCall(t *testing.T) {
	tp := NewTemporalWithWindow(3)
	tp.Bind(recordingEnv{})

	_, err := tp.Transform(context.Background(), "remembered", domain.MustCoordinate(2, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"remembered"}, tp.Window())
}

func TestTemporal_Identity(t *testing.T) {
	tp := NewTemporal()
	assert.Equal(t, "temporal", tp.ID())
	assert.Equal(t, 0, tp.PrimaryDimension())
	assert.Equal(t, DefaultWindowSize, tp.WindowSize())
}
