package aspect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PMeeske/hypergrid/internal/domain"
)

func TestAnalytical_Markers(t *testing.T) {
	a := NewAnalytical()
	pos := domain.MustCoordinate(0, 0, 1)

	out := a.TransformLocal("Because X, therefore Y", pos)
	assert.Contains(t, out, "[ANALYTICAL@(0,0,1)]")
	assert.Contains(t, out, "tokens=4")
	assert.Contains(t, out, "unique=4")
	assert.Contains(t, out, "causal=true")
	assert.Contains(t, out, "conditional=false")
	assert.Contains(t, out, "interrogative=false")
	assert.Contains(t, out, "| Because X, therefore Y")
}

func TestAnalytical_ConditionalAndInterrogative(t *testing.T) {
	a := NewAnalytical()
	pos := domain.MustCoordinate(0, 0, 1)

	out := a.TransformLocal("What happens when it rains?", pos)
	assert.Contains(t, out, "causal=false")
	assert.Contains(t, out, "conditional=true")
	assert.Contains(t, out, "interrogative=true")
}

func TestAnalytical_CaseInsensitiveMarkers(t *testing.T) {
	a := NewAnalytical()
	pos := domain.MustCoordinate(0, 0, 1)

	out := a.TransformLocal("THEREFORE it holds", pos)
	assert.Contains(t, out, "causal=true")
}

func TestAnalytical_EmptyInput(t *testing.T) {
	a := NewAnalytical()
	out := a.TransformLocal("", domain.MustCoordinate(0, 0, 1))
	assert.Contains(t, out, "tokens=0")
	assert.Contains(t, out, "avg_len=0.0")
}

func TestAnalytical_Identity(t *testing.T) {
	a := NewAnalytical()
	assert.Equal(t, "analytical", a.ID())
	assert.Equal(t, 2, a.PrimaryDimension())
	assert.NotEmpty(t, a.SystemPrompt())
}
