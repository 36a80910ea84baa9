package aspect

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PMeeske/hypergrid/internal/domain"
	"github.com/PMeeske/hypergrid/internal/environment"
)

// recordingEnv is a non-local environment double that prefixes input.
type recordingEnv struct{}

func (recordingEnv) Name() string  { return "Recording" }
func (recordingEnv) IsLocal() bool { return false }
func (recordingEnv) Process(_ context.Context, input string, _ environment.Context) (string, error) {
	return "processed: " + input, nil
}
func (recordingEnv) SupportsStreaming() bool { return false }
func (recordingEnv) Stream(context.Context, string, environment.Context) (<-chan string, error) {
	return nil, domain.NewDomainError(domain.ErrCodeInvalidState, "no streaming", nil)
}

func TestSynthesis_UnifiesSingleLine(t *testing.T) {
	s := NewSynthesis()
	out := s.TransformLocal("just one stream", domain.MustCoordinate(0, 0, 0))
	assert.Equal(t, "[SYNTHESIS@(0,0,0)] Unified: just one stream", out)
}

func TestSynthesis_ConvergesTaggedLines(t *testing.T) {
	s := NewSynthesis()
	input := strings.Join([]string{
		"[ANALYTICAL@(0,0,1)] tokens=4 unique=4 | Because X, therefore Y",
		"[CREATIVE@(0,1,0)] reframed the input entirely",
		"[GUARDIAN@(1,0,0)] PASSED coherence=0.92 | Because X, therefore Y",
	}, "\n")

	out := s.TransformLocal(input, domain.MustCoordinate(0, 0, 0))
	assert.Contains(t, out, "[SYNTHESIS@(0,0,0)] Converged 3 streams:")
	assert.Contains(t, out, "  ANALYTICAL: tokens=4")
	assert.Contains(t, out, "  CREATIVE: reframed")
	assert.Contains(t, out, "  GUARDIAN: PASSED")
}

func TestSynthesis_TruncatesLongLines(t *testing.T) {
	s := NewSynthesis()
	long := "[ANALYTICAL@(0,0,1)] " + strings.Repeat("x", 100)
	input := long + "\n[GUARDIAN@(1,0,0)] ok"

	out := s.TransformLocal(input, domain.MustCoordinate(0, 0, 0))
	assert.Contains(t, out, strings.Repeat("x", synthesisLineLen)+"...")
	assert.NotContains(t, out, strings.Repeat("x", synthesisLineLen+1))
}

func TestSynthesis_SkipsBlankLines(t *testing.T) {
	s := NewSynthesis()
	input := "[ANALYTICAL@(0,0,1)] a\n\n\n[CREATIVE@(0,1,0)] b"
	out := s.TransformLocal(input, domain.MustCoordinate(0, 0, 0))
	assert.Contains(t, out, "Converged 2 streams:")
}

func TestSynthesis_SynthesizeAsync_Local(t *testing.T) {
	s := NewSynthesis()
	s.Bind(environment.NewLocalEnvironment())

	out, err := s.SynthesizeAsync(context.Background(), []string{
		"[ANALYTICAL@(0,0,1)] first",
		"[CREATIVE@(0,1,0)] second",
	}, domain.MustCoordinate(0, 0, 0))
	require.NoError(t, err)
	assert.Contains(t, out, "Converged 2 streams:")
}

func TestSynthesis_SynthesizeAsync_Environment(t *testing.T) {
	s := NewSynthesis()
	s.Bind(recordingEnv{})

	out, err := s.SynthesizeAsync(context.Background(), []string{"a", "b"}, domain.MustCoordinate(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "processed: a\nb", out)
}

func TestSynthesis_IsMetaDimensional(t *testing.T) {
	s := NewSynthesis()
	assert.Equal(t, MetaDimension, s.PrimaryDimension())
	assert.Equal(t, "synthesis", s.ID())
}
