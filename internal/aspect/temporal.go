package aspect

import (
	"context"
	"fmt"

	"github.com/PMeeske/hypergrid/internal/domain"
	"github.com/PMeeske/hypergrid/internal/environment"
)

const temporalPrompt = "You are the temporal aspect of a reasoning grid. " +
	"Relate the input to what came before it in the conversation window. " +
	"Answer with the temporal framing."

// DefaultWindowSize is the default sliding-window capacity.
const DefaultWindowSize = 5

const priorPreviewLen = 30

// Temporal keeps a FIFO sliding window of raw inputs and frames each
// input against its predecessor. The window is updated before the
// output is formatted, so the current input always counts toward the
// context size.
type Temporal struct {
	Base
	window []string
	size   int
}

// NewTemporal creates the temporal aspect with the default window.
func NewTemporal() *Temporal {
	return NewTemporalWithWindow(DefaultWindowSize)
}

// NewTemporalWithWindow creates the temporal aspect with a custom
// window capacity.
func NewTemporalWithWindow(size int) *Temporal {
	if size < 1 {
		size = 1
	}
	return &Temporal{
		Base: NewCore("temporal", "Temporal", 0, temporalPrompt),
		size: size,
	}
}

// WindowSize returns the window capacity.
func (t *Temporal) WindowSize() int {
	return t.size
}

// Window returns a copy of the current window contents, oldest first.
func (t *Temporal) Window() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.window))
	copy(out, t.window)
	return out
}

// remember enqueues the input and trims the window to capacity. It
// returns the resulting context length and the input's predecessor.
func (t *Temporal) remember(input string) (ctxLen int, prior string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.window = append(t.window, input)
	if len(t.window) > t.size {
		t.window = t.window[len(t.window)-t.size:]
	}
	if len(t.window) > 1 {
		prior = t.window[len(t.window)-2]
	}
	return len(t.window), prior
}

// ShouldProcess accepts every payload.
func (t *Temporal) ShouldProcess(string) bool {
	return true
}

// TransformLocal enqueues the input and frames it against the window.
func (t *Temporal) TransformLocal(input string, position domain.Coordinate) string {
	ctxLen, prior := t.remember(input)
	step := t.ProcessedCount() + 1
	if ctxLen <= 1 {
		prior = "(initial)"
	} else {
		prior = truncate(prior, priorPreviewLen)
	}
	return fmt.Sprintf("[TEMPORAL@%s] step=%d context=%d/%d prior=%q | %s",
		position, step, ctxLen, t.size, prior, input)
}

// Transform enqueues the input on both paths before any formatting or
// environment call.
func (t *Temporal) Transform(ctx context.Context, input string, position domain.Coordinate) (string, error) {
	env := t.Environment()
	if env.IsLocal() {
		return t.TransformLocal(input, position), nil
	}
	t.remember(input)
	return env.Process(ctx, input, environment.Context{
		AspectID:     t.ID(),
		SystemPrompt: t.SystemPrompt(),
	})
}
