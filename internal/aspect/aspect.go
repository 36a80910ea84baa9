// Package aspect implements the dimension-bound text transformers that
// populate the grid, plus the shared processing contract that turns an
// aspect into a stream stage.
package aspect

import (
	"context"
	"sync"

	channerics "github.com/niceyeti/channerics/channels"
	"github.com/rs/zerolog/log"

	"github.com/PMeeske/hypergrid/internal/domain"
	"github.com/PMeeske/hypergrid/internal/environment"
	"github.com/PMeeske/hypergrid/internal/stream"
)

// MetaDimension marks an aspect with no axis projection. Meta
// aspects get no synthesis edge when registered.
const MetaDimension = -1

// Aspect is a named, dimension-bound text transformer. Concrete
// aspects embed Core and provide the two transform modes; everything
// else is shared.
type Aspect interface {
	// Core exposes the shared aspect state.
	Core() *Core

	// ShouldProcess reports whether a payload should be transformed.
	// Payloads it rejects pass through unmodified.
	ShouldProcess(payload string) bool

	// TransformLocal is the synchronous heuristic transform used under
	// a local environment.
	TransformLocal(input string, position domain.Coordinate) string

	// Transform is the environment-aware transform used while
	// processing streams.
	Transform(ctx context.Context, input string, position domain.Coordinate) (string, error)
}

// Core holds the state shared by every aspect: identity, dimension
// binding, the bound environment, the activation level and the
// processed counter. The mutex guards the mutable fields for the
// stream-stage producer goroutine.
type Core struct {
	mu           sync.Mutex
	id           string
	name         string
	dimension    int
	systemPrompt string
	env          environment.Environment
	activation   float64
	processed    int64
}

// Base is the embedding name for Core: aliasing it avoids a field/method
// name collision with Core's own Core() method when aspects embed it
// anonymously.
type Base = Core

// NewCore creates the shared aspect state.
func NewCore(id, name string, dimension int, systemPrompt string) Core {
	return Core{
		id:           id,
		name:         name,
		dimension:    dimension,
		systemPrompt: systemPrompt,
	}
}

// Core returns the shared state; embedding it gives every aspect the
// method that satisfies the Aspect interface.
func (c *Core) Core() *Core {
	return c
}

// ID returns the aspect identifier.
func (c *Core) ID() string {
	return c.id
}

// Name returns the display name.
func (c *Core) Name() string {
	return c.name
}

// PrimaryDimension returns the axis the aspect projects onto, or
// MetaDimension for meta aspects.
func (c *Core) PrimaryDimension() int {
	return c.dimension
}

// SystemPrompt returns the constant system prompt.
func (c *Core) SystemPrompt() string {
	return c.systemPrompt
}

// Bind attaches the environment the aspect will transform under.
func (c *Core) Bind(env environment.Environment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.env = env
}

// Environment returns the bound environment, defaulting to the local
// echo when the aspect was never bound.
func (c *Core) Environment() environment.Environment {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.env == nil {
		c.env = environment.NewLocalEnvironment()
	}
	return c.env
}

// EnvironmentName returns the name of the bound environment.
func (c *Core) EnvironmentName() string {
	return c.Environment().Name()
}

// Activation returns the current activation level.
func (c *Core) Activation() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activation
}

// SetActivation sets the activation level. Managed by Run; exposed for
// custom processing loops.
func (c *Core) SetActivation(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activation = v
}

// ProcessedCount returns the number of thoughts transformed so far.
func (c *Core) ProcessedCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processed
}

// MarkProcessed increments the processed counter.
func (c *Core) MarkProcessed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processed++
}

// transformWith routes between the local and the environment transform
// for aspects without extra per-call state.
func transformWith(ctx context.Context, a Aspect, input string, position domain.Coordinate) (string, error) {
	env := a.Core().Environment()
	if env.IsLocal() {
		return a.TransformLocal(input, position), nil
	}
	return env.Process(ctx, input, environment.Context{
		AspectID:     a.Core().ID(),
		SystemPrompt: a.Core().SystemPrompt(),
	})
}

// Run drives an aspect over an input stream at a grid position: raise
// activation, transform each accepted thought in arrival order, tag the
// output with aspect metadata, and drop activation again when the input
// completes. Transform errors terminate the output stream.
func Run(ctx context.Context, a Aspect, in *stream.Stream[string], position domain.Coordinate) *stream.Stream[string] {
	core := a.Core()
	return stream.Generate(ctx, func(emit func(domain.Thought[string]) bool) error {
		core.SetActivation(1.0)
		defer core.SetActivation(0.0)

		for t := range channerics.OrDone(ctx.Done(), in.C()) {
			if !a.ShouldProcess(t.Payload()) {
				if !emit(t) {
					return nil
				}
				continue
			}

			output, err := a.Transform(ctx, t.Payload(), position)
			if err != nil {
				log.Error().Err(err).Str("aspect_id", core.ID()).Msg("aspect transform failed")
				return err
			}
			core.MarkProcessed()

			out := t.
				Map(func(string) string { return output }).
				WithOrigin(position).
				WithMetadata(map[string]any{
					"aspect":           core.ID(),
					"aspect_name":      core.Name(),
					"environment_name": core.EnvironmentName(),
					"source_origin":    t.Origin().String(),
				})
			if !emit(out) {
				return nil
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return in.Err()
	})
}

// Stage adapts an aspect to the stream cell interface.
type Stage struct {
	Aspect Aspect
}

// Process implements stream.Cell.
func (s Stage) Process(ctx context.Context, in *stream.Stream[string], position domain.Coordinate) *stream.Stream[string] {
	return Run(ctx, s.Aspect, in, position)
}

// truncate shortens s to max bytes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
