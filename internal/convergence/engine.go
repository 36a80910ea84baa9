// Package convergence implements the orchestrator that drives one
// reasoning cycle: fan-out of the input to every registered aspect,
// activation propagation over the grid, and fan-in synthesis of the
// per-aspect outputs.
package convergence

import (
	"context"
	"fmt"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PMeeske/hypergrid/internal/aspect"
	"github.com/PMeeske/hypergrid/internal/domain"
	"github.com/PMeeske/hypergrid/internal/environment"
	"github.com/PMeeske/hypergrid/internal/monitoring"
	"github.com/PMeeske/hypergrid/internal/simulation"
	"github.com/PMeeske/hypergrid/internal/stream"
)

// Propagation bounds for one think cycle. Propagation is observational
// in this engine: only the number of propagation steps is recorded in
// metadata, and the settled activations are not fed back into the
// aspects.
const (
	PropagationThreshold = 1e-4
	PropagationMaxSteps  = 50
)

// Engine orchestrates convergence cycles over a space of aspects. An
// engine is single-consumer: registration happens before the first
// Think, and Think calls are not run concurrently.
type Engine struct {
	space        *domain.Space
	env          environment.Environment
	backend      simulation.Backend
	observers    *monitoring.ObserverManager
	evaluator    *stream.ConditionEvaluator
	aspects      map[string]aspect.Aspect
	order        []string
	positions    map[string]domain.Coordinate
	conditions   map[string]string
	synthesis    *aspect.Synthesis
	synthesisPos domain.Coordinate
	logger       zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithEnvironment replaces the default local environment.
func WithEnvironment(env environment.Environment) Option {
	return func(e *Engine) {
		e.env = env
	}
}

// WithBackend replaces the default CPU simulation backend.
func WithBackend(b simulation.Backend) Option {
	return func(e *Engine) {
		e.backend = b
	}
}

// WithObserverManager attaches cycle observers.
func WithObserverManager(om *monitoring.ObserverManager) Option {
	return func(e *Engine) {
		e.observers = om
	}
}

// WithLogger replaces the engine's logger, which defaults to the
// global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// standardDimensions are the axes of the default reasoning space.
func standardDimensions() []domain.DimensionDescriptor {
	return []domain.DimensionDescriptor{
		{Index: 0, Name: "temporal", Description: "sequence and memory"},
		{Index: 1, Name: "semantic", Description: "meaning and association"},
		{Index: 2, Name: "causal", Description: "cause and effect"},
	}
}

// New creates an engine over the standard 3-D space with synthesis at
// the origin and the four standard aspects registered around it.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		env:        environment.NewLocalEnvironment(),
		evaluator:  stream.NewConditionEvaluator(),
		aspects:    make(map[string]aspect.Aspect),
		positions:  make(map[string]domain.Coordinate),
		conditions: make(map[string]string),
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.backend == nil {
		e.backend = simulation.NewCPUBackend()
	}

	space, err := domain.NewSpace(standardDimensions())
	if err != nil {
		return nil, err
	}
	e.space = space

	e.synthesisPos, err = domain.Origin(space.Rank())
	if err != nil {
		return nil, err
	}
	e.synthesis = aspect.NewSynthesis()
	e.synthesis.Bind(e.env)
	if _, err := space.AddCell(e.synthesisPos, e.synthesis.ID()); err != nil {
		return nil, err
	}

	standard := []struct {
		a   aspect.Aspect
		pos domain.Coordinate
	}{
		{aspect.NewAnalytical(), domain.MustCoordinate(0, 0, 1)},
		{aspect.NewCreative(), domain.MustCoordinate(0, 1, 0)},
		{aspect.NewGuardian(), domain.MustCoordinate(1, 0, 0)},
		{aspect.NewTemporal(), domain.MustCoordinate(2, 0, 0)},
	}
	for _, reg := range standard {
		if err := e.RegisterAspect(reg.a, reg.pos); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Close releases the engine's backend.
func (e *Engine) Close() error {
	return e.backend.Close()
}

// Environment returns the engine's environment.
func (e *Engine) Environment() environment.Environment {
	return e.env
}

// Backend returns the simulation backend.
func (e *Engine) Backend() simulation.Backend {
	return e.backend
}

// Space returns the engine's space.
func (e *Engine) Space() *domain.Space {
	return e.space
}

// SynthesisPosition returns the origin the synthesis aspect sits at.
func (e *Engine) SynthesisPosition() domain.Coordinate {
	return e.synthesisPos
}

// AspectIDs returns the registered aspect ids in registration order.
func (e *Engine) AspectIDs() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Aspect resolves a registered aspect by id.
func (e *Engine) Aspect(id string) (aspect.Aspect, error) {
	a, ok := e.aspects[id]
	if !ok {
		return nil, domain.NewDomainError(
			domain.ErrCodeNotFound,
			fmt.Sprintf("unknown aspect %q", id),
			nil,
		)
	}
	return a, nil
}

// RegisterAspect binds the aspect to the engine's environment, places
// it in the space, and connects it to the synthesis cell along its
// primary dimension. Meta-dimensional aspects get no synthesis edge.
func (e *Engine) RegisterAspect(a aspect.Aspect, position domain.Coordinate) error {
	core := a.Core()
	core.Bind(e.env)

	if _, err := e.space.AddCell(position, core.ID()); err != nil {
		return err
	}

	if _, exists := e.aspects[core.ID()]; !exists {
		e.order = append(e.order, core.ID())
	}
	e.aspects[core.ID()] = a
	e.positions[core.ID()] = position

	if dim := core.PrimaryDimension(); dim >= 0 {
		e.space.Connect(position, e.synthesisPos, dim, core.ID())
	}

	e.logger.Debug().
		Str("aspect_id", core.ID()).
		Str("position", position.String()).
		Int("dimension", core.PrimaryDimension()).
		Msg("aspect registered")
	return nil
}

// RegisterAspectWithCondition registers an aspect whose fan-out is
// additionally gated by an expression over the input thought. Inputs
// failing the condition skip the aspect for that cycle.
func (e *Engine) RegisterAspectWithCondition(a aspect.Aspect, position domain.Coordinate, condition string) error {
	if err := e.evaluator.Compile(condition); err != nil {
		return err
	}
	if err := e.RegisterAspect(a, position); err != nil {
		return err
	}
	e.conditions[a.Core().ID()] = condition
	return nil
}

// Think runs one convergence cycle for the input and returns the
// synthesized thought. The result keeps the cycle's trace id; its
// metadata records the aspect count, backend, environment and, when
// propagation ran, the number of propagation steps.
func (e *Engine) Think(ctx context.Context, input string) (domain.Thought[string], error) {
	started := time.Now()
	inputThought := domain.NewThought(input, e.synthesisPos)
	traceID := inputThought.TraceID()
	e.observers.NotifyCycleStarted(traceID, input)

	fail := func(err error) (domain.Thought[string], error) {
		e.logger.Error().Err(err).Str("trace_id", traceID).Msg("cycle aborted")
		e.observers.NotifyCycleFailed(traceID, err, time.Since(started))
		return domain.Thought[string]{}, err
	}

	var outputs []string
	for _, id := range e.order {
		if cond, gated := e.conditions[id]; gated {
			pass, err := e.evaluator.EvaluateThought(cond, inputThought)
			if err != nil {
				return fail(err)
			}
			if !pass {
				continue
			}
		}

		aspectStart := time.Now()
		out := aspect.Run(ctx, e.aspects[id], stream.Of(ctx, inputThought), e.positions[id])
		payloads, err := stream.CollectPayloads(ctx, out)
		if err != nil {
			return fail(err)
		}
		outputs = append(outputs, payloads...)
		e.observers.NotifyAspectCompleted(traceID, id, len(payloads), time.Since(aspectStart))
	}

	state, err := simulation.BuildState(e.space, e.initialActivation)
	if err != nil {
		return fail(err)
	}

	steps := 0
	propagated := false
	if state.CellCount() > 0 && state.EdgeCount() > 0 {
		state, steps = simulation.RunUntilConvergence(e.backend, state, PropagationThreshold, PropagationMaxSteps)
		propagated = true
		e.observers.NotifyPropagationCompleted(traceID, e.backend.Name(), steps)
	}

	merged, err := e.synthesis.SynthesizeAsync(ctx, outputs, e.synthesisPos)
	if err != nil {
		return fail(err)
	}

	metadata := map[string]any{
		"convergent":       true,
		"aspects_count":    len(e.aspects),
		"compute_backend":  e.backend.Name(),
		"environment_name": e.env.Name(),
	}
	if propagated {
		metadata["convergence_steps"] = steps
	}

	result := domain.NewThought(merged, e.synthesisPos).
		WithTraceID(traceID).
		WithMetadata(metadata)
	e.observers.NotifyCycleCompleted(traceID, time.Since(started))
	return result, nil
}

// initialActivation seeds a cell with the activation of the aspect
// occupying it.
func (e *Engine) initialActivation(cell *domain.Cell) float64 {
	if a, ok := e.aspects[cell.NodeID()]; ok {
		return a.Core().Activation()
	}
	return 0.0
}

// QueryAspect addresses one aspect directly through its synchronous
// local transform.
func (e *Engine) QueryAspect(id, input string) (string, error) {
	a, err := e.Aspect(id)
	if err != nil {
		return "", err
	}
	return a.TransformLocal(input, e.positions[id]), nil
}

// QueryAspectAsync addresses one aspect directly through its
// environment-aware transform.
func (e *Engine) QueryAspectAsync(ctx context.Context, id, input string) (string, error) {
	a, err := e.Aspect(id)
	if err != nil {
		return "", err
	}
	return a.Transform(ctx, input, e.positions[id])
}

// ThinkStream runs one convergence cycle per inbound thought and
// yields the results in input order.
func (e *Engine) ThinkStream(ctx context.Context, in *stream.Stream[string]) *stream.Stream[string] {
	return stream.Generate(ctx, func(emit func(domain.Thought[string]) bool) error {
		for t := range channerics.OrDone(ctx.Done(), in.C()) {
			result, err := e.Think(ctx, t.Payload())
			if err != nil {
				return err
			}
			if !emit(result) {
				return nil
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return in.Err()
	})
}
