package simulation

import (
	"github.com/rs/zerolog/log"
)

// Backend runs propagation steps over simulation states. Backends may
// hold native resources and must be closed when no longer needed.
type Backend interface {
	// Name returns a short backend identifier, e.g. "CPU".
	Name() string

	// Step applies one propagation step and returns the next state.
	// The returned state shares topology arrays with the input.
	Step(s *State) *State

	// Close releases backend resources.
	Close() error
}

// Default convergence parameters.
const (
	DefaultConvergenceThreshold = 1e-6
	DefaultMaxSteps             = 1000
)

// RunUntilConvergence steps the state until the largest per-cell
// activation change drops below threshold or maxSteps is reached.
// Hitting maxSteps is not an error: the last state is returned together
// with the number of steps actually taken.
func RunUntilConvergence(b Backend, initial *State, threshold float64, maxSteps int) (*State, int) {
	current := initial
	for s := 0; s < maxSteps; s++ {
		next := b.Step(current)
		// cell counts always match between a state and its successor
		delta, _ := next.MaxDelta(current)
		if delta < threshold {
			log.Debug().
				Str("backend", b.Name()).
				Int("steps", s+1).
				Float64("delta", delta).
				Msg("propagation converged")
			return next, s + 1
		}
		current = next
	}
	log.Debug().
		Str("backend", b.Name()).
		Int("steps", maxSteps).
		Msg("propagation stopped at step limit")
	return current, maxSteps
}
