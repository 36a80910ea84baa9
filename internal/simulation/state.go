package simulation

import (
	"fmt"
	"math"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// State is an immutable snapshot of grid activations plus the CSR
// encoding of incoming-edge adjacency: rowPtr has one slot per target
// cell (plus the trailing total), sources and weights hold the source
// index and weight of every incoming edge grouped by target.
//
// Topology arrays are shared by reference between the states of one
// simulation run and must not be mutated after construction; only the
// activation vector is replaced step to step.
type State struct {
	activations []float64
	rowPtr      []int32
	sources     []int32
	weights     []float64
	step        int
}

// NewState builds a state from raw CSR arrays, validating all encoding
// invariants. Invalid encodings are fatal construction errors; the
// propagation kernel never re-checks them.
func NewState(activations []float64, rowPtr, sources []int32, weights []float64) (*State, error) {
	n := len(activations)
	m := len(sources)

	if len(rowPtr) != n+1 {
		return nil, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			fmt.Sprintf("row pointer length %d does not match cell count %d + 1", len(rowPtr), n),
			nil,
		)
	}
	if len(weights) != m {
		return nil, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			fmt.Sprintf("weights length %d does not match edge count %d", len(weights), m),
			nil,
		)
	}
	if rowPtr[0] != 0 {
		return nil, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			fmt.Sprintf("row pointer must start at 0, got %d", rowPtr[0]),
			nil,
		)
	}
	if rowPtr[n] != int32(m) {
		return nil, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			fmt.Sprintf("row pointer must end at edge count %d, got %d", m, rowPtr[n]),
			nil,
		)
	}
	for i := 0; i < n; i++ {
		if rowPtr[i] > rowPtr[i+1] {
			return nil, domain.NewDomainError(
				domain.ErrCodeInvalidInput,
				fmt.Sprintf("row pointer not monotone at index %d", i),
				nil,
			)
		}
	}
	for i, src := range sources {
		if src < 0 || int(src) >= n {
			return nil, domain.NewDomainError(
				domain.ErrCodeOutOfBounds,
				fmt.Sprintf("edge %d references source %d outside cell range %d", i, src, n),
				nil,
			)
		}
	}

	a := make([]float64, n)
	copy(a, activations)
	return &State{
		activations: a,
		rowPtr:      rowPtr,
		sources:     sources,
		weights:     weights,
	}, nil
}

// WithActivations returns a new state carrying the given activation
// vector and sharing the topology arrays by reference. The step number
// is carried over unchanged.
func (s *State) WithActivations(activations []float64) (*State, error) {
	if len(activations) != len(s.activations) {
		return nil, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			fmt.Sprintf("activation length %d does not match cell count %d", len(activations), len(s.activations)),
			nil,
		)
	}
	return &State{
		activations: activations,
		rowPtr:      s.rowPtr,
		sources:     s.sources,
		weights:     s.weights,
		step:        s.step,
	}, nil
}

// CellCount returns the number of cells in the state.
func (s *State) CellCount() int {
	return len(s.activations)
}

// EdgeCount returns the number of encoded incoming edges.
func (s *State) EdgeCount() int {
	return len(s.sources)
}

// StepNumber returns the number of propagation steps applied so far.
func (s *State) StepNumber() int {
	return s.step
}

// Activation returns the activation of cell i.
func (s *State) Activation(i int) (float64, error) {
	if i < 0 || i >= len(s.activations) {
		return 0, domain.NewDomainError(
			domain.ErrCodeOutOfBounds,
			fmt.Sprintf("cell index %d out of range %d", i, len(s.activations)),
			nil,
		)
	}
	return s.activations[i], nil
}

// Activations returns a copy of the activation vector.
func (s *State) Activations() []float64 {
	out := make([]float64, len(s.activations))
	copy(out, s.activations)
	return out
}

// MaxDelta returns the largest absolute per-cell activation difference
// between two states. Both states must have the same cell count.
func (s *State) MaxDelta(other *State) (float64, error) {
	if len(s.activations) != len(other.activations) {
		return 0, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			fmt.Sprintf("cell count mismatch: %d vs %d", len(s.activations), len(other.activations)),
			nil,
		)
	}
	max := 0.0
	for i, a := range s.activations {
		d := math.Abs(a - other.activations[i])
		if d > max {
			max = d
		}
	}
	return max, nil
}
