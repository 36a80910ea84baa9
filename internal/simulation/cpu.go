package simulation

import (
	"math"
	"runtime"
	"sync"
)

// parallelThreshold is the cell count above which a step is split
// across worker goroutines. Small grids are cheaper single-threaded.
const parallelThreshold = 2048

// CPUBackend propagates activations on the host CPU. The activation
// function defaults to tanh and can be overridden, which also makes
// identity-activation test setups possible.
type CPUBackend struct {
	activation func(float64) float64
	workers    int
}

// CPUOption configures a CPUBackend.
type CPUOption func(*CPUBackend)

// WithActivation overrides the activation function.
func WithActivation(f func(float64) float64) CPUOption {
	return func(b *CPUBackend) {
		b.activation = f
	}
}

// WithWorkers overrides the worker count used for large states.
func WithWorkers(n int) CPUOption {
	return func(b *CPUBackend) {
		if n > 0 {
			b.workers = n
		}
	}
}

// NewCPUBackend creates a CPU propagation backend.
func NewCPUBackend(opts ...CPUOption) *CPUBackend {
	b := &CPUBackend{
		activation: math.Tanh,
		workers:    runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend identifier.
func (b *CPUBackend) Name() string {
	return "CPU"
}

// Close releases backend resources. The CPU backend holds none.
func (b *CPUBackend) Close() error {
	return nil
}

// Step applies the propagation kernel to every cell: a cell with no
// incoming edges retains its activation, any other cell becomes the
// activation function applied to the weighted sum of its sources.
func (b *CPUBackend) Step(s *State) *State {
	n := len(s.activations)
	next := make([]float64, n)

	if n >= parallelThreshold && b.workers > 1 {
		b.stepParallel(s, next)
	} else {
		b.stepRange(s, next, 0, n)
	}

	// same cell count, so WithActivations cannot fail
	out, _ := s.WithActivations(next)
	out.step = s.step + 1
	return out
}

func (b *CPUBackend) stepParallel(s *State, next []float64) {
	n := len(s.activations)
	chunk := (n + b.workers - 1) / b.workers

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			b.stepRange(s, next, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

func (b *CPUBackend) stepRange(s *State, next []float64, lo, hi int) {
	for i := lo; i < hi; i++ {
		start := s.rowPtr[i]
		end := s.rowPtr[i+1]
		if start == end {
			next[i] = s.activations[i]
			continue
		}
		sum := 0.0
		for e := start; e < end; e++ {
			sum += s.activations[s.sources[e]] * s.weights[e]
		}
		next[i] = b.activation(sum)
	}
}
