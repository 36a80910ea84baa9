package stream

import (
	"context"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// Cell is a pluggable processing stage at a grid position. For each
// thought pulled from the input it produces zero or more output
// thoughts in arrival order. Cells may carry internal state across
// thoughts; cancellation of ctx must terminate processing promptly.
type Cell[In, Out any] interface {
	Process(ctx context.Context, in *Stream[In], position domain.Coordinate) *Stream[Out]
}

// CellFunc adapts a per-thought function into a stateless Cell
// producing exactly one output per input.
type CellFunc[In, Out any] func(ctx context.Context, t domain.Thought[In], position domain.Coordinate) (domain.Thought[Out], error)

// Process implements Cell.
func (f CellFunc[In, Out]) Process(ctx context.Context, in *Stream[In], position domain.Coordinate) *Stream[Out] {
	return Generate(ctx, func(emit func(domain.Thought[Out]) bool) error {
		for t := range in.C() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out, err := f(ctx, t, position)
			if err != nil {
				return err
			}
			if !emit(out) {
				return nil
			}
		}
		return in.Err()
	})
}
