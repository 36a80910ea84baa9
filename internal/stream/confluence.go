package stream

import (
	"context"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// Confluence aggregates heterogeneous sources registered in order.
// Emit interleaves them; CollectFirst acts as a synchronization barrier
// taking one thought from each source.
type Confluence[T any] struct {
	sources []*Stream[T]
}

// NewConfluence creates an empty confluence.
func NewConfluence[T any]() *Confluence[T] {
	return &Confluence[T]{}
}

// Add registers a source and returns the confluence for chaining.
func (c *Confluence[T]) Add(source *Stream[T]) *Confluence[T] {
	c.sources = append(c.sources, source)
	return c
}

// Len returns the number of registered sources.
func (c *Confluence[T]) Len() int {
	return len(c.sources)
}

// Emit merges all registered sources into one stream.
func (c *Confluence[T]) Emit(ctx context.Context) *Stream[T] {
	return Merge(ctx, c.sources...)
}

// CollectFirst takes one thought from each source and returns the batch
// in registration order. A source that completes without producing
// anything contributes nothing and does not block the batch.
func (c *Confluence[T]) CollectFirst(ctx context.Context) ([]domain.Thought[T], error) {
	out := make([]domain.Thought[T], 0, len(c.sources))
	for _, src := range c.sources {
		select {
		case t, ok := <-src.C():
			if !ok {
				if err := src.Err(); err != nil {
					return out, err
				}
				continue
			}
			out = append(out, t)
		case <-ctx.Done():
			return out, cancelErr(ctx)
		}
	}
	return out, nil
}
