// Package stream implements lazy, cancellation-aware sequences of
// thoughts and the combinator algebra over them. Streams are backed by
// channels and are not restartable: once drained they are done.
//
// Error handling follows the scanner convention: consumers range over
// C() until it closes, then check Err(). A nil Err means the stream
// completed; a non-nil Err means the producer failed or was cancelled.
package stream

import (
	"context"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// Stream is an asynchronous sequence of thoughts.
type Stream[T any] struct {
	ch  chan domain.Thought[T]
	err error
}

func newStream[T any]() *Stream[T] {
	return &Stream[T]{ch: make(chan domain.Thought[T])}
}

// C returns the channel to receive thoughts from. It is closed when
// the stream completes; Err is valid only after that.
func (s *Stream[T]) C() <-chan domain.Thought[T] {
	return s.ch
}

// Err returns the terminal error of the stream. It must only be called
// after C() has been closed.
func (s *Stream[T]) Err() error {
	return s.err
}

// emit delivers one thought, honoring cancellation. It reports whether
// the thought was accepted.
func (s *Stream[T]) emit(ctx context.Context, t domain.Thought[T]) bool {
	select {
	case s.ch <- t:
		return true
	case <-ctx.Done():
		return false
	}
}

// finish records the terminal error and closes the stream. The error
// write happens before the close, so consumers observing the closed
// channel always see it.
func (s *Stream[T]) finish(err error) {
	s.err = err
	close(s.ch)
}

func cancelErr(ctx context.Context) error {
	return domain.NewDomainError(domain.ErrCodeCancelled, "stream cancelled", ctx.Err())
}

// Generate creates a stream fed by produce. The emit callback reports
// whether the thought was accepted; producers must stop once it returns
// false. The error returned by produce becomes the stream's terminal
// error, except that cancellation always wins.
func Generate[T any](ctx context.Context, produce func(emit func(domain.Thought[T]) bool) error) *Stream[T] {
	out := newStream[T]()
	go func() {
		err := produce(func(t domain.Thought[T]) bool {
			return out.emit(ctx, t)
		})
		if ctx.Err() != nil {
			err = cancelErr(ctx)
		}
		out.finish(err)
	}()
	return out
}

// Of creates a single-thought stream.
func Of[T any](ctx context.Context, t domain.Thought[T]) *Stream[T] {
	return From(ctx, t)
}

// From creates a finite stream over the given thoughts in order.
func From[T any](ctx context.Context, thoughts ...domain.Thought[T]) *Stream[T] {
	return Generate(ctx, func(emit func(domain.Thought[T]) bool) error {
		for _, t := range thoughts {
			if !emit(t) {
				return nil
			}
		}
		return nil
	})
}

// Collect drains the stream and returns every thought received. The
// stream's terminal error is returned alongside whatever was collected
// before it occurred.
func Collect[T any](ctx context.Context, s *Stream[T]) ([]domain.Thought[T], error) {
	var out []domain.Thought[T]
	for {
		select {
		case t, ok := <-s.C():
			if !ok {
				return out, s.Err()
			}
			out = append(out, t)
		case <-ctx.Done():
			return out, cancelErr(ctx)
		}
	}
}

// CollectPayloads drains the stream and returns the payloads in order.
func CollectPayloads[T any](ctx context.Context, s *Stream[T]) ([]T, error) {
	thoughts, err := Collect(ctx, s)
	out := make([]T, 0, len(thoughts))
	for _, t := range thoughts {
		out = append(out, t.Payload())
	}
	return out, err
}
