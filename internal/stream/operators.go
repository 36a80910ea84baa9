package stream

import (
	"context"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// Map transforms every payload with f, forwarding origin, timestamp,
// trace id and metadata unchanged.
func Map[A, B any](ctx context.Context, in *Stream[A], f func(A) B) *Stream[B] {
	out := newStream[B]()
	go func() {
		for t := range channerics.OrDone(ctx.Done(), in.C()) {
			if !out.emit(ctx, domain.MapThought(t, f)) {
				break
			}
		}
		out.finish(upstreamErr(ctx, in))
	}()
	return out
}

// Filter keeps the thoughts whose payload satisfies p.
func Filter[T any](ctx context.Context, in *Stream[T], p func(T) bool) *Stream[T] {
	out := newStream[T]()
	go func() {
		for t := range channerics.OrDone(ctx.Done(), in.C()) {
			if !p(t.Payload()) {
				continue
			}
			if !out.emit(ctx, t) {
				break
			}
		}
		out.finish(upstreamErr(ctx, in))
	}()
	return out
}

// Merge interleaves the sources into one stream with no ordering
// guarantee between them. The merged stream completes when every source
// has completed; an error in any source cancels the remaining ones and
// becomes the merged stream's error.
func Merge[T any](ctx context.Context, sources ...*Stream[T]) *Stream[T] {
	out := newStream[T]()
	g, gctx := errgroup.WithContext(ctx)

	for _, src := range sources {
		src := src
		g.Go(func() error {
			for t := range channerics.OrDone(gctx.Done(), src.C()) {
				if !out.emit(gctx, t) {
					return gctx.Err()
				}
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			return src.Err()
		})
	}

	go func() {
		err := g.Wait()
		if ctx.Err() != nil {
			err = cancelErr(ctx)
		}
		out.finish(err)
	}()
	return out
}

// Split routes the source into two streams: thoughts whose payload
// satisfies p, and the rest. A single task consumes the source, so
// every input thought lands on exactly one side. Both sides must be
// drained; an undrained side blocks the splitter.
func Split[T any](ctx context.Context, in *Stream[T], p func(T) bool) (matching, rest *Stream[T]) {
	matching = newStream[T]()
	rest = newStream[T]()
	go func() {
		for t := range channerics.OrDone(ctx.Done(), in.C()) {
			side := rest
			if p(t.Payload()) {
				side = matching
			}
			if !side.emit(ctx, t) {
				break
			}
		}
		err := upstreamErr(ctx, in)
		matching.finish(err)
		rest.finish(err)
	}()
	return matching, rest
}

// upstreamErr resolves the terminal error of a forwarding operator:
// cancellation wins, otherwise the upstream error is propagated.
func upstreamErr[T any](ctx context.Context, in *Stream[T]) error {
	if ctx.Err() != nil {
		return cancelErr(ctx)
	}
	return in.Err()
}
