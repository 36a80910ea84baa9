package hypergrid

import (
	"context"

	"github.com/PMeeske/hypergrid/internal/stream"
)

// TextConfluence aggregates text streams registered in order.
type TextConfluence = stream.Confluence[string]

// NewConfluence creates an empty text confluence.
func NewConfluence() *TextConfluence {
	return stream.NewConfluence[string]()
}

// StreamOf creates a single-thought text stream.
func StreamOf(ctx context.Context, t Thought) *TextStream {
	return stream.Of(ctx, t)
}

// StreamFrom creates a finite text stream over thoughts in order.
func StreamFrom(ctx context.Context, thoughts ...Thought) *TextStream {
	return stream.From(ctx, thoughts...)
}

// MapStream transforms every payload, forwarding all other fields.
func MapStream(ctx context.Context, in *TextStream, f func(string) string) *TextStream {
	return stream.Map(ctx, in, f)
}

// FilterStream keeps thoughts whose payload satisfies p.
func FilterStream(ctx context.Context, in *TextStream, p func(string) bool) *TextStream {
	return stream.Filter(ctx, in, p)
}

// FilterStreamExpr keeps thoughts satisfying an expression condition.
func FilterStreamExpr(ctx context.Context, in *TextStream, ce *ConditionEvaluator, condition string) (*TextStream, error) {
	return stream.FilterExpr(ctx, in, ce, condition)
}

// MergeStreams interleaves sources into one stream.
func MergeStreams(ctx context.Context, sources ...*TextStream) *TextStream {
	return stream.Merge(ctx, sources...)
}

// SplitStream routes a stream into matching and non-matching halves.
func SplitStream(ctx context.Context, in *TextStream, p func(string) bool) (matching, rest *TextStream) {
	return stream.Split(ctx, in, p)
}

// CollectThoughts drains a stream into a slice.
func CollectThoughts(ctx context.Context, s *TextStream) ([]Thought, error) {
	return stream.Collect(ctx, s)
}

// CollectPayloads drains a stream into its payloads.
func CollectPayloads(ctx context.Context, s *TextStream) ([]string, error) {
	return stream.CollectPayloads(ctx, s)
}
