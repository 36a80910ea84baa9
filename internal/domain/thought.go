package domain

import (
	"time"

	"github.com/google/uuid"
)

// Thought is an immutable unit of data flowing through the grid: a
// payload plus its origin coordinate, creation timestamp, trace id and
// free-form metadata. All update operations return copies.
type Thought[T any] struct {
	payload   T
	origin    Coordinate
	timestamp time.Time
	traceID   string
	metadata  map[string]any
}

// NewThought creates a thought at origin with a fresh trace id.
func NewThought[T any](payload T, origin Coordinate) Thought[T] {
	return Thought[T]{
		payload:   payload,
		origin:    origin,
		timestamp: time.Now().UTC(),
		traceID:   uuid.NewString(),
	}
}

// Payload returns the carried value.
func (t Thought[T]) Payload() T {
	return t.payload
}

// Origin returns the coordinate the thought originated from.
func (t Thought[T]) Origin() Coordinate {
	return t.origin
}

// Timestamp returns the creation time.
func (t Thought[T]) Timestamp() time.Time {
	return t.timestamp
}

// TraceID returns the trace identifier.
func (t Thought[T]) TraceID() string {
	return t.traceID
}

// Metadata returns a copy of the metadata map.
func (t Thought[T]) Metadata() map[string]any {
	if t.metadata == nil {
		return nil
	}
	out := make(map[string]any, len(t.metadata))
	for k, v := range t.metadata {
		out[k] = v
	}
	return out
}

// Meta returns a single metadata value.
func (t Thought[T]) Meta(key string) (any, bool) {
	v, ok := t.metadata[key]
	return v, ok
}

// Map returns a copy with the payload transformed by f. Origin,
// timestamp, trace id and metadata are preserved.
func (t Thought[T]) Map(f func(T) T) Thought[T] {
	t.payload = f(t.payload)
	return t
}

// MapThought transforms the payload type of a thought, preserving all
// other fields.
func MapThought[A, B any](t Thought[A], f func(A) B) Thought[B] {
	return Thought[B]{
		payload:   f(t.payload),
		origin:    t.origin,
		timestamp: t.timestamp,
		traceID:   t.traceID,
		metadata:  t.metadata,
	}
}

// WithMetadata returns a copy with the given entries merged into the
// metadata map.
func (t Thought[T]) WithMetadata(entries map[string]any) Thought[T] {
	merged := make(map[string]any, len(t.metadata)+len(entries))
	for k, v := range t.metadata {
		merged[k] = v
	}
	for k, v := range entries {
		merged[k] = v
	}
	t.metadata = merged
	return t
}

// WithTraceID returns a copy carrying the given trace id. Used when a
// derived thought must stay on the trace of the thought it answers.
func (t Thought[T]) WithTraceID(traceID string) Thought[T] {
	t.traceID = traceID
	return t
}

// WithOrigin returns a copy re-originated at the given coordinate.
func (t Thought[T]) WithOrigin(origin Coordinate) Thought[T] {
	t.origin = origin
	return t
}
