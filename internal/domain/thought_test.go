package domain

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThought_FreshTraceIDs(t *testing.T) {
	origin := MustCoordinate(0, 0, 0)
	a := NewThought("alpha", origin)
	b := NewThought("beta", origin)

	assert.NotEmpty(t, a.TraceID())
	assert.NotEqual(t, a.TraceID(), b.TraceID())
	assert.False(t, a.Timestamp().IsZero())
	assert.True(t, a.Origin().Equal(origin))
}

func TestThought_Map_FunctorIdentity(t *testing.T) {
	orig := NewThought("payload", MustCoordinate(1, 2, 3)).
		WithMetadata(map[string]any{"k": "v"})

	mapped := orig.Map(func(s string) string { return s })

	assert.Equal(t, orig.Payload(), mapped.Payload())
	assert.Equal(t, orig.TraceID(), mapped.TraceID())
	assert.Equal(t, orig.Timestamp(), mapped.Timestamp())
	assert.True(t, orig.Origin().Equal(mapped.Origin()))
	assert.Equal(t, orig.Metadata(), mapped.Metadata())
}

func TestThought_Map_FunctorComposition(t *testing.T) {
	orig := NewThought(3, MustCoordinate(0))
	f := func(n int) int { return n * 2 }
	g := func(n int) int { return n + 1 }

	composed := orig.Map(func(n int) int { return f(g(n)) })
	chained := orig.Map(g).Map(f)

	assert.Equal(t, composed.Payload(), chained.Payload())
	assert.Equal(t, composed.TraceID(), chained.TraceID())
}

func TestMapThought_ChangesPayloadType(t *testing.T) {
	orig := NewThought(42, MustCoordinate(0, 1)).
		WithMetadata(map[string]any{"src": "test"})

	mapped := MapThought(orig, func(n int) string { return strconv.Itoa(n) })

	assert.Equal(t, "42", mapped.Payload())
	assert.Equal(t, orig.TraceID(), mapped.TraceID())
	assert.True(t, mapped.Origin().Equal(orig.Origin()))
	v, ok := mapped.Meta("src")
	require.True(t, ok)
	assert.Equal(t, "test", v)
}

func TestThought_WithMetadata_CopiesNotMutates(t *testing.T) {
	orig := NewThought("x", MustCoordinate(0))
	enriched := orig.WithMetadata(map[string]any{"a": 1})
	further := enriched.WithMetadata(map[string]any{"b": 2})

	assert.Nil(t, orig.Metadata())
	assert.Len(t, enriched.Metadata(), 1)
	assert.Len(t, further.Metadata(), 2)

	// mutating the returned copy must not leak back
	m := further.Metadata()
	m["c"] = 3
	assert.Len(t, further.Metadata(), 2)
}

func TestThought_WithTraceID(t *testing.T) {
	orig := NewThought("x", MustCoordinate(0))
	derived := NewThought("y", MustCoordinate(0)).WithTraceID(orig.TraceID())
	assert.Equal(t, orig.TraceID(), derived.TraceID())
}

func TestThought_MapPreservesUpperCase(t *testing.T) {
	orig := NewThought("shout", MustCoordinate(0))
	mapped := orig.Map(strings.ToUpper)
	assert.Equal(t, "SHOUT", mapped.Payload())
	assert.Equal(t, "shout", orig.Payload())
}
