package stream

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PMeeske/hypergrid/internal/domain"
)

func intThoughts(n int) []domain.Thought[int] {
	origin := domain.MustCoordinate(0, 0, 0)
	out := make([]domain.Thought[int], 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.NewThought(i, origin))
	}
	return out
}

func TestOf_SingleThought(t *testing.T) {
	ctx := context.Background()
	in := domain.NewThought("only", domain.MustCoordinate(0))

	got, err := Collect(ctx, Of(ctx, in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "only", got[0].Payload())
	assert.Equal(t, in.TraceID(), got[0].TraceID())
}

func TestFrom_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	got, err := CollectPayloads(ctx, From(ctx, intThoughts(5)...))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestFrom_Empty(t *testing.T) {
	ctx := context.Background()
	got, err := Collect(ctx, From[int](ctx))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMap_Conservation(t *testing.T) {
	ctx := context.Background()
	src := From(ctx, intThoughts(10)...)

	got, err := Collect(ctx, Map(ctx, src, func(n int) string { return strconv.Itoa(n) }))
	require.NoError(t, err)
	assert.Len(t, got, 10, "|map(f, s)| = |s|")
	assert.Equal(t, "7", got[7].Payload())
}

func TestMap_PreservesThoughtFields(t *testing.T) {
	ctx := context.Background()
	in := domain.NewThought(41, domain.MustCoordinate(1, 2)).
		WithMetadata(map[string]any{"tag": "x"})

	got, err := Collect(ctx, Map(ctx, Of(ctx, in), func(n int) int { return n + 1 }))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 42, got[0].Payload())
	assert.Equal(t, in.TraceID(), got[0].TraceID())
	assert.True(t, got[0].Origin().Equal(in.Origin()))
	assert.Equal(t, in.Metadata(), got[0].Metadata())
}

func TestFilter_Conservation(t *testing.T) {
	ctx := context.Background()

	all, err := CollectPayloads(ctx, Filter(ctx, From(ctx, intThoughts(8)...), func(int) bool { return true }))
	require.NoError(t, err)
	assert.Len(t, all, 8, "|filter(true, s)| = |s|")

	none, err := CollectPayloads(ctx, Filter(ctx, From(ctx, intThoughts(8)...), func(int) bool { return false }))
	require.NoError(t, err)
	assert.Empty(t, none, "|filter(false, s)| = 0")
}

func TestGenerate_ProducerError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	s := Generate(ctx, func(emit func(domain.Thought[int]) bool) error {
		emit(domain.NewThought(1, domain.MustCoordinate(0)))
		return boom
	})

	got, err := Collect(ctx, s)
	assert.Len(t, got, 1)
	assert.ErrorIs(t, err, boom)
}

func TestGenerate_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := Generate(ctx, func(emit func(domain.Thought[int]) bool) error {
		for i := 0; ; i++ {
			if !emit(domain.NewThought(i, domain.MustCoordinate(0))) {
				return nil
			}
		}
	})

	<-s.C()
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-s.C():
			if !ok {
				err := s.Err()
				require.Error(t, err)
				assert.Equal(t, domain.ErrCodeCancelled, domain.ErrorCode(err))
				return
			}
		case <-deadline:
			t.Fatal("stream did not terminate after cancellation")
		}
	}
}
