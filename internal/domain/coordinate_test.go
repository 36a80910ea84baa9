package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinate_RejectsEmpty(t *testing.T) {
	_, err := NewCoordinate()
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidInput, ErrorCode(err))
}

func TestCoordinate_ComponentAccess(t *testing.T) {
	c := MustCoordinate(3, -1, 7)
	assert.Equal(t, 3, c.Rank())

	v, err := c.Component(1)
	require.NoError(t, err)
	assert.Equal(t, -1, v)

	_, err = c.Component(3)
	assert.Equal(t, ErrCodeOutOfBounds, ErrorCode(err))
	_, err = c.Component(-1)
	assert.Equal(t, ErrCodeOutOfBounds, ErrorCode(err))
}

func TestCoordinate_Equality(t *testing.T) {
	a := MustCoordinate(1, 2, 3)
	b := MustCoordinate(1, 2, 3)
	c := MustCoordinate(1, 2)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "coordinates of differing rank are never equal")
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestCoordinate_ManhattanDistance_MetricLaws(t *testing.T) {
	x := MustCoordinate(0, 0, 0)
	y := MustCoordinate(1, -2, 3)
	z := MustCoordinate(-4, 5, 0)

	dxx, err := x.ManhattanDistance(x)
	require.NoError(t, err)
	assert.Equal(t, 0, dxx)

	dxy, _ := x.ManhattanDistance(y)
	dyx, _ := y.ManhattanDistance(x)
	assert.Equal(t, dxy, dyx, "symmetry")
	assert.GreaterOrEqual(t, dxy, 0, "non-negativity")

	dxz, _ := x.ManhattanDistance(z)
	dyz, _ := y.ManhattanDistance(z)
	assert.LessOrEqual(t, dxz, dxy+dyz, "triangle inequality")
}

func TestCoordinate_ManhattanDistance_RankMismatch(t *testing.T) {
	a := MustCoordinate(1, 2)
	b := MustCoordinate(1, 2, 3)
	_, err := a.ManhattanDistance(b)
	require.Error(t, err)
	assert.Equal(t, ErrCodeRankMismatch, ErrorCode(err))
}

func TestCoordinate_Projection_Laws(t *testing.T) {
	c := MustCoordinate(5, 6, 7)

	once, err := c.Project(1, 9)
	require.NoError(t, err)
	twice, err := once.Project(1, 9)
	require.NoError(t, err)
	assert.True(t, once.Equal(twice), "projection is idempotent")

	ab1, _ := c.Project(0, 1)
	ab, _ := ab1.Project(2, 2)
	ba1, _ := c.Project(2, 2)
	ba, _ := ba1.Project(0, 1)
	assert.True(t, ab.Equal(ba), "projections on distinct dimensions commute")

	assert.Equal(t, c.Rank(), once.Rank(), "projection preserves rank")

	_, err = c.Project(3, 0)
	assert.Equal(t, ErrCodeOutOfBounds, ErrorCode(err))
}

func TestOrigin(t *testing.T) {
	o, err := Origin(3)
	require.NoError(t, err)
	assert.True(t, o.Equal(MustCoordinate(0, 0, 0)))

	_, err = Origin(0)
	assert.Error(t, err)
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "(0,1,-2)", MustCoordinate(0, 1, -2).String())
}

func TestCoordinate_ComponentsIsCopy(t *testing.T) {
	c := MustCoordinate(1, 2)
	comps := c.Components()
	comps[0] = 99
	v, _ := c.Component(0)
	assert.Equal(t, 1, v)
}
