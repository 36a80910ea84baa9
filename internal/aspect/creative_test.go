package aspect

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PMeeske/hypergrid/internal/domain"
)

func TestCreative_ConceptExtraction(t *testing.T) {
	c := NewCreative()
	pos := domain.MustCoordinate(0, 1, 0)

	out := c.TransformLocal("The architecture transforms consciousness now", pos)
	assert.Contains(t, out, "[CREATIVE@(0,1,0)]")
	// longest first, capped at three
	assert.Contains(t, out, "consciousness, architecture, transforms")
	assert.Contains(t, out, "Semantic depth: 3 concepts extracted.")
}

func TestCreative_NoConcepts(t *testing.T) {
	c := NewCreative()
	out := c.TransformLocal("a b c", domain.MustCoordinate(0, 1, 0))
	assert.Contains(t, out, "the void")
	assert.Contains(t, out, "Semantic depth: 0 concepts extracted.")
}

func TestCreative_ConnectorRotation(t *testing.T) {
	c := NewCreative()
	pos := domain.MustCoordinate(0, 1, 0)

	seen := make([]string, 0, len(connectorPhrases)+1)
	for i := 0; i <= len(connectorPhrases); i++ {
		seen = append(seen, c.TransformLocal(fmt.Sprintf("input number %d", i), pos))
	}

	for i, phrase := range connectorPhrases {
		assert.Contains(t, seen[i], phrase)
	}
	// the rotation wraps around after eight entries
	assert.Contains(t, seen[len(connectorPhrases)], connectorPhrases[0])
}

func TestCreative_Identity(t *testing.T) {
	c := NewCreative()
	assert.Equal(t, "creative", c.ID())
	assert.Equal(t, 1, c.PrimaryDimension())
}
