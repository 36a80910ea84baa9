package aspect

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PMeeske/hypergrid/internal/domain"
)

const creativePrompt = "You are the creative aspect of a reasoning grid. " +
	"Free-associate over the input: surface unexpected connections and imagery. " +
	"Answer with one evocative reframing."

// connectorPhrases is the fixed rotation the creative aspect cycles
// through, indexed by its internal counter.
var connectorPhrases = [8]string{
	"resonates with",
	"weaves through",
	"mirrors",
	"transforms into",
	"echoes across",
	"unfolds toward",
	"dances with",
	"dissolves into",
}

// Creative reframes input text around its most substantial concepts.
type Creative struct {
	Base
	rotation int
}

// NewCreative creates the creative aspect on the semantic axis.
func NewCreative() *Creative {
	return &Creative{
		Base: NewCore("creative", "Creative", 1, creativePrompt),
	}
}

// ShouldProcess accepts every payload.
func (c *Creative) ShouldProcess(string) bool {
	return true
}

// TransformLocal extracts up to three concept tokens (words longer
// than four characters, longest first) and frames them with the next
// connector phrase in the rotation.
func (c *Creative) TransformLocal(input string, position domain.Coordinate) string {
	var concepts []string
	for _, w := range strings.Fields(input) {
		if len(w) > 4 {
			concepts = append(concepts, w)
		}
	}
	sort.SliceStable(concepts, func(i, j int) bool {
		return len(concepts[i]) > len(concepts[j])
	})
	if len(concepts) > 3 {
		concepts = concepts[:3]
	}

	c.mu.Lock()
	connector := connectorPhrases[c.rotation%len(connectorPhrases)]
	c.rotation++
	c.mu.Unlock()

	framed := "the void"
	if len(concepts) > 0 {
		framed = strings.Join(concepts, ", ")
	}

	return fmt.Sprintf("[CREATIVE@%s] %q — this %s %s. Semantic depth: %d concepts extracted.",
		position, input, connector, framed, len(concepts))
}

// Transform routes between the local heuristic and the environment.
func (c *Creative) Transform(ctx context.Context, input string, position domain.Coordinate) (string, error) {
	return transformWith(ctx, c, input, position)
}
