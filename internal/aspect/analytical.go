package aspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/PMeeske/hypergrid/internal/domain"
)

const analyticalPrompt = "You are the analytical aspect of a reasoning grid. " +
	"Decompose the input: identify structure, causal links, conditions and questions. " +
	"Answer with a precise analysis."

// Analytical decomposes input text into structural markers: token
// statistics plus causal, conditional and interrogative signals.
type Analytical struct {
	Base
}

// NewAnalytical creates the analytical aspect on the causal axis.
func NewAnalytical() *Analytical {
	return &Analytical{
		Base: NewCore("analytical", "Analytical", 2, analyticalPrompt),
	}
}

// ShouldProcess accepts every payload.
func (a *Analytical) ShouldProcess(string) bool {
	return true
}

// TransformLocal tags the input with token statistics and reasoning
// markers. Markers are detected case-insensitively by substring.
func (a *Analytical) TransformLocal(input string, position domain.Coordinate) string {
	words := strings.Fields(input)
	unique := make(map[string]struct{}, len(words))
	totalLen := 0
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
		totalLen += len(w)
	}
	avgLen := 0.0
	if len(words) > 0 {
		avgLen = float64(totalLen) / float64(len(words))
	}

	lower := strings.ToLower(input)
	causal := strings.Contains(lower, "because") ||
		strings.Contains(lower, "therefore") ||
		strings.Contains(lower, "thus")
	conditional := strings.Contains(lower, "if") || strings.Contains(lower, "when")
	interrogative := strings.Contains(input, "?")

	return fmt.Sprintf("[ANALYTICAL@%s] tokens=%d unique=%d avg_len=%.1f causal=%t conditional=%t interrogative=%t | %s",
		position, len(words), len(unique), avgLen, causal, conditional, interrogative, input)
}

// Transform routes between the local heuristic and the environment.
func (a *Analytical) Transform(ctx context.Context, input string, position domain.Coordinate) (string, error) {
	return transformWith(ctx, a, input, position)
}
