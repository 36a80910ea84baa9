package aspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/PMeeske/hypergrid/internal/domain"
	"github.com/PMeeske/hypergrid/internal/environment"
)

const guardianPrompt = "You are the guardian aspect of a reasoning grid. " +
	"Judge the coherence of the input and refuse incoherent material. " +
	"Answer with a short verdict."

// DefaultCoherenceThreshold is the coherence level below which the
// guardian blocks input.
const DefaultCoherenceThreshold = 0.3

// Guardian gates input on a lexical coherence score. Whitespace-only
// payloads pass through unprocessed.
type Guardian struct {
	Base
	threshold float64
	blocked   int64
}

// NewGuardian creates the guardian aspect with the default threshold.
func NewGuardian() *Guardian {
	return NewGuardianWithThreshold(DefaultCoherenceThreshold)
}

// NewGuardianWithThreshold creates the guardian aspect with a custom
// coherence threshold.
func NewGuardianWithThreshold(threshold float64) *Guardian {
	return &Guardian{
		Base:      NewCore("guardian", "Guardian", 0, guardianPrompt),
		threshold: threshold,
	}
}

// Threshold returns the configured coherence threshold.
func (g *Guardian) Threshold() float64 {
	return g.threshold
}

// BlockedCount returns how many inputs the guardian has blocked.
func (g *Guardian) BlockedCount() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.blocked
}

func (g *Guardian) markBlocked() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.blocked++
}

// Coherence scores the input: the word-substance fraction weighted
// against the capped average word length.
func (g *Guardian) Coherence(input string) float64 {
	words := strings.Fields(input)
	if len(words) == 0 {
		return 0
	}
	substantial := 0
	totalLen := 0
	for _, w := range words {
		if len(w) > 2 {
			substantial++
		}
		totalLen += len(w)
	}
	frac := float64(substantial) / float64(len(words))
	avg := float64(totalLen) / float64(len(words))
	lenScore := avg / 8
	if lenScore > 1 {
		lenScore = 1
	}
	return 0.6*frac + 0.4*lenScore
}

// ShouldProcess rejects whitespace-only payloads; they pass through
// unmodified.
func (g *Guardian) ShouldProcess(payload string) bool {
	return strings.TrimSpace(payload) != ""
}

// TransformLocal emits a BLOCKED or PASSED verdict for the input.
func (g *Guardian) TransformLocal(input string, position domain.Coordinate) string {
	coherence := g.Coherence(input)
	if coherence < g.threshold {
		g.markBlocked()
		return fmt.Sprintf("[GUARDIAN@%s] BLOCKED coherence=%.2f threshold=%.2f | %s",
			position, coherence, g.threshold, input)
	}
	return fmt.Sprintf("[GUARDIAN@%s] PASSED coherence=%.2f | %s", position, coherence, input)
}

// Transform gates on coherence before reaching the environment:
// blocked input never leaves the node.
func (g *Guardian) Transform(ctx context.Context, input string, position domain.Coordinate) (string, error) {
	env := g.Environment()
	if env.IsLocal() {
		return g.TransformLocal(input, position), nil
	}

	coherence := g.Coherence(input)
	if coherence < g.threshold {
		g.markBlocked()
		return fmt.Sprintf("[GUARDIAN@%s] BLOCKED coherence=%.2f threshold=%.2f | %s",
			position, coherence, g.threshold, input), nil
	}
	return env.Process(ctx, input, environment.Context{
		AspectID:     g.ID(),
		SystemPrompt: g.SystemPrompt(),
	})
}
