package aspect

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PMeeske/hypergrid/internal/domain"
	"github.com/PMeeske/hypergrid/internal/environment"
)

const synthesisPrompt = "You are the synthesis aspect of a reasoning grid. " +
	"Merge the tagged per-aspect analyses you receive into one coherent answer. " +
	"Preserve the strongest insight of each stream."

const synthesisLineLen = 60

// taggedLine matches per-aspect output lines of the form "[TAG@...] rest".
var taggedLine = regexp.MustCompile(`^\[([A-Z]+)@[^\]]*\]\s*(.*)$`)

// Synthesis is the meta-dimensional aspect at the origin. It merges
// tagged per-aspect outputs into the final payload.
type Synthesis struct {
	Base
}

// NewSynthesis creates the synthesis aspect.
func NewSynthesis() *Synthesis {
	return &Synthesis{
		Base: NewCore("synthesis", "Synthesis", MetaDimension, synthesisPrompt),
	}
}

// ShouldProcess accepts every payload.
func (s *Synthesis) ShouldProcess(string) bool {
	return true
}

// TransformLocal folds tagged lines into an indented digest. A single
// line is passed through as a unification.
func (s *Synthesis) TransformLocal(input string, position domain.Coordinate) string {
	var lines []string
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) <= 1 {
		return fmt.Sprintf("[SYNTHESIS@%s] Unified: %s", position, input)
	}

	digest := make([]string, 0, len(lines))
	for _, line := range lines {
		if m := taggedLine.FindStringSubmatch(line); m != nil {
			digest = append(digest, "  "+m[1]+": "+truncate(m[2], synthesisLineLen))
		} else {
			digest = append(digest, "  "+truncate(line, synthesisLineLen))
		}
	}

	return fmt.Sprintf("[SYNTHESIS@%s] Converged %d streams:\n%s",
		position, len(lines), strings.Join(digest, "\n"))
}

// Transform routes between the local fold and the environment.
func (s *Synthesis) Transform(ctx context.Context, input string, position domain.Coordinate) (string, error) {
	return transformWith(ctx, s, input, position)
}

// SynthesizeAsync merges the collected per-aspect outputs into the
// final text: locally through the line fold, otherwise by handing the
// combined streams to the environment.
func (s *Synthesis) SynthesizeAsync(ctx context.Context, outputs []string, position domain.Coordinate) (string, error) {
	combined := strings.Join(outputs, "\n")
	env := s.Environment()
	if env.IsLocal() {
		return s.TransformLocal(combined, position), nil
	}
	return env.Process(ctx, combined, environment.Context{
		AspectID:     s.ID(),
		SystemPrompt: s.SystemPrompt(),
	})
}
