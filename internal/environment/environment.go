// Package environment defines the external text-generation port
// consumed by aspects, plus the built-in local echo and the
// OpenAI-compatible adapter.
package environment

import (
	"context"
)

// Message is one turn of conversation history handed to an environment.
type Message struct {
	Role    string
	Content string
}

// Context carries the per-call prompt context: which aspect is asking,
// its system prompt, optional history and free-form parameters.
type Context struct {
	AspectID     string
	SystemPrompt string
	History      []Message
	Parameters   map[string]any
}

// Environment is the pluggable text-generation capability. Aspects
// detect local environments through IsLocal and route to their local
// transforms instead of calling Process.
type Environment interface {
	// Name returns a short environment identifier.
	Name() string

	// IsLocal reports whether the environment is a local heuristic
	// rather than an external generator.
	IsLocal() bool

	// Process generates text for the given input.
	Process(ctx context.Context, input string, pctx Context) (string, error)

	// SupportsStreaming reports whether Stream is available.
	SupportsStreaming() bool

	// Stream generates text incrementally. Implementations without
	// streaming support return an error.
	Stream(ctx context.Context, input string, pctx Context) (<-chan string, error)
}
