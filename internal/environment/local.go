package environment

import (
	"context"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// LocalEnvironment is the built-in heuristic environment: it echoes the
// input unchanged. Aspects bound to it use their local transforms.
type LocalEnvironment struct{}

// NewLocalEnvironment creates a local echo environment.
func NewLocalEnvironment() *LocalEnvironment {
	return &LocalEnvironment{}
}

// Name returns the environment identifier.
func (e *LocalEnvironment) Name() string {
	return "Local"
}

// IsLocal reports true.
func (e *LocalEnvironment) IsLocal() bool {
	return true
}

// Process returns the input unchanged.
func (e *LocalEnvironment) Process(_ context.Context, input string, _ Context) (string, error) {
	return input, nil
}

// SupportsStreaming reports false.
func (e *LocalEnvironment) SupportsStreaming() bool {
	return false
}

// Stream is not supported by the local environment.
func (e *LocalEnvironment) Stream(context.Context, string, Context) (<-chan string, error) {
	return nil, domain.NewDomainError(
		domain.ErrCodeInvalidState,
		"local environment does not support streaming",
		nil,
	)
}
