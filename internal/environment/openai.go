package environment

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/PMeeske/hypergrid/internal/domain"
)

// OpenAIConfig configures the OpenAI-compatible environment.
type OpenAIConfig struct {
	// APIKey authenticates against the provider.
	APIKey string
	// BaseURL overrides the API endpoint; any OpenAI-compatible
	// provider works. Empty means the official endpoint.
	BaseURL string
	// Model is the chat model to use.
	Model string
	// Temperature is passed through to the provider.
	Temperature float32
}

// OpenAIEnvironment generates text through an OpenAI-compatible chat
// completion API.
type OpenAIEnvironment struct {
	client *openai.Client
	model  string
	temp   float32
}

// NewOpenAIEnvironment creates an environment from config.
func NewOpenAIEnvironment(cfg OpenAIConfig) (*OpenAIEnvironment, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewDomainError(
			domain.ErrCodeInvalidInput,
			"api key is required for the OpenAI environment",
			nil,
		)
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4o
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIEnvironment{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		temp:   cfg.Temperature,
	}, nil
}

// Name returns the environment identifier.
func (e *OpenAIEnvironment) Name() string {
	return "OpenAI"
}

// IsLocal reports false.
func (e *OpenAIEnvironment) IsLocal() bool {
	return false
}

// Process sends the aspect's system prompt, history and input to the
// chat completion endpoint and returns the generated text.
func (e *OpenAIEnvironment) Process(ctx context.Context, input string, pctx Context) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temp,
		Messages:    BuildMessages(input, pctx),
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapProviderErr(ctx, pctx.AspectID, err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewDomainError(
			domain.ErrCodeExternal,
			"provider returned no choices",
			nil,
		)
	}
	return resp.Choices[0].Message.Content, nil
}

// SupportsStreaming reports true.
func (e *OpenAIEnvironment) SupportsStreaming() bool {
	return true
}

// Stream sends the same request as Process and forwards content deltas
// as they arrive. The channel is closed when the completion finishes,
// fails, or ctx is cancelled.
func (e *OpenAIEnvironment) Stream(ctx context.Context, input string, pctx Context) (<-chan string, error) {
	req := openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temp,
		Messages:    BuildMessages(input, pctx),
		Stream:      true,
	}

	s, err := e.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, wrapProviderErr(ctx, pctx.AspectID, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer s.Close()
		for {
			resp, err := s.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				log.Warn().Err(err).Str("aspect_id", pctx.AspectID).Msg("completion stream interrupted")
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			select {
			case out <- resp.Choices[0].Delta.Content:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// BuildMessages assembles the chat message list: system prompt first,
// then history, then the input as the user turn.
func BuildMessages(input string, pctx Context) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(pctx.History)+2)
	if pctx.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: pctx.SystemPrompt,
		})
	}
	for _, m := range pctx.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: input,
	})
	return messages
}

func wrapProviderErr(ctx context.Context, aspectID string, err error) error {
	if ctx.Err() != nil {
		return domain.NewDomainError(domain.ErrCodeCancelled, "environment call cancelled", ctx.Err())
	}
	log.Error().Err(err).Str("aspect_id", aspectID).Msg("environment request failed")
	return domain.NewDomainError(domain.ErrCodeExternal, "environment request failed", err)
}
