package openai

import (
	"context"
	"errors"
	"strings"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	apperrors "github.com/formbricks/answers/internal/errors"
)

// ErrNoCompletionInResponse is returned when the API response contains no choices.
var ErrNoCompletionInResponse = errors.New("openai: no completion in response")

const defaultChatModel = openaisdk.ChatModelGPT4oMini

// ChatClient calls the OpenAI chat completions API via the official SDK.
type ChatClient struct {
	sdk   openaisdk.Client
	model openaisdk.ChatModel
}

// ChatClientOption configures the ChatClient.
type ChatClientOption func(*ChatClient)

// WithChatModel sets the chat model name. Empty keeps the default.
func WithChatModel(model string) ChatClientOption {
	return func(c *ChatClient) {
		if model != "" {
			c.model = openaisdk.ChatModel(model)
		}
	}
}

// NewChatClient creates an OpenAI chat completions client using the official SDK.
func NewChatClient(apiKey string, opts ...ChatClientOption) *ChatClient {
	client := &ChatClient{
		sdk:   openaisdk.NewClient(option.WithAPIKey(apiKey)),
		model: defaultChatModel,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// CreateChatCompletion sends a system instruction and a user message and
// returns the generated text. Whitespace-only completions are returned as
// empty strings so callers can substitute their own fallback sentence.
func (c *ChatClient) CreateChatCompletion(ctx context.Context, system, user string) (string, error) {
	resp, err := c.sdk.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(system),
			openaisdk.UserMessage(user),
		},
	})
	if err != nil {
		return "", apperrors.NewProviderUnavailableError("openai", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoCompletionInResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
