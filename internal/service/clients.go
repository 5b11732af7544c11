package service

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// EmbeddingClient generates embedding vectors for text.
// Implemented by provider-specific clients (e.g. OpenAI, Google Gemini).
type EmbeddingClient interface {
	CreateEmbedding(ctx context.Context, input string) ([]float32, error)
}

// ChatClient generates prose from a system instruction and a user message.
// Implemented by provider-specific clients (e.g. OpenAI chat completions).
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, system, user string) (string, error)
}

// RateLimitedEmbeddingClient wraps an EmbeddingClient with a token-bucket
// limiter so bursts of questions do not exhaust the provider quota.
type RateLimitedEmbeddingClient struct {
	inner   EmbeddingClient
	limiter *rate.Limiter
}

// NewRateLimitedEmbeddingClient creates a limiter allowing requestsPerSecond
// embedding calls with a burst of one.
func NewRateLimitedEmbeddingClient(inner EmbeddingClient, requestsPerSecond float64) *RateLimitedEmbeddingClient {
	return &RateLimitedEmbeddingClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// CreateEmbedding waits for limiter capacity, then delegates to the inner client.
func (c *RateLimitedEmbeddingClient) CreateEmbedding(ctx context.Context, input string) ([]float32, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embedding rate limit: %w", err)
	}

	return c.inner.CreateEmbedding(ctx, input)
}
