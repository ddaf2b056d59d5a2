// Package ai implements the TextGenerator port against the OpenAI
// chat-completions API.
package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/aserikov/cryptofolio-backend/internal/domain"
)

// DefaultModel is the generation model used unless overridden
const DefaultModel = openai.GPT4oMini

// synthesisTemperature keeps the generator close to the supplied evidence
const synthesisTemperature = 0.2

// OpenAI is a single-shot chat-completions generator. Each call is bounded
// by the configured timeout; no retries.
type OpenAI struct {
	apiKey  string
	model   string
	timeout time.Duration
	client  *openai.Client
}

// NewOpenAI creates a new OpenAI generator. The key may be empty; Ready
// reports the missing credential before any call is made.
func NewOpenAI(apiKey, model string, timeout time.Duration) *OpenAI {
	if model == "" {
		model = DefaultModel
	}
	g := &OpenAI{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
	}
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
	}
	return g
}

// Ready reports whether the API key is configured
func (g *OpenAI) Ready() error {
	if g.apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set: %w", domain.ErrNotConfigured)
	}
	return nil
}

// Complete runs one generation with a system instruction and a user prompt
func (g *OpenAI) Complete(ctx context.Context, system, prompt string) (string, error) {
	if err := g.Ready(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: synthesisTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
