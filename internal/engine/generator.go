package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Generator is the opaque text-completion capability behind both engine
// variants. maxTokens is a hint; zero means no limit.
type Generator interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// OpenAIGenerator issues one chat completion per call.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float64
}

func NewOpenAIGenerator(apiKey string, model string, temperature float64) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
	}
}

func (g *OpenAIGenerator) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: float32(g.temperature),
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
