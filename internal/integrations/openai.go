package integrations

import (
	"context"
	"fmt"

	"github.com/Lazycharm/Careerpilot-sub001/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient generates text through the OpenAI chat completion API
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(cfg config.AIConfig) *OpenAIClient {
	return &OpenAIClient{
		client:    openai.NewClient(cfg.OpenAIAPIKey),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Complete sends a system and user prompt and returns the first choice
func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
