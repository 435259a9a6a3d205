package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

// ClaudeClient only generates; Anthropic has no embeddings endpoint.
type ClaudeClient struct {
	client      *anthropic.Client
	model       string
	temperature float32
}

func NewClaudeClient(apiKey string, model string, baseURL string, temperature float32) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	return &ClaudeClient{
		client:      anthropic.NewClient(apiKey, opts...),
		model:       model,
		temperature: temperature,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, system, user string, maxTokens int) (string, error) {
	temperature := c.temperature
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(c.model),
		System: system,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(user),
		},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return *resp.Content[0].Text, nil
	}
	return "", fmt.Errorf("no response content")
}
