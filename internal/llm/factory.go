package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/curriculum/internal/config"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	groqBaseURL       = "https://api.groq.com/openai/v1"
	ollamaBaseURL     = "http://localhost:11434"
)

func NewGenerator(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai", "openrouter", "groq", "ollama":
		apiKey, baseURL := openAICompatible(provider, cfg.APIKey, cfg.BaseURL)
		return NewOpenAIClient(apiKey, cfg.Model, baseURL).WithTemperature(cfg.Temperature), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Temperature), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

// NewEmbedder returns an embedder that enforces cfg.Dimension.
func NewEmbedder(ctx context.Context, cfg config.EmbeddingConfig) (Embedder, error) {
	provider := strings.ToLower(cfg.Provider)

	var e Embedder
	switch provider {
	case "openai":
		apiKey, baseURL := openAICompatible(provider, cfg.APIKey, cfg.BaseURL)
		e = NewOpenAIClient(apiKey, cfg.Model, baseURL).WithDimensions(cfg.Dimension)

	case "openrouter", "ollama":
		apiKey, baseURL := openAICompatible(provider, cfg.APIKey, cfg.BaseURL)
		e = NewOpenAIClient(apiKey, cfg.Model, baseURL)

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, 0)
		if err != nil {
			return nil, err
		}
		e = c

	case "claude", "groq":
		return nil, fmt.Errorf("provider %s does not support embeddings", provider)

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}

	return WithDimension(e, cfg.Dimension), nil
}

func openAICompatible(provider, apiKey, baseURL string) (string, string) {
	switch provider {
	case "openrouter":
		if baseURL == "" {
			baseURL = openRouterBaseURL
		}
	case "groq":
		if baseURL == "" {
			baseURL = groqBaseURL
		}
	case "ollama":
		// Ollama ignores the key but the client requires one.
		if apiKey == "" {
			apiKey = "ollama"
		}
		if baseURL == "" {
			baseURL = ollamaBaseURL
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
	}
	return apiKey, baseURL
}
