package llm

import (
	"context"
)

// Generator produces a completion for a system and user prompt pair.
type Generator interface {
	Generate(ctx context.Context, system, user string, maxTokens int) (string, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
