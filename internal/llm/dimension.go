package llm

import (
	"context"
	"fmt"
	"io"

	"github.com/agenthands/curriculum/internal/apperrors"
)

type dimensionEmbedder struct {
	Embedder
	dim int
}

// WithDimension rejects any embedding whose length is not dim.
func WithDimension(e Embedder, dim int) Embedder {
	return &dimensionEmbedder{Embedder: e, dim: dim}
}

func (d *dimensionEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := d.Embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) != d.dim {
		return nil, fmt.Errorf("%w: expected %d, got %d", apperrors.ErrDimensionMismatch, d.dim, len(vec))
	}
	return vec, nil
}

func (d *dimensionEmbedder) Close() error {
	if c, ok := d.Embedder.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
