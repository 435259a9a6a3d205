// Package vectorstore keeps course embeddings and answers nearest-neighbour
// queries over them. Every backend scores by cosine similarity.
package vectorstore

import (
	"context"
	"fmt"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/core/model"
)

type Index interface {
	// CreateCollection drops any existing collection of that name first.
	CreateCollection(ctx context.Context, name string, dim int) error
	Upsert(ctx context.Context, name string, points []model.EmbeddingPoint) error
	// Search returns at most limit hits ordered by descending score.
	Search(ctx context.Context, name string, vector []float32, limit int) ([]Hit, error)
	Count(ctx context.Context, name string) (uint64, error)
	Close() error
}

// Hit is a raw search result. Payload is undecoded; see model.DecodePayload.
type Hit struct {
	ID      uint64
	Score   float32
	Payload map[string]any
}

func checkDimension(want int, vector []float32) error {
	if len(vector) != want {
		return fmt.Errorf("%w: expected %d, got %d", apperrors.ErrDimensionMismatch, want, len(vector))
	}
	return nil
}

func checkPoints(want int, points []model.EmbeddingPoint) error {
	for _, p := range points {
		if err := checkDimension(want, p.Vector); err != nil {
			return fmt.Errorf("point %d: %w", p.ID, err)
		}
	}
	return nil
}
