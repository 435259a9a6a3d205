// Package retrieve implements the semantic path: embed the query, search the
// vector index and collapse hits to one per course.
package retrieve

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/core/dedupe"
	"github.com/agenthands/curriculum/internal/core/model"
	"github.com/agenthands/curriculum/internal/llm"
	"github.com/agenthands/curriculum/internal/vectorstore"
)

// DefaultOverFetch leaves room for several points sharing one course id.
const DefaultOverFetch = 3

type Engine struct {
	idx        vectorstore.Index
	emb        llm.Embedder
	collection string
	overFetch  int
	log        zerolog.Logger
}

func NewEngine(idx vectorstore.Index, emb llm.Embedder, collection string, overFetch int, log zerolog.Logger) *Engine {
	if overFetch < 1 {
		overFetch = DefaultOverFetch
	}
	return &Engine{
		idx:        idx,
		emb:        emb,
		collection: collection,
		overFetch:  overFetch,
		log:        log,
	}
}

// Retrieve returns at most topK results with distinct course ids, best
// score first. Fewer than topK, including none, is not an error.
func (e *Engine) Retrieve(ctx context.Context, query string, topK int) ([]model.RetrievalResult, error) {
	if topK < 1 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	vector, err := e.emb.Embed(ctx, query)
	if err != nil {
		return nil, apperrors.Unavailable("retrieve.Embed", err)
	}

	hits, err := e.idx.Search(ctx, e.collection, vector, topK*e.overFetch)
	if err != nil {
		return nil, apperrors.Unavailable("retrieve.Search", err)
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	results := make([]model.RetrievalResult, 0, len(hits))
	for _, h := range hits {
		payload, err := model.DecodePayload(h.Payload)
		if err != nil {
			e.log.Warn().Err(err).Uint64("point_id", h.ID).Msg("skipping hit with invalid payload")
			continue
		}
		results = append(results, model.FromPayload(payload, h.Score))
	}

	unique := dedupe.ByKey(results, topK)
	e.log.Debug().
		Int("hits", len(hits)).
		Int("unique", len(unique)).
		Int("top_k", topK).
		Msg("Vector retrieval complete")
	return unique, nil
}
