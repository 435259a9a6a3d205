package retrieve

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/core/model"
	"github.com/agenthands/curriculum/internal/vectorstore"
)

type MockEmbedder struct {
	Vector []float32
	Err    error
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}

type MockIndex struct {
	Hits      []vectorstore.Hit
	Err       error
	LastLimit int
}

func (m *MockIndex) CreateCollection(ctx context.Context, name string, dim int) error { return nil }
func (m *MockIndex) Upsert(ctx context.Context, name string, points []model.EmbeddingPoint) error {
	return nil
}
func (m *MockIndex) Count(ctx context.Context, name string) (uint64, error) {
	return uint64(len(m.Hits)), nil
}
func (m *MockIndex) Close() error { return nil }

func (m *MockIndex) Search(ctx context.Context, name string, vector []float32, limit int) ([]vectorstore.Hit, error) {
	m.LastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Hits) > limit {
		return m.Hits[:limit], nil
	}
	return m.Hits, nil
}

func hit(id uint64, courseID string, score float32) vectorstore.Hit {
	return vectorstore.Hit{
		ID:    id,
		Score: score,
		Payload: map[string]any{
			model.PayloadCourseID:   courseID,
			model.PayloadCourseName: "Course " + courseID,
		},
	}
}

func newEngine(idx *MockIndex) *Engine {
	return NewEngine(idx, &MockEmbedder{Vector: []float32{1}}, "curriculum", 0, zerolog.Nop())
}

func TestRetrieve_DedupesAndCaps(t *testing.T) {
	// 15 raw hits over 3 distinct courses.
	var hits []vectorstore.Hit
	for i := 0; i < 15; i++ {
		hits = append(hits, hit(uint64(i), fmt.Sprintf("IT%03d", i%3), 1-float32(i)*0.01))
	}
	idx := &MockIndex{Hits: hits}

	results, err := newEngine(idx).Retrieve(context.Background(), "data", 5)
	require.NoError(t, err)

	assert.Equal(t, 15, idx.LastLimit)
	require.Len(t, results, 3)
	assert.Equal(t, "IT000", results[0].CourseID)
	assert.Equal(t, "IT001", results[1].CourseID)
	assert.Equal(t, "IT002", results[2].CourseID)
}

func TestRetrieve_KeepsHighestScoringOccurrence(t *testing.T) {
	idx := &MockIndex{Hits: []vectorstore.Hit{
		hit(1, "IT079", 0.5),
		hit(2, "IT013", 0.8),
		hit(3, "IT079", 0.9),
	}}

	results, err := newEngine(idx).Retrieve(context.Background(), "graphs", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "IT079", results[0].CourseID)
	require.NotNil(t, results[0].Score)
	assert.InDelta(t, 0.9, *results[0].Score, 1e-6)
}

func TestRetrieve_StopsAtTopK(t *testing.T) {
	var hits []vectorstore.Hit
	for i := 0; i < 10; i++ {
		hits = append(hits, hit(uint64(i), fmt.Sprintf("IT%03d", i), 1-float32(i)*0.01))
	}

	results, err := newEngine(&MockIndex{Hits: hits}).Retrieve(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRetrieve_SkipsInvalidPayload(t *testing.T) {
	idx := &MockIndex{Hits: []vectorstore.Hit{
		{ID: 1, Score: 0.9, Payload: map[string]any{model.PayloadCourseName: "orphan"}},
		hit(2, "IT013", 0.8),
	}}

	results, err := newEngine(idx).Retrieve(context.Background(), "q", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "IT013", results[0].CourseID)
}

func TestRetrieve_Empty(t *testing.T) {
	results, err := newEngine(&MockIndex{}).Retrieve(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieve_Errors(t *testing.T) {
	e := NewEngine(&MockIndex{}, &MockEmbedder{Err: errors.New("ollama down")}, "c", 3, zerolog.Nop())
	_, err := e.Retrieve(context.Background(), "q", 5)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)

	_, err = newEngine(&MockIndex{Err: errors.New("qdrant down")}).Retrieve(context.Background(), "q", 5)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)

	_, err = newEngine(&MockIndex{}).Retrieve(context.Background(), "q", 0)
	assert.Error(t, err)
}
