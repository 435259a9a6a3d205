package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/core/model"
)

type MockCatalog struct {
	Matches []model.Course
	Prereqs []model.Course
	Deps    []model.Course
	Err     error

	LastIdentifier string
	LastLimit      int
}

func (m *MockCatalog) FindCourses(ctx context.Context, identifier string, limit int) ([]model.Course, error) {
	m.LastIdentifier = identifier
	m.LastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Matches) == 0 {
		return nil, apperrors.NotFound("mock.FindCourses", nil)
	}
	return m.Matches, nil
}

func (m *MockCatalog) Prerequisites(ctx context.Context, courseID string) ([]model.Course, error) {
	return m.Prereqs, m.Err
}

func (m *MockCatalog) Dependents(ctx context.Context, courseID string) ([]model.Course, error) {
	return m.Deps, m.Err
}

func (m *MockCatalog) AllCourses(ctx context.Context) ([]model.Course, error) {
	return nil, nil
}

func (m *MockCatalog) Ping(ctx context.Context) error {
	return m.Err
}

func TestResolve_FirstCandidateWins(t *testing.T) {
	cat := &MockCatalog{Matches: []model.Course{
		{ID: "IT013", Name: "Algorithms"},
		{ID: "IT079", Name: "Algorithms and Data Structures"},
	}}
	r := NewResolver(cat, 0)

	c, err := r.Resolve(context.Background(), "Algorithms")
	require.NoError(t, err)
	assert.Equal(t, "IT013", c.ID)
	assert.Equal(t, DefaultMatchLimit, cat.LastLimit)
}

func TestResolve_NotFound(t *testing.T) {
	r := NewResolver(&MockCatalog{}, 5)

	_, err := r.Resolve(context.Background(), "XYZ999")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResolve_EmptyIdentifier(t *testing.T) {
	cat := &MockCatalog{Matches: []model.Course{{ID: "IT079"}}}
	r := NewResolver(cat, 5)

	_, err := r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, cat.LastIdentifier)
}

func TestResolve_Unavailable(t *testing.T) {
	r := NewResolver(&MockCatalog{Err: apperrors.Unavailable("mock", errors.New("dial tcp"))}, 5)

	_, err := r.Resolve(context.Background(), "IT079")
	assert.Equal(t, apperrors.KindUpstreamUnavailable, apperrors.KindOf(err))
}

func TestPrerequisitesOf_Normalizes(t *testing.T) {
	cat := &MockCatalog{Prereqs: []model.Course{
		{ID: "IT090"},
		{ID: "IT079"},
		{ID: "IT013"},
		{ID: "IT090"},
	}}
	r := NewResolver(cat, 5)

	got, err := r.PrerequisitesOf(context.Background(), "IT079")
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"IT013", "IT090"}, ids)
}

func TestDependentsOf_Empty(t *testing.T) {
	r := NewResolver(&MockCatalog{}, 5)

	got, err := r.DependentsOf(context.Background(), "IT079")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
