package core

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/core/model"
	"github.com/agenthands/curriculum/internal/vectorstore"
)

// MockCatalog is an in-memory course store. Edges map a course to the
// courses it requires.
type MockCatalog struct {
	Courses []model.Course
	Edges   map[string][]string
	Err     error
}

func (m *MockCatalog) byID(id string) (model.Course, bool) {
	for _, c := range m.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return model.Course{}, false
}

func (m *MockCatalog) FindCourses(ctx context.Context, identifier string, limit int) ([]model.Course, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []model.Course
	for _, c := range m.Courses {
		if contains(c.ID, identifier) || contains(c.Name, identifier) || contains(c.NameVN, identifier) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.NotFound("mock.FindCourses", nil)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockCatalog) Prerequisites(ctx context.Context, courseID string) ([]model.Course, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []model.Course{}
	for _, id := range m.Edges[courseID] {
		if c, ok := m.byID(id); ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCatalog) Dependents(ctx context.Context, courseID string) ([]model.Course, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []model.Course{}
	for from, reqs := range m.Edges {
		for _, id := range reqs {
			if id == courseID {
				if c, ok := m.byID(from); ok {
					out = append(out, c)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockCatalog) AllCourses(ctx context.Context) ([]model.Course, error) {
	return m.Courses, m.Err
}

func (m *MockCatalog) Ping(ctx context.Context) error {
	return m.Err
}

func contains(s, sub string) bool {
	return sub != "" && strings.Contains(s, sub)
}

type MockIndex struct {
	Hits     []vectorstore.Hit
	Err      error
	Searches int
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
	m.Searches++
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Hits) > limit {
		return m.Hits[:limit], nil
	}
	return m.Hits, nil
}

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

type MockLLM struct {
	Response string
	Err      error

	Calls      int
	LastSystem string
	LastUser   string
	LastMax    int
}

func (m *MockLLM) Generate(ctx context.Context, system, user string, maxTokens int) (string, error) {
	m.Calls++
	m.LastSystem = system
	m.LastUser = user
	m.LastMax = maxTokens
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connection refused")
