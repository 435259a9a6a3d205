package catalog

import (
	"context"

	"github.com/agenthands/curriculum/internal/core/model"
)

// Catalog is the read side of the relational course store.
//
// Prerequisites and Dependents follow exactly one edge in their direction,
// return distinct courses ordered by id ascending, and return an empty slice
// (not an error) for a course without edges.
type Catalog interface {
	FindCourses(ctx context.Context, identifier string, limit int) ([]model.Course, error)
	Prerequisites(ctx context.Context, courseID string) ([]model.Course, error)
	Dependents(ctx context.Context, courseID string) ([]model.Course, error)
	// AllCourses returns one row per course and program pair, so a course in
	// several programs appears several times.
	AllCourses(ctx context.Context) ([]model.Course, error)
	Ping(ctx context.Context) error
}

// EdgeSource is implemented by catalogs that can list their raw edges.
type EdgeSource interface {
	AllEdges(ctx context.Context) ([]model.PrerequisiteEdge, error)
}
