// Package resolve turns a course identifier into a catalog row and walks one
// prerequisite edge from it.
package resolve

import (
	"context"
	"sort"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/catalog"
	"github.com/agenthands/curriculum/internal/core/dedupe"
	"github.com/agenthands/curriculum/internal/core/model"
)

const DefaultMatchLimit = 5

type Resolver struct {
	cat   catalog.Catalog
	limit int
}

func NewResolver(cat catalog.Catalog, matchLimit int) *Resolver {
	if matchLimit < 1 {
		matchLimit = DefaultMatchLimit
	}
	return &Resolver{cat: cat, limit: matchLimit}
}

// Resolve returns the first of up to matchLimit substring matches. Other
// candidates are ignored.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (model.Course, error) {
	if identifier == "" {
		return model.Course{}, apperrors.NotFound("resolve.Resolve", nil)
	}

	candidates, err := r.cat.FindCourses(ctx, identifier, r.limit)
	if err != nil {
		return model.Course{}, err
	}
	if len(candidates) == 0 {
		return model.Course{}, apperrors.NotFound("resolve.Resolve", nil)
	}
	return candidates[0], nil
}

func (r *Resolver) PrerequisitesOf(ctx context.Context, courseID string) ([]model.Course, error) {
	courses, err := r.cat.Prerequisites(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return normalize(courseID, courses), nil
}

func (r *Resolver) DependentsOf(ctx context.Context, courseID string) ([]model.Course, error) {
	courses, err := r.cat.Dependents(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return normalize(courseID, courses), nil
}

// normalize enforces the one-hop contract regardless of backend: no self
// loops, one row per id, ascending id.
func normalize(self string, courses []model.Course) []model.Course {
	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if c.ID != self {
			out = append(out, c)
		}
	}
	out = dedupe.ByKey(out, 0)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
