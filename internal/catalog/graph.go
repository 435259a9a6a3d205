package catalog

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/core/model"
	"github.com/agenthands/curriculum/internal/driver"
)

// Graph serves the catalog from a Memgraph/Neo4j mirror of the course tables.
type Graph struct {
	Driver driver.GraphDriver
}

func NewGraph(d driver.GraphDriver) *Graph {
	return &Graph{Driver: d}
}

func (g *Graph) FindCourses(ctx context.Context, identifier string, limit int) ([]model.Course, error) {
	if identifier == "" {
		return nil, apperrors.NotFound("catalog.FindCourses", nil)
	}

	params := map[string]interface{}{
		"identifier": identifier,
		"limit":      int64(limit),
	}
	result, err := g.Driver.ExecuteQuery(ctx, driver.FindCoursesQuery, params)
	if err != nil {
		return nil, apperrors.Unavailable("catalog.FindCourses", err)
	}

	courses := recordsToCourses(result.Records)
	if len(courses) == 0 {
		return nil, apperrors.NotFound("catalog.FindCourses", fmt.Errorf("%w: %q", apperrors.ErrNotFound, identifier))
	}
	return courses, nil
}

func (g *Graph) Prerequisites(ctx context.Context, courseID string) ([]model.Course, error) {
	return g.oneHop(ctx, "catalog.Prerequisites", driver.GetPrerequisitesQuery, courseID)
}

func (g *Graph) Dependents(ctx context.Context, courseID string) ([]model.Course, error) {
	return g.oneHop(ctx, "catalog.Dependents", driver.GetDependentsQuery, courseID)
}

func (g *Graph) oneHop(ctx context.Context, op, query, courseID string) ([]model.Course, error) {
	result, err := g.Driver.ExecuteQuery(ctx, query, map[string]interface{}{"course_id": courseID})
	if err != nil {
		return nil, apperrors.Unavailable(op, err)
	}
	return recordsToCourses(result.Records), nil
}

func (g *Graph) AllCourses(ctx context.Context) ([]model.Course, error) {
	result, err := g.Driver.ExecuteQuery(ctx, driver.GetAllCoursesQuery, nil)
	if err != nil {
		return nil, apperrors.Unavailable("catalog.AllCourses", err)
	}
	return recordsToCourses(result.Records), nil
}

func (g *Graph) Ping(ctx context.Context) error {
	if _, err := g.Driver.ExecuteQuery(ctx, driver.PingQuery, nil); err != nil {
		return apperrors.Unavailable("catalog.Ping", err)
	}
	return nil
}

// SaveCourse writes a course node and its program membership.
func (g *Graph) SaveCourse(ctx context.Context, c model.Course) error {
	params := map[string]interface{}{
		"id":              c.ID,
		"name":            c.Name,
		"name_vn":         c.NameVN,
		"description":     c.Description,
		"credit_theory":   int64(c.CreditTheory),
		"credit_lab":      int64(c.CreditLab),
		"course_level_id": c.LevelID,
		"program_name":    c.ProgramName,
	}
	if _, err := g.Driver.ExecuteQuery(ctx, driver.SaveCourseQuery, params); err != nil {
		return apperrors.Unavailable("catalog.SaveCourse", err)
	}
	return nil
}

func (g *Graph) SaveEdge(ctx context.Context, e model.PrerequisiteEdge) error {
	params := map[string]interface{}{
		"course_id":       e.CourseID,
		"prerequisite_id": e.PrerequisiteID,
		"type":            e.Type,
	}
	if _, err := g.Driver.ExecuteQuery(ctx, driver.SaveRequiresEdgeQuery, params); err != nil {
		return apperrors.Unavailable("catalog.SaveEdge", err)
	}
	return nil
}

func recordsToCourses(records []*neo4j.Record) []model.Course {
	courses := make([]model.Course, 0, len(records))
	for _, rec := range records {
		courses = append(courses, model.Course{
			ID:           stringValue(rec, "id"),
			Name:         stringValue(rec, "name"),
			NameVN:       stringValue(rec, "name_vn"),
			Description:  stringValue(rec, "description"),
			CreditTheory: intValue(rec, "credit_theory"),
			CreditLab:    intValue(rec, "credit_lab"),
			LevelID:      stringValue(rec, "course_level_id"),
			ProgramName:  stringValue(rec, "program_name"),
		})
	}
	return courses
}

// Missing keys and nulls read as zero values.
func stringValue(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func intValue(rec *neo4j.Record, key string) int {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
