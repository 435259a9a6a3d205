package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/core/model"
	"github.com/agenthands/curriculum/internal/driver"
)

type Postgres struct {
	db    driver.SQLDriver
	edges driver.EdgeQueries
}

func NewPostgres(db driver.SQLDriver, edgeTable string) (*Postgres, error) {
	edges, ok := driver.EdgeTables[edgeTable]
	if !ok {
		return nil, fmt.Errorf("unsupported edge table: %q", edgeTable)
	}
	return &Postgres{db: db, edges: edges}, nil
}

func (p *Postgres) FindCourses(ctx context.Context, identifier string, limit int) ([]model.Course, error) {
	if identifier == "" {
		return nil, apperrors.NotFound("catalog.FindCourses", nil)
	}

	rows, err := p.db.Query(ctx, driver.FindCoursesSQL, identifier, limit)
	if err != nil {
		return nil, apperrors.Unavailable("catalog.FindCourses", err)
	}
	courses, err := scanCourses(rows, false)
	if err != nil {
		return nil, apperrors.Unavailable("catalog.FindCourses", err)
	}
	if len(courses) == 0 {
		return nil, apperrors.NotFound("catalog.FindCourses", fmt.Errorf("%w: %q", apperrors.ErrNotFound, identifier))
	}
	return courses, nil
}

func (p *Postgres) Prerequisites(ctx context.Context, courseID string) ([]model.Course, error) {
	return p.oneHop(ctx, "catalog.Prerequisites", p.edges.Prerequisites, courseID)
}

func (p *Postgres) Dependents(ctx context.Context, courseID string) ([]model.Course, error) {
	return p.oneHop(ctx, "catalog.Dependents", p.edges.Dependents, courseID)
}

func (p *Postgres) oneHop(ctx context.Context, op, query, courseID string) ([]model.Course, error) {
	rows, err := p.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, apperrors.Unavailable(op, err)
	}
	courses, err := scanCourses(rows, false)
	if err != nil {
		return nil, apperrors.Unavailable(op, err)
	}
	return courses, nil
}

func (p *Postgres) AllCourses(ctx context.Context) ([]model.Course, error) {
	rows, err := p.db.Query(ctx, driver.AllCoursesSQL)
	if err != nil {
		return nil, apperrors.Unavailable("catalog.AllCourses", err)
	}
	courses, err := scanCourses(rows, true)
	if err != nil {
		return nil, apperrors.Unavailable("catalog.AllCourses", err)
	}
	return courses, nil
}

func (p *Postgres) AllEdges(ctx context.Context) ([]model.PrerequisiteEdge, error) {
	rows, err := p.db.Query(ctx, p.edges.AllEdges)
	if err != nil {
		return nil, apperrors.Unavailable("catalog.AllEdges", err)
	}
	defer rows.Close()

	var edges []model.PrerequisiteEdge
	for rows.Next() {
		var e model.PrerequisiteEdge
		if err := rows.Scan(&e.CourseID, &e.PrerequisiteID, &e.Type); err != nil {
			return nil, apperrors.Unavailable("catalog.AllEdges", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Unavailable("catalog.AllEdges", err)
	}
	return edges, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.db.Ping(ctx); err != nil {
		return apperrors.Unavailable("catalog.Ping", err)
	}
	return nil
}

func scanCourses(rows pgx.Rows, withProgram bool) ([]model.Course, error) {
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		dest := []any{&c.ID, &c.Name, &c.NameVN, &c.Description, &c.CreditTheory, &c.CreditLab, &c.LevelID}
		if withProgram {
			dest = append(dest, &c.ProgramName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}
