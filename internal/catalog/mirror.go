package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// MirrorStats counts what Mirror wrote.
type MirrorStats struct {
	Courses   int
	Edges     int
	SelfLoops int
}

// Mirror copies courses and edges from a relational catalog into the graph
// so Graph can serve the same reads.
func Mirror(ctx context.Context, src interface {
	Catalog
	EdgeSource
}, dst *Graph, log zerolog.Logger) (MirrorStats, error) {
	var stats MirrorStats

	if err := dst.Driver.BuildIndices(ctx); err != nil {
		return stats, fmt.Errorf("failed to build graph indices: %w", err)
	}

	courses, err := src.AllCourses(ctx)
	if err != nil {
		return stats, err
	}
	for _, c := range courses {
		if err := dst.SaveCourse(ctx, c); err != nil {
			return stats, err
		}
		stats.Courses++
	}

	edges, err := src.AllEdges(ctx)
	if err != nil {
		return stats, err
	}
	for _, e := range edges {
		if e.IsSelfLoop() {
			stats.SelfLoops++
			log.Warn().Str("course_id", e.CourseID).Msg("skipping self-loop prerequisite edge")
			continue
		}
		if err := dst.SaveEdge(ctx, e); err != nil {
			return stats, err
		}
		stats.Edges++
	}

	log.Info().Int("courses", stats.Courses).Int("edges", stats.Edges).Msg("Mirrored catalog into graph")
	return stats, nil
}
