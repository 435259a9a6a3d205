// Package indexer rebuilds the course vector collection from the catalog.
package indexer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/curriculum/internal/catalog"
	"github.com/agenthands/curriculum/internal/config"
	"github.com/agenthands/curriculum/internal/core/assemble"
	"github.com/agenthands/curriculum/internal/core/model"
	"github.com/agenthands/curriculum/internal/llm"
	"github.com/agenthands/curriculum/internal/vectorstore"
)

const (
	minTextLen         = 10
	maxEmbedDescLen    = 500
	maxPayloadDescLen  = 200
	maxPayloadTextLen  = 500
	defaultConcurrency = 4
)

type Stats struct {
	Courses       int    `json:"courses"`
	Indexed       int    `json:"indexed"`
	Skipped       int    `json:"skipped"`
	Failed        int    `json:"failed"`
	PointsInIndex uint64 `json:"points_in_index"`
}

type Indexer struct {
	cat        catalog.Catalog
	idx        vectorstore.Index
	emb        llm.Embedder
	collection string
	dim        int
	cfg        config.IndexerConfig
	log        zerolog.Logger
}

func New(cat catalog.Catalog, idx vectorstore.Index, emb llm.Embedder, collection string, dim int, cfg config.IndexerConfig, log zerolog.Logger) *Indexer {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 100
	}
	return &Indexer{
		cat:        cat,
		idx:        idx,
		emb:        emb,
		collection: collection,
		dim:        dim,
		cfg:        cfg,
		log:        log,
	}
}

// Run drops and recreates the collection, then embeds every catalog row.
// A course that fails to embed is counted and skipped; store errors abort.
func (ix *Indexer) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	courses, err := ix.cat.AllCourses(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to load courses: %w", err)
	}
	if ix.cfg.Limit > 0 && len(courses) > ix.cfg.Limit {
		courses = courses[:ix.cfg.Limit]
	}
	stats.Courses = len(courses)
	ix.log.Info().Int("courses", stats.Courses).Msg("Loaded courses from catalog")

	if err := ix.idx.CreateCollection(ctx, ix.collection, ix.dim); err != nil {
		return stats, fmt.Errorf("failed to create collection: %w", err)
	}

	points := make([]*model.EmbeddingPoint, len(courses))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.cfg.Concurrency)

	for i, c := range courses {
		text := CourseText(c)
		if utf8.RuneCountInString(text) < minTextLen {
			stats.Skipped++
			continue
		}

		g.Go(func() error {
			vec, err := ix.emb.Embed(gctx, text)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				ix.log.Warn().Err(err).Str("course_id", c.ID).Msg("failed to embed course")
				mu.Lock()
				stats.Failed++
				mu.Unlock()
				return nil
			}
			points[i] = &model.EmbeddingPoint{
				ID:      uint64(i),
				Vector:  vec,
				Payload: Payload(c, text),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	batch := make([]model.EmbeddingPoint, 0, ix.cfg.BatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := ix.idx.Upsert(ctx, ix.collection, batch); err != nil {
			return fmt.Errorf("failed to upsert batch: %w", err)
		}
		stats.Indexed += len(batch)
		ix.log.Info().Int("uploaded", stats.Indexed).Int("total", stats.Courses).Msg("Uploaded batch")
		batch = batch[:0]
		return nil
	}

	for _, p := range points {
		if p == nil {
			continue
		}
		batch = append(batch, *p)
		if len(batch) >= ix.cfg.BatchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}

	n, err := ix.idx.Count(ctx, ix.collection)
	if err != nil {
		return stats, fmt.Errorf("failed to count points: %w", err)
	}
	stats.PointsInIndex = n

	ix.log.Info().
		Int("indexed", stats.Indexed).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Uint64("points", stats.PointsInIndex).
		Msg("Indexing complete")
	return stats, nil
}

// CourseText is the string that gets embedded for a course row.
func CourseText(c model.Course) string {
	var parts []string

	if c.ID != "" && c.Name != "" {
		parts = append(parts, fmt.Sprintf("Course %s: %s", c.ID, c.Name))
	}
	if c.NameVN != "" {
		parts = append(parts, "Vietnamese: "+c.NameVN)
	}
	if c.Description != "" {
		desc, _ := assemble.Clip(c.Description, maxEmbedDescLen)
		parts = append(parts, "Description: "+desc)
	}
	if total := c.TotalCredits(); total > 0 {
		parts = append(parts, fmt.Sprintf("Credits: %d (%d theory + %d lab)", total, c.CreditTheory, c.CreditLab))
	}
	if c.ProgramName != "" {
		parts = append(parts, "Program: "+c.ProgramName)
	}

	return strings.Join(parts, ". ")
}

func Payload(c model.Course, text string) model.PointPayload {
	desc, _ := assemble.Clip(c.Description, maxPayloadDescLen)
	clipped, _ := assemble.Clip(text, maxPayloadTextLen)
	return model.PointPayload{
		CourseID:      c.ID,
		CourseName:    c.Name,
		NameVN:        c.NameVN,
		Description:   desc,
		CreditsTheory: c.CreditTheory,
		CreditsLab:    c.CreditLab,
		Program:       c.ProgramName,
		Text:          clipped,
	}
}
