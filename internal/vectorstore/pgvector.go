package vectorstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/core/model"
	"github.com/agenthands/curriculum/internal/driver"
)

// PGVector stores each collection as a table in the catalog database. The
// pool must have the vector types registered (driver.PostgresOptions).
type PGVector struct {
	db  driver.SQLDriver
	dim int
	log zerolog.Logger
}

func NewPGVector(db driver.SQLDriver, dim int, log zerolog.Logger) *PGVector {
	return &PGVector{db: db, dim: dim, log: log}
}

func tableName(collection string) string {
	return pgx.Identifier{collection + "_embeddings"}.Sanitize()
}

func (p *PGVector) CreateCollection(ctx context.Context, name string, dim int) error {
	table := tableName(name)
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table),
		fmt.Sprintf(`CREATE TABLE %s (
			id bigint PRIMARY KEY,
			embedding vector(%d) NOT NULL,
			payload jsonb NOT NULL
		)`, table, dim),
	}
	for _, stmt := range stmts {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return apperrors.Unavailable("vectorstore.CreateCollection", err)
		}
	}
	p.dim = dim
	p.log.Info().Str("table", table).Int("dim", dim).Msg("Created embeddings table")
	return nil
}

func (p *PGVector) Upsert(ctx context.Context, name string, points []model.EmbeddingPoint) error {
	if err := checkPoints(p.dim, points); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, embedding, payload) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET embedding = EXCLUDED.embedding, payload = EXCLUDED.payload`,
		tableName(name))

	for _, pt := range points {
		if _, err := p.db.Exec(ctx, query, int64(pt.ID), pgvector.NewVector(pt.Vector), pt.Payload.Map()); err != nil {
			return apperrors.Unavailable("vectorstore.Upsert", err)
		}
	}
	return nil
}

func (p *PGVector) Search(ctx context.Context, name string, vector []float32, limit int) ([]Hit, error) {
	if err := checkDimension(p.dim, vector); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, 1 - (embedding <=> $1) AS score, payload
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`, tableName(name))

	rows, err := p.db.Query(ctx, query, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, apperrors.Unavailable("vectorstore.Search", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			id      int64
			score   float64
			payload map[string]any
		)
		if err := rows.Scan(&id, &score, &payload); err != nil {
			return nil, apperrors.Unavailable("vectorstore.Search", err)
		}
		hits = append(hits, Hit{ID: uint64(id), Score: float32(score), Payload: payload})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Unavailable("vectorstore.Search", err)
	}
	return hits, nil
}

func (p *PGVector) Count(ctx context.Context, name string) (uint64, error) {
	var n int64
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, tableName(name))
	if err := p.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, apperrors.Unavailable("vectorstore.Count", err)
	}
	return uint64(n), nil
}

// Close is a no-op; the pool belongs to the catalog.
func (p *PGVector) Close() error {
	return nil
}
