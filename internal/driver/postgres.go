package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
	"github.com/rs/zerolog"

	"github.com/agenthands/curriculum/internal/config"
)

// PostgresDriver owns the pool shared by the catalog and the pgvector index.
type PostgresDriver struct {
	*pgxpool.Pool
}

type PostgresOptions struct {
	// RegisterVector ensures the vector extension exists and loads the
	// pgvector codec on every connection.
	RegisterVector bool
}

func NewPostgresDriver(ctx context.Context, cfg config.PostgresConfig, opts PostgresOptions, log zerolog.Logger) (*PostgresDriver, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.ConnLifetime != "" {
		lifetime, err := time.ParseDuration(cfg.ConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse connection lifetime: %w", err)
		}
		poolConfig.MaxConnLifetime = lifetime
	}

	if opts.RegisterVector {
		poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			if _, err := conn.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
				return fmt.Errorf("failed to create vector extension: %w", err)
			}
			return pgxvec.RegisterTypes(ctx, conn)
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	log.Info().Int32("max_conns", poolConfig.MaxConns).Msg("Connected to Postgres")
	return &PostgresDriver{Pool: pool}, nil
}

func (d *PostgresDriver) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
}
