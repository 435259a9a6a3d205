// Package bootstrap opens the stores and clients named in the config. The
// returned Deps owns every connection until Close.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agenthands/curriculum/internal/catalog"
	"github.com/agenthands/curriculum/internal/config"
	"github.com/agenthands/curriculum/internal/core"
	"github.com/agenthands/curriculum/internal/driver"
	"github.com/agenthands/curriculum/internal/llm"
	"github.com/agenthands/curriculum/internal/vectorstore"
)

// Needs selects optional components. The catalog, vector index and embedder
// are always opened.
type Needs struct {
	Generator bool
	// Graph opens Memgraph even when the catalog backend is postgres, for
	// mirroring.
	Graph bool
}

type Deps struct {
	Catalog   catalog.Catalog
	Index     vectorstore.Index
	Embedder  llm.Embedder
	Generator llm.Generator

	Postgres *driver.PostgresDriver
	Memgraph *driver.MemgraphDriver

	closers []func(context.Context)
	log     zerolog.Logger
}

func Build(ctx context.Context, cfg *config.Config, needs Needs, log zerolog.Logger) (*Deps, error) {
	d := &Deps{log: log}
	if err := d.build(ctx, cfg, needs); err != nil {
		d.Close(ctx)
		return nil, err
	}
	return d, nil
}

func (d *Deps) build(ctx context.Context, cfg *config.Config, needs Needs) error {
	usePostgres := cfg.Catalog.Backend == "postgres" || cfg.Vector.Backend == "pgvector" || needs.Graph
	useGraph := cfg.Catalog.Backend == "graph" || needs.Graph

	if usePostgres {
		pg, err := driver.NewPostgresDriver(ctx, cfg.Postgres, driver.PostgresOptions{
			RegisterVector: cfg.Vector.Backend == "pgvector",
		}, d.log)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		d.Postgres = pg
		d.closers = append(d.closers, func(context.Context) { pg.Close() })
	}

	if useGraph {
		mg, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph, d.log)
		if err != nil {
			return fmt.Errorf("memgraph: %w", err)
		}
		d.Memgraph = mg
		d.closers = append(d.closers, func(ctx context.Context) {
			if err := mg.Close(ctx); err != nil {
				d.log.Warn().Err(err).Msg("failed to close memgraph driver")
			}
		})
	}

	switch cfg.Catalog.Backend {
	case "graph":
		d.Catalog = catalog.NewGraph(d.Memgraph)
	default:
		pc, err := catalog.NewPostgres(d.Postgres, cfg.Catalog.EdgeTable)
		if err != nil {
			return err
		}
		d.Catalog = pc
	}

	idx, err := newIndex(cfg, d.Postgres, d.log)
	if err != nil {
		return err
	}
	d.Index = idx
	d.closers = append(d.closers, func(context.Context) {
		if err := idx.Close(); err != nil {
			d.log.Warn().Err(err).Msg("failed to close vector index")
		}
	})

	emb, err := llm.NewEmbedder(ctx, cfg.Embedding)
	if err != nil {
		return fmt.Errorf("embedder: %w", err)
	}
	d.Embedder = emb
	d.addCloser(emb)

	if needs.Generator {
		gen, err := llm.NewGenerator(ctx, cfg.LLM)
		if err != nil {
			return fmt.Errorf("generator: %w", err)
		}
		d.Generator = gen
		d.addCloser(gen)
	}
	return nil
}

func newIndex(cfg *config.Config, pg *driver.PostgresDriver, log zerolog.Logger) (vectorstore.Index, error) {
	dim := cfg.Embedding.Dimension
	switch cfg.Vector.Backend {
	case "pgvector":
		return vectorstore.NewPGVector(pg, dim, log), nil
	case "bolt":
		return vectorstore.NewBolt(cfg.Vector.BoltPath, dim, log)
	default:
		return vectorstore.NewQdrant(cfg.Vector.Qdrant, dim, log)
	}
}

// Gemini clients hold a gRPC connection; the OpenAI and Claude clients do not.
func (d *Deps) addCloser(v any) {
	if c, ok := v.(io.Closer); ok {
		d.closers = append(d.closers, func(context.Context) { _ = c.Close() })
	}
}

// Router assembles the query router over the opened dependencies.
func (d *Deps) Router(cfg *config.Config) *core.Router {
	return core.NewRouter(d.Catalog, d.Index, d.Embedder, d.Generator, core.OptionsFromConfig(cfg), d.log)
}

// Close releases resources in reverse order of acquisition.
func (d *Deps) Close(ctx context.Context) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i](ctx)
	}
	d.closers = nil
}
