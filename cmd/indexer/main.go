package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/agenthands/curriculum/internal/bootstrap"
	"github.com/agenthands/curriculum/internal/catalog"
	"github.com/agenthands/curriculum/internal/config"
	"github.com/agenthands/curriculum/internal/indexer"
	"github.com/agenthands/curriculum/internal/logger"
)

func main() {
	configPath := flag.String("config", "config/config.toml", "path to config file (toml or yaml)")
	limit := flag.Int("limit", 0, "index at most this many catalog rows (0 = all)")
	syncGraph := flag.Bool("sync-graph", false, "mirror the postgres catalog into memgraph before indexing")
	skipIndex := flag.Bool("skip-index", false, "do not rebuild the vector collection")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *limit > 0 {
		cfg.Indexer.Limit = *limit
	}
	log := logger.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *syncGraph, *skipIndex, log); err != nil {
		log.Error().Err(err).Msg("Indexer failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, syncGraph, skipIndex bool, log zerolog.Logger) error {
	deps, err := bootstrap.Build(ctx, cfg, bootstrap.Needs{Graph: syncGraph}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close(context.Background())

	if syncGraph {
		pg, err := catalog.NewPostgres(deps.Postgres, cfg.Catalog.EdgeTable)
		if err != nil {
			return err
		}
		if _, err := catalog.Mirror(ctx, pg, catalog.NewGraph(deps.Memgraph), log); err != nil {
			return fmt.Errorf("graph mirror failed: %w", err)
		}
	}

	if skipIndex {
		return nil
	}

	ix := indexer.New(deps.Catalog, deps.Index, deps.Embedder, cfg.Vector.Collection, cfg.Embedding.Dimension, cfg.Indexer, log)
	stats, err := ix.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d of %d courses (%d skipped, %d failed); %d points in %q\n",
		stats.Indexed, stats.Courses, stats.Skipped, stats.Failed, stats.PointsInIndex, cfg.Vector.Collection)
	return nil
}
