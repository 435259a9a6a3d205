package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/curriculum/internal/bootstrap"
	"github.com/agenthands/curriculum/internal/config"
	"github.com/agenthands/curriculum/internal/logger"
	"github.com/agenthands/curriculum/internal/server"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config/config.toml"), "path to config file (toml or yaml)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using environment")
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging)

	ctx := context.Background()
	deps, err := bootstrap.Build(ctx, cfg, bootstrap.Needs{Generator: true}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}
	defer deps.Close(ctx)

	srv := server.NewServer(cfg.Server, deps.Router(cfg), deps.Catalog, log)
	log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("Server exited with error")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
