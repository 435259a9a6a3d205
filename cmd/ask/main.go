package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/agenthands/curriculum/internal/bootstrap"
	"github.com/agenthands/curriculum/internal/config"
	"github.com/agenthands/curriculum/internal/core"
	"github.com/agenthands/curriculum/internal/logger"
)

func main() {
	configPath := flag.String("config", "config/config.toml", "path to config file (toml or yaml)")
	verbose := flag.Bool("v", false, "log routing decisions to stderr")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := zerolog.Nop()
	if *verbose {
		log = logger.NewWithWriter(cfg.Logging, os.Stderr)
	}

	ctx := context.Background()
	deps, err := bootstrap.Build(ctx, cfg, bootstrap.Needs{Generator: true}, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close(ctx)

	router := deps.Router(cfg)

	if flag.NArg() > 0 {
		if !ask(ctx, router, strings.Join(flag.Args(), " "), os.Stdout) {
			deps.Close(ctx)
			os.Exit(1)
		}
		return
	}
	repl(ctx, router, os.Stdin, os.Stdout)
}

func repl(ctx context.Context, router *core.Router, in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "Curriculum assistant. Type 'quit' to exit.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nQuestion: ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Fprintln(out, "Goodbye!")
			return
		}
		ask(ctx, router, line, out)
	}
}

func ask(ctx context.Context, router *core.Router, query string, out io.Writer) bool {
	ans, err := router.Ask(ctx, query)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return false
	}
	fmt.Fprintf(out, "\n[%s via %s]\n%s\n", ans.Classification, ans.Path, ans.Text)
	return true
}
