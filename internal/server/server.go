package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agenthands/curriculum/internal/apperrors"
	"github.com/agenthands/curriculum/internal/config"
	"github.com/agenthands/curriculum/internal/core"
	"github.com/agenthands/curriculum/internal/core/classify"
	"github.com/agenthands/curriculum/internal/core/extraction"
)

// Asker is the part of core.Router the HTTP layer needs.
type Asker interface {
	Ask(ctx context.Context, query string) (*core.Answer, error)
}

// Pinger reports whether the catalog is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	cfg    config.ServerConfig
	router Asker
	health Pinger
	logger zerolog.Logger
	http   *http.Server
}

func NewServer(cfg config.ServerConfig, router Asker, health Pinger, logger zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		router: router,
		health: health,
		logger: logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	if s.cfg.Mode != "" {
		gin.SetMode(s.cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.POST("/ask", s.Ask)
	r.POST("/classify", s.Classify)
	r.GET("/healthz", s.Healthz)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}

type QueryRequest struct {
	Query string `json:"query"`
}

func bindQuery(c *gin.Context) (string, bool) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return "", false
	}
	q := strings.TrimSpace(req.Query)
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return "", false
	}
	return q, true
}

func (s *Server) Ask(c *gin.Context) {
	query, ok := bindQuery(c)
	if !ok {
		return
	}

	ans, err := s.router.Ask(c.Request.Context(), query)
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.KindOf(err) == apperrors.KindUpstreamUnavailable {
			status = http.StatusServiceUnavailable
		}
		s.logger.Error().Err(err).Str("query", query).Msg("Ask failed")
		c.JSON(status, gin.H{"error": "Failed to answer query"})
		return
	}

	c.JSON(http.StatusOK, ans)
}

func (s *Server) Classify(c *gin.Context) {
	query, ok := bindQuery(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"classification": classify.Classify(query),
		"identifier":     extraction.ExtractCourseIdentifier(query),
	})
}

func (s *Server) Healthz(c *gin.Context) {
	if err := s.health.Ping(c.Request.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.SetupRouter(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.logger.Info().Msg("Server stopped")
	return nil
}
