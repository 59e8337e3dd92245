package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/platescan/platescan/internal/config"
	"github.com/platescan/platescan/internal/fetcher"
	"github.com/platescan/platescan/internal/insight"
	"github.com/platescan/platescan/internal/pipeline"
)

// shutdownGrace is how long in-flight audits may finish after a
// shutdown signal. Slightly above the fetch timeout so a just-started
// audit can still complete.
const shutdownGrace = 20 * time.Second

// Server is the audit HTTP API.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	generator *insight.Generator

	// newPipeline builds a fresh pipeline per request so concurrent
	// audits share no mutable state. Tests swap this out.
	newPipeline func() *pipeline.Pipeline
}

// Option configures a Server.
type Option func(*Server)

// WithPipelineFactory replaces the per-request pipeline constructor.
func WithPipelineFactory(factory func() *pipeline.Pipeline) Option {
	return func(s *Server) {
		s.newPipeline = factory
	}
}

// WithGenerator replaces the insight generator.
func WithGenerator(g *insight.Generator) Option {
	return func(s *Server) {
		s.generator = g
	}
}

// New creates a Server from the given configuration.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.generator == nil {
		s.generator = insight.NewGenerator(
			cfg.APIKey,
			cfg.Models,
			insight.WithCallTimeout(cfg.InsightTimeout),
			insight.WithLogger(logger),
		)
	}

	if s.newPipeline == nil {
		f := fetcher.New(fetcher.WithTimeout(cfg.FetchTimeout))
		generator := s.generator
		s.newPipeline = func() *pipeline.Pipeline {
			return pipeline.NewAuditPipeline(f, generator, pipeline.WithLogger(logger))
		}
	}

	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /audit", s.handleAudit)
	mux.HandleFunc("GET /insight-selftest", s.handleSelfTest)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// ListenAndServe runs the server until the context is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening",
			"port", s.cfg.Port,
			"insights_enabled", s.generator.Enabled(),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
