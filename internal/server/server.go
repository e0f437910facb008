// Package server exposes the bricklayer pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz      liveness and version
//	GET  /v1/bonds     registered bond names
//	POST /v1/pattern   wall config (TOML) in, pattern text out
//	POST /v1/steps     wall config (TOML) in, instructions text out
//	POST /v1/render    wall config (TOML) in, SVG out
//
// The POST routes accept ?seed=N for the wild bond. Responses carry an
// X-Request-ID header, and errors are JSON objects with the error code.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bricklayer/pkg/pipeline"
)

// Config holds the listener settings.
type Config struct {
	Addr         string
	MaxBodyBytes int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Defaults for Config fields left zero.
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultMaxBodyBytes = 64 << 10
	DefaultTimeout      = 30 * time.Second
)

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultTimeout
	}
}

// Server serves the HTTP API on top of a pipeline runner.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	logger  *log.Logger
	started time.Time
}

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{cfg: cfg, runner: runner, logger: logger, started: time.Now()}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/bonds", s.handleBonds)
		r.Group(func(r chi.Router) {
			r.Use(s.limitBody)
			r.Post("/pattern", s.handlePattern)
			r.Post("/steps", s.handleSteps)
			r.Post("/render", s.handleRender)
		})
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then drains in-flight
// requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
