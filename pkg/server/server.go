// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/hostprobe/pkg/logging"
)

// Server is the hostprobed HTTP frontend. It owns the middleware chain,
// health endpoints and the metrics endpoint; API routes are supplied by the
// caller through WithHandler.
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	slots       chan struct{}
	gatherer    prometheus.Gatherer
	logger      *slog.Logger

	onReady    func()
	onShutdown func()

	mu    sync.RWMutex
	ready bool
	addr  net.Addr
}

// Option configures a Server.
type Option func(*Server)

// WithConfig replaces the whole configuration. Apply it before the other
// options that modify individual fields.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		if cfg != nil {
			c := *cfg
			c.Handlers = make(map[string]http.HandlerFunc, len(cfg.Handlers))
			for pattern, h := range cfg.Handlers {
				c.Handlers[pattern] = h
			}
			s.config = &c
		}
	}
}

// WithName sets the server name reported on the root route.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the server version reported on the root route.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithHandler adds API handlers keyed by ServeMux pattern.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc, len(handlers))
		}
		for pattern, h := range handlers {
			s.config.Handlers[pattern] = h
		}
	}
}

// WithGatherer sets what GET /metrics exposes. Defaults to the global
// Prometheus registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// WithLogger sets the server logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOnReady registers a callback run once the listener accepts connections.
func WithOnReady(fn func()) Option {
	return func(s *Server) {
		s.onReady = fn
	}
}

// WithOnShutdown registers a callback run when graceful shutdown begins.
func WithOnShutdown(fn func()) Option {
	return func(s *Server) {
		s.onShutdown = fn
	}
}

// New creates a server. The listener is not opened until Start or Run.
func New(opts ...Option) *Server {
	s := &Server{
		config:   NewConfig(),
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)
	if s.config.MaxBulkRequests > 0 {
		s.slots = make(chan struct{}, s.config.MaxBulkRequests)
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          logging.NewLogLogger(slog.LevelWarn, false),
	}

	return s
}

// Handler returns the root handler with every route installed.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady reports the readiness flag served on GET /ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Addr returns the bound listener address once Start has opened it.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Start listens and serves until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	s.logger.Info("server listening",
		"name", s.config.Name,
		"address", ln.Addr().String(),
		"rateLimit", float64(s.config.RateLimit),
		"rateLimitBurst", s.config.RateLimitBurst,
		"maxBulkRequests", s.config.MaxBulkRequests,
	)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	s.SetReady(true)
	if s.onReady != nil {
		s.onReady()
	}

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err, ok := <-errChan:
		s.SetReady(false)
		if !ok {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

// Shutdown gracefully shuts down the server within ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)
	if s.onShutdown != nil {
		s.onShutdown()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server", "timeout", s.config.ShutdownTimeout.String())
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Run starts the server and blocks until ctx is canceled or the process
// receives SIGINT or SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	s.logger.Info("server stopped gracefully")
	return nil
}

// promLogger adapts slog to promhttp's error logger.
type promLogger struct {
	logger *slog.Logger
}

func newPromLogger(l *slog.Logger) promLogger {
	return promLogger{logger: l}
}

func (p promLogger) Println(v ...any) {
	p.logger.Warn("metrics handler error", "error", fmt.Sprint(v...))
}
