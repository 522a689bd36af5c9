// Package server exposes the analytics engine as a thin JSON API for the
// web UI. It holds no state of its own; every request is computed from
// its payload.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"b3-analyzer/internal/config"
)

// Server wraps the HTTP server and its router.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// New builds the server with its routes and CORS policy.
func New(cfg config.ServerConfig, bench config.BenchmarkConfig, log zerolog.Logger) *Server {
	handler := NewHandler(bench, log)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", handler.HandleHealth)
	r.Post("/api/analyze", handler.HandleAnalyze)
	r.Get("/api/expiries", handler.HandleExpiries)
	r.Get("/api/benchmark", handler.HandleBenchmark)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log.With().Str("component", "server").Logger(),
	}
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("API listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
