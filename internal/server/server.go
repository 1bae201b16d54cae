// Package server provides the HTTP health surface for the ingestion
// service: no query API, just the two endpoints operators and
// orchestrators poll, behind the full middleware stack.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/marketdata/internal/store"
)

// Config holds server configuration.
type Config struct {
	Log         zerolog.Logger
	DB          *store.DB
	BindAddress string
	Port        int
	DevMode     bool
}

// Server is the chi-routed HTTP health surface.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	db     *store.DB
}

// New builds a Server with the middleware stack and the two health
// routes wired.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log,
		db:     cfg.DB,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures the request-handling ambient stack: panic
// recovery, request IDs, real client IP, structured access logging, a
// hard per-request timeout, CORS, and response compression outside dev.
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes wires the two health endpoints: a process liveness check
// and a store connectivity check.
func (s *Server) setupRoutes() {
	s.router.Get("/api-health", s.handleAPIHealth)
	s.router.Get("/db-health", s.handleDBHealth)
}

// loggingMiddleware logs every HTTP request with structured fields.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

// Start begins serving. It blocks until Shutdown is called or the
// listener fails.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting http server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server within ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down http server")
	return s.server.Shutdown(ctx)
}
