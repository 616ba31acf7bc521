// Package server exposes the planning API consumed by the marketing site:
// catalog lookups, quote and estimate calculations, plan drafts, and lead
// capture.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/fieldhouse-group/facility-cli/internal/catalog"
	"github.com/fieldhouse-group/facility-cli/internal/cost"
	"github.com/fieldhouse-group/facility-cli/internal/lead"
	"github.com/fieldhouse-group/facility-cli/internal/store"
)

// Config tunes the HTTP server.
type Config struct {
	Port           int
	AllowedOrigins []string

	// Defaults applied when a request omits them.
	RegionMultiplier float64
	Tier             catalog.Tier
}

// Server wires the calculation engine, store, and lead dispatcher behind the
// HTTP API.
type Server struct {
	cat        *catalog.Catalog
	calc       *cost.Calculator
	store      store.Store
	dispatcher *lead.Dispatcher
	cfg        Config
}

// New creates a Server. dispatcher may be nil, in which case lead capture is
// disabled and POST /api/leads responds 503.
func New(cat *catalog.Catalog, st store.Store, dispatcher *lead.Dispatcher, cfg Config) *Server {
	if cfg.RegionMultiplier <= 0 {
		cfg.RegionMultiplier = 1.0
	}
	if cfg.Tier == "" {
		cfg.Tier = catalog.TierMid
	}
	return &Server{
		cat:        cat,
		calc:       cost.NewCalculator(cat),
		store:      st,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

// Router builds the chi mux with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/sports", s.handleCatalogSports)
			r.Get("/items", s.handleCatalogItems)
			r.Get("/assumptions", s.handleCatalogAssumptions)
		})

		r.Post("/quote", s.handleQuote)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/estimate/quick", s.handleQuickEstimate)

		r.Post("/leads", s.handleLeadSubmit)

		r.Route("/drafts", func(r chi.Router) {
			r.Post("/", s.handleDraftCreate)
			r.Get("/{draftID}", s.handleDraftGet)
			r.Post("/{draftID}/steps/{step}", s.handleDraftStep)
			r.Delete("/{draftID}", s.handleDraftDelete)
		})
	})

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
		if s.dispatcher != nil {
			s.dispatcher.Wait()
		}
	}()

	zap.L().Info("starting server", zap.Int("port", s.cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

// requestLogger logs one line per request with method, path, status, and
// duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
