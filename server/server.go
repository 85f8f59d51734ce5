// Package server exposes clustering over HTTP.
//
//	GET  /healthz      liveness
//	GET  /metrics      Prometheus exposition
//	POST /v1/cluster   run one clustering job (JSON in, JSON out)
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/capkmeans/config"
	"github.com/katalvlaran/capkmeans/metrics"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	cfg      config.Server
	defaults config.Clustering
	log      *zap.Logger
	metrics  *metrics.Collector
	limiter  *rate.Limiter
	validate *validator.Validate
}

// New returns a Server. defaults fill the clustering fields a request leaves
// out. A nil logger is replaced with a no-op one; a nil collector gets a
// fresh one.
func New(cfg config.Server, defaults config.Clustering, log *zap.Logger, m *metrics.Collector) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewCollector()
	}
	s := &Server{
		cfg:      cfg,
		defaults: defaults,
		log:      log,
		metrics:  m,
		validate: validator.New(),
	}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}
	return s
}

// Handler builds the router with all middleware installed.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.logRequests)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", headerRunID},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.healthz)
	router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	router.Route("/v1", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/cluster", s.cluster)
	})

	return router
}

// ListenAndServe serves on cfg.Addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      time.Duration(s.cfg.TimeoutSeconds)*time.Second + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
