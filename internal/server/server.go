package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghostedhq/ghostscan/internal/compare"
	"github.com/ghostedhq/ghostscan/internal/config"
	"github.com/ghostedhq/ghostscan/internal/detector"
)

// Server handles HTTP requests for the scanning pipeline.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	registry   *detector.Registry
	comparator *compare.Comparator
	version    string
}

// New creates a Server over the given registry. The version string is
// reported by the health endpoint.
func New(cfg *config.Config, logger *slog.Logger, registry *detector.Registry, version string) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		registry:   registry,
		comparator: compare.New(registry),
		version:    version,
	}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestLogger)
	r.Use(corsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/scan", s.handleScan)
		r.Post("/clean", s.handleClean)
		r.Post("/detect", s.handleDetect)
		r.Post("/compare", s.handleCompare)
		r.Get("/experiment-results", s.handleExperimentResults)
	})

	return r
}

// ListenAndServe runs the HTTP server until the context is canceled,
// then drains in-flight requests within the shutdown grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("http server listening", "addr", s.cfg.ListenAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
