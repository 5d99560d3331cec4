// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/alert"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/api/handler"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/api/job"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/api/middleware"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/engine"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/metrics"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/archive"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/buyer"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/report"
)

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	APIKey      string
	MetricsPath string
}

// Deps carries the wired application dependencies.
type Deps struct {
	Analyzer *engine.Analyzer
	Buyers   buyer.Store
	Reports  report.Store
	Jobs     *job.Store
	Archiver *archive.Archiver
	Alerts   *alert.Evaluator
	Metrics  *metrics.Registry
}

// Server is the HTTP front of the deal engine.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// NewServer creates a new HTTP server with all routes mounted.
func NewServer(cfg Config, deps Deps, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
	}
	s.setupRoutes(cfg, deps)

	var root http.Handler = mux
	if deps.Metrics != nil {
		root = metrics.HTTPMiddleware(deps.Metrics)(root)
	}
	root = metrics.LoggingMiddleware(logger)(root)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes(cfg Config, deps Deps) {
	analyzeHandler := handler.NewAnalyzeHandler(
		deps.Analyzer, deps.Buyers, deps.Reports, deps.Jobs, deps.Archiver, deps.Alerts, deps.Metrics, s.logger)
	buyersHandler := handler.NewBuyersHandler(deps.Buyers)
	reportsHandler := handler.NewReportsHandler(deps.Reports)

	auth := middleware.APIKeyAuth(cfg.APIKey)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	s.mux.Handle("POST /api/analyze", protected(analyzeHandler.Analyze))
	s.mux.Handle("POST /api/analyze/batch", protected(analyzeHandler.AnalyzeBatch))
	s.mux.Handle("GET /api/jobs/{id}", protected(analyzeHandler.GetJob))

	s.mux.Handle("GET /api/buyers", protected(buyersHandler.List))
	s.mux.Handle("GET /api/buyers/{id}", protected(buyersHandler.Get))
	s.mux.Handle("POST /api/buyers", protected(buyersHandler.Save))
	s.mux.Handle("DELETE /api/buyers/{id}", protected(buyersHandler.Delete))

	s.mux.Handle("GET /api/reports", protected(reportsHandler.List))
	s.mux.Handle("GET /api/reports/{id}", protected(reportsHandler.Get))

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
