// Package http serves health, readiness, metrics, and the season reports of
// the last completed run.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

// ReportStore exposes the reports of the last completed run.
type ReportStore interface {
	Reports() []domain.SeasonReport
	Report(s domain.Season) (domain.SeasonReport, bool)
}

// Server exposes health, readiness, metrics, and report HTTP endpoints.
type Server struct {
	httpServer *http.Server
	reports    ReportStore
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// /reports, and /reports/{season} routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, reports ReportStore, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		reports: reports,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /reports", s.handleReports)
	mux.HandleFunc("GET /reports/{season}", s.handleSeason)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleReports(w http.ResponseWriter, _ *http.Request) {
	reports := s.reports.Reports()
	if reports == nil {
		reports = []domain.SeasonReport{}
	}
	sharedobs.WriteJSON(w, http.StatusOK, reports)
}

func (s *Server) handleSeason(w http.ResponseWriter, r *http.Request) {
	season, err := domain.ParseSeason(r.PathValue("season"))
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	report, ok := s.reports.Report(season)
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "no report for " + season.String()})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, report)
}
