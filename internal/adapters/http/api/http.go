// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gigworks/slapulse/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// KPIs computes the summary-card numbers for the selected segments.
	KPIs(ctx context.Context, segments []string) types.KPISummary

	// Ranking returns workers ordered by SLA compliance descending.
	Ranking(ctx context.Context, segments []string, limit int) []types.RankedWorker

	// Pareto returns the task-concentration analysis.
	Pareto(ctx context.Context, segments []string) types.ParetoTable

	// LearningCurve returns the expanding-mean accuracy sequence for a worker.
	LearningCurve(ctx context.Context, workerID string) []types.CurvePoint

	// Segments returns the distinct performance segments of the snapshot.
	Segments(ctx context.Context) []string

	// Workers returns the worker ids of the selected segments.
	Workers(ctx context.Context, segments []string) []string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	kpiHandler       *KPIHandler
	rankingHandler   *RankingHandler
	paretoHandler    *ParetoHandler
	curveHandler     *CurveHandler
	segmentsHandler  *SegmentsHandler
	workersHandler   *WorkersHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxRankingLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		kpiHandler:       NewKPIHandler(deps),
		rankingHandler:   NewRankingHandler(deps, maxRankingLimit),
		paretoHandler:    NewParetoHandler(deps),
		curveHandler:     NewCurveHandler(deps),
		segmentsHandler:  NewSegmentsHandler(deps),
		workersHandler:   NewWorkersHandler(deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/kpis", MetricsMiddleware(s.kpiHandler.HandleGetKPIs, "kpis"))
	mux.HandleFunc("/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/pareto", MetricsMiddleware(s.paretoHandler.HandleGetPareto, "pareto"))
	mux.HandleFunc("/curve/", MetricsMiddleware(s.curveHandler.HandleGetCurve, "curve"))
	mux.HandleFunc("/segments", MetricsMiddleware(s.segmentsHandler.HandleGetSegments, "segments"))
	mux.HandleFunc("/workers", MetricsMiddleware(s.workersHandler.HandleGetWorkers, "workers"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// segmentSelector extracts the segment filter from the query string.
// An absent parameter returns nil (select all); a present but empty
// parameter returns an empty non-nil slice (select nothing). Both comma
// separation and repeated parameters are accepted.
func segmentSelector(r *http.Request) []string {
	values, ok := r.URL.Query()["segments"]
	if !ok {
		return nil
	}
	selected := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				selected = append(selected, part)
			}
		}
	}
	return selected
}
