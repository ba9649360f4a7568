// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/gigworks/slapulse/internal/adapters/repository"
	"github.com/gigworks/slapulse/internal/dataset"
	"github.com/gigworks/slapulse/internal/domain/aggregate"
	"github.com/gigworks/slapulse/internal/domain/learning"
	"github.com/gigworks/slapulse/internal/domain/model"
	"github.com/gigworks/slapulse/internal/domain/types"
	"github.com/gigworks/slapulse/pkg/logger"
	"github.com/gigworks/slapulse/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxRankingLimit = 500
	defaultParetoFraction  = 0.2
)

// Service implements the API dependencies for the SLA analytics system.
// All read operations are pure functions over the current dataset
// snapshot; Reload is the only way state changes.
type Service struct {
	mu sync.RWMutex

	store  repository.Store
	engine *aggregate.Engine

	workerMetricsPath string
	taskEventsPath    string
	maxRankingLimit   int
	paretoFraction    float64

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the snapshot store backing the service.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDatasetPaths sets the CSV paths of the two input relations.
func WithDatasetPaths(workerMetrics, taskEvents string) Option {
	return func(s *Service) {
		if workerMetrics != "" {
			s.workerMetricsPath = workerMetrics
		}
		if taskEvents != "" {
			s.taskEventsPath = taskEvents
		}
	}
}

// WithMaxRankingLimit caps the ranking query limit.
func WithMaxRankingLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxRankingLimit = limit
		}
	}
}

// WithParetoTopFraction sets the Pareto head fraction.
func WithParetoTopFraction(fraction float64) Option {
	return func(s *Service) {
		if fraction > 0 && fraction <= 1 {
			s.paretoFraction = fraction
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerMetricsPath: "dashboard_worker_metrics.csv",
		taskEventsPath:    "simulated_worker_tasks.csv",
		maxRankingLimit:   defaultMaxRankingLimit,
		paretoFraction:    defaultParetoFraction,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components and performs the initial
// dataset load.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewSnapshotStore(ctx)
	}
	s.engine = aggregate.New(aggregate.WithTopFraction(s.paretoFraction))
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting analytics service",
		logger.String("workerMetrics", s.workerMetricsPath),
		logger.String("taskEvents", s.taskEventsPath),
	)
	return s.Reload(ctx)
}

// Stop shuts the service down. The snapshot store has no resources to
// release; this exists for lifecycle symmetry with Start.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// Reload reads both relations from disk and swaps them in as the new
// snapshot. On failure the previous snapshot stays live.
func (s *Service) Reload(ctx context.Context) error {
	start := time.Now()

	workerMetrics, warnings, err := dataset.LoadWorkerMetrics(ctx, s.workerMetricsPath)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return err
	}
	taskEvents, err := dataset.LoadTaskEvents(ctx, s.taskEventsPath)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return err
	}

	for _, w := range warnings {
		metrics.RecordDataQualityWarning()
		s.logger.Warn(ctx, "data quality warning",
			logger.String("workerID", w.WorkerID),
			logger.String("message", w.Message),
		)
	}

	s.store.Replace(ctx, workerMetrics, taskEvents)
	metrics.RecordDatasetLoadDuration(float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "dataset snapshot loaded",
		logger.Int("workers", len(workerMetrics)),
		logger.Int("taskEvents", len(taskEvents)),
		logger.Int("warnings", len(warnings)),
	)
	return nil
}

// KPIs computes the summary-card numbers for the selected segments.
func (s *Service) KPIs(ctx context.Context, segments []string) types.KPISummary {
	start := time.Now()
	records := s.selectRecords(ctx, segments)
	out := s.engine.KPIs(records)
	metrics.RecordAggregationLatency("kpis", float64(time.Since(start).Milliseconds()))
	if out.TotalWorkers == 0 {
		metrics.RecordEmptyResult("kpis")
	}
	return out
}

// Ranking returns workers ordered by SLA compliance descending. A
// non-positive limit returns the full sequence.
func (s *Service) Ranking(ctx context.Context, segments []string, limit int) []types.RankedWorker {
	start := time.Now()
	ranked := s.engine.RankBySLA(s.selectRecords(ctx, segments))
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	metrics.RecordAggregationLatency("ranking", float64(time.Since(start).Milliseconds()))
	if len(ranked) == 0 {
		metrics.RecordEmptyResult("ranking")
	}
	return ranked
}

// Pareto returns the task-concentration analysis for the selected segments.
func (s *Service) Pareto(ctx context.Context, segments []string) types.ParetoTable {
	start := time.Now()
	table := s.engine.Pareto(s.selectRecords(ctx, segments))
	metrics.RecordAggregationLatency("pareto", float64(time.Since(start).Milliseconds()))
	if len(table.Rows) == 0 {
		metrics.RecordEmptyResult("pareto")
	}
	return table
}

// LearningCurve returns the expanding-mean accuracy sequence for a
// worker. Unknown workers yield an empty curve.
func (s *Service) LearningCurve(ctx context.Context, workerID string) []types.CurvePoint {
	start := time.Now()
	curve := learning.Curve(s.store.TaskEvents(ctx), workerID)
	metrics.RecordAggregationLatency("curve", float64(time.Since(start).Milliseconds()))
	if len(curve) == 0 {
		metrics.RecordEmptyResult("curve")
	}
	return curve
}

// Segments returns the distinct performance segments of the snapshot.
func (s *Service) Segments(ctx context.Context) []string {
	return s.store.Segments(ctx)
}

// Workers returns the worker ids of the selected segments in input order.
func (s *Service) Workers(ctx context.Context, segments []string) []string {
	records := s.selectRecords(ctx, segments)
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.WorkerID
	}
	return ids
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":           s.started,
		"maxRankingLimit":   s.maxRankingLimit,
		"paretoTopFraction": s.paretoFraction,
	}
	if s.started {
		workers, events := s.store.Counts(ctx)
		stats["workerRecords"] = workers
		stats["taskEventRecords"] = events
		stats["segments"] = s.store.Segments(ctx)

		metrics.UpdateWorkerRecords(workers)
		metrics.UpdateTaskEventRecords(events)
	}
	return stats
}

// MaxRankingLimit exposes the configured ranking cap to the API layer.
func (s *Service) MaxRankingLimit() int {
	return s.maxRankingLimit
}

// DatasetPaths exposes the relation file paths to the watcher.
func (s *Service) DatasetPaths() (workerMetrics, taskEvents string) {
	return s.workerMetricsPath, s.taskEventsPath
}

// selectRecords applies the segment selector to the snapshot. nil means
// no filter was sent at all, which selects everything; an empty non-nil
// selection selects nothing.
func (s *Service) selectRecords(ctx context.Context, segments []string) []model.WorkerMetric {
	records := s.store.WorkerMetrics(ctx)
	if segments == nil {
		return records
	}
	return s.engine.FilterBySegments(records, segments)
}
