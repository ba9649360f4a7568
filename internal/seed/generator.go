// Package seed generates synthetic copies of the two input relations so
// the service can be exercised without production data.
package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/gigworks/slapulse/internal/domain/model"
	"github.com/gigworks/slapulse/pkg/logger"
)

// Default generation constants. The segment thresholds mirror the
// tiering used by the upstream metrics pipeline.
const (
	defaultWorkers        = 25
	defaultTasksPerWorker = 40
	defaultSeed           = 42

	topSegmentSLAMin = 90.0
	midSegmentSLAMin = 70.0

	observationDays = 30
	baseAccuracyMin = 0.55
	learningGain    = 0.3 // accuracy drift over a worker's task sequence
	accuracyJitter  = 0.08
)

// Config controls dataset generation.
type Config struct {
	Workers        int
	TasksPerWorker int
	Seed           int64
	StartDate      time.Time
}

// Option applies a configuration option to the Config.
type Option func(*Config)

// WithWorkers sets the number of workers to generate.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithTasksPerWorker sets the number of task events per worker.
func WithTasksPerWorker(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.TasksPerWorker = n
		}
	}
}

// WithSeed sets the random seed; generation is deterministic per seed.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithStartDate sets the first calendar date of the observation window.
func WithStartDate(t time.Time) Option {
	return func(c *Config) {
		if !t.IsZero() {
			c.StartDate = t
		}
	}
}

// NewConfig builds a generation config with defaults.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		Workers:        defaultWorkers,
		TasksPerWorker: defaultTasksPerWorker,
		Seed:           defaultSeed,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate produces matched worker-metrics and task-events relations.
// The metrics row of each worker is derived from that worker's generated
// task events, so the two relations stay mutually consistent.
func Generate(ctx context.Context, cfg *Config) ([]model.WorkerMetric, []model.TaskEvent, error) {
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic seed for reproducible datasets

	logger.Get().Info(ctx, "generating synthetic datasets",
		logger.Int("workers", cfg.Workers),
		logger.Int("tasksPerWorker", cfg.TasksPerWorker),
	)

	workerMetrics := make([]model.WorkerMetric, 0, cfg.Workers)
	taskEvents := make([]model.TaskEvent, 0, cfg.Workers*cfg.TasksPerWorker)

	taskID := int64(0)
	for i := 0; i < cfg.Workers; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		uid, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, nil, fmt.Errorf("generate worker id: %w", err)
		}
		workerID := "W-" + uid.String()[:8]

		baseAccuracy := baseAccuracyMin + rng.Float64()*(1-learningGain-baseAccuracyMin)
		slaPct := 40 + rng.Float64()*60

		var accuracySum float64
		for j := 0; j < cfg.TasksPerWorker; j++ {
			taskID++
			progress := float64(j) / float64(cfg.TasksPerWorker)
			accuracy := baseAccuracy + learningGain*progress + (rng.Float64()-0.5)*accuracyJitter
			accuracy = clamp01(accuracy)
			accuracySum += accuracy

			day := j * observationDays / cfg.TasksPerWorker
			taskEvents = append(taskEvents, model.TaskEvent{
				WorkerID: workerID,
				TaskID:   taskID,
				TaskDate: cfg.StartDate.AddDate(0, 0, day),
				Accuracy: accuracy,
			})
		}

		daysMet := int64(float64(observationDays) * slaPct / 100)
		workerMetrics = append(workerMetrics, model.WorkerMetric{
			WorkerID:      workerID,
			Segment:       segmentFor(slaPct),
			SLAPct:        slaPct,
			AvgAccuracy:   accuracySum / float64(cfg.TasksPerWorker),
			TotalTasks:    int64(cfg.TasksPerWorker),
			DaysSLAMet:    daysMet,
			DaysSLANotMet: observationDays - daysMet,
		})
	}
	return workerMetrics, taskEvents, nil
}

// WriteCSVs writes both relations to the given paths in the format the
// dataset loader expects.
func WriteCSVs(ctx context.Context, metricsPath, eventsPath string, workerMetrics []model.WorkerMetric, taskEvents []model.TaskEvent) error {
	if err := writeCSV(metricsPath, [][]string{{
		"worker_id", "performance_segment", "sla_pct", "avg_accuracy",
		"total_tasks", "days_sla_met", "days_sla_not_met",
	}}, func(rows [][]string) [][]string {
		for _, m := range workerMetrics {
			rows = append(rows, []string{
				m.WorkerID, m.Segment,
				formatFloat(m.SLAPct), formatFloat(m.AvgAccuracy),
				strconv.FormatInt(m.TotalTasks, 10),
				strconv.FormatInt(m.DaysSLAMet, 10),
				strconv.FormatInt(m.DaysSLANotMet, 10),
			})
		}
		return rows
	}); err != nil {
		return err
	}

	if err := writeCSV(eventsPath, [][]string{{
		"worker_id", "task_id", "task_date", "accuracy",
	}}, func(rows [][]string) [][]string {
		for _, ev := range taskEvents {
			rows = append(rows, []string{
				ev.WorkerID,
				strconv.FormatInt(ev.TaskID, 10),
				ev.TaskDate.Format(time.DateOnly),
				formatFloat(ev.Accuracy),
			})
		}
		return rows
	}); err != nil {
		return err
	}

	logger.Get().Info(ctx, "wrote synthetic datasets",
		logger.String("workerMetrics", metricsPath),
		logger.String("taskEvents", eventsPath),
		logger.Int("workers", len(workerMetrics)),
		logger.Int("taskEvents", len(taskEvents)),
	)
	return nil
}

func writeCSV(path string, rows [][]string, fill func([][]string) [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(fill(rows)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func segmentFor(slaPct float64) string {
	switch {
	case slaPct >= topSegmentSLAMin:
		return model.SegmentTop
	case slaPct >= midSegmentSLAMin:
		return model.SegmentMid
	default:
		return model.SegmentLow
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
