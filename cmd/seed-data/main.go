// Command seed-data writes synthetic copies of the two input relations.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gigworks/slapulse/internal/seed"
	"github.com/gigworks/slapulse/pkg/logger"
)

func main() {
	workers := flag.Int("workers", 25, "Number of workers to generate")
	tasks := flag.Int("tasks", 40, "Task events per worker")
	randSeed := flag.Int64("seed", 42, "Random seed (deterministic output per seed)")
	start := flag.String("start", "2024-01-01", "First calendar date of the observation window (YYYY-MM-DD)")
	metricsPath := flag.String("metrics-out", "dashboard_worker_metrics.csv", "Worker-metrics CSV output path")
	eventsPath := flag.String("events-out", "simulated_worker_tasks.csv", "Task-events CSV output path")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startDate, err := time.Parse(time.DateOnly, *start)
	if err != nil {
		logger.Get().Error(ctx, "invalid start date", logger.Error(err))
		os.Exit(1)
	}

	cfg := seed.NewConfig(
		seed.WithWorkers(*workers),
		seed.WithTasksPerWorker(*tasks),
		seed.WithSeed(*randSeed),
		seed.WithStartDate(startDate),
	)

	workerMetrics, taskEvents, err := seed.Generate(ctx, cfg)
	if err != nil {
		logger.Get().Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}

	if err := seed.WriteCSVs(ctx, *metricsPath, *eventsPath, workerMetrics, taskEvents); err != nil {
		logger.Get().Error(ctx, "write failed", logger.Error(err))
		os.Exit(1)
	}
}
