// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WorkerMetricsPath locates the worker-metrics CSV relation.
	WorkerMetricsPath string `koanf:"worker_metrics_path"`

	// TaskEventsPath locates the task-events CSV relation.
	TaskEventsPath string `koanf:"task_events_path"`

	// MaxRankingLimit caps GET /ranking?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// ParetoTopFraction is the head fraction of the Pareto analysis.
	ParetoTopFraction float64 `koanf:"pareto_top_fraction"`

	// WatchDatasets enables hot reload when the CSV files change.
	WatchDatasets bool `koanf:"watch_datasets"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		WorkerMetricsPath: "dashboard_worker_metrics.csv",
		TaskEventsPath:    "simulated_worker_tasks.csv",
		MaxRankingLimit:   500,
		ParetoTopFraction: 0.2,
		WatchDatasets:     true,
	}
}
