package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SLAPULSE_CONFIG is set
//  3. env (prefix SLAPULSE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SLAPULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SLAPULSE_ADDR, SLAPULSE_MAX_RANKING_LIMIT, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("SLAPULSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "slapulse_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.WorkerMetricsPath == "":
		return nil, fmt.Errorf("%w: worker_metrics_path must not be empty", ErrInvalidConfig)
	case cfg.TaskEventsPath == "":
		return nil, fmt.Errorf("%w: task_events_path must not be empty", ErrInvalidConfig)
	case cfg.MaxRankingLimit < 1:
		return nil, fmt.Errorf("%w: max_ranking_limit must be >= 1", ErrInvalidConfig)
	case cfg.ParetoTopFraction <= 0 || cfg.ParetoTopFraction > 1:
		return nil, fmt.Errorf("%w: pareto_top_fraction must be in (0,1]", ErrInvalidConfig)
	}
	return &cfg, nil
}
