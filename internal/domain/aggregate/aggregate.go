// Package aggregate computes the descriptive statistics behind the
// SLA dashboard: segment filtering, KPI summaries, SLA rankings, and
// the Pareto task-concentration table.
//
// Every method is a pure function of its input slice. Inputs are treated
// as immutable snapshots and outputs are freshly allocated, so concurrent
// calls need no synchronization.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/gigworks/slapulse/internal/domain/model"
	"github.com/gigworks/slapulse/internal/domain/types"
)

// Default engine configuration constants.
const (
	defaultTopFraction = 0.2
	percentScale       = 100.0
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTopFraction sets the fraction of workers counted as the Pareto head.
func WithTopFraction(fraction float64) Option {
	return func(e *Engine) {
		if fraction > 0 && fraction <= 1 {
			e.topFraction = fraction
		}
	}
}

// WithTopSegment sets the segment label counted by the top-performer KPI.
func WithTopSegment(segment string) Option {
	return func(e *Engine) {
		if segment != "" {
			e.topSegment = segment
		}
	}
}

// Engine implements the dashboard aggregations.
type Engine struct {
	topFraction float64
	topSegment  string
}

// New creates an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		topFraction: defaultTopFraction,
		topSegment:  model.SegmentTop,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FilterBySegments returns the subsequence of records whose segment is in
// the selected set, preserving input order. An empty selection yields an
// empty result; it is not treated as select-all.
func (e *Engine) FilterBySegments(records []model.WorkerMetric, segments []string) []model.WorkerMetric {
	allowed := make(map[string]struct{}, len(segments))
	for _, s := range segments {
		allowed[s] = struct{}{}
	}
	out := make([]model.WorkerMetric, 0, len(records))
	for _, r := range records {
		if _, ok := allowed[r.Segment]; ok {
			out = append(out, r)
		}
	}
	return out
}

// KPIs computes the summary-card numbers for the filtered set.
// AvgSLAPct is nil for an empty set; the mean is never allowed to
// propagate as NaN.
func (e *Engine) KPIs(records []model.WorkerMetric) types.KPISummary {
	summary := types.KPISummary{TotalWorkers: len(records)}
	for _, r := range records {
		if r.Segment == e.topSegment {
			summary.TopPerformerCount++
		}
	}
	if len(records) == 0 {
		return summary
	}
	var sum float64
	for _, r := range records {
		sum += r.SLAPct
	}
	avg := round2(sum / float64(len(records)))
	summary.AvgSLAPct = &avg
	return summary
}

// RankBySLA returns the records ordered by sla_pct descending. The sort
// is stable so workers with equal SLA keep their input order, making the
// chart ordering reproducible for identical input.
func (e *Engine) RankBySLA(records []model.WorkerMetric) []types.RankedWorker {
	ordered := make([]model.WorkerMetric, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SLAPct > ordered[j].SLAPct
	})

	ranked := make([]types.RankedWorker, len(ordered))
	for i, r := range ordered {
		ranked[i] = types.RankedWorker{
			Rank:        i + 1,
			WorkerID:    r.WorkerID,
			Segment:     r.Segment,
			SLAPct:      r.SLAPct,
			AvgAccuracy: r.AvgAccuracy,
			TotalTasks:  r.TotalTasks,
		}
	}
	return ranked
}

// Pareto orders workers by completed tasks descending and measures the
// cumulative share contributed by the top fraction. The cutoff index is
// truncating integer math, so fewer than five workers yields a cutoff of
// zero; the summary then reports a zero-worker head rather than rounding
// up.
func (e *Engine) Pareto(records []model.WorkerMetric) types.ParetoTable {
	ordered := make([]model.WorkerMetric, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TotalTasks > ordered[j].TotalTasks
	})

	var total int64
	for _, r := range ordered {
		total += r.TotalTasks
	}

	rows := make([]types.ParetoRow, len(ordered))
	var running int64
	for i, r := range ordered {
		running += r.TotalTasks
		pct := 0.0
		if total > 0 {
			pct = percentScale * float64(running) / float64(total)
		}
		rows[i] = types.ParetoRow{
			WorkerID:        r.WorkerID,
			Segment:         r.Segment,
			TotalTasks:      r.TotalTasks,
			CumulativeTasks: running,
			CumulativePct:   pct,
		}
	}

	cutoff := int(e.topFraction * float64(len(ordered)))
	var cutoffSum int64
	for _, row := range rows[:cutoff] {
		cutoffSum += row.TotalTasks
	}

	return types.ParetoTable{
		Rows:          rows,
		CutoffIndex:   cutoff,
		CutoffTaskSum: cutoffSum,
		TotalTaskSum:  total,
		Summary: fmt.Sprintf("Top %d%% workers (%d) contribute %d tasks out of %d total tasks.",
			int(e.topFraction*percentScale), cutoff, cutoffSum, total),
	}
}

// round2 rounds to two decimal places, matching the KPI card display.
func round2(v float64) float64 {
	return math.Round(v*percentScale) / percentScale
}
