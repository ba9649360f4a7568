// Package types contains the read shapes shared between the service and the API.
package types

// KPISummary backs the dashboard's KPI cards. AvgSLAPct is nil when the
// filtered set is empty so callers render "no data" instead of NaN.
type KPISummary struct {
	TotalWorkers      int      `json:"total_workers"`
	AvgSLAPct         *float64 `json:"avg_sla_pct,omitempty"`
	TopPerformerCount int      `json:"top_performer_count"`
}

// RankedWorker is one row of the SLA ranking, ordered SLA-descending.
// AvgAccuracy and TotalTasks ride along for hover detail on the charts.
type RankedWorker struct {
	Rank        int     `json:"rank"`
	WorkerID    string  `json:"worker_id"`
	Segment     string  `json:"performance_segment"`
	SLAPct      float64 `json:"sla_pct"`
	AvgAccuracy float64 `json:"avg_accuracy"`
	TotalTasks  int64   `json:"total_tasks"`
}

// ParetoRow is one row of the task-concentration table, ordered by
// total tasks descending with a running cumulative contribution.
type ParetoRow struct {
	WorkerID        string  `json:"worker_id"`
	Segment         string  `json:"performance_segment"`
	TotalTasks      int64   `json:"total_tasks"`
	CumulativeTasks int64   `json:"cumulative_tasks"`
	CumulativePct   float64 `json:"cumulative_pct"`
}

// ParetoTable bundles the per-row detail with the headline numbers used
// by the summary sentence.
type ParetoTable struct {
	Rows          []ParetoRow `json:"rows"`
	CutoffIndex   int         `json:"cutoff_index"`
	CutoffTaskSum int64       `json:"cutoff_task_sum"`
	TotalTaskSum  int64       `json:"total_task_sum"`
	Summary       string      `json:"summary"`
}

// CurvePoint is one point of a worker's learning curve: the expanding
// mean of accuracy after the task identified by TaskID.
type CurvePoint struct {
	TaskID             int64   `json:"task_id"`
	TaskDate           string  `json:"task_date"`
	Accuracy           float64 `json:"accuracy"`
	CumulativeAccuracy float64 `json:"cumulative_accuracy"`
}
