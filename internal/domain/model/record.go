// Package model contains domain records passed between layers.
package model

import "time"

// Performance segment labels used by the worker-metrics relation.
const (
	SegmentTop = "Top Performer"
	SegmentMid = "Mid Performer"
	SegmentLow = "Low Performer"
)

// WorkerMetric is one row of the aggregated worker-metrics relation:
// a single worker's SLA standing over the observation window.
type WorkerMetric struct {
	WorkerID      string  // unique worker identifier
	Segment       string  // performance segment label, e.g. "Top Performer"
	SLAPct        float64 // SLA compliance percentage, [0,100]
	AvgAccuracy   float64 // mean task accuracy for the window
	TotalTasks    int64   // tasks completed in the window
	DaysSLAMet    int64   // days the worker met the SLA
	DaysSLANotMet int64   // days the worker missed the SLA
}

// TaskEvent is one row of the task-events relation: a single simulated
// task observation for a worker. WorkerID is not guaranteed to exist in
// the worker-metrics relation; orphans simply yield empty curves.
type TaskEvent struct {
	WorkerID string
	TaskID   int64     // tie-break ordering key within a date
	TaskDate time.Time // primary ordering key, calendar date
	Accuracy float64   // accuracy observed for this single task
}
