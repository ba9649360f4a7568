// Package repository defines the dataset snapshot store.
package repository

import (
	"context"

	"github.com/gigworks/slapulse/internal/domain/model"
)

// Store provides read access to the current dataset snapshot and allows
// swapping in a freshly loaded one. Readers always see a consistent
// snapshot; a Replace never mutates data handed out earlier.
type Store interface {
	// WorkerMetrics returns the worker-metrics relation in input order.
	WorkerMetrics(ctx context.Context) []model.WorkerMetric

	// TaskEvents returns the task-events relation in input order.
	TaskEvents(ctx context.Context) []model.TaskEvent

	// Segments returns the distinct performance segments in first-seen order.
	Segments(ctx context.Context) []string

	// Counts returns the sizes of the two relations.
	Counts(ctx context.Context) (workers, events int)

	// Replace atomically swaps in a new snapshot of both relations.
	Replace(ctx context.Context, metrics []model.WorkerMetric, events []model.TaskEvent)
}
