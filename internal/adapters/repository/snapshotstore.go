package repository

import (
	"context"
	"sync"
	"time"

	"github.com/gigworks/slapulse/internal/domain/model"
	"github.com/gigworks/slapulse/pkg/metrics"
)

// snapshot is an immutable view of both relations. It is never mutated
// after construction; Replace builds a new one and swaps the pointer.
type snapshot struct {
	workerMetrics []model.WorkerMetric
	taskEvents    []model.TaskEvent
	segments      []string
	loadedAt      time.Time
}

// SnapshotStore implements Store with a pointer-swapped immutable snapshot.
type SnapshotStore struct {
	mu   sync.RWMutex
	snap *snapshot
}

// NewSnapshotStore creates an empty SnapshotStore. Until the first
// Replace, readers observe empty relations.
func NewSnapshotStore(_ context.Context) *SnapshotStore {
	return &SnapshotStore{snap: &snapshot{}}
}

// Replace atomically installs a new snapshot of both relations. The
// inputs are copied so later caller-side mutation cannot leak into
// readers of the installed snapshot.
func (s *SnapshotStore) Replace(_ context.Context, metricsRel []model.WorkerMetric, events []model.TaskEvent) {
	next := &snapshot{
		workerMetrics: append([]model.WorkerMetric(nil), metricsRel...),
		taskEvents:    append([]model.TaskEvent(nil), events...),
		segments:      distinctSegments(metricsRel),
		loadedAt:      time.Now(),
	}

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	metrics.UpdateWorkerRecords(len(next.workerMetrics))
	metrics.UpdateTaskEventRecords(len(next.taskEvents))
	metrics.RecordSnapshotReplace()
}

// WorkerMetrics returns the worker-metrics relation in input order.
func (s *SnapshotStore) WorkerMetrics(_ context.Context) []model.WorkerMetric {
	return s.current().workerMetrics
}

// TaskEvents returns the task-events relation in input order.
func (s *SnapshotStore) TaskEvents(_ context.Context) []model.TaskEvent {
	return s.current().taskEvents
}

// Segments returns the distinct performance segments in first-seen order.
func (s *SnapshotStore) Segments(_ context.Context) []string {
	return s.current().segments
}

// Counts returns the sizes of the two relations.
func (s *SnapshotStore) Counts(_ context.Context) (int, int) {
	snap := s.current()
	return len(snap.workerMetrics), len(snap.taskEvents)
}

// LoadedAt returns the install time of the current snapshot; zero if no
// snapshot has been installed yet.
func (s *SnapshotStore) LoadedAt() time.Time {
	return s.current().loadedAt
}

func (s *SnapshotStore) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func distinctSegments(metricsRel []model.WorkerMetric) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 4)
	for _, r := range metricsRel {
		if _, ok := seen[r.Segment]; ok {
			continue
		}
		seen[r.Segment] = struct{}{}
		out = append(out, r.Segment)
	}
	return out
}
