// Package learning computes per-worker learning curves: the expanding
// mean of task accuracy over the worker's chronological task sequence.
package learning

import (
	"sort"
	"time"

	"github.com/gigworks/slapulse/internal/domain/model"
	"github.com/gigworks/slapulse/internal/domain/types"
)

// dateLayout is the display format for curve point dates.
const dateLayout = time.DateOnly

// Curve filters events to a single worker, orders them by
// (task_date, task_id), and computes the running mean of accuracy.
// A worker with no events yields an empty curve, not an error.
//
// The ordering is load-bearing: task_id breaks ties within a date so the
// "task sequence" is deterministic for identical input.
func Curve(events []model.TaskEvent, workerID string) []types.CurvePoint {
	mine := make([]model.TaskEvent, 0, len(events))
	for _, ev := range events {
		if ev.WorkerID == workerID {
			mine = append(mine, ev)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		if !mine[i].TaskDate.Equal(mine[j].TaskDate) {
			return mine[i].TaskDate.Before(mine[j].TaskDate)
		}
		return mine[i].TaskID < mine[j].TaskID
	})

	points := make([]types.CurvePoint, len(mine))
	var sum float64
	for i, ev := range mine {
		sum += ev.Accuracy
		points[i] = types.CurvePoint{
			TaskID:             ev.TaskID,
			TaskDate:           ev.TaskDate.Format(dateLayout),
			Accuracy:           ev.Accuracy,
			CumulativeAccuracy: sum / float64(i+1),
		}
	}
	return points
}
