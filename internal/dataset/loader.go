// Package dataset loads the two input relations from CSV files into
// typed records, rejecting malformed rows at the boundary so the
// aggregation engines only ever see validated data.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gigworks/slapulse/internal/domain/model"
)

// dateLayout is the calendar-date format of the task_date column.
const dateLayout = time.DateOnly

// Warning records a non-fatal data-quality finding surfaced during load.
type Warning struct {
	WorkerID string
	Message  string
}

// workerMetricColumns are the required headers of the worker-metrics relation.
var workerMetricColumns = []string{
	"worker_id", "performance_segment", "sla_pct", "avg_accuracy",
	"total_tasks", "days_sla_met", "days_sla_not_met",
}

// taskEventColumns are the required headers of the task-events relation.
var taskEventColumns = []string{"worker_id", "task_id", "task_date", "accuracy"}

// LoadWorkerMetrics reads the worker-metrics relation from path.
// Rows with negative counts, out-of-range percentages, or duplicate
// worker ids fail the load; inconsistent SLA day counts come back as
// warnings so callers can surface them without dropping the dataset.
func LoadWorkerMetrics(ctx context.Context, path string) ([]model.WorkerMetric, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open worker metrics: %w", err)
	}
	defer f.Close()
	return ReadWorkerMetrics(ctx, f)
}

// ReadWorkerMetrics parses the worker-metrics relation from r.
func ReadWorkerMetrics(ctx context.Context, r io.Reader) ([]model.WorkerMetric, []Warning, error) {
	rows, cols, err := readAll(r, workerMetricColumns)
	if err != nil {
		return nil, nil, err
	}

	records := make([]model.WorkerMetric, 0, len(rows))
	warnings := make([]Warning, 0)
	seen := make(map[string]struct{}, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		line := i + 2 // header is line 1

		id := row[cols["worker_id"]]
		if id == "" {
			return nil, nil, fmt.Errorf("line %d: empty worker_id: %w", line, ErrMalformedRecord)
		}
		if _, dup := seen[id]; dup {
			return nil, nil, fmt.Errorf("line %d: worker %q: %w", line, id, ErrDuplicateWorker)
		}
		seen[id] = struct{}{}

		slaPct, err := parseFloat(row[cols["sla_pct"]], line, "sla_pct")
		if err != nil {
			return nil, nil, err
		}
		if slaPct < 0 || slaPct > 100 {
			return nil, nil, fmt.Errorf("line %d: sla_pct %v not in [0,100]: %w", line, slaPct, ErrValueOutOfRange)
		}
		avgAcc, err := parseFloat(row[cols["avg_accuracy"]], line, "avg_accuracy")
		if err != nil {
			return nil, nil, err
		}
		totalTasks, err := parseCount(row[cols["total_tasks"]], line, "total_tasks")
		if err != nil {
			return nil, nil, err
		}
		daysMet, err := parseCount(row[cols["days_sla_met"]], line, "days_sla_met")
		if err != nil {
			return nil, nil, err
		}
		daysNotMet, err := parseCount(row[cols["days_sla_not_met"]], line, "days_sla_not_met")
		if err != nil {
			return nil, nil, err
		}

		// The source does not record total observed days, so full
		// consistency cannot be checked here. A worker with completed
		// tasks but zero observed SLA days is still worth flagging.
		if totalTasks > 0 && daysMet+daysNotMet == 0 {
			warnings = append(warnings, Warning{
				WorkerID: id,
				Message:  "worker has completed tasks but zero observed SLA days",
			})
		}

		records = append(records, model.WorkerMetric{
			WorkerID:      id,
			Segment:       row[cols["performance_segment"]],
			SLAPct:        slaPct,
			AvgAccuracy:   avgAcc,
			TotalTasks:    totalTasks,
			DaysSLAMet:    daysMet,
			DaysSLANotMet: daysNotMet,
		})
	}
	return records, warnings, nil
}

// LoadTaskEvents reads the task-events relation from path.
func LoadTaskEvents(ctx context.Context, path string) ([]model.TaskEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open task events: %w", err)
	}
	defer f.Close()
	return ReadTaskEvents(ctx, f)
}

// ReadTaskEvents parses the task-events relation from r.
func ReadTaskEvents(ctx context.Context, r io.Reader) ([]model.TaskEvent, error) {
	rows, cols, err := readAll(r, taskEventColumns)
	if err != nil {
		return nil, err
	}

	events := make([]model.TaskEvent, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := i + 2

		id := row[cols["worker_id"]]
		if id == "" {
			return nil, fmt.Errorf("line %d: empty worker_id: %w", line, ErrMalformedRecord)
		}
		taskID, err := strconv.ParseInt(row[cols["task_id"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: task_id: %w", line, ErrMalformedRecord)
		}
		date, err := time.Parse(dateLayout, row[cols["task_date"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: task_date: %w", line, ErrMalformedRecord)
		}
		accuracy, err := parseFloat(row[cols["accuracy"]], line, "accuracy")
		if err != nil {
			return nil, err
		}

		events = append(events, model.TaskEvent{
			WorkerID: id,
			TaskID:   taskID,
			TaskDate: date,
			Accuracy: accuracy,
		})
	}
	return events, nil
}

// readAll consumes the CSV, resolves required headers to indexes, and
// returns the data rows.
func readAll(r io.Reader, required []string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty input: %w", ErrMalformedRecord)
	}

	cols := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("%q: %w", name, ErrMissingColumn)
		}
	}
	return all[1:], cols, nil
}

func parseFloat(s string, line int, column string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", line, column, ErrMalformedRecord)
	}
	return v, nil
}

func parseCount(s string, line int, column string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", line, column, ErrMalformedRecord)
	}
	if v < 0 {
		return 0, fmt.Errorf("line %d: %s is negative: %w", line, column, ErrValueOutOfRange)
	}
	return v, nil
}
