package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/gigworks/slapulse/internal/app"
	"github.com/gigworks/slapulse/internal/domain/model"
	"github.com/gigworks/slapulse/pkg/logger"
)

const workerMetricsCSV = `worker_id,performance_segment,sla_pct,avg_accuracy,total_tasks,days_sla_met,days_sla_not_met
W1,Top Performer,95.0,0.92,100,27,3
W2,Mid Performer,80.0,0.85,50,18,12
W3,Low Performer,55.0,0.70,30,6,24
W4,Top Performer,91.0,0.90,20,25,5
`

const taskEventsCSV = `worker_id,task_id,task_date,accuracy
W1,1,2024-01-01,0.8
W1,2,2024-01-02,0.6
W1,3,2024-01-03,1.0
W2,4,2024-01-01,0.7
`

func startedService(t *testing.T) *service.Service {
	t.Helper()
	logger.Init()

	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "worker_metrics.csv")
	eventsPath := filepath.Join(dir, "task_events.csv")
	if err := os.WriteFile(metricsPath, []byte(workerMetricsCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(eventsPath, []byte(taskEventsCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	svc := service.New(
		service.WithDatasetPaths(metricsPath, eventsPath),
		service.WithMaxRankingLimit(100),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given relation files on disk", t, func() {
		svc := startedService(t)

		Convey("When the service has started", func() {
			stats := svc.GetStats()

			Convey("Then the initial snapshot is loaded", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["workerRecords"], ShouldEqual, 4)
				So(stats["taskEventRecords"], ShouldEqual, 4)
			})
		})

		Convey("When starting twice", func() {
			Convey("Then the second start is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a missing relation file", t, func() {
		logger.Init()
		svc := service.New(
			service.WithDatasetPaths("/nonexistent/metrics.csv", "/nonexistent/events.csv"),
		)

		Convey("When starting", func() {
			err := svc.Start(ctx)

			Convey("Then the initial load fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := startedService(t)

		Convey("When computing KPIs with no selector", func() {
			out := svc.KPIs(ctx, nil)

			Convey("Then all workers are counted", func() {
				So(out.TotalWorkers, ShouldEqual, 4)
				So(out.TopPerformerCount, ShouldEqual, 2)
				So(*out.AvgSLAPct, ShouldEqual, 80.25)
			})
		})

		Convey("When computing KPIs with an empty non-nil selector", func() {
			out := svc.KPIs(ctx, []string{})

			Convey("Then nothing is selected", func() {
				So(out.TotalWorkers, ShouldEqual, 0)
				So(out.AvgSLAPct, ShouldBeNil)
			})
		})

		Convey("When computing KPIs for one segment", func() {
			out := svc.KPIs(ctx, []string{model.SegmentTop})

			Convey("Then only that segment contributes", func() {
				So(out.TotalWorkers, ShouldEqual, 2)
				So(*out.AvgSLAPct, ShouldEqual, 93.0)
			})
		})

		Convey("When ranking with no limit", func() {
			ranked := svc.Ranking(ctx, nil, 0)

			Convey("Then the full descending sequence comes back", func() {
				So(ranked, ShouldHaveLength, 4)
				So(ranked[0].WorkerID, ShouldEqual, "W1")
				So(ranked[1].WorkerID, ShouldEqual, "W4")
				So(ranked[3].WorkerID, ShouldEqual, "W3")
			})
		})

		Convey("When ranking with a limit", func() {
			ranked := svc.Ranking(ctx, nil, 2)

			Convey("Then the sequence is truncated after ranking", func() {
				So(ranked, ShouldHaveLength, 2)
				So(ranked[0].Rank, ShouldEqual, 1)
				So(ranked[1].WorkerID, ShouldEqual, "W4")
			})
		})

		Convey("When running the Pareto analysis", func() {
			table := svc.Pareto(ctx, nil)

			Convey("Then totals and cutoff follow the snapshot", func() {
				So(table.TotalTaskSum, ShouldEqual, 200)
				So(table.CutoffIndex, ShouldEqual, 0)
				So(table.Rows[0].WorkerID, ShouldEqual, "W1")
			})
		})

		Convey("When fetching a learning curve", func() {
			curve := svc.LearningCurve(ctx, "W1")

			Convey("Then the expanding mean runs over that worker's tasks", func() {
				So(curve, ShouldHaveLength, 3)
				So(curve[2].CumulativeAccuracy, ShouldAlmostEqual, 0.8)
			})
		})

		Convey("When fetching a curve for an unknown worker", func() {
			Convey("Then the curve is empty", func() {
				So(svc.LearningCurve(ctx, "W99"), ShouldBeEmpty)
			})
		})

		Convey("When listing segments", func() {
			Convey("Then they come back distinct in first-seen order", func() {
				So(svc.Segments(ctx), ShouldResemble, []string{
					model.SegmentTop, model.SegmentMid, model.SegmentLow,
				})
			})
		})

		Convey("When listing workers for a segment", func() {
			Convey("Then ids keep input order", func() {
				So(svc.Workers(ctx, []string{model.SegmentTop}), ShouldResemble,
					[]string{"W1", "W4"})
				So(svc.Workers(ctx, nil), ShouldHaveLength, 4)
			})
		})
	})
}

func TestService_Reload(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		logger.Init()
		dir := t.TempDir()
		metricsPath := filepath.Join(dir, "worker_metrics.csv")
		eventsPath := filepath.Join(dir, "task_events.csv")
		So(os.WriteFile(metricsPath, []byte(workerMetricsCSV), 0o600), ShouldBeNil)
		So(os.WriteFile(eventsPath, []byte(taskEventsCSV), 0o600), ShouldBeNil)

		svc := service.New(service.WithDatasetPaths(metricsPath, eventsPath))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When the file shrinks and the service reloads", func() {
			shrunk := `worker_id,performance_segment,sla_pct,avg_accuracy,total_tasks,days_sla_met,days_sla_not_met
W9,Mid Performer,70.0,0.8,10,15,15
`
			So(os.WriteFile(metricsPath, []byte(shrunk), 0o600), ShouldBeNil)
			So(svc.Reload(ctx), ShouldBeNil)

			Convey("Then queries see the new snapshot", func() {
				So(svc.KPIs(ctx, nil).TotalWorkers, ShouldEqual, 1)
				So(svc.Segments(ctx), ShouldResemble, []string{model.SegmentMid})
			})
		})

		Convey("When the file becomes malformed and the reload fails", func() {
			So(os.WriteFile(metricsPath, []byte("worker_id\nW1\n"), 0o600), ShouldBeNil)

			Convey("Then the previous snapshot stays live", func() {
				So(svc.Reload(ctx), ShouldNotBeNil)
				So(svc.KPIs(ctx, nil).TotalWorkers, ShouldEqual, 4)
			})
		})
	})
}
