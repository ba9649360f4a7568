package seed_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gigworks/slapulse/internal/dataset"
	"github.com/gigworks/slapulse/internal/seed"
	"github.com/gigworks/slapulse/pkg/logger"
)

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	logger.Init()

	Convey("Given a generation config", t, func() {
		cfg := seed.NewConfig(
			seed.WithWorkers(5),
			seed.WithTasksPerWorker(10),
			seed.WithSeed(7),
		)

		Convey("When generating the relations", func() {
			workerMetrics, taskEvents, err := seed.Generate(ctx, cfg)

			Convey("Then both relations have the configured cardinality", func() {
				So(err, ShouldBeNil)
				So(workerMetrics, ShouldHaveLength, 5)
				So(taskEvents, ShouldHaveLength, 50)
			})

			Convey("And every worker metric is within the loader's bounds", func() {
				seenIDs := make(map[string]bool)
				for _, m := range workerMetrics {
					So(m.WorkerID, ShouldNotBeEmpty)
					So(seenIDs[m.WorkerID], ShouldBeFalse)
					seenIDs[m.WorkerID] = true
					So(m.SLAPct, ShouldBeBetweenOrEqual, 0, 100)
					So(m.AvgAccuracy, ShouldBeBetweenOrEqual, 0, 1)
					So(m.TotalTasks, ShouldEqual, 10)
					So(m.DaysSLAMet, ShouldBeGreaterThanOrEqualTo, 0)
					So(m.DaysSLANotMet, ShouldBeGreaterThanOrEqualTo, 0)
				}
			})

			Convey("And events reference generated workers with valid accuracy", func() {
				known := make(map[string]bool, len(workerMetrics))
				for _, m := range workerMetrics {
					known[m.WorkerID] = true
				}
				for _, ev := range taskEvents {
					So(known[ev.WorkerID], ShouldBeTrue)
					So(ev.Accuracy, ShouldBeBetweenOrEqual, 0, 1)
					So(ev.TaskDate.Before(cfg.StartDate), ShouldBeFalse)
				}
			})

			Convey("And task ids are unique across the relation", func() {
				seen := make(map[int64]bool, len(taskEvents))
				for _, ev := range taskEvents {
					So(seen[ev.TaskID], ShouldBeFalse)
					seen[ev.TaskID] = true
				}
			})
		})

		Convey("When generating twice with the same seed", func() {
			first, firstEvents, err := seed.Generate(ctx, cfg)
			So(err, ShouldBeNil)
			second, secondEvents, err := seed.Generate(ctx, cfg)
			So(err, ShouldBeNil)

			Convey("Then the output is identical", func() {
				So(second, ShouldResemble, first)
				So(secondEvents, ShouldResemble, firstEvents)
			})
		})

		Convey("When generating with a different seed", func() {
			first, _, err := seed.Generate(ctx, cfg)
			So(err, ShouldBeNil)
			other, _, err := seed.Generate(ctx, seed.NewConfig(
				seed.WithWorkers(5),
				seed.WithTasksPerWorker(10),
				seed.WithSeed(8),
			))
			So(err, ShouldBeNil)

			Convey("Then the output differs", func() {
				So(other, ShouldNotResemble, first)
			})
		})
	})

	Convey("Given default config values", t, func() {
		cfg := seed.NewConfig()

		Convey("Then the defaults are populated", func() {
			So(cfg.Workers, ShouldEqual, 25)
			So(cfg.TasksPerWorker, ShouldEqual, 40)
			So(cfg.Seed, ShouldEqual, 42)
			So(cfg.StartDate, ShouldEqual, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		})
	})
}

func TestWriteCSVs(t *testing.T) {
	ctx := context.Background()
	logger.Init()

	Convey("Given generated relations", t, func() {
		workerMetrics, taskEvents, err := seed.Generate(ctx, seed.NewConfig(
			seed.WithWorkers(3),
			seed.WithTasksPerWorker(4),
		))
		So(err, ShouldBeNil)

		Convey("When writing them to disk and loading them back", func() {
			dir := t.TempDir()
			metricsPath := filepath.Join(dir, "worker_metrics.csv")
			eventsPath := filepath.Join(dir, "task_events.csv")
			So(seed.WriteCSVs(ctx, metricsPath, eventsPath, workerMetrics, taskEvents), ShouldBeNil)

			loadedMetrics, warnings, err := dataset.LoadWorkerMetrics(ctx, metricsPath)
			So(err, ShouldBeNil)
			loadedEvents, err := dataset.LoadTaskEvents(ctx, eventsPath)
			So(err, ShouldBeNil)

			Convey("Then the loader accepts the generated files as-is", func() {
				So(loadedMetrics, ShouldHaveLength, 3)
				So(loadedEvents, ShouldHaveLength, 12)
				So(warnings, ShouldBeEmpty)
			})

			Convey("And worker ids survive the round trip in order", func() {
				for i, m := range loadedMetrics {
					So(m.WorkerID, ShouldEqual, workerMetrics[i].WorkerID)
				}
			})
		})
	})
}
