package learning_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gigworks/slapulse/internal/domain/learning"
	"github.com/gigworks/slapulse/internal/domain/model"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCurve(t *testing.T) {
	Convey("Given task events for a single worker", t, func() {
		events := []model.TaskEvent{
			{WorkerID: "W1", TaskID: 1, TaskDate: day("2024-01-01"), Accuracy: 0.8},
			{WorkerID: "W1", TaskID: 2, TaskDate: day("2024-01-02"), Accuracy: 0.6},
			{WorkerID: "W1", TaskID: 3, TaskDate: day("2024-01-03"), Accuracy: 1.0},
		}

		Convey("When computing the learning curve", func() {
			curve := learning.Curve(events, "W1")

			Convey("Then the expanding mean runs over the prefix", func() {
				So(curve, ShouldHaveLength, 3)
				So(curve[0].CumulativeAccuracy, ShouldEqual, 0.8)
				So(curve[1].CumulativeAccuracy, ShouldAlmostEqual, 0.7)
				So(curve[2].CumulativeAccuracy, ShouldAlmostEqual, 0.8)
			})

			Convey("And each point keeps its own task accuracy and date", func() {
				So(curve[1].TaskID, ShouldEqual, 2)
				So(curve[1].Accuracy, ShouldEqual, 0.6)
				So(curve[1].TaskDate, ShouldEqual, "2024-01-02")
			})
		})
	})

	Convey("Given events arriving out of chronological order", t, func() {
		events := []model.TaskEvent{
			{WorkerID: "W1", TaskID: 3, TaskDate: day("2024-01-03"), Accuracy: 1.0},
			{WorkerID: "W1", TaskID: 1, TaskDate: day("2024-01-01"), Accuracy: 0.8},
			{WorkerID: "W1", TaskID: 2, TaskDate: day("2024-01-02"), Accuracy: 0.6},
		}

		Convey("When computing the curve", func() {
			curve := learning.Curve(events, "W1")

			Convey("Then points are ordered by date before averaging", func() {
				So(curve[0].TaskID, ShouldEqual, 1)
				So(curve[1].TaskID, ShouldEqual, 2)
				So(curve[2].TaskID, ShouldEqual, 3)
				So(curve[2].CumulativeAccuracy, ShouldAlmostEqual, 0.8)
			})
		})
	})

	Convey("Given two events on the same date", t, func() {
		events := []model.TaskEvent{
			{WorkerID: "W1", TaskID: 7, TaskDate: day("2024-02-01"), Accuracy: 0.5},
			{WorkerID: "W1", TaskID: 4, TaskDate: day("2024-02-01"), Accuracy: 0.9},
		}

		Convey("When computing the curve", func() {
			curve := learning.Curve(events, "W1")

			Convey("Then the lower task id breaks the tie", func() {
				So(curve[0].TaskID, ShouldEqual, 4)
				So(curve[1].TaskID, ShouldEqual, 7)
				So(curve[1].CumulativeAccuracy, ShouldAlmostEqual, 0.7)
			})
		})
	})

	Convey("Given events for several workers", t, func() {
		events := []model.TaskEvent{
			{WorkerID: "W1", TaskID: 1, TaskDate: day("2024-01-01"), Accuracy: 0.8},
			{WorkerID: "W2", TaskID: 2, TaskDate: day("2024-01-01"), Accuracy: 0.2},
			{WorkerID: "W1", TaskID: 3, TaskDate: day("2024-01-02"), Accuracy: 0.4},
		}

		Convey("When computing one worker's curve", func() {
			curve := learning.Curve(events, "W1")

			Convey("Then other workers' tasks never contribute", func() {
				So(curve, ShouldHaveLength, 2)
				So(curve[1].CumulativeAccuracy, ShouldAlmostEqual, 0.6)
			})
		})

		Convey("When the worker id is unknown", func() {
			Convey("Then the curve is empty", func() {
				So(learning.Curve(events, "W9"), ShouldBeEmpty)
			})
		})

		Convey("When the input set is empty", func() {
			Convey("Then the curve is empty", func() {
				So(learning.Curve(nil, "W1"), ShouldBeEmpty)
			})
		})
	})

	Convey("Given a single event", t, func() {
		events := []model.TaskEvent{
			{WorkerID: "W1", TaskID: 1, TaskDate: day("2024-01-01"), Accuracy: 0.55},
		}

		Convey("When computing the curve", func() {
			curve := learning.Curve(events, "W1")

			Convey("Then the expanding mean equals the single accuracy", func() {
				So(curve, ShouldHaveLength, 1)
				So(curve[0].CumulativeAccuracy, ShouldEqual, 0.55)
			})
		})
	})

	Convey("Given any input slice", t, func() {
		events := []model.TaskEvent{
			{WorkerID: "W1", TaskID: 2, TaskDate: day("2024-01-02"), Accuracy: 0.6},
			{WorkerID: "W1", TaskID: 1, TaskDate: day("2024-01-01"), Accuracy: 0.8},
		}

		Convey("When computing a curve", func() {
			_ = learning.Curve(events, "W1")

			Convey("Then the caller's slice order is untouched", func() {
				So(events[0].TaskID, ShouldEqual, 2)
				So(events[1].TaskID, ShouldEqual, 1)
			})
		})
	})
}
