package vsync

import (
	"testing"

	"github.com/anisan-cli/vidman/internal/loop"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVsync(t *testing.T) {
	Convey("Given a vsync scheduling on a loop", t, func() {
		l := loop.New()
		v := New(l.Post)
		var trace []string

		Convey("All measures of a frame run before any mutate", func() {
			for _, name := range []string{"a", "b", "c"} {
				v.Run(Task{
					Measure: func() { trace = append(trace, "measure "+name) },
					Mutate:  func() { trace = append(trace, "mutate "+name) },
				})
			}

			So(l.Pending(), ShouldEqual, 1)
			l.Drain()

			So(trace, ShouldResemble, []string{
				"measure a", "measure b", "measure c",
				"mutate a", "mutate b", "mutate c",
			})
			So(v.Frames(), ShouldEqual, 1)
		})

		Convey("Tasks queued during a frame run in the next frame", func() {
			v.Mutate(func() {
				trace = append(trace, "first")
				v.Measure(func() { trace = append(trace, "second") })
			})
			l.Drain()

			So(trace, ShouldResemble, []string{"first", "second"})
			So(v.Frames(), ShouldEqual, 2)
			So(v.Pending(), ShouldEqual, 0)
		})

		Convey("RunWithState hands the measured value to the mutate phase", func() {
			type scratch struct{ visible bool }
			var seen bool

			RunWithState(v, func(s *scratch) {
				s.visible = true
			}, func(s *scratch) {
				seen = s.visible
			})
			l.Drain()

			So(seen, ShouldBeTrue)
		})

		Convey("A panicking callback does not stop the frame", func() {
			v.Run(Task{Measure: func() { panic("layout") }, Mutate: func() { trace = append(trace, "a") }})
			v.Mutate(func() { trace = append(trace, "b") })

			So(func() { l.Drain() }, ShouldNotPanic)
			So(trace, ShouldResemble, []string{"a", "b"})
		})
	})
}
