package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoop(t *testing.T) {
	Convey("Given a loop", t, func() {
		l := New()
		var order []int

		Convey("Drain runs tasks in post order, including tasks posted by tasks", func() {
			l.Post(func() {
				order = append(order, 1)
				l.Post(func() { order = append(order, 3) })
			})
			l.Post(func() { order = append(order, 2) })

			So(l.Pending(), ShouldEqual, 2)
			So(l.Drain(), ShouldEqual, 3)
			So(order, ShouldResemble, []int{1, 2, 3})
			So(l.Pending(), ShouldEqual, 0)
			So(l.Ran(), ShouldEqual, 3)
		})

		Convey("A panicking task does not stop the queue", func() {
			l.Post(func() { panic("boom") })
			l.Post(func() { order = append(order, 1) })

			So(func() { l.Drain() }, ShouldNotPanic)
			So(order, ShouldResemble, []int{1})
		})

		Convey("Await returns once a task is posted from another goroutine", func() {
			go func() {
				time.Sleep(10 * time.Millisecond)
				l.Post(func() {})
			}()

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			So(l.Await(ctx), ShouldBeNil)
			So(l.Pending(), ShouldEqual, 1)
		})

		Convey("Await honours cancellation", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()
			So(errors.Is(l.Await(ctx), context.DeadlineExceeded), ShouldBeTrue)
		})

		Convey("Run executes posted tasks until cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			l.Post(func() { close(done) })

			errc := make(chan error, 1)
			go func() { errc <- l.Run(ctx) }()

			select {
			case <-done:
			case <-time.After(time.Second):
			}
			cancel()
			So(<-errc, ShouldEqual, context.Canceled)
		})
	})
}
