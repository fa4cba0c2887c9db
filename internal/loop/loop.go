// Package loop provides the single goroutine every coordinator callback runs on.
//
// Other goroutines never touch coordinator state directly; they Post closures and the loop runs them
// one at a time, in order. A task that panics is logged and dropped so it cannot take down the tasks
// queued behind it.
package loop

import (
	"context"
	"sync"

	"github.com/anisan-cli/vidman/log"
)

// Loop is a FIFO task queue drained by a single goroutine.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
	ran   int
}

// New returns an idle loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post enqueues fn. It is safe to call from any goroutine, including from inside a task.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Ran returns the number of tasks executed so far.
func (l *Loop) Ran() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ran
}

// Drain runs queued tasks on the calling goroutine until the queue is empty, including tasks posted
// while draining. It returns the number of tasks run.
// Drain must not be called concurrently with Run.
func (l *Loop) Drain() int {
	n := 0
	for {
		fn, ok := l.next()
		if !ok {
			return n
		}
		l.exec(fn)
		n++
	}
}

// Await blocks until at least one task is queued or ctx is done.
func (l *Loop) Await(ctx context.Context) error {
	for {
		if l.Pending() > 0 {
			return nil
		}
		select {
		case <-l.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Run drains tasks as they arrive until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-l.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	l.ran++
	return fn, true
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("loop: task panicked: %v", r)
		}
	}()
	fn()
}
