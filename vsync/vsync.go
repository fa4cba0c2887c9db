// Package vsync batches layout reads and writes into frames.
//
// Every frame first runs all pending measure callbacks, then all pending mutate callbacks, so reads
// of many players never interleave with writes. A callback that panics is logged and skipped; the
// other callbacks of the frame still run.
package vsync

import (
	"github.com/anisan-cli/vidman/log"
)

// Task pairs a read-only measure phase with a mutate phase. Either may be nil.
type Task struct {
	Measure func()
	Mutate  func()
}

// Vsync schedules frames through a poster, typically loop.Loop.Post.
// It is not safe for concurrent use; call it from the loop goroutine.
type Vsync struct {
	post      func(func())
	tasks     []Task
	scheduled bool
	frames    int
}

// New returns a Vsync that schedules each frame with post.
func New(post func(func())) *Vsync {
	return &Vsync{post: post}
}

// Run queues a task for the next frame.
func (v *Vsync) Run(task Task) {
	v.tasks = append(v.tasks, task)
	v.schedule()
}

// Measure queues a read-only callback for the next frame.
func (v *Vsync) Measure(fn func()) {
	v.Run(Task{Measure: fn})
}

// Mutate queues a write callback for the next frame.
func (v *Vsync) Mutate(fn func()) {
	v.Run(Task{Mutate: fn})
}

// RunWithState queues a task whose phases share a scratch value of type S.
// The measure phase fills the scratch value; the mutate phase consumes it.
func RunWithState[S any](v *Vsync, measure func(*S), mutate func(*S)) {
	state := new(S)
	v.Run(Task{
		Measure: func() { measure(state) },
		Mutate:  func() { mutate(state) },
	})
}

// Pending returns the number of tasks waiting for the next frame.
func (v *Vsync) Pending() int {
	return len(v.tasks)
}

// Frames returns the number of frames flushed so far.
func (v *Vsync) Frames() int {
	return v.frames
}

func (v *Vsync) schedule() {
	if v.scheduled {
		return
	}
	v.scheduled = true
	v.post(v.flush)
}

// flush runs one frame. Tasks queued while flushing land in the next frame.
func (v *Vsync) flush() {
	tasks := v.tasks
	v.tasks = nil
	v.scheduled = false
	v.frames++

	for _, task := range tasks {
		if task.Measure != nil {
			invoke("measure", task.Measure)
		}
	}
	for _, task := range tasks {
		if task.Mutate != nil {
			invoke("mutate", task.Mutate)
		}
	}
}

func invoke(phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("vsync: %s callback panicked: %v", phase, r)
		}
	}()
	fn()
}
