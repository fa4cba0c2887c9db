package autoplay

import (
	"context"
	"sync"

	"github.com/samber/mo"
)

// Result is a one-shot boolean answer. Callbacks are always delivered through the poster, never
// synchronously, so callers observe the same ordering whether or not the answer was cached.
type Result struct {
	post func(func())

	mu        sync.Mutex
	value     mo.Option[bool]
	callbacks []func(bool)
	done      chan struct{}
}

func newResult(post func(func())) *Result {
	return &Result{post: post, done: make(chan struct{})}
}

func settled(post func(func()), v bool) *Result {
	r := newResult(post)
	r.value = mo.Some(v)
	close(r.done)
	return r
}

// Then registers fn to receive the answer on the poster.
func (r *Result) Then(fn func(bool)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.value.Get(); ok {
		r.post(func() { fn(v) })
		return
	}
	r.callbacks = append(r.callbacks, fn)
}

// Value returns the answer if it is already known.
func (r *Result) Value() mo.Option[bool] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Wait blocks until the answer is known or ctx is done.
func (r *Result) Wait(ctx context.Context) (bool, error) {
	select {
	case <-r.done:
		return r.Value().MustGet(), nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (r *Result) settle(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.value = mo.Some(v)
	for _, fn := range r.callbacks {
		r.post(func() { fn(v) })
	}
	r.callbacks = nil
	close(r.done)
}
