// Package autoplay answers, once per probe, whether the platform lets muted video start without a user gesture.
//
// Detection never fetches media. It asks the platform for a muted, inline, zero-size, invisible
// playback surface, calls Play on it and checks whether the surface left the paused state. Callers
// that ask while a detection is running share that detection; later callers get the cached answer.
package autoplay

import (
	"sync"
	"sync/atomic"

	"github.com/anisan-cli/vidman/log"
	"github.com/samber/mo"
	"golang.org/x/sync/singleflight"
)

const flightKey = "muted-autoplay"

// SurfaceOptions describes the playback surface used for detection.
type SurfaceOptions struct {
	Muted       bool
	PlaysInline bool
	Width       int
	Height      int
	Opacity     float64
	Position    string
}

// DetectionSurface is the configuration every detection uses.
var DetectionSurface = SurfaceOptions{
	Muted:       true,
	PlaysInline: true,
	Width:       0,
	Height:      0,
	Opacity:     0,
	Position:    "fixed",
}

// Surface is a playback surface that may or may not be attached to the document.
type Surface interface {
	// Play attempts to start playback.
	Play() error
	// Paused reports whether the surface is paused.
	Paused() bool
}

// SurfaceFactory builds a detection surface. Returning an error means detection cannot run.
type SurfaceFactory func(SurfaceOptions) (Surface, error)

// Probe caches the muted-autoplay answer for one document.
type Probe struct {
	factory SurfaceFactory
	post    func(func())

	group      singleflight.Group
	deliveries sync.WaitGroup

	mu     sync.Mutex
	cached mo.Option[bool]

	detections atomic.Int64
}

// NewProbe returns a probe building surfaces with factory and delivering answers through post.
func NewProbe(factory SurfaceFactory, post func(func())) *Probe {
	return &Probe{factory: factory, post: post}
}

// Supports returns the eventual answer. In a lite viewer the answer is false without detection.
func (p *Probe) Supports(lite bool) *Result {
	p.mu.Lock()
	if v, ok := p.cached.Get(); ok {
		p.mu.Unlock()
		return settled(p.post, v)
	}
	if lite {
		p.cached = mo.Some(false)
		p.mu.Unlock()
		log.Debugf("autoplay: lite viewer, skipping detection")
		return settled(p.post, false)
	}
	p.mu.Unlock()

	r := newResult(p.post)
	ch := p.group.DoChan(flightKey, p.resolve)

	p.deliveries.Add(1)
	go func() {
		defer p.deliveries.Done()
		res := <-ch
		r.settle(res.Val.(bool))
	}()

	return r
}

// Cached returns the cached answer, if any.
func (p *Probe) Cached() mo.Option[bool] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cached
}

// Detections returns how many times detection actually ran.
func (p *Probe) Detections() int {
	return int(p.detections.Load())
}

// Flush blocks until every answer requested so far has been delivered to the poster.
// It must not be called from the goroutine that drains the poster while a detection is blocked on it.
func (p *Probe) Flush() {
	p.deliveries.Wait()
}

// ResetForTesting forgets the cached answer so the next Supports detects again.
func (p *Probe) ResetForTesting() {
	p.mu.Lock()
	p.cached = mo.None[bool]()
	p.mu.Unlock()
	p.group.Forget(flightKey)
}

// resolve runs inside the single flight; it re-checks the cache because a previous flight may have
// finished between the caller's cache miss and joining this one.
func (p *Probe) resolve() (any, error) {
	p.mu.Lock()
	if v, ok := p.cached.Get(); ok {
		p.mu.Unlock()
		return v, nil
	}
	p.mu.Unlock()

	supported := p.detect()

	p.mu.Lock()
	p.cached = mo.Some(supported)
	p.mu.Unlock()

	log.Infof("autoplay: muted autoplay supported: %t", supported)
	return supported, nil
}

func (p *Probe) detect() (supported bool) {
	p.detections.Add(1)

	defer func() {
		if r := recover(); r != nil {
			log.Warnf("autoplay: detection panicked: %v", r)
			supported = false
		}
	}()

	if p.factory == nil {
		log.Warnf("autoplay: no surface factory, assuming unsupported")
		return false
	}

	surface, err := p.factory(DetectionSurface)
	if err != nil {
		log.Warnf("autoplay: create detection surface: %v", err)
		return false
	}

	// A rejected play leaves the surface paused.
	if err := surface.Play(); err != nil {
		log.Debugf("autoplay: detection play rejected: %v", err)
	}

	return !surface.Paused()
}
