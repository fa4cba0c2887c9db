// Package manager coordinates autoplay and visibility for every video player registered in a document.
//
// A Manager admits players that ask for autoplay and can play on the platform, then keeps one entry
// per player. Entries react to load completion, visibility changes measured through vsync, the
// document-wide autoplay probe, and user interaction. All Manager and entry methods run on the loop
// goroutine that Options.Post feeds; only the interaction poll runs elsewhere, and it posts its work.
package manager

import (
	"fmt"
	"sync"
	"time"

	"github.com/anisan-cli/vidman/autoplay"
	"github.com/anisan-cli/vidman/dom"
	"github.com/anisan-cli/vidman/log"
	"github.com/anisan-cli/vidman/metrics"
	"github.com/anisan-cli/vidman/platform"
	"github.com/anisan-cli/vidman/player"
	"github.com/anisan-cli/vidman/vsync"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultVisibilityPercent is the share of a player that must be inside the viewport for it to count as visible.
	DefaultVisibilityPercent = 75

	// DefaultPollInterval is how often the active element is compared with tracked players.
	DefaultPollInterval = 100 * time.Millisecond
)

// Document is the part of the hosting document the manager reads.
type Document interface {
	// ActiveElement returns the focused element, or nil.
	ActiveElement() *dom.Element
	// UserAgent returns the browser user agent string.
	UserAgent() string
}

// Viewport notifies about scrolling and viewport size changes.
type Viewport interface {
	OnScroll(fn func()) dom.Unlisten
	OnChanged(fn func()) dom.Unlisten
}

// Viewer reports whether the document is in the foreground.
type Viewer interface {
	IsVisible() bool
}

// Options wires a Manager to its document.
type Options struct {
	Document Document
	Viewport Viewport
	Viewer   Viewer
	Probe    *autoplay.Probe

	// Post runs a closure on the loop goroutine.
	Post func(func())

	// Vsync defaults to a scheduler posting frames through Post.
	Vsync *vsync.Vsync
	// Clock drives the interaction poll. Defaults to the real clock.
	Clock clockwork.Clock
	// Metrics defaults to metrics on a private registry.
	Metrics *metrics.Metrics

	// Lite disables muted autoplay entirely.
	Lite bool
	// VisibilityPercent defaults to DefaultVisibilityPercent.
	VisibilityPercent float64
	// PollInterval defaults to DefaultPollInterval.
	PollInterval time.Duration
}

// Manager keeps track of all players in a document.
type Manager struct {
	document Document
	viewport Viewport
	viewer   Viewer
	probe    *autoplay.Probe
	post     func(func())
	vsync    *vsync.Vsync
	clock    clockwork.Clock
	metrics  *metrics.Metrics
	platform platform.Platform

	lite              bool
	visibilityPercent float64
	pollInterval      time.Duration

	entries                 []*entry
	scrollListenerInstalled bool

	pollStop  chan struct{}
	pollDone  chan struct{}
	closeOnce sync.Once
}

// New builds a Manager and starts its interaction poll. It panics when a required collaborator is missing.
func New(opts Options) *Manager {
	switch {
	case opts.Document == nil:
		panic("manager: Document is required")
	case opts.Viewport == nil:
		panic("manager: Viewport is required")
	case opts.Viewer == nil:
		panic("manager: Viewer is required")
	case opts.Probe == nil:
		panic("manager: Probe is required")
	case opts.Post == nil:
		panic("manager: Post is required")
	}

	if opts.Vsync == nil {
		opts.Vsync = vsync.New(opts.Post)
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New(prometheus.NewRegistry())
	}
	if opts.VisibilityPercent <= 0 {
		opts.VisibilityPercent = DefaultVisibilityPercent
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	m := &Manager{
		document:          opts.Document,
		viewport:          opts.Viewport,
		viewer:            opts.Viewer,
		probe:             opts.Probe,
		post:              opts.Post,
		vsync:             opts.Vsync,
		clock:             opts.Clock,
		metrics:           opts.Metrics,
		platform:          platform.New(opts.Document.UserAgent()),
		lite:              opts.Lite,
		visibilityPercent: opts.VisibilityPercent,
		pollInterval:      opts.PollInterval,
	}

	m.startInteractionPoll()
	return m
}

// Register starts coordinating p. Players without the autoplay attribute, or that cannot play on this
// platform, are ignored.
func (m *Manager) Register(p player.Player) {
	if p == nil {
		panic("manager: Register called with a nil player")
	}
	element := p.Element()
	if element == nil {
		panic(fmt.Sprintf("manager: player %T has no element", p))
	}

	// Only autoplay players are coordinated for now.
	if !element.HasAttribute(player.AttrAutoplay) {
		m.metrics.Registered(metrics.RejectedNoAutoplay)
		log.Debugf("manager: ignoring %s without %s", element.Tag(), player.AttrAutoplay)
		return
	}

	if !p.SupportsPlatform() {
		m.metrics.Registered(metrics.RejectedUnsupported)
		log.Debugf("manager: ignoring %s unsupported on this platform", element.Tag())
		return
	}

	e := newEntry(m, len(m.entries), p)
	m.installVisibilityObserver(e)
	m.entries = append(m.entries, e)

	m.metrics.Registered(metrics.Accepted)
	log.WithField("entry", e.id).Infof("manager: tracking %s (autoplay=%t)", element.Tag(), e.hasAutoplay)
}

// Len returns the number of tracked players.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Metrics returns the metrics the manager reports to.
func (m *Manager) Metrics() *metrics.Metrics {
	return m.metrics
}

// Close stops the interaction poll. Tracked entries stay as they are.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.pollStop)
		<-m.pollDone
	})
}

// installVisibilityObserver re-measures e when its element signals a visibility change, and installs
// the document-wide scroll listener the first time it is needed.
func (m *Manager) installVisibilityObserver(e *entry) {
	e.element.Listen(player.EventVisibility, func(dom.Event) {
		e.updateVisibility()
	})

	if m.scrollListenerInstalled {
		return
	}

	scrollListener := func() {
		for _, tracked := range m.entries {
			tracked.updateVisibility()
		}
	}
	m.viewport.OnScroll(scrollListener)
	m.viewport.OnChanged(scrollListener)
	m.scrollListenerInstalled = true
}
