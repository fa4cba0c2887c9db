package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anisan-cli/vidman/autoplay"
	"github.com/anisan-cli/vidman/dom"
	"github.com/anisan-cli/vidman/internal/loop"
	"github.com/anisan-cli/vidman/metrics"
	"github.com/anisan-cli/vidman/player"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

const desktopChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type fakePlayer struct {
	element    *dom.Element
	supported  bool
	autoplay   bool
	controls   bool
	inViewport bool
	change     player.IntersectionChange
	calls      []string
	panicky    bool
}

func newFakePlayer(autoplay, controls bool) *fakePlayer {
	p := &fakePlayer{
		element:   dom.NewElement("fake-video"),
		supported: true,
		autoplay:  autoplay,
		controls:  controls,
	}
	if autoplay {
		p.element.SetAttribute(player.AttrAutoplay, "")
	}
	if controls {
		p.element.SetAttribute(player.AttrControls, "")
	}
	return p
}

// setVisiblePercent places the player so that percent of its 100x100 box is inside the viewport.
func (p *fakePlayer) setVisiblePercent(percent float64) {
	p.inViewport = percent > 0
	p.change = player.IntersectionChange{
		IntersectionRect:   player.Rect{Width: 100, Height: percent},
		BoundingClientRect: player.Rect{Width: 100, Height: 100},
	}
}

func (p *fakePlayer) record(call string) error {
	p.calls = append(p.calls, call)
	return nil
}

func (p *fakePlayer) count(call string) int {
	n := 0
	for _, c := range p.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (p *fakePlayer) Element() *dom.Element  { return p.element }
func (p *fakePlayer) SupportsPlatform() bool { return p.supported }
func (p *fakePlayer) HasAutoplay() bool      { return p.autoplay }
func (p *fakePlayer) HasControls() bool      { return p.controls }

func (p *fakePlayer) Play(isAutoplay bool) error {
	p.element.Dispatch(player.EventPlay, nil)
	return p.record(fmt.Sprintf("play(%t)", isAutoplay))
}

func (p *fakePlayer) Pause() error {
	p.element.Dispatch(player.EventPause, nil)
	return p.record("pause")
}

func (p *fakePlayer) Mute() error         { return p.record("mute") }
func (p *fakePlayer) Unmute() error       { return p.record("unmute") }
func (p *fakePlayer) ShowControls() error { return p.record("showControls") }
func (p *fakePlayer) HideControls() error { return p.record("hideControls") }

func (p *fakePlayer) IsInViewport() bool {
	if p.panicky {
		panic("layout unavailable")
	}
	return p.inViewport
}

func (p *fakePlayer) IntersectionChangeEntry() player.IntersectionChange {
	return p.change
}

type fakeDocument struct {
	active    *dom.Element
	userAgent string
}

func (d *fakeDocument) ActiveElement() *dom.Element { return d.active }
func (d *fakeDocument) UserAgent() string           { return d.userAgent }

type fakeViewport struct {
	hub *dom.Element
}

func (v *fakeViewport) OnScroll(fn func()) dom.Unlisten {
	return v.hub.Listen("scroll", func(dom.Event) { fn() })
}

func (v *fakeViewport) OnChanged(fn func()) dom.Unlisten {
	return v.hub.Listen("changed", func(dom.Event) { fn() })
}

func (v *fakeViewport) scroll() {
	v.hub.Dispatch("scroll", nil)
}

type fakeViewer struct {
	visible bool
}

func (v *fakeViewer) IsVisible() bool { return v.visible }

type fakeSurface struct {
	allowed bool
	paused  bool
}

func (s *fakeSurface) Play() error {
	if !s.allowed {
		return errors.New("NotAllowedError")
	}
	s.paused = false
	return nil
}

func (s *fakeSurface) Paused() bool { return s.paused }

type harnessOptions struct {
	allowed   bool
	gated     bool
	lite      bool
	userAgent string
}

type harness struct {
	loop     *loop.Loop
	probe    *autoplay.Probe
	document *fakeDocument
	viewport *fakeViewport
	viewer   *fakeViewer
	clock    clockwork.FakeClock
	manager  *Manager
	release  chan struct{}
}

func newHarness(opts harnessOptions) *harness {
	h := &harness{
		loop:     loop.New(),
		document: &fakeDocument{userAgent: opts.userAgent},
		viewport: &fakeViewport{hub: dom.NewElement("viewport")},
		viewer:   &fakeViewer{visible: true},
		clock:    clockwork.NewFakeClock(),
		release:  make(chan struct{}),
	}
	if h.document.userAgent == "" {
		h.document.userAgent = desktopChrome
	}
	if !opts.gated {
		close(h.release)
	}

	h.probe = autoplay.NewProbe(func(autoplay.SurfaceOptions) (autoplay.Surface, error) {
		<-h.release
		return &fakeSurface{allowed: opts.allowed, paused: true}, nil
	}, h.loop.Post)

	h.manager = New(Options{
		Document: h.document,
		Viewport: h.viewport,
		Viewer:   h.viewer,
		Probe:    h.probe,
		Post:     h.loop.Post,
		Clock:    h.clock,
		Metrics:  metrics.New(prometheus.NewRegistry()),
		Lite:     opts.lite,
	})
	return h
}

// settle delivers every pending probe answer and runs the loop until it is idle.
func (h *harness) settle() {
	for {
		h.probe.Flush()
		if h.loop.Drain() == 0 {
			return
		}
	}
}

// resolve lets a gated detection finish, then settles.
func (h *harness) resolve() {
	close(h.release)
	h.settle()
}

// tick fires the interaction poll once and settles.
func (h *harness) tick() {
	h.clock.BlockUntil(1)
	h.clock.Advance(DefaultPollInterval)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = h.loop.Await(ctx)
	h.settle()
}

func (h *harness) scrollTo(p *fakePlayer, percent float64) {
	p.setVisiblePercent(percent)
	h.viewport.scroll()
	h.settle()
}

func overlaysOf(p *fakePlayer) (icon, shim *dom.Element) {
	for _, child := range p.element.Children() {
		switch child.Tag() {
		case TagEqualizer:
			icon = child
		case TagShim:
			shim = child
		}
	}
	return icon, shim
}
