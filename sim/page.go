// Package sim is an in-memory document for running the coordinator without a browser.
//
// A Page lays players out vertically, scrolls and resizes its viewport, tracks focus and foreground
// state, and records every capability call the coordinator issues. The scenario runner and the
// terminal viewer are built on it.
package sim

import (
	"fmt"

	"github.com/anisan-cli/vidman/dom"
	"github.com/anisan-cli/vidman/player"
	"github.com/samber/lo"
)

const (
	eventScroll  = "scroll"
	eventChanged = "changed"
)

// Call is one capability call recorded on a video.
type Call struct {
	Video  string
	Action string
}

func (c Call) String() string {
	return fmt.Sprintf("%s.%s", c.Video, c.Action)
}

// Page implements the document, viewport and viewer the manager needs.
type Page struct {
	body *dom.Element
	hub  *dom.Element

	userAgent  string
	width      float64
	height     float64
	scrollTop  float64
	foreground bool
	active     *dom.Element

	videos []*Video
	calls  []Call
	onCall func(Call)
}

// NewPage returns a foreground page with an empty body and a viewport of width x height.
func NewPage(userAgent string, width, height float64) *Page {
	return &Page{
		body:       dom.NewElement("body"),
		hub:        dom.NewElement("viewport"),
		userAgent:  userAgent,
		width:      width,
		height:     height,
		foreground: true,
	}
}

// Body returns the root element.
func (p *Page) Body() *dom.Element { return p.body }

// UserAgent implements manager.Document.
func (p *Page) UserAgent() string { return p.userAgent }

// ActiveElement implements manager.Document.
func (p *Page) ActiveElement() *dom.Element { return p.active }

// IsVisible implements manager.Viewer.
func (p *Page) IsVisible() bool { return p.foreground }

// OnScroll implements manager.Viewport.
func (p *Page) OnScroll(fn func()) dom.Unlisten {
	return p.hub.Listen(eventScroll, func(dom.Event) { fn() })
}

// OnChanged implements manager.Viewport.
func (p *Page) OnChanged(fn func()) dom.Unlisten {
	return p.hub.Listen(eventChanged, func(dom.Event) { fn() })
}

// ScrollTo moves the top of the viewport to y, clamped to the page.
func (p *Page) ScrollTo(y float64) {
	p.scrollTop = lo.Clamp(y, 0, p.maxScroll())
	p.hub.Dispatch(eventScroll, p.scrollTop)
}

// ScrollBy moves the viewport by dy.
func (p *Page) ScrollBy(dy float64) {
	p.ScrollTo(p.scrollTop + dy)
}

// Resize changes the viewport size.
func (p *Page) Resize(width, height float64) {
	p.width, p.height = width, height
	p.scrollTop = lo.Clamp(p.scrollTop, 0, p.maxScroll())
	p.hub.Dispatch(eventChanged, nil)
}

// Focus makes el the active element.
func (p *Page) Focus(el *dom.Element) { p.active = el }

// Blur clears the active element.
func (p *Page) Blur() { p.active = nil }

// SetForeground moves the page to the foreground or the background.
func (p *Page) SetForeground(foreground bool) { p.foreground = foreground }

// ScrollTop returns the current scroll offset.
func (p *Page) ScrollTop() float64 { return p.scrollTop }

// Size returns the viewport size.
func (p *Page) Size() (width, height float64) { return p.width, p.height }

// ContentHeight returns the bottom edge of the lowest video.
func (p *Page) ContentHeight() float64 {
	return lo.Reduce(p.videos, func(h float64, v *Video, _ int) float64 {
		return max(h, v.box.Bottom())
	}, 0)
}

// Videos returns the videos in insertion order.
func (p *Page) Videos() []*Video { return p.videos }

// Video finds a video by id.
func (p *Page) Video(id string) (*Video, bool) {
	return lo.Find(p.videos, func(v *Video) bool { return v.id == id })
}

// Calls returns every capability call recorded so far.
func (p *Page) Calls() []Call { return p.calls }

// OnCall sets a hook invoked for every recorded call.
func (p *Page) OnCall(fn func(Call)) { p.onCall = fn }

func (p *Page) record(c Call) {
	p.calls = append(p.calls, c)
	if p.onCall != nil {
		p.onCall(c)
	}
}

func (p *Page) maxScroll() float64 {
	return max(0, p.ContentHeight()-p.height)
}

// viewportRect returns the viewport in page coordinates.
func (p *Page) viewportRect() player.Rect {
	return player.Rect{Top: p.scrollTop, Width: p.width, Height: p.height}
}
