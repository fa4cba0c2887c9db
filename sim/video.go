package sim

import (
	"errors"
	"fmt"

	"github.com/anisan-cli/vidman/dom"
	"github.com/anisan-cli/vidman/manager"
	"github.com/anisan-cli/vidman/player"
)

// ErrPlayRejected is returned by Play when the video is configured to refuse playback.
var ErrPlayRejected = errors.New("play request was rejected")

// TagVideo is the element tag of simulated players.
const TagVideo = "sim-video"

// VideoOptions places and configures a video on a page.
type VideoOptions struct {
	ID          string
	Top         float64
	Left        float64
	Width       float64
	Height      float64
	Autoplay    bool
	Controls    bool
	Unsupported bool
	RejectPlay  bool
}

// Video is a player.Player backed by an element of a Page.
type Video struct {
	id      string
	page    *Page
	element *dom.Element
	box     player.Rect

	supported  bool
	rejectPlay bool

	loaded       bool
	playing      bool
	muted        bool
	showControls bool
}

// AddVideo appends a video to the page body.
func (p *Page) AddVideo(opts VideoOptions) *Video {
	if opts.ID == "" {
		opts.ID = fmt.Sprintf("video-%d", len(p.videos)+1)
	}
	if opts.Width <= 0 {
		opts.Width = p.width
	}

	v := &Video{
		id:           opts.ID,
		page:         p,
		element:      dom.NewElement(TagVideo),
		box:          player.Rect{Left: opts.Left, Top: opts.Top, Width: opts.Width, Height: opts.Height},
		supported:    !opts.Unsupported,
		rejectPlay:   opts.RejectPlay,
		showControls: opts.Controls,
	}
	v.element.SetAttribute("id", opts.ID)
	if opts.Autoplay {
		v.element.SetAttribute(player.AttrAutoplay, "")
	}
	if opts.Controls {
		v.element.SetAttribute(player.AttrControls, "")
	}

	p.body.AppendChild(v.element)
	p.videos = append(p.videos, v)
	v.element.Dispatch(player.EventBuilt, nil)
	return v
}

// ID returns the video id.
func (v *Video) ID() string { return v.id }

// Element implements player.Player.
func (v *Video) Element() *dom.Element { return v.element }

// SupportsPlatform implements player.Player.
func (v *Video) SupportsPlatform() bool { return v.supported }

// HasAutoplay implements player.Player.
func (v *Video) HasAutoplay() bool { return v.element.HasAttribute(player.AttrAutoplay) }

// HasControls implements player.Player.
func (v *Video) HasControls() bool { return v.element.HasAttribute(player.AttrControls) }

// Play implements player.Player.
func (v *Video) Play(isAutoplay bool) error {
	v.record(fmt.Sprintf("play(autoplay=%t)", isAutoplay))
	if v.rejectPlay {
		return ErrPlayRejected
	}
	if v.playing {
		return nil
	}
	v.playing = true
	v.element.Dispatch(player.EventPlay, nil)
	return nil
}

// Pause implements player.Player.
func (v *Video) Pause() error {
	v.record("pause")
	if !v.playing {
		return nil
	}
	v.playing = false
	v.element.Dispatch(player.EventPause, nil)
	return nil
}

// Mute implements player.Player.
func (v *Video) Mute() error {
	v.record("mute")
	v.muted = true
	return nil
}

// Unmute implements player.Player.
func (v *Video) Unmute() error {
	v.record("unmute")
	v.muted = false
	return nil
}

// ShowControls implements player.Player.
func (v *Video) ShowControls() error {
	v.record("showControls")
	v.showControls = true
	return nil
}

// HideControls implements player.Player.
func (v *Video) HideControls() error {
	v.record("hideControls")
	v.showControls = false
	return nil
}

// IsInViewport implements player.Player.
func (v *Video) IsInViewport() bool {
	return v.box.Intersect(v.page.viewportRect()).Area() > 0
}

// IntersectionChangeEntry implements player.Player. Rectangles are relative to the viewport.
func (v *Video) IntersectionChangeEntry() player.IntersectionChange {
	viewport := v.page.viewportRect()
	bounding := v.box
	bounding.Top -= viewport.Top
	viewport.Top = 0

	return player.IntersectionChange{
		IntersectionRect:   bounding.Intersect(viewport),
		BoundingClientRect: bounding,
	}
}

// Load marks the video loaded and dispatches the load event.
func (v *Video) Load() {
	v.loaded = true
	v.element.Dispatch(player.EventLoad, nil)
}

// Shim returns the click shim the coordinator placed over the video, if any.
func (v *Video) Shim() (*dom.Element, bool) {
	return v.element.Find(func(e *dom.Element) bool { return e.Tag() == manager.TagShim })
}

// Equalizer returns the autoplay icon the coordinator placed over the video, if any.
func (v *Video) Equalizer() (*dom.Element, bool) {
	return v.element.Find(func(e *dom.Element) bool { return e.Tag() == manager.TagEqualizer })
}

// ClickShim clicks the shim and reports whether there was one.
func (v *Video) ClickShim() bool {
	shim, ok := v.Shim()
	if ok {
		shim.Dispatch(dom.EventClick, nil)
	}
	return ok
}

// Box returns the layout box in page coordinates.
func (v *Video) Box() player.Rect { return v.box }

// Loaded reports whether Load was called.
func (v *Video) Loaded() bool { return v.loaded }

// Playing reports whether the video is playing.
func (v *Video) Playing() bool { return v.playing }

// Muted reports whether the video is muted.
func (v *Video) Muted() bool { return v.muted }

// ControlsShown reports whether native controls are visible.
func (v *Video) ControlsShown() bool { return v.showControls }

// VisiblePercent returns how much of the video is inside the viewport.
func (v *Video) VisiblePercent() float64 {
	return v.IntersectionChangeEntry().VisiblePercent()
}

func (v *Video) record(action string) {
	v.page.record(Call{Video: v.id, Action: action})
}
