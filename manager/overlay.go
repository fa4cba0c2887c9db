package manager

import (
	"fmt"

	"github.com/anisan-cli/vidman/dom"
	"github.com/anisan-cli/vidman/player"
)

// Overlay element names and classes.
const (
	TagEqualizer   = "i-video-eq"
	TagShim        = "i-video-shim"
	ClassEqualizer = "video-eq"
	ClassEqColumn  = "video-eq-col"
	ClassEqPlaying = "video-eq-play"
	ClassFill      = "fill-content"
	AttrUnpausable = "unpausable"

	equalizerColumns = 4
	equalizerFillers = 2
)

// autoplayControls owns the overlays shown instead of native controls and every subscription that
// only matters while they exist. Both are acquired together and released together.
type autoplayControls struct {
	icon *dom.Element
	shim *dom.Element
	subs []dom.Unlisten
}

func (c *autoplayControls) hold(u dom.Unlisten) {
	c.subs = append(c.subs, u)
}

// release removes both overlays and drops every held subscription.
func (c *autoplayControls) release() {
	c.icon.Remove()
	c.shim.Remove()
	for _, unlisten := range c.subs {
		unlisten()
	}
	c.subs = nil
}

// installAutoplayControls builds the equalizer icon and the click shim, attaches them in the next
// mutate phase, and wires the events they depend on.
func (e *entry) installAutoplayControls() *autoplayControls {
	c := &autoplayControls{
		icon: e.createAutoplayIcon(),
		shim: createShim(),
	}

	e.manager.vsync.Mutate(func() {
		// The user may have interacted before this frame.
		if e.controls != c {
			return
		}
		e.element.AppendChild(c.icon)
		e.element.AppendChild(c.shim)
	})

	c.hold(e.element.Listen(player.EventPlay, func(dom.Event) {
		e.toggleAutoplayIcon(true)
	}))
	c.hold(e.element.Listen(player.EventPause, func(dom.Event) {
		e.toggleAutoplayIcon(false)
	}))
	c.hold(c.shim.ListenOnce(dom.EventClick, func(dom.Event) {
		e.userInteractedWith()
	}))

	return c
}

// toggleAutoplayIcon animates the equalizer while the player is playing.
func (e *entry) toggleAutoplayIcon(playing bool) {
	c := e.controls
	if c == nil {
		return
	}
	e.manager.vsync.Mutate(func() {
		c.icon.ToggleClass(ClassEqPlaying, playing)
	})
}

// createAutoplayIcon builds a purely decorative animated equalizer. Two fillers per column animate at
// different rates to look random.
func (e *entry) createAutoplayIcon() *dom.Element {
	icon := dom.NewElement(TagEqualizer)
	icon.AddClass(ClassEqualizer)

	for i := 1; i <= equalizerColumns; i++ {
		column := dom.NewElement("div")
		column.AddClass(ClassEqColumn)
		for j := 1; j <= equalizerFillers; j++ {
			filler := dom.NewElement("div")
			filler.AddClass(fmt.Sprintf("video-eq-%d-%d", i, j))
			column.AppendChild(filler)
		}
		icon.AppendChild(column)
	}

	if !e.manager.platform.CanPauseAnimations() {
		icon.SetAttribute(AttrUnpausable, "")
	}
	return icon
}

// createShim builds the invisible element covering the player that catches the first click.
func createShim() *dom.Element {
	shim := dom.NewElement(TagShim)
	shim.AddClass(ClassFill)
	return shim
}
