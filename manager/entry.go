package manager

import (
	"github.com/anisan-cli/vidman/dom"
	"github.com/anisan-cli/vidman/log"
	"github.com/anisan-cli/vidman/player"
	"github.com/anisan-cli/vidman/vsync"
	"github.com/sirupsen/logrus"
)

// Capability call names, used for logging and metrics.
const (
	actionPlay         = "play"
	actionPause        = "pause"
	actionMute         = "mute"
	actionUnmute       = "unmute"
	actionShowControls = "show_controls"
	actionHideControls = "hide_controls"
)

// entry is the state machine of one tracked player.
type entry struct {
	id      int
	manager *Manager
	player  player.Player
	element *dom.Element

	hasAutoplay    bool
	loaded         bool
	visible        bool
	userInteracted bool

	// mutedByAutoplay records that the entry, not the page, muted the player.
	mutedByAutoplay bool

	// controls is non-nil while autoplay suppresses the player's native controls.
	controls *autoplayControls
}

// visibilityMeasure is the scratch state written by the measure phase.
type visibilityMeasure struct {
	visible bool
}

func newEntry(m *Manager, id int, p player.Player) *entry {
	e := &entry{
		id:          id,
		manager:     m,
		player:      p,
		element:     p.Element(),
		hasAutoplay: p.HasAutoplay(),
	}

	e.element.ListenOnce(player.EventLoad, func(dom.Event) {
		e.videoLoaded()
	})
	e.element.Listen(player.EventUserTap, func(dom.Event) {
		e.userInteractedWith()
	})

	// Players are registered once built.
	e.videoBuilt()
	return e
}

// videoBuilt runs once, when the entry is created.
func (e *entry) videoBuilt() {
	e.updateVisibility()
	if e.hasAutoplay {
		e.autoplayVideoBuilt()
	}
}

// videoLoaded handles the load event. A player that became visible before loading is acted upon now.
func (e *entry) videoLoaded() {
	e.loaded = true
	e.logger().Debug("loaded")

	if e.visible {
		e.loadedVideoVisibilityChanged()
	}
}

// videoVisibilityChanged is a no-op until the player is loaded.
func (e *entry) videoVisibilityChanged() {
	if e.loaded {
		e.loadedVideoVisibilityChanged()
	}
}

func (e *entry) loadedVideoVisibilityChanged() {
	if e.hasAutoplay {
		e.autoplayLoadedVideoVisibilityChanged()
	}
}

// autoplayVideoBuilt negotiates autoplay for a freshly built player.
func (e *entry) autoplayVideoBuilt() {
	// Hide controls while the probe is pending; when autoplay is supported, the common case, showing
	// then hiding them would flicker.
	e.act(actionHideControls, e.player.HideControls)

	e.manager.probe.Supports(e.manager.lite).Then(func(supported bool) {
		if !supported {
			e.logger().Info("muted autoplay unsupported, restoring controls")
			e.act(actionShowControls, e.player.ShowControls)
			return
		}

		if e.userInteracted {
			e.act(actionShowControls, e.player.ShowControls)
			return
		}

		// Only muted video may autoplay.
		e.act(actionMute, e.player.Mute)
		e.mutedByAutoplay = true

		if !e.player.HasControls() {
			return
		}

		e.act(actionHideControls, e.player.HideControls)
		e.controls = e.installAutoplayControls()
	})
}

// autoplayLoadedVideoVisibilityChanged plays a visible player and pauses a hidden one.
func (e *entry) autoplayLoadedVideoVisibilityChanged() {
	e.manager.metrics.Evaluated()

	if e.userInteracted || !e.manager.viewer.IsVisible() {
		return
	}

	e.manager.probe.Supports(e.manager.lite).Then(func(supported bool) {
		if !supported || e.userInteracted {
			return
		}

		if e.visible {
			e.act(actionPlay, func() error { return e.player.Play(true) })
		} else {
			e.act(actionPause, e.player.Pause)
		}
	})
}

// userInteractedWith hands the player back to the user. It runs at most once per entry.
func (e *entry) userInteractedWith() {
	if e.userInteracted {
		return
	}
	e.userInteracted = true
	e.manager.metrics.Interacted()
	e.logger().Info("user interacted, autoplay management released")

	controls := e.controls
	e.controls = nil

	if controls != nil {
		e.act(actionShowControls, e.player.ShowControls)
	}
	if e.mutedByAutoplay {
		e.act(actionUnmute, e.player.Unmute)
		e.mutedByAutoplay = false
	}
	if controls != nil {
		controls.release()
	}
}

// updateVisibility re-measures the player in the next frame. The measure phase only reads layout; the
// mutate phase compares the result with the stored state and reacts to a change.
func (e *entry) updateVisibility() {
	vsync.RunWithState(e.manager.vsync,
		func(s *visibilityMeasure) {
			s.visible = e.measureVisibility()
		},
		func(s *visibilityMeasure) {
			if s.visible == e.visible {
				return
			}
			e.visible = s.visible
			e.manager.metrics.VisibilityChanged(s.visible)
			e.logger().Debugf("visible=%t", s.visible)
			e.videoVisibilityChanged()
		},
	)
}

// measureVisibility reports whether enough of the player is inside the viewport.
func (e *entry) measureVisibility() bool {
	if !e.player.IsInViewport() {
		return false
	}
	change := e.player.IntersectionChangeEntry()
	return change.VisiblePercent() >= e.manager.visibilityPercent
}

// act issues a capability call without waiting on it; failures are logged and otherwise ignored.
func (e *entry) act(action string, call func() error) {
	e.manager.metrics.Acted(action)
	if err := call(); err != nil {
		e.logger().Warnf("%s: %v", action, err)
	}
}

func (e *entry) logger() *logrus.Entry {
	return log.WithField("entry", e.id)
}

// State returns a snapshot of the entry.
func (e *entry) State() EntryState {
	return EntryState{
		ID:             e.id,
		Player:         e.player,
		HasAutoplay:    e.hasAutoplay,
		Loaded:         e.loaded,
		Visible:        e.visible,
		UserInteracted: e.userInteracted,
		Overlays:       e.controls != nil,
	}
}
