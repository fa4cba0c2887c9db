// Package player defines the capability contract a video player satisfies to be coordinated by the manager.
// Concrete players (native video, embedded iframes, simulated players) live elsewhere; the manager only ever
// holds a Player.
package player

import "github.com/anisan-cli/vidman/dom"

// Player encapsulates the capabilities the manager needs from a video player.
type Player interface {
	// Element returns the element hosting the player. It must never be nil for a registered player.
	Element() *dom.Element

	// SupportsPlatform reports whether the player can play on the current platform at all.
	SupportsPlatform() bool

	// HasAutoplay reports whether the player asked for autoplay.
	HasAutoplay() bool

	// HasControls reports whether the player was configured with visible controls.
	HasControls() bool

	// Play starts playback. isAutoplay is true when the manager, not the user, triggered it.
	Play(isAutoplay bool) error

	// Pause suspends playback.
	Pause() error

	// Mute silences the player.
	Mute() error

	// Unmute restores sound.
	Unmute() error

	// ShowControls displays the player's native controls.
	ShowControls() error

	// HideControls removes the player's native controls.
	HideControls() error

	// IsInViewport reports whether any part of the player intersects the viewport.
	// It only reads layout and must not mutate anything.
	IsInViewport() bool

	// IntersectionChangeEntry returns the current intersection geometry.
	// It only reads layout and must not mutate anything.
	IntersectionChangeEntry() IntersectionChange
}
