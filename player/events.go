package player

// Element events a player dispatches (or receives) on its element.
const (
	// EventBuilt fires once the player's element is constructed.
	EventBuilt = "built"
	// EventLoad fires once when the player is loaded and can play.
	EventLoad = "load"
	// EventCanPlay fires when enough media is buffered to start playback.
	EventCanPlay = "canplay"
	// EventPlay fires every time playback starts.
	EventPlay = "play"
	// EventPause fires every time playback pauses.
	EventPause = "pause"
	// EventVisibility fires when an external signal suggests visibility may have changed.
	EventVisibility = "visibility"
	// EventUserTap is synthesized by the manager when keyboard focus lands on the player.
	EventUserTap = "user-tap"
)

// Attributes read from a player's element.
const (
	// AttrAutoplay marks a player the manager should coordinate.
	AttrAutoplay = "autoplay"
	// AttrControls marks a player with native controls.
	AttrControls = "controls"
)
