package style

import (
	"strings"

	"github.com/anisan-cli/vidman/color"
)

// Action renders a capability call name in the color of its effect.
func Action(action string) string {
	name, _, _ := strings.Cut(action, "(")
	switch name {
	case "play":
		return Fg(color.Green)(action)
	case "pause":
		return Fg(color.Yellow)(action)
	case "mute", "unmute":
		return Fg(color.Purple)(action)
	case "showControls", "hideControls":
		return Fg(color.Cyan)(action)
	default:
		return action
	}
}

// Flag renders a boolean state as its name, faint when off.
func Flag(name string, on bool) string {
	if on {
		return Fg(color.HiGreen)(name)
	}
	return Faint(name)
}

// Step renders a scenario step header.
func Step(s string) string {
	return Fg(color.HiPurple)("> ") + Bold(s)
}
