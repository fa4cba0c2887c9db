// Package tui provides the interactive terminal viewer of a simulated page.
package tui

import (
	"github.com/anisan-cli/vidman/sim"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Runner is driven by the viewer; it must not be used elsewhere while the viewer runs.
	Runner *sim.Runner
	// ScrollStep is how far one key press scrolls, in pixels.
	ScrollStep float64
}

// Run initializes and executes the Bubble Tea application loop.
func Run(options *Options) error {
	_, err := tea.NewProgram(newBubble(options), tea.WithAltScreen()).Run()
	return err
}
