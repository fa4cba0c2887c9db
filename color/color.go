// Package color names the terminal colors used by the CLI and the viewer.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors. Playback calls use green and yellow, audio purple, controls cyan.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

// High-intensity variants.
var (
	HiRed    = New("9")
	HiGreen  = New("10")
	HiPurple = New("13")
)

// Orange highlights the primary key binding of the viewer.
var Orange = New("#ffb703")
