// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/anisan-cli/vidman/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// Get retrieves the visual representation for the receiver Def based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}

// Icon identifies a symbol in the global registry.
type Icon int

// Registered symbols.
const (
	Success Icon = iota
	Fail
	Playing
	Paused
	Muted
	Sound
	Controls
	Visible
	Hidden
	Interacted
	Equalizer
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "\uF00C",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💥",
		nerd:    "\uF00D",
		plain:   "✖",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Playing: {
		emoji:   "▶️",
		nerd:    "\uF04B",
		plain:   "▶",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Paused: {
		emoji:   "⏸️",
		nerd:    "\uF04C",
		plain:   "‖",
		kaomoji: "(－_－) zzZ",
		squares: "⬜",
	},
	Muted: {
		emoji:   "🔇",
		nerd:    "\uF6A9",
		plain:   "m",
		kaomoji: "(・_・;)",
		squares: "⬛",
	},
	Sound: {
		emoji:   "🔊",
		nerd:    "\uF028",
		plain:   "♪",
		kaomoji: "ヽ(♪∀♪)ノ",
		squares: "🟨",
	},
	Controls: {
		emoji:   "🎛️",
		nerd:    "\uF1DE",
		plain:   "c",
		kaomoji: "(⌐■_■)",
		squares: "🟦",
	},
	Visible: {
		emoji:   "👀",
		nerd:    "\uF06E",
		plain:   "o",
		kaomoji: "(◕‿◕)",
		squares: "🟩",
	},
	Hidden: {
		emoji:   "🙈",
		nerd:    "\uF070",
		plain:   "-",
		kaomoji: "(-_-)",
		squares: "⬛",
	},
	Interacted: {
		emoji:   "👆",
		nerd:    "\uF25A",
		plain:   "*",
		kaomoji: "(☞ﾟヮﾟ)☞",
		squares: "🟪",
	},
	Equalizer: {
		emoji:   "🎶",
		nerd:    "\uF001",
		plain:   "≡",
		kaomoji: "♪(´ε` )",
		squares: "🟧",
	},
}
