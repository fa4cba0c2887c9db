package tui

import (
	"github.com/anisan-cli/vidman/color"
	"github.com/anisan-cli/vidman/style"
	"github.com/charmbracelet/bubbles/key"
)

// keymap defines the keyboard interactions of the viewer.
type keymap struct {
	quit, forceQuit,
	scrollUp, scrollDown,
	prev, next,
	load, focus, blur, click,
	visibility, tick, releaseProbe,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		scrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		scrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "previous player"),
		),
		next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next player"),
		),
		load: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "load"),
		),
		focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "focus"),
		),
		blur: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "blur"),
		),
		click: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("click shim")),
		),
		visibility: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle document visibility"),
		),
		tick: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "poll tick"),
		),
		releaseProbe: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "release probe"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.scrollDown, k.next, k.click, k.tick, k.showHelp, k.quit}
}

// FullHelp implements help.KeyMap.
func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.scrollUp, k.scrollDown, k.prev, k.next},
		{k.load, k.focus, k.blur, k.click},
		{k.visibility, k.tick, k.releaseProbe},
		{k.showHelp, k.quit, k.forceQuit},
	}
}
