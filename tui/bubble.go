package tui

import (
	"fmt"
	"strings"

	"github.com/anisan-cli/vidman/color"
	"github.com/anisan-cli/vidman/icon"
	"github.com/anisan-cli/vidman/manager"
	"github.com/anisan-cli/vidman/player"
	"github.com/anisan-cli/vidman/sim"
	"github.com/anisan-cli/vidman/style"
	"github.com/anisan-cli/vidman/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
)

const (
	defaultScrollStep = 120
	traceLines        = 8
)

// bubble is the viewer model. Every action goes through the runner on the bubbletea goroutine.
type bubble struct {
	runner     *sim.Runner
	keymap     *keymap
	help       help.Model
	notice     notification
	scrollStep float64

	selected int
	err      error

	width, height int
}

func newBubble(options *Options) *bubble {
	step := options.ScrollStep
	if step <= 0 {
		step = defaultScrollStep
	}
	return &bubble{
		runner:     options.Runner,
		keymap:     newKeymap(),
		help:       help.New(),
		scrollStep: step,
	}
}

// Init implements tea.Model.
func (b *bubble) Init() tea.Cmd {
	return notify(fmt.Sprintf("tracking %s", util.Quantify(b.runner.Manager().Len(), "player", "players")))
}

// Update implements tea.Model.
func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.help.Width = msg.Width
		return b, nil
	case tea.KeyMsg:
		return b, b.handleKey(msg)
	}
	return b, b.notice.update(msg)
}

func (b *bubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	videos := b.runner.Page().Videos()
	current := videos[b.selected]

	switch {
	case key.Matches(msg, b.keymap.quit, b.keymap.forceQuit):
		return tea.Quit
	case key.Matches(msg, b.keymap.showHelp):
		b.help.ShowAll = !b.help.ShowAll
		return nil
	case key.Matches(msg, b.keymap.prev):
		b.selected = (b.selected - 1 + len(videos)) % len(videos)
		return nil
	case key.Matches(msg, b.keymap.next):
		b.selected = (b.selected + 1) % len(videos)
		return nil
	case key.Matches(msg, b.keymap.scrollUp):
		return b.apply(sim.Step{Action: sim.ActionScrollBy, Value: -b.scrollStep})
	case key.Matches(msg, b.keymap.scrollDown):
		return b.apply(sim.Step{Action: sim.ActionScrollBy, Value: b.scrollStep})
	case key.Matches(msg, b.keymap.load):
		return b.apply(sim.Step{Action: sim.ActionLoad, Target: current.ID()})
	case key.Matches(msg, b.keymap.focus):
		return b.apply(sim.Step{Action: sim.ActionFocus, Target: current.ID()})
	case key.Matches(msg, b.keymap.blur):
		return b.apply(sim.Step{Action: sim.ActionBlur})
	case key.Matches(msg, b.keymap.click):
		return b.apply(sim.Step{Action: sim.ActionClickShim, Target: current.ID()})
	case key.Matches(msg, b.keymap.visibility):
		if b.runner.Page().IsVisible() {
			return b.apply(sim.Step{Action: sim.ActionHideDocument})
		}
		return b.apply(sim.Step{Action: sim.ActionShowDocument})
	case key.Matches(msg, b.keymap.tick):
		return b.apply(sim.Step{Action: sim.ActionTick})
	case key.Matches(msg, b.keymap.releaseProbe):
		return b.apply(sim.Step{Action: sim.ActionReleaseProbe})
	}
	return nil
}

// apply runs step and reports how many calls it caused.
func (b *bubble) apply(step sim.Step) tea.Cmd {
	before := len(b.runner.Page().Calls())
	if err := b.runner.Apply(step); err != nil {
		b.err = err
		return notify(err.Error())
	}
	b.err = nil

	calls := len(b.runner.Page().Calls()) - before
	return notify(fmt.Sprintf("%s: %s", step, util.Quantify(calls, "call", "calls")))
}

// View implements tea.Model.
func (b *bubble) View() string {
	page := b.runner.Page()
	width, height := page.Size()

	header := style.Title(b.runner.Scenario().Name) + " " + style.Faint(fmt.Sprintf(
		"scroll %.0f  viewport %.0fx%.0f  document %s",
		page.ScrollTop(), width, height, lo.Ternary(page.IsVisible(), "visible", "hidden"),
	))

	var lines []string
	lines = append(lines, header, "")
	lines = append(lines, b.viewPlayers()...)
	lines = append(lines, "", style.Bold("Recent calls"))
	lines = append(lines, b.viewTrace()...)
	lines = append(lines, "", b.notice.view(), b.help.View(b.keymap))

	if b.width > 0 {
		lines = lo.Map(lines, func(l string, _ int) string {
			return truncate.String(l, uint(b.width))
		})
	}
	return strings.Join(lines, "\n")
}

func (b *bubble) viewPlayers() []string {
	entries := lo.SliceToMap(b.runner.Manager().Entries(), func(e manager.EntryState) (player.Player, manager.EntryState) {
		return e.Player, e
	})

	return lo.Map(b.runner.Page().Videos(), func(v *sim.Video, i int) string {
		cursor := "  "
		if i == b.selected {
			cursor = style.Fg(color.HiPurple)("▸ ")
		}

		state := icon.Get(icon.Paused)
		if v.Playing() {
			state = icon.Get(icon.Playing)
		}
		sound := icon.Get(icon.Sound)
		if v.Muted() {
			sound = icon.Get(icon.Muted)
		}

		line := fmt.Sprintf("%s%s %s %-12s %5.1f%%", cursor, state, sound, v.ID(), v.VisiblePercent())

		e, tracked := entries[v]
		if !tracked {
			return line + " " + style.Faint("not tracked")
		}
		marks := []string{lo.Ternary(e.Visible, icon.Get(icon.Visible), icon.Get(icon.Hidden))}
		if e.Overlays {
			marks = append(marks, icon.Get(icon.Equalizer))
		}
		if v.ControlsShown() {
			marks = append(marks, icon.Get(icon.Controls))
		}
		if e.UserInteracted {
			marks = append(marks, icon.Get(icon.Interacted))
		}

		return line + " " + lipgloss.JoinHorizontal(lipgloss.Top,
			strings.Join(marks, " "), "  ",
			style.Flag("loaded", e.Loaded), " ",
			style.Flag("visible", e.Visible), " ",
			style.Flag("interacted", e.UserInteracted), " ",
			style.Flag("overlays", e.Overlays),
		)
	})
}

func (b *bubble) viewTrace() []string {
	calls := lo.Filter(b.runner.Trace(), func(e sim.Event, _ int) bool {
		return e.Kind == sim.KindCall
	})
	if len(calls) > traceLines {
		calls = calls[len(calls)-traceLines:]
	}
	if len(calls) == 0 {
		return []string{style.Faint("  none yet")}
	}
	return lo.Map(calls, func(e sim.Event, _ int) string {
		return fmt.Sprintf("  %s %s", style.Faint(e.Video), style.Action(e.Detail))
	})
}
