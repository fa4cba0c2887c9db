package sim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anisan-cli/vidman/filesystem"
	"github.com/anisan-cli/vidman/key"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Step actions.
const (
	ActionScroll       = "scroll"
	ActionScrollBy     = "scroll-by"
	ActionResize       = "resize"
	ActionLoad         = "load"
	ActionFocus        = "focus"
	ActionBlur         = "blur"
	ActionClickShim    = "click-shim"
	ActionHideDocument = "hide-document"
	ActionShowDocument = "show-document"
	ActionVisibility   = "visibility"
	ActionTick         = "tick"
	ActionReleaseProbe = "release-probe"
)

// Actions lists every step action.
var Actions = []string{
	ActionScroll,
	ActionScrollBy,
	ActionResize,
	ActionLoad,
	ActionFocus,
	ActionBlur,
	ActionClickShim,
	ActionHideDocument,
	ActionShowDocument,
	ActionVisibility,
	ActionTick,
	ActionReleaseProbe,
}

var targeted = []string{ActionLoad, ActionFocus, ActionClickShim, ActionVisibility}

var (
	ErrNoPlayers        = errors.New("scenario has no players")
	ErrDuplicatePlayer  = errors.New("duplicate player id")
	ErrUnknownAction    = errors.New("unknown action")
	ErrUnknownTarget    = errors.New("unknown target")
	ErrMissingTarget    = errors.New("action requires a target")
	ErrBadViewport      = errors.New("viewport must have a positive size")
	ErrScenarioNotFound = errors.New("scenario not found")
)

// Viewport is the initial viewport size.
type Viewport struct {
	Width  float64 `mapstructure:"width" json:"width" jsonschema:"minimum=1,default=1280"`
	Height float64 `mapstructure:"height" json:"height" jsonschema:"minimum=1,default=720"`
}

// PlayerSpec declares one video on the page.
type PlayerSpec struct {
	ID          string  `mapstructure:"id" json:"id" jsonschema:"required,description=Unique name used as step target"`
	Top         float64 `mapstructure:"top" json:"top" jsonschema:"description=Offset of the top edge from the top of the page"`
	Left        float64 `mapstructure:"left" json:"left,omitempty"`
	Width       float64 `mapstructure:"width" json:"width,omitempty" jsonschema:"description=Defaults to the viewport width"`
	Height      float64 `mapstructure:"height" json:"height" jsonschema:"required,minimum=0"`
	Autoplay    bool    `mapstructure:"autoplay" json:"autoplay,omitempty"`
	Controls    bool    `mapstructure:"controls" json:"controls,omitempty"`
	Unsupported bool    `mapstructure:"unsupported" json:"unsupported,omitempty" jsonschema:"description=The player cannot play on this platform"`
	RejectPlay  bool    `mapstructure:"reject_play" json:"reject_play,omitempty" jsonschema:"description=Every play request fails"`
}

// Step is one user or platform action.
type Step struct {
	Action string  `mapstructure:"action" json:"action" jsonschema:"required,enum=scroll,enum=scroll-by,enum=resize,enum=load,enum=focus,enum=blur,enum=click-shim,enum=hide-document,enum=show-document,enum=visibility,enum=tick,enum=release-probe"`
	Target string  `mapstructure:"target" json:"target,omitempty" jsonschema:"description=Player id of a targeted action"`
	Value  float64 `mapstructure:"value" json:"value,omitempty" jsonschema:"description=Scroll offset or delta; number of poll ticks for tick"`
	Width  float64 `mapstructure:"width" json:"width,omitempty"`
	Height float64 `mapstructure:"height" json:"height,omitempty"`
}

func (s Step) String() string {
	switch s.Action {
	case ActionScroll, ActionScrollBy:
		return fmt.Sprintf("%s %g", s.Action, s.Value)
	case ActionResize:
		return fmt.Sprintf("%s %gx%g", s.Action, s.Width, s.Height)
	case ActionTick:
		return fmt.Sprintf("%s x%d", s.Action, s.Ticks())
	}
	if s.Target != "" {
		return fmt.Sprintf("%s %s", s.Action, s.Target)
	}
	return s.Action
}

// Ticks returns how many poll intervals a tick step advances, at least one.
func (s Step) Ticks() int {
	return max(1, int(s.Value))
}

// Scenario is a page, a platform policy and a sequence of steps.
type Scenario struct {
	Name            string       `mapstructure:"name" json:"name,omitempty"`
	UserAgent       string       `mapstructure:"user_agent" json:"user_agent,omitempty"`
	AutoplayAllowed bool         `mapstructure:"autoplay_allowed" json:"autoplay_allowed" jsonschema:"description=Whether the platform lets muted inline video autoplay"`
	FailSurface     bool         `mapstructure:"fail_surface" json:"fail_surface,omitempty" jsonschema:"description=Detection surface creation fails"`
	HoldProbe       bool         `mapstructure:"hold_probe" json:"hold_probe,omitempty" jsonschema:"description=Keep detection pending until a release-probe step"`
	Lite            bool         `mapstructure:"lite" json:"lite,omitempty"`
	Viewport        Viewport     `mapstructure:"viewport" json:"viewport"`
	Players         []PlayerSpec `mapstructure:"players" json:"players" jsonschema:"required,minItems=1"`
	Steps           []Step       `mapstructure:"steps" json:"steps,omitempty"`
}

// LoadScenario reads a scenario file. The format follows the extension: toml, yaml or json.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetFs(filesystem.API())
	v.SetConfigFile(path)
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(path), "."))

	v.SetDefault("name", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	v.SetDefault("user_agent", viper.GetString(key.SimUserAgent))
	v.SetDefault("autoplay_allowed", viper.GetBool(key.SimAutoplayAllowed))
	v.SetDefault("lite", viper.GetBool(key.AutoplayLiteViewer))
	v.SetDefault("viewport.width", 1280)
	v.SetDefault("viewport.height", 720)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks ids, actions and targets.
func (s *Scenario) Validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return ErrBadViewport
	}
	if len(s.Players) == 0 {
		return ErrNoPlayers
	}

	ids := make([]string, 0, len(s.Players))
	for i, p := range s.Players {
		if p.ID == "" {
			return fmt.Errorf("player %d: missing id", i+1)
		}
		if lo.Contains(ids, p.ID) {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		ids = append(ids, p.ID)
	}

	for i, step := range s.Steps {
		if err := s.validateStep(step, ids); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
	}
	return nil
}

func (s *Scenario) validateStep(step Step, ids []string) error {
	if !lo.Contains(Actions, step.Action) {
		return suggest(ErrUnknownAction, step.Action, Actions)
	}
	if !lo.Contains(targeted, step.Action) {
		return nil
	}
	if step.Target == "" {
		return ErrMissingTarget
	}
	if !lo.Contains(ids, step.Target) {
		return suggest(ErrUnknownTarget, step.Target, ids)
	}
	return nil
}

// suggest wraps err with the closest candidate to name, if any.
func suggest(err error, name string, candidates []string) error {
	ranks := fuzzy.RankFindNormalizedFold(name, candidates)
	if len(ranks) == 0 {
		// Try the other way around to catch typos that add characters.
		for _, c := range candidates {
			if fuzzy.MatchNormalizedFold(c, name) {
				return fmt.Errorf("%w %q, did you mean %q?", err, name, c)
			}
		}
		return fmt.Errorf("%w %q", err, name)
	}

	sort.Sort(ranks)
	return fmt.Errorf("%w %q, did you mean %q?", err, name, ranks[0].Target)
}

// Policy returns the platform policy of the scenario.
func (s *Scenario) Policy() Policy {
	return Policy{AutoplayAllowed: s.AutoplayAllowed, FailSurface: s.FailSurface}
}

// Build creates a page holding the scenario's players.
func (s *Scenario) Build() *Page {
	page := NewPage(s.UserAgent, s.Viewport.Width, s.Viewport.Height)
	for _, p := range s.Players {
		page.AddVideo(VideoOptions{
			ID:          p.ID,
			Top:         p.Top,
			Left:        p.Left,
			Width:       p.Width,
			Height:      p.Height,
			Autoplay:    p.Autoplay,
			Controls:    p.Controls,
			Unsupported: p.Unsupported,
			RejectPlay:  p.RejectPlay,
		})
	}
	return page
}

// scenarioExtensions are tried in order when a scenario is named without an extension.
var scenarioExtensions = []string{".toml", ".yaml", ".yml", ".json"}

// ResolveScenario maps name to a scenario file. A name that is an existing file is used as is;
// otherwise it is looked up in dir with each supported extension.
func ResolveScenario(name, dir string) (string, error) {
	fs := filesystem.API()

	if ok, _ := fs.Exists(name); ok {
		return name, nil
	}

	for _, ext := range scenarioExtensions {
		path := filepath.Join(dir, name+ext)
		if ok, _ := fs.Exists(path); ok {
			return path, nil
		}
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrScenarioNotFound, name)
	}

	known := lo.FilterMap(entries, func(e os.FileInfo, _ int) (string, bool) {
		ext := filepath.Ext(e.Name())
		return strings.TrimSuffix(e.Name(), ext), !e.IsDir() && lo.Contains(scenarioExtensions, ext)
	})
	return "", suggest(ErrScenarioNotFound, name, known)
}
