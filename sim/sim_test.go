package sim

import (
	"bytes"
	"errors"
	"testing"

	"github.com/anisan-cli/vidman/autoplay"
	"github.com/anisan-cli/vidman/dom"
	"github.com/anisan-cli/vidman/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func callsOf(trace []Event, video string) []string {
	return lo.FilterMap(trace, func(e Event, _ int) (string, bool) {
		return e.Detail, e.Kind == KindCall && e.Video == video
	})
}

func callsSince(trace []Event, step int, video string) []string {
	return callsOf(lo.Filter(trace, func(e Event, _ int) bool { return e.Step >= step }), video)
}

func feed() *Scenario {
	return &Scenario{
		Name:            "feed",
		UserAgent:       "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		AutoplayAllowed: true,
		Viewport:        Viewport{Width: 1000, Height: 600},
		Players: []PlayerSpec{
			{ID: "hero", Top: 0, Height: 400, Autoplay: true, Controls: true},
			{ID: "below", Top: 1000, Height: 400, Autoplay: true},
			{ID: "plain", Top: 2000, Height: 400, Controls: true},
		},
	}
}

func TestPage(t *testing.T) {
	Convey("Given a page with a video below the fold", t, func() {
		page := NewPage("ua", 1000, 600)
		v := page.AddVideo(VideoOptions{ID: "v", Top: 800, Height: 400})

		So(v.Box().Width, ShouldEqual, 1000)
		So(v.IsInViewport(), ShouldBeFalse)
		So(v.VisiblePercent(), ShouldEqual, 0)
		So(page.Body().Children(), ShouldHaveLength, 1)

		Convey("Scrolling half of it into view", func() {
			page.ScrollTo(400)
			So(v.IsInViewport(), ShouldBeTrue)
			So(v.VisiblePercent(), ShouldEqual, 50)
			So(v.IntersectionChangeEntry().BoundingClientRect.Top, ShouldEqual, 400)
		})

		Convey("Scrolling is clamped to the content", func() {
			page.ScrollTo(5000)
			So(page.ScrollTop(), ShouldEqual, 600)
			page.ScrollBy(-10000)
			So(page.ScrollTop(), ShouldEqual, 0)
		})

		Convey("Scroll and resize notify their listeners", func() {
			var scrolls, changes int
			page.OnScroll(func() { scrolls++ })
			page.OnChanged(func() { changes++ })
			page.ScrollTo(10)
			page.Resize(1000, 1200)
			So(scrolls, ShouldEqual, 1)
			So(changes, ShouldEqual, 1)
			So(v.VisiblePercent(), ShouldEqual, 100)
		})

		Convey("Playback calls are recorded and events fire on transitions only", func() {
			var plays int
			v.Element().Listen("play", func(dom.Event) { plays++ })
			So(v.Play(true), ShouldBeNil)
			So(v.Play(true), ShouldBeNil)
			So(v.Pause(), ShouldBeNil)
			So(plays, ShouldEqual, 1)
			So(v.Playing(), ShouldBeFalse)
			So(lo.Map(page.Calls(), func(c Call, _ int) string { return c.String() }), ShouldResemble,
				[]string{"v.play(autoplay=true)", "v.play(autoplay=true)", "v.pause"})
		})
	})
}

func TestSurface(t *testing.T) {
	Convey("Given detection surfaces", t, func() {
		Convey("An allowing platform plays muted inline surfaces", func() {
			s, err := SurfaceFactory(Policy{AutoplayAllowed: true})(autoplay.DetectionSurface)
			So(err, ShouldBeNil)
			So(s.Play(), ShouldBeNil)
			So(s.Paused(), ShouldBeFalse)
		})

		Convey("A refusing platform leaves them paused", func() {
			s, err := SurfaceFactory(Policy{})(autoplay.DetectionSurface)
			So(err, ShouldBeNil)
			So(s.Play(), ShouldEqual, ErrNotAllowed)
			So(s.Paused(), ShouldBeTrue)
		})

		Convey("Creation failure is reported", func() {
			_, err := SurfaceFactory(Policy{FailSurface: true})(autoplay.DetectionSurface)
			So(err, ShouldEqual, ErrNoSurface)
		})
	})
}

func TestScenarioValidation(t *testing.T) {
	Convey("Given a valid scenario", t, func() {
		s := feed()
		So(s.Validate(), ShouldBeNil)

		Convey("A misspelled target suggests the closest id", func() {
			s.Steps = []Step{{Action: ActionLoad, Target: "hro"}}
			err := s.Validate()
			So(errors.Is(err, ErrUnknownTarget), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `did you mean "hero"?`)
		})

		Convey("A misspelled action suggests the closest action", func() {
			s.Steps = []Step{{Action: "clickshim", Target: "hero"}}
			err := s.Validate()
			So(errors.Is(err, ErrUnknownAction), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `did you mean "click-shim"?`)
		})

		Convey("Targeted actions need a target", func() {
			s.Steps = []Step{{Action: ActionFocus}}
			So(errors.Is(s.Validate(), ErrMissingTarget), ShouldBeTrue)
		})

		Convey("Player ids are unique", func() {
			s.Players = append(s.Players, PlayerSpec{ID: "hero", Height: 10})
			So(errors.Is(s.Validate(), ErrDuplicatePlayer), ShouldBeTrue)
		})

		Convey("A page needs players and a viewport", func() {
			So((&Scenario{Viewport: Viewport{Width: 1, Height: 1}}).Validate(), ShouldEqual, ErrNoPlayers)
			So((&Scenario{Players: s.Players}).Validate(), ShouldEqual, ErrBadViewport)
		})
	})
}

func TestLoadScenario(t *testing.T) {
	Convey("Given scenario files on an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		Convey("A toml scenario is decoded with defaults", func() {
			So(fs.WriteFile("/s/feed.toml", []byte(`
autoplay_allowed = false

[[players]]
id = "hero"
height = 300
autoplay = true
controls = true

[[steps]]
action = "load"
target = "hero"

[[steps]]
action = "scroll"
value = 120
`), 0o644), ShouldBeNil)

			s, err := LoadScenario("/s/feed.toml")
			So(err, ShouldBeNil)
			So(s.Name, ShouldEqual, "feed")
			So(s.AutoplayAllowed, ShouldBeFalse)
			So(s.Viewport, ShouldResemble, Viewport{Width: 1280, Height: 720})
			So(s.Players, ShouldHaveLength, 1)
			So(s.Players[0].Controls, ShouldBeTrue)
			So(s.Steps, ShouldResemble, []Step{
				{Action: ActionLoad, Target: "hero"},
				{Action: ActionScroll, Value: 120},
			})
		})

		Convey("A json scenario with a bad target fails to load", func() {
			So(fs.WriteFile("/s/bad.json", []byte(`{
  "players": [{"id": "hero", "height": 300, "autoplay": true}],
  "steps": [{"action": "load", "target": "heroo"}]
}`), 0o644), ShouldBeNil)

			_, err := LoadScenario("/s/bad.json")
			So(errors.Is(err, ErrUnknownTarget), ShouldBeTrue)
		})

		Convey("A missing file is an error", func() {
			_, err := LoadScenario("/s/missing.yaml")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRunner(t *testing.T) {
	Convey("Given a feed where muted autoplay is allowed", t, func() {
		s := feed()
		r := NewRunner(s, RunnerOptions{})
		Reset(r.Close)

		hero, _ := r.Page().Video("hero")
		below, _ := r.Page().Video("below")

		Convey("Only autoplay players are tracked and they are muted", func() {
			So(r.Manager().Len(), ShouldEqual, 2)
			So(callsOf(r.Trace(), "hero"), ShouldResemble, []string{"hideControls", "mute", "hideControls"})
			So(callsOf(r.Trace(), "below"), ShouldResemble, []string{"hideControls", "mute"})
			So(callsOf(r.Trace(), "plain"), ShouldBeEmpty)
			So(hero.Muted(), ShouldBeTrue)
			_, ok := hero.Equalizer()
			So(ok, ShouldBeTrue)
			So(r.Probe().Detections(), ShouldEqual, 1)
		})

		Convey("Loading the visible player starts it", func() {
			So(r.Apply(Step{Action: ActionLoad, Target: "hero"}), ShouldBeNil)
			So(hero.Playing(), ShouldBeTrue)

			Convey("Scrolling it out of view pauses it and plays the next one once loaded", func() {
				So(r.Apply(Step{Action: ActionLoad, Target: "below"}), ShouldBeNil)
				So(below.Playing(), ShouldBeFalse)

				So(r.Apply(Step{Action: ActionScroll, Value: 1000}), ShouldBeNil)
				So(hero.Playing(), ShouldBeFalse)
				So(below.Playing(), ShouldBeTrue)
			})

			Convey("Hiding the document suspends autoplay decisions", func() {
				So(r.Apply(Step{Action: ActionHideDocument}), ShouldBeNil)
				So(r.Apply(Step{Action: ActionScroll, Value: 1000}), ShouldBeNil)
				So(hero.Playing(), ShouldBeTrue)
			})

			Convey("Clicking the shim hands the player to the user", func() {
				So(r.Apply(Step{Action: ActionClickShim, Target: "hero"}), ShouldBeNil)
				So(hero.Muted(), ShouldBeFalse)
				So(hero.ControlsShown(), ShouldBeTrue)
				_, ok := hero.Shim()
				So(ok, ShouldBeFalse)

				So(r.Apply(Step{Action: ActionScroll, Value: 1000}), ShouldBeNil)
				So(hero.Playing(), ShouldBeTrue)
			})

			Convey("Focusing it is noticed by the next poll", func() {
				So(r.Apply(Step{Action: ActionFocus, Target: "hero"}), ShouldBeNil)
				So(hero.Muted(), ShouldBeTrue)

				So(r.Apply(Step{Action: ActionTick}), ShouldBeNil)
				So(hero.Muted(), ShouldBeFalse)
				So(r.Manager().Entries()[0].UserInteracted, ShouldBeTrue)
			})
		})

		Convey("Metrics are exposed in the text format", func() {
			So(r.Apply(Step{Action: ActionLoad, Target: "hero"}), ShouldBeNil)

			var buf bytes.Buffer
			So(r.WriteMetrics(&buf), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, `vidman_registrations_total{result="accepted"} 2`)
			So(buf.String(), ShouldContainSubstring, `vidman_registrations_total{result="no_autoplay"} 1`)
			So(buf.String(), ShouldContainSubstring, "vidman_autoplay_detections_total 1")
			So(buf.String(), ShouldContainSubstring, `vidman_player_actions_total{action="play"} 1`)
		})

		Convey("An unknown target fails the step", func() {
			So(errors.Is(r.Apply(Step{Action: ActionLoad, Target: "heroo"}), ErrUnknownTarget), ShouldBeTrue)
		})
	})

	Convey("Given a platform that refuses muted autoplay", t, func() {
		s := feed()
		s.AutoplayAllowed = false
		s.Steps = []Step{
			{Action: ActionLoad, Target: "hero"},
			{Action: ActionScroll, Value: 1000},
		}
		r := NewRunner(s, RunnerOptions{})
		Reset(r.Close)

		trace, err := r.Run()
		So(err, ShouldBeNil)
		So(callsOf(trace, "hero"), ShouldResemble, []string{"hideControls", "showControls"})
	})

	Convey("Given a lite viewer override", t, func() {
		r := NewRunner(feed(), RunnerOptions{Lite: true})
		Reset(r.Close)

		So(r.Probe().Detections(), ShouldEqual, 0)
		So(callsOf(r.Trace(), "hero"), ShouldResemble, []string{"hideControls", "showControls"})
	})

	Convey("Given a held probe", t, func() {
		s := feed()
		s.HoldProbe = true
		r := NewRunner(s, RunnerOptions{})
		Reset(r.Close)

		So(callsOf(r.Trace(), "hero"), ShouldResemble, []string{"hideControls"})
		So(callsOf(r.Trace(), "below"), ShouldResemble, []string{"hideControls"})

		Convey("Releasing it answers every player from one detection", func() {
			So(r.Apply(Step{Action: ActionReleaseProbe}), ShouldBeNil)
			So(r.Probe().Detections(), ShouldEqual, 1)
			So(callsSince(r.Trace(), 1, "hero"), ShouldResemble, []string{"mute", "hideControls"})
			So(callsSince(r.Trace(), 1, "below"), ShouldResemble, []string{"mute"})
		})
	})
}

func TestResolveScenario(t *testing.T) {
	Convey("Given a scenarios directory", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.WriteFile("/scenarios/feed.yaml", []byte("players: []\n"), 0o644), ShouldBeNil)
		So(fs.WriteFile("/elsewhere/custom.toml", []byte(""), 0o644), ShouldBeNil)

		Convey("A bare name finds the file with its extension", func() {
			path, err := ResolveScenario("feed", "/scenarios")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/scenarios/feed.yaml")
		})

		Convey("An existing path is used as is", func() {
			path, err := ResolveScenario("/elsewhere/custom.toml", "/scenarios")
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/elsewhere/custom.toml")
		})

		Convey("A misspelled name suggests a known scenario", func() {
			_, err := ResolveScenario("fed", "/scenarios")
			So(errors.Is(err, ErrScenarioNotFound), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `did you mean "feed"?`)
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("The scenario schema describes players and steps", t, func() {
		schema := Schema()
		So(schema.Definitions, ShouldContainKey, "Scenario")
		So(schema.Definitions, ShouldContainKey, "PlayerSpec")
		So(schema.Definitions, ShouldContainKey, "Step")

		scenario := schema.Definitions["Scenario"]
		So(scenario.Required, ShouldContain, "players")

		action, ok := schema.Definitions["Step"].Properties.Get("action")
		So(ok, ShouldBeTrue)
		So(action.Enum, ShouldContain, ActionClickShim)
	})
}
