package manager

import (
	"testing"
	"time"

	"github.com/anisan-cli/vidman/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestApplyConfig(t *testing.T) {
	Convey("Given configured tunables", t, func() {
		viper.Set(key.AutoplayLiteViewer, true)
		viper.Set(key.AutoplayVisibilityPercent, 40)
		viper.Set(key.ManagerPollInterval, 250)
		Reset(func() {
			viper.Set(key.AutoplayLiteViewer, nil)
			viper.Set(key.AutoplayVisibilityPercent, nil)
			viper.Set(key.ManagerPollInterval, nil)
		})

		opts := ApplyConfig(Options{})

		So(opts.Lite, ShouldBeTrue)
		So(opts.VisibilityPercent, ShouldEqual, 40)
		So(opts.PollInterval, ShouldEqual, 250*time.Millisecond)
	})

	Convey("A lower threshold counts smaller overlaps as visible", t, func() {
		h := newHarness(harnessOptions{allowed: true})
		Reset(h.manager.Close)
		h.manager.visibilityPercent = 40

		p := newFakePlayer(true, false)
		h.manager.Register(p)
		p.element.Dispatch("load", nil)
		h.scrollTo(p, 50)

		So(p.count("play(true)"), ShouldEqual, 1)
	})
}
