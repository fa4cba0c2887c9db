package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAction(t *testing.T) {
	Convey("Given a colorless renderer", t, func() {
		lipgloss.SetColorProfile(termenv.Ascii)

		Convey("Calls keep their text", func() {
			for _, action := range []string{"play(autoplay=true)", "pause", "unmute", "hideControls", "other"} {
				So(Action(action), ShouldEqual, action)
			}
		})

		Convey("Flags and steps keep their text", func() {
			So(Flag("loaded", true), ShouldEqual, "loaded")
			So(Flag("loaded", false), ShouldEqual, "loaded")
			So(Step("scroll 10"), ShouldEqual, "> scroll 10")
		})
	})
}

func TestTitle(t *testing.T) {
	Convey("Titles are padded on both sides", t, func() {
		lipgloss.SetColorProfile(termenv.Ascii)
		So(Title("feed"), ShouldEqual, " feed ")
	})
}
