package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "player", "players"), ShouldEqual, "1 player")
		So(Quantify(2, "player", "players"), ShouldEqual, "2 players")
		So(Quantify(0, "call", "calls"), ShouldEqual, "0 calls")
	})
}
