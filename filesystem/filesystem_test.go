package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackends(t *testing.T) {
	Convey("Given the filesystem backends", t, func() {
		Reset(SetOsFs)

		Convey("The OS backend is the default", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("The in-memory backend starts empty on every switch", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
			So(API().WriteFile("/scenarios/feed.toml", []byte("name = 'feed'"), 0o644), ShouldBeNil)

			exists, err := API().Exists("/scenarios/feed.toml")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)

			SetMemMapFs()
			exists, _ = API().Exists("/scenarios/feed.toml")
			So(exists, ShouldBeFalse)
		})
	})
}
