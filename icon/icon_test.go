package icon

import (
	"fmt"
	"testing"

	"github.com/anisan-cli/vidman/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given every registered icon", t, func() {
		for _, target := range []Icon{Success, Fail, Playing, Paused, Muted, Sound, Controls, Visible, Hidden, Interacted, Equalizer} {
			for _, variant := range AvailableVariants() {
				Convey(fmt.Sprintf("icon %d variant=%s", target, variant), func() {
					viper.Set(key.IconsVariant, variant)
					So(Get(target), ShouldNotBeEmpty)
				})
			}
		}

		Convey("It returns empty for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Playing), ShouldBeEmpty)
		})
	})
}
