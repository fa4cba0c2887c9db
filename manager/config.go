package manager

import (
	"time"

	"github.com/anisan-cli/vidman/key"
	"github.com/spf13/viper"
)

// ApplyConfig fills the tunables of opts from the loaded configuration.
func ApplyConfig(opts Options) Options {
	opts.Lite = viper.GetBool(key.AutoplayLiteViewer)
	opts.VisibilityPercent = float64(viper.GetInt(key.AutoplayVisibilityPercent))
	opts.PollInterval = time.Duration(viper.GetInt(key.ManagerPollInterval)) * time.Millisecond
	return opts
}
