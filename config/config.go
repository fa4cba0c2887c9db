package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anisan-cli/vidman/constant"
	"github.com/anisan-cli/vidman/filesystem"
	"github.com/anisan-cli/vidman/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to the environment variable suffix, autoplay.lite_viewer to AUTOPLAY_LITE_VIEWER.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults and environment bindings on the global viper instance and reads
// vidman.toml from where.Config() when it exists. Values from the file or the environment are
// validated like values given to config set.
func Setup() error {
	viper.SetConfigName(constant.Vidman)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Vidman)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)
	for k, field := range Default {
		viper.MustBindEnv(k)
		viper.SetDefault(k, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("read config: %w", err)
	}

	return check()
}

// check validates the effective value of every key.
func check() error {
	keys := lo.Keys(Default)
	errs := lo.FilterMap(keys, func(k string, _ int) (error, bool) {
		err := Validate(k, viper.Get(k))
		return err, err != nil
	})
	return errors.Join(errs...)
}
