package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/anisan-cli/vidman/icon"
	"github.com/anisan-cli/vidman/key"
	"github.com/sirupsen/logrus"
)

// Validate checks that value is acceptable for the configuration key k.
func Validate(k string, value any) error {
	switch k {
	case key.AutoplayVisibilityPercent:
		if n, ok := value.(int); !ok || n < 1 || n > 100 {
			return fmt.Errorf("%s must be an integer from 1 to 100, got %v", k, value)
		}
	case key.ManagerPollInterval:
		if n, ok := value.(int); !ok || n < 1 {
			return fmt.Errorf("%s must be a positive number of milliseconds, got %v", k, value)
		}
	case key.LogsLevel:
		s, _ := value.(string)
		if _, err := logrus.ParseLevel(s); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	case key.IconsVariant:
		s, _ := value.(string)
		if !slices.Contains(icon.AvailableVariants(), s) {
			return fmt.Errorf("%s must be one of %v, got %q", k, icon.AvailableVariants(), s)
		}
	}
	return nil
}

// ErrUnknownKey is returned for keys that are not registered.
var ErrUnknownKey = errors.New("unknown config key")

// Parse converts the raw command line value of k to the type of its default and validates it.
func Parse(k, raw string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}

	var (
		value any
		err   error
	)
	switch field.Value.(type) {
	case int:
		value, err = strconv.Atoi(raw)
	case bool:
		value, err = strconv.ParseBool(raw)
	default:
		value = raw
	}
	if err != nil {
		return nil, fmt.Errorf("%s expects a %s: %w", k, field.typeName(), err)
	}

	return value, Validate(k, value)
}
