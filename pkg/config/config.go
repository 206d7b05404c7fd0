package config

import (
	"strings"

	"github.com/arthur-debert/brokensym/pkg/errors"
)

// Color modes for diagnostics
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the effective configuration
type Config struct {
	Log    LogConfig    `koanf:"log" toml:"log" yaml:"log"`
	Output OutputConfig `koanf:"output" toml:"output" yaml:"output"`
}

// LogConfig controls logging
type LogConfig struct {
	Verbosity int  `koanf:"verbosity" toml:"verbosity" yaml:"verbosity"`
	File      bool `koanf:"file" toml:"file" yaml:"file"`
}

// OutputConfig controls how diagnostics are displayed
type OutputConfig struct {
	Color string `koanf:"color" toml:"color" yaml:"color"`
}

// Validate checks values that the decoder cannot
func (c *Config) Validate() error {
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"output.color must be one of %s, %s, %s; got %q",
			ColorAuto, ColorAlways, ColorNever, c.Output.Color)
	}
	if c.Log.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigValid, "log.verbosity must not be negative; got %d", c.Log.Verbosity)
	}
	return nil
}
