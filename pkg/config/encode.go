package config

import (
	"bytes"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/brokensym/pkg/errors"
)

// Encode renders cfg as "toml" or "yaml"
func Encode(cfg *Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "toml", "":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config as toml")
		}
		return buf.Bytes(), nil
	case "yaml", "yml":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config as yaml")
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown config format %q (use toml or yaml)", format)
	}
}
