// Package config decodes the small TOML repository configuration this
// module reads, trimmed to the one section annotate actually consults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Diff holds the line-diff tuning knobs exposed to a repository config
// file.
type Diff struct {
	// Algorithm names the diff strategy. Only "myers" (the default, backed
	// by go-diff/diffmatchpatch) is implemented; the field exists so a
	// config file can name an algorithm explicitly and so future backends
	// have somewhere to land without a config format change.
	Algorithm string `toml:"algorithm"`
}

// Config is the root of a repository's TOML configuration.
type Config struct {
	Diff Diff `toml:"diff"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{Diff: Diff{Algorithm: "myers"}}
}

// Load reads and decodes a TOML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
