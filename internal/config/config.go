// Package config loads the optional per-project tspatch settings file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tspatch/pkg/tspkg"
)

// FileName is the settings file looked up in the base directory.
const FileName = "tspatch.yaml"

// Config captures the per-project settings for the CLI. Everything in it
// has a flag equivalent; the file only changes defaults.
type Config struct {
	Version int      `yaml:"version"`
	BaseDir string   `yaml:"basedir,omitempty"`
	Global  bool     `yaml:"global,omitempty"`
	Modules []string `yaml:"modules,omitempty"`
	Persist *bool    `yaml:"persist,omitempty"`
	Color   *bool    `yaml:"color,omitempty"`
}

// PersistValue returns the effective persist flag applying defaults.
func (c Config) PersistValue() bool {
	if c.Persist == nil {
		return false
	}
	return *c.Persist
}

// ColorValue returns the effective color flag applying defaults.
func (c Config) ColorValue() bool {
	if c.Color == nil {
		return true
	}
	return *c.Color
}

// Default returns the baseline settings.
func Default() Config {
	return Config{
		Version: 1,
		Modules: append([]string(nil), tspkg.DefaultModules...),
	}
}

// Load reads the YAML settings from disk if the file exists, otherwise
// returns the defaults.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills fields the YAML omitted.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if len(c.Modules) == 0 {
		c.Modules = defaults.Modules
	}
}

// Marshal returns the YAML encoding of the settings.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	return buf, nil
}
