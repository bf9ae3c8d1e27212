package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the provisioning configuration for a host.
type Config struct {
	Version int    `yaml:"version"`
	Group   string `yaml:"group"`

	// Select, when non-empty, is an explicit ordered tool list that
	// overrides the per-tool enabled flags below.
	Select []string `yaml:"select,omitempty"`

	Prefix     string `yaml:"prefix,omitempty"`
	BinDir     string `yaml:"bin_dir,omitempty"`
	ProfileDir string `yaml:"profile_dir,omitempty"`
	StateDir   string `yaml:"state_dir,omitempty"`

	Tools map[string]ToolConfig `yaml:"tools"`
}

// ToolConfig holds the per-tool overrides passed into its installer.
type ToolConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Version string `yaml:"version,omitempty"`
}

// EnabledValue returns the effective enabled flag applying defaults.
func (t ToolConfig) EnabledValue() bool {
	if t.Enabled == nil {
		return true
	}
	return *t.Enabled
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Group:   "devs",
		Tools: map[string]ToolConfig{
			"uv":     {},
			"pyenv":  {},
			"pipenv": {},
			"poetry": {},
		},
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults rather than an error so a bare host can be provisioned without
// writing any config first.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks invariants the rest of the system relies on.
func (c Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.Group == "" {
		return errors.New("group must not be empty")
	}
	return nil
}

// EnabledFlags projects the per-tool configs into the flag map consumed by
// the selector.
func (c Config) EnabledFlags() map[string]bool {
	flags := make(map[string]bool, len(c.Tools))
	for name, tc := range c.Tools {
		flags[name] = tc.EnabledValue()
	}
	return flags
}

// RequestedVersions returns the non-empty per-tool version overrides.
func (c Config) RequestedVersions() map[string]string {
	versions := map[string]string{}
	for name, tc := range c.Tools {
		if tc.Version != "" {
			versions[name] = tc.Version
		}
	}
	return versions
}
