// Package config loads the editor configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/hecto/keymap"
	"github.com/lixenwraith/hecto/terminal"
)

// Bell modes
const (
	BellNone     = "none"
	BellTerminal = "terminal"
	BellAudio    = "audio"
)

const (
	appDir   = "hecto"
	fileName = "config.yaml"
)

// Config is the on-disk configuration
type Config struct {
	// Backend selects the terminal backend: "ansi" or "tcell"
	Backend string `yaml:"backend"`

	// Bell selects edge feedback: "none", "terminal" or "audio"
	Bell string `yaml:"bell"`

	// Keys maps key names to action names, merged over the defaults
	Keys map[string]string `yaml:"keys"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Backend: terminal.BackendANSI,
		Bell:    BellNone,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hecto/config.yaml or the platform equivalent
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads and validates the file at path.
// A missing file yields the defaults; an empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields and key bindings
func (c *Config) Validate() error {
	switch c.Backend {
	case terminal.BackendANSI, terminal.BackendTcell:
	default:
		return fmt.Errorf("backend: unknown value %q (want %q or %q)", c.Backend, terminal.BackendANSI, terminal.BackendTcell)
	}

	switch c.Bell {
	case BellNone, BellTerminal, BellAudio:
	default:
		return fmt.Errorf("bell: unknown value %q (want %q, %q or %q)", c.Bell, BellNone, BellTerminal, BellAudio)
	}

	if _, err := keymap.Parse(c.Keys); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}

// Keymap returns the default bindings with the configured overrides applied
func (c *Config) Keymap() (keymap.Map, error) {
	override, err := keymap.Parse(c.Keys)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	return keymap.Merge(keymap.Default(), override), nil
}
