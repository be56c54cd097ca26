// Package config handles client configuration loading and defaults.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const DefaultServerURL = "http://localhost:3000"

type Config struct {
	ServerURL string `toml:"server_url"`
}

// DefaultPath is <user config dir>/taskdeck/config.toml.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "taskdeck", "config.toml"), nil
}

// Load reads the TOML config at path, filling in defaults. A missing file is
// not an error; it just yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{ServerURL: DefaultServerURL}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	return cfg, nil
}
