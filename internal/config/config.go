// Package config loads the client configuration from a TOML file with
// environment-variable overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults used when neither the file nor the environment say otherwise.
const (
	DefaultServerURL = "http://localhost:8800"
)

// Config is the resolved client configuration.
type Config struct {
	// ServerURL is the base URL of the assessment API.
	ServerURL string `toml:"server_url"`

	// Username pre-fills the login form.
	Username string `toml:"username"`

	// DBPath overrides the local history database location.
	DBPath string `toml:"db_path"`

	// Demo runs against the built-in mock server instead of a real one.
	Demo bool `toml:"demo"`
}

// Load reads the TOML config at path (a missing file is not an error) and
// applies environment overrides: ADAPTEST_SERVER and ADAPTEST_DB beat the
// file, flags beat both and are applied by the caller.
func Load(path string) (Config, error) {
	cfg := Config{ServerURL: DefaultServerURL}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if v := os.Getenv("ADAPTEST_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("ADAPTEST_DB"); v != "" {
		cfg.DBPath = v
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	return cfg, nil
}

// DefaultPath resolves the config file location:
// $XDG_CONFIG_HOME/adaptest/config.toml, falling back to
// ~/.config/adaptest/config.toml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "adaptest", "config.toml"), nil
}
