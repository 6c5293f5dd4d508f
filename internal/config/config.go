// Package config reads the optional TOML config file and keeps the
// player-facing settings that seed new sessions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Storage backends selectable in the config file.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage StorageConfig `toml:"storage"`
}

// StorageConfig maps persistence settings. Nil fields fall back to the
// defaults at startup.
type StorageConfig struct {
	Backend *string `toml:"backend"`
	Dir     *string `toml:"dir"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not
// an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// NormalizeBackend maps a config value onto a known backend. known is
// false for values it had to ignore; the result is always usable.
func NormalizeBackend(v *string) (backend string, known bool) {
	if v == nil {
		return BackendSQLite, true
	}
	switch strings.ToLower(strings.TrimSpace(*v)) {
	case "", BackendSQLite:
		return BackendSQLite, true
	case BackendFile:
		return BackendFile, true
	default:
		return BackendSQLite, false
	}
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "tafel", "config.toml")
}
