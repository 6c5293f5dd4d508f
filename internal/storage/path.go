package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataDir resolves the data directory in priority order:
// 1. TAFEL_DATA environment variable
// 2. $XDG_DATA_HOME/tafel
// 3. ~/.local/share/tafel
func DefaultDataDir() (string, error) {
	if p := os.Getenv("TAFEL_DATA"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "tafel"), nil
}

// EnsureDir creates dir (and parents) if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
