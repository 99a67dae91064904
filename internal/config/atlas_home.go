package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtlasHome returns the loopatlas home directory.
// Priority order:
//  1. LOOPATLAS_HOME environment variable (if set)
//  2. ~/.loopatlas under the user's home directory
//
// The directory is created if it doesn't exist.
func AtlasHome() (string, error) {
	if home := os.Getenv("LOOPATLAS_HOME"); home != "" {
		if err := os.MkdirAll(home, 0755); err != nil {
			return "", fmt.Errorf("create loopatlas home directory: %w", err)
		}
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home directory: %w", err)
	}

	atlasHome := filepath.Join(userHome, ".loopatlas")
	if err := os.MkdirAll(atlasHome, 0755); err != nil {
		return "", fmt.Errorf("create loopatlas home directory: %w", err)
	}
	return atlasHome, nil
}

// DefaultConfigPath returns the default config file location,
// $LOOPATLAS_HOME/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := AtlasHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}
