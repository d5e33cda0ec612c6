// internal/config/discover.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable that overrides discovery.
const EnvConfig = "SLIDEMERGE_CONFIG"

// ErrNotFound indicates no config file exists in any searched location.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./slidemerge.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "slidemerge", "config.toml")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. SLIDEMERGE_CONFIG environment variable
//  2. ./slidemerge.toml (current directory)
//  3. $XDG_CONFIG_HOME/slidemerge/config.toml
//  4. /etc/slidemerge/config.toml
//
// ErrNotFound is returned when none exist.
func Discover() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./slidemerge.toml",
		DefaultPath(),
		"/etc/slidemerge/config.toml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, formatPaths(paths))
}

func formatPaths(paths []string) string {
	return strings.Join(paths, ", ")
}
