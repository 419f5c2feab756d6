// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appName = "nutristat"
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "NUTRISTAT_CONFIG"
)

// XDGConfigHome returns $XDG_CONFIG_HOME, falling back to ~/.config and
// finally the working directory.
func XDGConfigHome() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config")
	}
	return "."
}

// DefaultConfigPath returns $NUTRISTAT_CONFIG when set, otherwise
// nutristat/config.toml under the XDG config home.
func DefaultConfigPath() string {
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return path
	}
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
