package config

import (
	"os"
	"path/filepath"
)

// Paths holds the path configuration for wpactl.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/wpactl)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/wpactl)
	DataDir string
}

// DefaultPaths returns the default paths following the XDG Base
// Directory spec.
func DefaultPaths() *Paths {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/tmp"
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "wpactl"),
		DataDir:   filepath.Join(dataHome, "wpactl"),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// HistoryFile returns the path to the event history database.
func (p *Paths) HistoryFile() string {
	return filepath.Join(p.DataDir, "events.db")
}
