// Package config provides configuration management for wpactl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the wpactl configuration.
type Config struct {
	Interface string        `yaml:"interface"`  // Wireless interface name
	CtrlDir   string        `yaml:"ctrl_dir"`   // Directory holding daemon control sockets
	ClientDir string        `yaml:"client_dir"` // Directory for client socket files (empty = temp dir)
	Reply     ReplyConfig   `yaml:"reply"`
	History   HistoryConfig `yaml:"history"`
}

// ReplyConfig bounds the request/reply engine.
type ReplyConfig struct {
	BufBytes  int `yaml:"buf_bytes"`  // Fixed reply buffer capacity
	TimeoutMs int `yaml:"timeout_ms"` // Per-request reply timeout
}

// HistoryConfig holds event-recording settings.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`       // Record drained events to the database
	DatabasePath string `yaml:"database_path"` // SQLite path (empty = default data dir)
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Interface: "wlan0",
		CtrlDir:   "/var/run/wpa_supplicant",
		Reply: ReplyConfig{
			BufBytes:  10240,
			TimeoutMs: 10000,
		},
		History: HistoryConfig{
			Enabled: false,
		},
	}
}

// Load reads the configuration file at path, or the default location
// when path is empty. A missing file yields the defaults. Environment
// variables WPACTL_INTERFACE and WPACTL_CTRL_DIR override the file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPaths().ConfigFile()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if iface := os.Getenv("WPACTL_INTERFACE"); iface != "" {
		cfg.Interface = iface
	}
	if dir := os.Getenv("WPACTL_CTRL_DIR"); dir != "" {
		cfg.CtrlDir = dir
	}

	cfg.applyFallbacks()
	return cfg, nil
}

// applyFallbacks fills zero values with defaults so a sparse config file
// still yields a usable configuration.
func (c *Config) applyFallbacks() {
	def := Default()
	if c.Interface == "" {
		c.Interface = def.Interface
	}
	if c.CtrlDir == "" {
		c.CtrlDir = def.CtrlDir
	}
	if c.Reply.BufBytes <= 0 {
		c.Reply.BufBytes = def.Reply.BufBytes
	}
	if c.Reply.TimeoutMs <= 0 {
		c.Reply.TimeoutMs = def.Reply.TimeoutMs
	}
}

// CtrlPath returns the daemon control socket path for the configured
// interface.
func (c *Config) CtrlPath() string {
	return filepath.Join(c.CtrlDir, c.Interface)
}

// RequestTimeout returns the reply timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Reply.TimeoutMs) * time.Millisecond
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPaths().ConfigFile()
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
