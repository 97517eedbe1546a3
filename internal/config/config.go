// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config handles loading and validation of intake-tui configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIGURATION TYPES
// =============================================================================

// Config is the top-level configuration for intake-tui.
type Config struct {
	Server ServerConfig `toml:"server" json:"server"`
	Upload UploadConfig `toml:"upload" json:"upload"`
	UI     UIConfig     `toml:"ui" json:"ui"`
}

// ServerConfig describes how to reach the intake backend.
type ServerConfig struct {
	// BaseURL is the backend root, e.g. http://localhost:8000
	BaseURL string `toml:"base_url" json:"base_url"`
	// RequestTimeoutSec bounds chat and session-start requests.
	RequestTimeoutSec int `toml:"request_timeout_sec" json:"request_timeout_sec"`
	// UploadTimeoutSec bounds document uploads, which can be slow.
	UploadTimeoutSec int `toml:"upload_timeout_sec" json:"upload_timeout_sec"`
	// HealthTimeoutSec bounds the connectivity probe.
	HealthTimeoutSec int `toml:"health_timeout_sec" json:"health_timeout_sec"`
}

// UploadConfig constrains client-side upload admission.
type UploadConfig struct {
	// MaxFileBytes is the per-file size cap. Files over this are
	// filtered out before any request is made.
	MaxFileBytes int64 `toml:"max_file_bytes" json:"max_file_bytes"`
}

// UIConfig holds interface preferences.
type UIConfig struct {
	// DefaultMode is the mode selected at startup: "flow" or "rag",
	// or "" to start disconnected with no mode.
	DefaultMode string `toml:"default_mode" json:"default_mode"`
	// MaxInputLen is the send gate on trimmed input length.
	MaxInputLen int `toml:"max_input_len" json:"max_input_len"`
	// ShowCharCount toggles the input character counter.
	ShowCharCount bool `toml:"show_char_count" json:"show_char_count"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:           "http://localhost:8000",
			RequestTimeoutSec: 60,
			UploadTimeoutSec:  300,
			HealthTimeoutSec:  5,
		},
		Upload: UploadConfig{
			MaxFileBytes: 10 * 1024 * 1024,
		},
		UI: UIConfig{
			DefaultMode:   "",
			MaxInputLen:   1000,
			ShowCharCount: true,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".intake", "config.toml")
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist. Environment overrides are applied last, then the
// result is validated. An empty path means DefaultPath().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies INTAKE_* environment variables over cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INTAKE_SERVER_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("INTAKE_REQUEST_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RequestTimeoutSec = n
		}
	}
	if v := os.Getenv("INTAKE_UPLOAD_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.UploadTimeoutSec = n
		}
	}
	if v := os.Getenv("INTAKE_DEFAULT_MODE"); v != "" {
		cfg.UI.DefaultMode = v
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url must not be empty")
	}
	if c.Server.RequestTimeoutSec <= 0 {
		return fmt.Errorf("server.request_timeout_sec must be positive, got %d", c.Server.RequestTimeoutSec)
	}
	if c.Server.UploadTimeoutSec <= 0 {
		return fmt.Errorf("server.upload_timeout_sec must be positive, got %d", c.Server.UploadTimeoutSec)
	}
	if c.Server.HealthTimeoutSec <= 0 {
		return fmt.Errorf("server.health_timeout_sec must be positive, got %d", c.Server.HealthTimeoutSec)
	}
	if c.Upload.MaxFileBytes <= 0 {
		return fmt.Errorf("upload.max_file_bytes must be positive, got %d", c.Upload.MaxFileBytes)
	}
	if c.UI.MaxInputLen <= 0 {
		return fmt.Errorf("ui.max_input_len must be positive, got %d", c.UI.MaxInputLen)
	}
	switch c.UI.DefaultMode {
	case "", "flow", "rag":
	default:
		return fmt.Errorf("ui.default_mode must be flow, rag, or empty, got %q", c.UI.DefaultMode)
	}
	return nil
}

// RequestTimeout returns the chat request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSec) * time.Second
}

// UploadTimeout returns the upload timeout as a duration.
func (c *Config) UploadTimeout() time.Duration {
	return time.Duration(c.Server.UploadTimeoutSec) * time.Second
}

// HealthTimeout returns the health probe timeout as a duration.
func (c *Config) HealthTimeout() time.Duration {
	return time.Duration(c.Server.HealthTimeoutSec) * time.Second
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// Global returns the process-wide configuration, loading defaults on
// first access if SetGlobal was never called.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		globalConfig = Default()
	}
	return globalConfig
}

// SetGlobal installs cfg as the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}
