// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading for taskdeck.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.taskdeck/config.toml
//   - ~/.taskdeck/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/DarthRevanXX/assignment-front/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete taskdeck configuration.
type Config struct {
	// API contains task service connection settings
	API APIConfig `toml:"api" json:"api"`

	// Session contains expiration watcher settings
	Session SessionConfig `toml:"session" json:"session"`

	// UI contains presentation settings
	UI UIConfig `toml:"ui" json:"ui"`
}

// APIConfig contains task service connection configuration.
type APIConfig struct {
	// BaseURL is the root URL of the task service
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RatePerSecond caps outbound requests per second (0 = default)
	RatePerSecond float64 `toml:"rate_per_second" json:"rate_per_second"`
}

// SessionConfig contains expiration watcher configuration.
type SessionConfig struct {
	// WatchIntervalSecs is how often the watcher inspects the session
	WatchIntervalSecs int `toml:"watch_interval_secs" json:"watch_interval_secs"`
	// WarnBeforeSecs is how close to expiry the one-time warning fires
	WarnBeforeSecs int `toml:"warn_before_secs" json:"warn_before_secs"`
}

// UIConfig contains presentation configuration.
type UIConfig struct {
	// Theme selects the color theme: "auto", "dark", or "light"
	Theme string `toml:"theme" json:"theme"`
	// PageSize is the number of tasks requested per page
	PageSize int `toml:"page_size" json:"page_size"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:       "http://localhost:8080",
			TimeoutSecs:   30,
			RatePerSecond: 20,
		},
		Session: SessionConfig{
			WatchIntervalSecs: 60,
			WarnBeforeSecs:    300,
		},
		UI: UIConfig{
			Theme:    "auto",
			PageSize: 20,
		},
	}
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// WatchInterval returns the watcher tick interval as a duration.
func (c *Config) WatchInterval() time.Duration {
	return time.Duration(c.Session.WatchIntervalSecs) * time.Second
}

// WarnBefore returns the expiry warning threshold as a duration.
func (c *Config) WarnBefore() time.Duration {
	return time.Duration(c.Session.WarnBeforeSecs) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the taskdeck configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".taskdeck"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir creates the configuration directory if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration, trying TOML first, then JSON, then falling
// back to defaults. Environment overrides are applied last in every case.
func Load() (*Config, error) {
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath reads configuration from an explicit file. The format is
// chosen by extension: .toml is TOML, anything else is JSON.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	if strings.HasSuffix(path, ".toml") {
		_, err = toml.DecodeFile(path, cfg)
	} else {
		var raw []byte
		if raw, err = os.ReadFile(path); err == nil {
			err = json.Unmarshal(raw, cfg)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	fillDefaults(cfg)
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults so a sparse config
// file only needs the keys the user cares about.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.TimeoutSecs == 0 {
		cfg.API.TimeoutSecs = def.API.TimeoutSecs
	}
	if cfg.API.RatePerSecond == 0 {
		cfg.API.RatePerSecond = def.API.RatePerSecond
	}
	if cfg.Session.WatchIntervalSecs == 0 {
		cfg.Session.WatchIntervalSecs = def.Session.WatchIntervalSecs
	}
	if cfg.Session.WarnBeforeSecs == 0 {
		cfg.Session.WarnBeforeSecs = def.Session.WarnBeforeSecs
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = def.UI.Theme
	}
	if cfg.UI.PageSize == 0 {
		cfg.UI.PageSize = def.UI.PageSize
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default TOML path.
// SECURITY: The config file is written 0600.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration as TOML to the given path.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects all validation failures from one pass.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for consistency. All problems are
// reported in one pass.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("must be an http(s) URL, got %q", c.API.BaseURL),
		})
	}
	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 600, got %d", c.API.TimeoutSecs),
		})
	}
	if c.API.RatePerSecond < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.rate_per_second",
			Message: "must not be negative",
		})
	}
	if c.Session.WatchIntervalSecs < 1 {
		errs = append(errs, ValidationError{
			Field:   "session.watch_interval_secs",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Session.WatchIntervalSecs),
		})
	}
	if c.Session.WarnBeforeSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "session.warn_before_secs",
			Message: "must not be negative",
		})
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("must be auto, dark or light, got %q", c.UI.Theme),
		})
	}
	if c.UI.PageSize < 1 || c.UI.PageSize > 200 {
		errs = append(errs, ValidationError{
			Field:   "ui.page_size",
			Message: fmt.Sprintf("must be between 1 and 200, got %d", c.UI.PageSize),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TASKDECK_API_URL: overrides api.base_url
//   - TASKDECK_TIMEOUT_SECS: overrides api.timeout_secs
//   - TASKDECK_WATCH_INTERVAL_SECS: overrides session.watch_interval_secs
//   - TASKDECK_WARN_BEFORE_SECS: overrides session.warn_before_secs
//   - TASKDECK_THEME: overrides ui.theme
//   - TASKDECK_PAGE_SIZE: overrides ui.page_size
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TASKDECK_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("TASKDECK_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = n
		}
	}
	if v := os.Getenv("TASKDECK_WATCH_INTERVAL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Session.WatchIntervalSecs = n
		}
	}
	if v := os.Getenv("TASKDECK_WARN_BEFORE_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Session.WarnBeforeSecs = n
		}
	}
	if v := os.Getenv("TASKDECK_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("TASKDECK_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.PageSize = n
		}
	}
}

// =============================================================================
// GLOBAL INSTANCE
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		globalConfigMu.Lock()
		defer globalConfigMu.Unlock()
		if globalConfig != nil {
			// SetGlobal ran before first access; keep what it installed.
			return
		}
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
