// ABOUTME: Configuration management for data directory, sync schedule, and fetch limits
// ABOUTME: JSON config file with defaults and validation

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robfig/cron/v3"
)

// Config stores podkeep configuration. Zero values fall back to defaults,
// so a missing or empty config file is valid.
type Config struct {
	// DataDir is the root directory for the SQLite database.
	// Supports ~ expansion. Defaults to ~/.local/share/podkeep.
	DataDir string `json:"data_dir,omitempty"`

	// Schedule is the cron expression for background fleet syncs.
	// Defaults to "@every 1h".
	Schedule string `json:"schedule,omitempty"`

	// FetchTimeoutSecs bounds each feed fetch. Defaults to 30.
	FetchTimeoutSecs int `json:"fetch_timeout_secs,omitempty"`

	// Concurrency limits parallel podcast syncs. Defaults to 4.
	Concurrency int `json:"concurrency,omitempty"`
}

const dbFilename = "podkeep.db"

// Load reads the config file at path. A missing file yields an empty
// (all-defaults) config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config as JSON, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks all populated fields; every problem is reported at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid schedule %q: %w", c.Schedule, err))
		}
	}
	if c.FetchTimeoutSecs < 0 {
		result = multierror.Append(result, errors.New("fetch_timeout_secs must not be negative"))
	}
	if c.Concurrency < 0 {
		result = multierror.Append(result, errors.New("concurrency must not be negative"))
	}

	return result.ErrorOrNil()
}

// GetDataDir returns the data directory with ~ expanded, defaulting to
// the XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetSchedule returns the background sync schedule.
func (c *Config) GetSchedule() string {
	if c.Schedule == "" {
		return "@every 1h"
	}
	return c.Schedule
}

// GetFetchTimeout returns the per-fetch timeout.
func (c *Config) GetFetchTimeout() time.Duration {
	if c.FetchTimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

// GetConcurrency returns the fleet sync parallelism limit.
func (c *Config) GetConcurrency() int {
	if c.Concurrency <= 0 {
		return 4
	}
	return c.Concurrency
}

// DBPath returns the SQLite database path under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), dbFilename)
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() string {
	if configDir := os.Getenv("XDG_CONFIG_HOME"); configDir != "" {
		return filepath.Join(configDir, "podkeep", "config.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "podkeep-config.json")
	}
	return filepath.Join(home, ".config", "podkeep", "config.json")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataDir() string {
	if dataDir := os.Getenv("XDG_DATA_HOME"); dataDir != "" {
		return filepath.Join(dataDir, "podkeep")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "podkeep")
}
