// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Timeline TimelineConfig `toml:"timeline"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "frappe", "latte"
}

// TimelineConfig holds the visible window and pointer settings.
type TimelineConfig struct {
	WindowStart        string `toml:"window_start"`         // e.g., "06:00"
	WindowEnd          string `toml:"window_end"`           // e.g., "18:00"
	CompactWindowStart string `toml:"compact_window_start"` // used at or below compact_width
	CompactWindowEnd   string `toml:"compact_window_end"`
	CompactWidth       int    `toml:"compact_width"`        // terminal columns
	MinColumnsPerHour  int    `toml:"min_columns_per_hour"` // narrows the window on small terminals
	DoubleTap          bool   `toml:"double_tap"`           // mouse clicks use double tap detection
	TapWindowMS        int    `toml:"tap_window_ms"`
	NowRefreshSeconds  int    `toml:"now_refresh_seconds"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			WindowStart:        "06:00",
			WindowEnd:          "18:00",
			CompactWindowStart: "08:00",
			CompactWindowEnd:   "16:00",
			CompactWidth:       80,
			MinColumnsPerHour:  6,
			DoubleTap:          true,
			TapWindowMS:        300,
			NowRefreshSeconds:  60,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timeblock.db"
	}
	return filepath.Join(home, ".local", "share", "timeblock", "timeblock.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timeblock", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TIMEBLOCK_WINDOW_START"); v != "" {
		cfg.Timeline.WindowStart = v
	}
	if v := os.Getenv("TIMEBLOCK_WINDOW_END"); v != "" {
		cfg.Timeline.WindowEnd = v
	}
	if v := os.Getenv("TIMEBLOCK_COMPACT_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TIMEBLOCK_COMPACT_WIDTH: %w", err)
		}
		cfg.Timeline.CompactWidth = n
	}
	if v := os.Getenv("TIMEBLOCK_DOUBLE_TAP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TIMEBLOCK_DOUBLE_TAP: %w", err)
		}
		cfg.Timeline.DoubleTap = b
	}

	if v := os.Getenv("TIMEBLOCK_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("TIMEBLOCK_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	tl := c.Timeline
	if err := validateRange(tl.WindowStart, tl.WindowEnd, "window"); err != nil {
		return err
	}
	if err := validateRange(tl.CompactWindowStart, tl.CompactWindowEnd, "compact_window"); err != nil {
		return err
	}
	if tl.CompactWidth < 0 {
		return errors.New("compact_width must not be negative")
	}
	if tl.MinColumnsPerHour <= 0 {
		return errors.New("min_columns_per_hour must be positive")
	}
	if tl.TapWindowMS <= 0 {
		return errors.New("tap_window_ms must be positive")
	}
	if tl.NowRefreshSeconds <= 0 {
		return errors.New("now_refresh_seconds must be positive")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

func validateRange(start, end, field string) error {
	if err := validateTime(start, field+"_start"); err != nil {
		return err
	}
	if err := validateTime(end, field+"_end"); err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("%s_start must be before %s_end", field, field)
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format. "24:00" is the
// end of the day.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	if t > "24:00" || min > "59" {
		return fmt.Errorf("%s is not a time of day, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// TapWindow returns the double tap window.
func (c *Config) TapWindow() time.Duration {
	return time.Duration(c.Timeline.TapWindowMS) * time.Millisecond
}

// NowRefresh returns the interval between now marker updates.
func (c *Config) NowRefresh() time.Duration {
	return time.Duration(c.Timeline.NowRefreshSeconds) * time.Second
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
