package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Timeline.WindowStart != "06:00" {
		t.Errorf("expected window_start 06:00, got %s", cfg.Timeline.WindowStart)
	}
	if cfg.Timeline.WindowEnd != "18:00" {
		t.Errorf("expected window_end 18:00, got %s", cfg.Timeline.WindowEnd)
	}
	if cfg.Timeline.CompactWindowStart != "08:00" || cfg.Timeline.CompactWindowEnd != "16:00" {
		t.Errorf("unexpected compact window %s-%s", cfg.Timeline.CompactWindowStart, cfg.Timeline.CompactWindowEnd)
	}
	if cfg.TapWindow() != 300*time.Millisecond {
		t.Errorf("expected tap window 300ms, got %s", cfg.TapWindow())
	}
	if cfg.NowRefresh() != time.Minute {
		t.Errorf("expected now refresh 1m, got %s", cfg.NowRefresh())
	}
	if !cfg.Timeline.DoubleTap {
		t.Error("expected double tap enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Timeline.WindowStart != "06:00" {
		t.Errorf("expected default window_start, got %s", cfg.Timeline.WindowStart)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[timeline]
window_start = "07:00"
window_end = "19:00"
compact_width = 60
double_tap = false

[storage]
db_path = "/tmp/test.db"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Timeline.WindowStart != "07:00" {
		t.Errorf("expected window_start 07:00, got %s", cfg.Timeline.WindowStart)
	}
	if cfg.Timeline.WindowEnd != "19:00" {
		t.Errorf("expected window_end 19:00, got %s", cfg.Timeline.WindowEnd)
	}
	if cfg.Timeline.CompactWidth != 60 {
		t.Errorf("expected compact_width 60, got %d", cfg.Timeline.CompactWidth)
	}
	if cfg.Timeline.DoubleTap {
		t.Error("expected double_tap false")
	}
	// Unset keys keep their defaults
	if cfg.Timeline.TapWindowMS != 300 {
		t.Errorf("expected default tap_window_ms, got %d", cfg.Timeline.TapWindowMS)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_InvalidToml(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("[timeline\nwindow_start = "), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TIMEBLOCK_WINDOW_START", "05:00")
	t.Setenv("TIMEBLOCK_WINDOW_END", "23:00")
	t.Setenv("TIMEBLOCK_COMPACT_WIDTH", "100")
	t.Setenv("TIMEBLOCK_DOUBLE_TAP", "false")
	t.Setenv("TIMEBLOCK_DB_PATH", "/custom/path.db")
	t.Setenv("TIMEBLOCK_UI_THEME", "mocha")

	cfg, err := LoadFrom("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Timeline.WindowStart != "05:00" {
		t.Errorf("expected window_start 05:00, got %s", cfg.Timeline.WindowStart)
	}
	if cfg.Timeline.WindowEnd != "23:00" {
		t.Errorf("expected window_end 23:00, got %s", cfg.Timeline.WindowEnd)
	}
	if cfg.Timeline.CompactWidth != 100 {
		t.Errorf("expected compact_width 100, got %d", cfg.Timeline.CompactWidth)
	}
	if cfg.Timeline.DoubleTap {
		t.Error("expected double_tap false")
	}
	if cfg.Storage.DBPath != "/custom/path.db" {
		t.Errorf("expected db_path /custom/path.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", cfg.UI.Theme)
	}
}

func TestEnvOverrides_InvalidNumber(t *testing.T) {
	t.Setenv("TIMEBLOCK_COMPACT_WIDTH", "wide")

	if _, err := LoadFrom("/nonexistent/config.toml"); err == nil {
		t.Fatal("expected error for non-numeric compact width")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "window end of day",
			modify:  func(c *Config) { c.Timeline.WindowEnd = "24:00" },
			wantErr: false,
		},
		{
			name:    "invalid window_start format",
			modify:  func(c *Config) { c.Timeline.WindowStart = "6:00" },
			wantErr: true,
		},
		{
			name:    "window past end of day",
			modify:  func(c *Config) { c.Timeline.WindowEnd = "24:30" },
			wantErr: true,
		},
		{
			name:    "invalid minutes",
			modify:  func(c *Config) { c.Timeline.WindowStart = "06:75" },
			wantErr: true,
		},
		{
			name: "window start after end",
			modify: func(c *Config) {
				c.Timeline.WindowStart = "18:00"
				c.Timeline.WindowEnd = "06:00"
			},
			wantErr: true,
		},
		{
			name:    "compact window empty",
			modify:  func(c *Config) { c.Timeline.CompactWindowEnd = c.Timeline.CompactWindowStart },
			wantErr: true,
		},
		{
			name:    "negative compact width",
			modify:  func(c *Config) { c.Timeline.CompactWidth = -1 },
			wantErr: true,
		},
		{
			name:    "zero columns per hour",
			modify:  func(c *Config) { c.Timeline.MinColumnsPerHour = 0 },
			wantErr: true,
		},
		{
			name:    "zero tap window",
			modify:  func(c *Config) { c.Timeline.TapWindowMS = 0 },
			wantErr: true,
		},
		{
			name:    "zero refresh",
			modify:  func(c *Config) { c.Timeline.NowRefreshSeconds = 0 },
			wantErr: true,
		},
		{
			name:    "empty db_path",
			modify:  func(c *Config) { c.Storage.DBPath = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Timeline.WindowStart = "07:30"
	cfg.UI.Theme = "mocha"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Timeline.WindowStart != "07:30" || loaded.UI.Theme != "mocha" {
		t.Errorf("unexpected loaded config: %+v", loaded)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/data/items.db"); got != filepath.Join(home, "data", "items.db") {
		t.Errorf("expandPath = %q", got)
	}
	if got := expandPath("/abs/items.db"); got != "/abs/items.db" {
		t.Errorf("expandPath changed absolute path to %q", got)
	}
}
