package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load frappe theme", themeName: "frappe", wantName: "frappe"},
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "case insensitive", themeName: "Mocha", wantName: "mocha"},
		{name: "empty name uses default", themeName: "", wantName: DefaultName},
		{name: "unknown theme falls back to default", themeName: "nonexistent", wantName: DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestEmbeddedThemesHaveColors(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			theme, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) error = %v", name, err)
			}
			colors := map[string]string{
				"bg":           theme.Bg,
				"bg_highlight": theme.BgHighlight,
				"bg_selection": theme.BgSelection,
				"fg":           theme.Fg,
				"fg_muted":     theme.FgMuted,
				"accent":       theme.Accent,
				"item":         theme.Item,
				"pending":      theme.Pending,
				"current":      theme.Current,
				"warning":      theme.Warning,
			}
			for key, value := range colors {
				if len(value) != 7 || value[0] != '#' {
					t.Errorf("%s = %q, want #rrggbb", key, value)
				}
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	theme := &Theme{Bg: "#000000", Fg: "#ffffff", Accent: "#ff0000"}
	theme.applyDefaults()

	if theme.BgHighlight != "#000000" {
		t.Errorf("BgHighlight = %q, want bg", theme.BgHighlight)
	}
	if theme.BgSelection != "#000000" {
		t.Errorf("BgSelection = %q, want bg highlight", theme.BgSelection)
	}
	if theme.FgMuted != "#ffffff" {
		t.Errorf("FgMuted = %q, want fg", theme.FgMuted)
	}
	if theme.Item != "#ff0000" || theme.Pending != "#ff0000" {
		t.Errorf("Item/Pending = %q/%q, want accent", theme.Item, theme.Pending)
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"frappe", true},
		{"LATTE", true},
		{"mocha", true},
		{"solarized", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAvailable(tt.name); got != tt.want {
			t.Errorf("IsAvailable(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
