package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewPalette_ItemShades(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Item:        "#804020",
		Pending:     "#446688",
		Current:     "#777777",
		Warning:     "#888888",
	}

	palette := NewPalette(base)

	if palette.ItemBg != lipgloss.Color(darkenColor(base.Item)) {
		t.Fatalf("ItemBg = %q, want %q", palette.ItemBg, darkenColor(base.Item))
	}
	if palette.ItemBgAlt != lipgloss.Color(alternateShade(darkenColor(base.Item), false)) {
		t.Fatalf("ItemBgAlt = %q, want %q", palette.ItemBgAlt, alternateShade(darkenColor(base.Item), false))
	}
	if palette.PendingBg != lipgloss.Color(darkenColor(base.Pending)) {
		t.Fatalf("PendingBg = %q, want %q", palette.PendingBg, darkenColor(base.Pending))
	}
	if palette.ItemBg == palette.ItemBgAlt {
		t.Fatal("alternate shade should differ from the base shade")
	}
}

func TestNewPalette_NilThemeUsesDefault(t *testing.T) {
	palette := NewPalette(nil)
	want, err := Load(DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	if palette.Bg != lipgloss.Color(want.Bg) {
		t.Fatalf("Bg = %q, want %q", palette.Bg, want.Bg)
	}
}

func TestDarkenColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#804020", "#402828"},
		{"#000000", "#282828"},
		{"#ffffff", "#7f7f7f"},
		{"bad", "bad"},
	}
	for _, tt := range tests {
		if got := darkenColor(tt.in); got != tt.want {
			t.Errorf("darkenColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContrastPicksReadableText(t *testing.T) {
	if got := chooseTextColor("#ffffff", "#000000", "#eeeeee"); got != "#000000" {
		t.Errorf("text on white = %q, want black", got)
	}
	if got := chooseTextColor("#000000", "#000000", "#eeeeee"); got != "#eeeeee" {
		t.Errorf("text on black = %q, want light", got)
	}
}

func TestBlendColors(t *testing.T) {
	tests := []struct {
		a, b  string
		ratio float64
		want  string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#ffffff", 2, "#ffffff"},
		{"#000000", "#ff0000", 0.5, "#800000"},
		{"oops", "#ffffff", 0.5, "oops"},
	}
	for _, tt := range tests {
		if got := blendColors(tt.a, tt.b, tt.ratio); got != tt.want {
			t.Errorf("blendColors(%q, %q, %v) = %q, want %q", tt.a, tt.b, tt.ratio, got, tt.want)
		}
	}
}

func TestIsLight(t *testing.T) {
	for _, name := range Available() {
		th, err := Load(name)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := IsLight(th), name == "latte"; got != want {
			t.Errorf("IsLight(%s) = %v, want %v", name, got, want)
		}
	}
}
