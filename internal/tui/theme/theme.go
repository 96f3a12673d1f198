// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pelletier/go-toml/v2"

	"timebox/internal/task"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Subtle highlight
	BgSelection string `toml:"bg_selection"` // Cursor, selection
	BgSleep     string `toml:"bg_sleep"`     // Rows outside waking hours
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Completed tasks, muted elements
	Accent      string `toml:"accent"`       // Title, borders
	Current     string `toml:"current"`      // Current-time marker
	Warning     string `toml:"warning"`      // Warnings, move mode

	// Task palette, keyed by the fixed domain palette names.
	Sky   string `toml:"sky"`
	Mint  string `toml:"mint"`
	Amber string `toml:"amber"`
	Rose  string `toml:"rose"`
	Lilac string `toml:"lilac"`
	Slate string `toml:"slate"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files. "auto" picks mocha or
// latte from the terminal background; unknown names fall back to mocha.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(name)
	if name == "" || name == "auto" {
		name = detectTheme()
	}

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}

	return &t, nil
}

// detectTheme picks a theme matching the terminal background.
func detectTheme() string {
	if termenv.HasDarkBackground() {
		return "mocha"
	}
	return "latte"
}

// TaskColor maps a domain palette color to the theme's hex value.
func (t *Theme) TaskColor(c task.Color) lipgloss.Color {
	switch c.Normalize() {
	case task.ColorMint:
		return Color(t.Mint)
	case task.ColorAmber:
		return Color(t.Amber)
	case task.ColorRose:
		return Color(t.Rose)
	case task.ColorLilac:
		return Color(t.Lilac)
	case task.ColorSlate:
		return Color(t.Slate)
	default:
		return Color(t.Sky)
	}
}
