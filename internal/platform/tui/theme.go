package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cuboid/internal/core"
)

// Theme contains the configurable visual styles of the terminal UI.
type Theme struct {
	// Palette maps screen colours to terminal styles.
	Palette map[core.Color]lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuControls    lipgloss.Style

	// Scoreboard styles
	BoardTitle  lipgloss.Style
	BoardBorder lipgloss.Color
	BoardAccent lipgloss.Color
	BoardEmpty  lipgloss.Style
}

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// ansiPalette styles every screen colour with its own palette index.
func ansiPalette() map[core.Color]lipgloss.Style {
	p := make(map[core.Color]lipgloss.Style, len(core.Colors)+1)
	p[core.ColorDefault] = lipgloss.NewStyle()
	for _, c := range core.Colors {
		p[c] = fg(c.Code())
	}
	return p
}

// DefaultTheme returns the standard ANSI theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: ansiPalette(),

		MenuTitle:       fg("51").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuDescription: fg("245"),
		MenuControls:    fg("241"),

		BoardTitle:  fg("229").Bold(true).MarginBottom(1),
		BoardBorder: lipgloss.Color("240"),
		BoardAccent: lipgloss.Color("57"),
		BoardEmpty:  fg("241").Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without colour.
// Fragile and goal tiles stay distinguishable by glyph.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	gray := map[core.Color]string{
		core.ColorGray:   "242",
		core.ColorOrange: "250",
		core.ColorBlue:   "238",
		core.ColorYellow: "252",
	}
	palette := make(map[core.Color]lipgloss.Style, len(theme.Palette))
	for c := range theme.Palette {
		code, ok := gray[c]
		if !ok {
			code = "255"
		}
		palette[c] = fg(code)
	}
	palette[core.ColorDefault] = lipgloss.NewStyle()
	theme.Palette = palette
	theme.MenuTitle = fg("255").Bold(true)
	theme.MenuItemActive = fg("255").Bold(true).Underline(true)
	return theme
}

// Themes lists the built-in themes by name.
var Themes = map[string]func() Theme{
	"default":    DefaultTheme,
	"monochrome": MonochromeTheme,
}

// Global theme variable (can be changed at startup)
var theme = DefaultTheme()

// SetTheme selects a built-in theme by name.
func SetTheme(name string) error {
	f, ok := Themes[name]
	if !ok {
		return fmt.Errorf("tui: unknown theme %q (default, monochrome)", name)
	}
	theme = f()
	return nil
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}
