// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports, rebuilt by SetTheme.
var (
	// CLI styles.
	HeaderStyle    lipgloss.Style
	PathStyle      lipgloss.Style
	AdditionsStyle lipgloss.Style
	DeletionsStyle lipgloss.Style
	NewFileStyle   lipgloss.Style
	MutedStyle     lipgloss.Style

	// TUI styles.
	BorderStyle       lipgloss.Style
	TitleStyle        lipgloss.Style
	SelectedItemStyle lipgloss.Style
	ItemStyle         lipgloss.Style
	HelpStyle         lipgloss.Style
	FlashStyle        lipgloss.Style
	ErrorStyle        lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	PathStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	AdditionsStyle = fg(p.Success)
	DeletionsStyle = fg(p.Error)
	NewFileStyle = fg(p.Secondary).Italic(true)
	MutedStyle = fg(p.Muted)

	BorderStyle = fg(p.Primary)
	TitleStyle = lipgloss.NewStyle().Foreground(p.Foreground).Bold(true)
	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Background(p.Surface).
		Bold(true)
	ItemStyle = fg(p.Foreground)
	HelpStyle = fg(p.Muted)
	FlashStyle = fg(p.Success)
	ErrorStyle = fg(p.Error)
}

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
