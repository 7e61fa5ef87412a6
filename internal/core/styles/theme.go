package styles

import (
	"fmt"
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/colonyops/diffpane/internal/tui/host"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme maps diff and chrome roles onto a palette.
type Theme struct {
	palette Palette
	roles   map[host.Role]lipgloss.Style
	bold    lipgloss.Style
}

// NewTheme builds a Theme for p.
func NewTheme(p Palette) *Theme {
	return &Theme{
		palette: p,
		roles: map[host.Role]lipgloss.Style{
			host.RoleAdded:     fg(p.Success),
			host.RoleRemoved:   fg(p.Error),
			host.RoleContext:   fg(p.Muted),
			host.RoleSeparator: fg(p.Muted).Faint(true),
			host.RoleBorder:    fg(p.Primary),
			host.RoleTitle:     fg(p.Foreground).Bold(true),
			host.RoleAccent:    fg(p.Secondary),
			host.RoleMuted:     fg(p.Muted),
			host.RoleWarning:   fg(p.Warning),
		},
		bold: lipgloss.NewStyle().Bold(true),
	}
}

// ThemeByName returns the Theme for a built-in palette name.
func ThemeByName(name string) (*Theme, bool) {
	p, ok := GetPalette(name)
	if !ok {
		return nil, false
	}
	return NewTheme(p), true
}

// Fg renders text in the color of role. Unknown roles are left unstyled.
func (t *Theme) Fg(role host.Role, text string) string {
	s, ok := t.roles[role]
	if !ok {
		return text
	}
	return s.Render(text)
}

// Bold renders text in bold.
func (t *Theme) Bold(text string) string {
	return t.bold.Render(text)
}

// CursorBackground returns the escape that paints the cursor row.
func (t *Theme) CursorBackground() string {
	return BackgroundEscape(t.palette.Surface)
}

// SelectionBackground returns the escape that paints selected rows. It is the
// surface color blended toward the primary accent.
func (t *Theme) SelectionBackground() string {
	surface, ok1 := colorful.MakeColor(t.palette.Surface)
	primary, ok2 := colorful.MakeColor(t.palette.Primary)
	if !ok1 || !ok2 {
		return ""
	}
	return BackgroundEscape(surface.BlendLab(primary, 0.3).Clamped())
}

// BackgroundEscape returns the truecolor SGR sequence that sets c as the
// background, or "" when c cannot be converted.
func BackgroundEscape(c color.Color) string {
	if c == nil {
		return ""
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	r, g, b := cc.RGB255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}
