// Package host defines the capabilities the diff presentation layer consumes
// from its terminal host, plus the default implementations used by the
// Bubble Tea program.
package host

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// DefaultHeight is assumed when the host cannot report a viewport height.
const DefaultHeight = 40

// Host is the terminal host running the overlays.
type Host interface {
	// Height returns the viewport height in rows. Values <= 0 mean unknown.
	Height() int
	// RequestRender asks the host to redraw. It is fire-and-forget and
	// idempotent: several requests before the next frame produce one redraw.
	RequestRender()
}

// HeightOf returns h.Height(), or DefaultHeight when h is nil or the height is
// unknown.
func HeightOf(h Host) int {
	if h == nil {
		return DefaultHeight
	}
	if n := h.Height(); n > 0 {
		return n
	}
	return DefaultHeight
}

// OverlayHeight returns the fixed row count of a bordered overlay for a
// terminal of the given height: max(20, floor(height*0.75)).
func OverlayHeight(terminalHeight int) int {
	return max(20, terminalHeight*3/4)
}

// Role names a semantic style.
type Role string

// Semantic roles understood by every Theme.
const (
	RoleAdded     Role = "diff.added"
	RoleRemoved   Role = "diff.removed"
	RoleContext   Role = "diff.context"
	RoleSeparator Role = "diff.separator"
	RoleBorder    Role = "border"
	RoleTitle     Role = "title"
	RoleAccent    Role = "accent"
	RoleMuted     Role = "muted"
	RoleWarning   Role = "warning"
)

// Theme maps semantic roles to styled text. Implementations must be pure and
// only emit SGR escape sequences so the output can be measured by stripping
// them.
type Theme interface {
	Fg(role Role, text string) string
	Bold(text string) string
}

// Highlighter syntax-highlights a single line of the file at path.
type Highlighter func(text, path string) string

// NoHighlight returns text unchanged.
func NoHighlight(text, _ string) string {
	return text
}

// Truncate cuts text to at most width visible columns, adding an ellipsis
// when something was cut. Escape sequences are preserved.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, "…")
}

// Pad truncates or right-pads text with spaces to exactly width columns.
func Pad(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = Truncate(text, width)
	if w := ansi.StringWidth(text); w < width {
		text += strings.Repeat(" ", width-w)
	}
	return text
}

// Width returns the visible column width of text.
func Width(text string) int {
	return ansi.StringWidth(text)
}
