// Package components provides reusable TUI components.
package components

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/colonyops/diffpane/internal/tui/host"
)

// Frame draws rows of a rounded box. Every row it returns is exactly the
// requested width.
type Frame struct {
	Theme host.Theme
}

var box = lipgloss.RoundedBorder()

func (f Frame) border(s string) string {
	if f.Theme == nil {
		return s
	}
	return f.Theme.Fg(host.RoleBorder, s)
}

// edge draws a horizontal edge with an optional label after the left corner.
func (f Frame) edge(left, fill, right, label string, width int) string {
	if width <= 0 {
		return ""
	}
	if width == 1 {
		return f.border(left)
	}

	inner := width - 2
	if label == "" || inner < 4 {
		return f.border(left + strings.Repeat(fill, inner) + right)
	}

	label = host.Truncate(label, inner-3)
	rest := inner - 3 - host.Width(label)
	return f.border(left+fill+" ") + label + f.border(" "+strings.Repeat(fill, rest)+right)
}

// Top returns the top edge with title embedded.
func (f Frame) Top(title string, width int) string {
	return f.edge(box.TopLeft, box.Top, box.TopRight, title, width)
}

// Bottom returns the bottom edge with footer embedded.
func (f Frame) Bottom(footer string, width int) string {
	return f.edge(box.BottomLeft, box.Bottom, box.BottomRight, footer, width)
}

// Line returns content framed by the side edges, padded or truncated to fit.
func (f Frame) Line(content string, width int) string {
	if width < 4 {
		return host.Pad(content, width)
	}
	inner := width - 4
	return f.border(box.Left+" ") + host.Pad(content, inner) + f.border(" "+box.Right)
}

// InnerWidth returns the content width available inside a frame of width.
func InnerWidth(width int) int {
	return max(width-4, 0)
}
