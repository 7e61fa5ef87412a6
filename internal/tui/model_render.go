package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// View implements tea.Model. Output is cached until a shell or the model
// requests a render.
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	if m.dirty {
		m.cached = m.render()
		m.dirty = false
	}

	v := tea.NewView(m.cached)
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var lines []string
	switch m.screen {
	case screenDiff:
		lines = m.overlay.Render(width)
	default:
		lines = m.list.Render(width)
	}

	content := strings.Join(lines, "\n")
	if m.showHelp {
		content = m.help.Overlay(content, width, len(lines))
	}
	return content
}
