package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/colonyops/diffpane/internal/core/styles"
)

// HelpDialogSection groups related key bindings under a title.
type HelpDialogSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog displays all available keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
}

// NewHelpDialog creates a new help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpDialogSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	lines := []string{styles.TitleStyle.Render(h.title), ""}

	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.HeaderStyle.Render(section.Title))
		}

		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			lines = append(lines, formatKeyDesc(strings.Join(b.Keys(), "/"), b.Help().Desc))
		}
	}

	lines = append(lines, "", styles.HelpStyle.Render("esc/? close"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.CurrentPalette.Primary).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

// Overlay renders the help dialog as a layer over the given background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	centerX := max((width-lipgloss.Width(modal))/2, 0)
	centerY := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(centerX).Y(centerY).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

// formatKeyDesc formats a key-description pair with consistent alignment.
func formatKeyDesc(keys, desc string) string {
	const keyWidth = 16

	padded := keys
	if w := lipgloss.Width(keys); w < keyWidth {
		padded += strings.Repeat(" ", keyWidth-w)
	}

	return styles.HeaderStyle.Render(padded) + styles.ItemStyle.Render(desc)
}
