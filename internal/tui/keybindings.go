package tui

import (
	"github.com/colonyops/diffpane/internal/tui/components"
	"github.com/colonyops/diffpane/internal/tui/host"
)

// helpSections groups the bindings shown in the help dialog.
func helpSections(keys *host.KeyMap) []components.HelpDialogSection {
	return []components.HelpDialogSection{
		{
			Title:    "Navigation",
			Bindings: keys.Bindings(host.KeyUp, host.KeyDown, host.KeyPageUp, host.KeyPageDown, host.KeyTop, host.KeyBottom),
		},
		{
			Title:    "Files",
			Bindings: keys.Bindings(host.KeyEnter, host.KeyTab, host.KeyShiftTab, host.KeyPicker, host.KeyDismiss, host.KeyRefresh),
		},
		{
			Title:    "Selection",
			Bindings: keys.Bindings(host.KeyVisual, host.KeyYank),
		},
		{
			Title:    "General",
			Bindings: keys.Bindings(host.KeyEscape, host.KeyHelp, host.KeyQuit),
		},
	}
}
