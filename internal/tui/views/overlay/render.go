package overlay

import (
	"fmt"

	"github.com/colonyops/diffpane/internal/core/review"
	"github.com/colonyops/diffpane/internal/tui/components"
	"github.com/colonyops/diffpane/internal/tui/host"
)

// Render returns exactly Height rows, each exactly width columns.
func (o *DiffOverlay) Render(width int) []string {
	height := o.Height()
	body := height - chromeRows
	inner := components.InnerWidth(width)

	out := make([]string, 0, height)
	out = append(out, o.frame.Top(o.title(), width))

	var rows []string
	switch {
	case o.session.PickerOpen():
		rows = o.renderPicker(inner, body)
	case o.session.Len() == 0:
		rows = []string{o.styled(host.RoleMuted, "No pending changes")}
	default:
		rows = o.view.Render(inner, body)
	}

	for i := 0; i < body; i++ {
		line := ""
		if i < len(rows) {
			line = rows[i]
		}
		out = append(out, o.frame.Line(line, width))
	}

	out = append(out, o.frame.Line(o.status(inner), width))
	out = append(out, o.frame.Bottom(o.footer(), width))
	return out
}

func (o *DiffOverlay) title() string {
	entry, ok := o.session.SelectedEntry()
	if !ok {
		return o.styled(host.RoleTitle, "diffpane")
	}

	title := o.styled(host.RoleTitle, entry.Path) + " " +
		o.styled(host.RoleAdded, fmt.Sprintf("+%d", entry.Additions)) + " " +
		o.styled(host.RoleRemoved, fmt.Sprintf("-%d", entry.Deletions)) + " " +
		o.styled(host.RoleMuted, fmt.Sprintf("[%d/%d]", o.session.SelectedIndex()+1, o.session.Len()))
	if entry.IsNewFile {
		title += " " + o.styled(host.RoleAccent, "new")
	}
	return title
}

func (o *DiffOverlay) mode() string {
	switch {
	case o.session.PickerOpen():
		return "FILES"
	case o.view.VisualMode():
		return "VISUAL"
	default:
		return "NORMAL"
	}
}

func (o *DiffOverlay) status(width int) string {
	left := o.styled(host.RoleAccent, o.mode())
	if rec, ok := o.view.CursorRecord(); ok && !o.session.PickerOpen() {
		if n, ok := rec.Anchor(); ok {
			left += o.styled(host.RoleMuted, fmt.Sprintf("  L%d", n))
		}
	}

	switch {
	case o.err != nil:
		left += "  " + o.styled(host.RoleWarning, o.err.Error())
	case o.flash != "":
		left += "  " + o.flash
	}

	right := o.styled(host.RoleMuted, fmt.Sprintf("%d pending", o.session.Len()))

	room := width - host.Width(right) - 1
	if room <= 0 {
		return host.Truncate(left, width)
	}
	left = host.Truncate(left, room)
	return left + fmt.Sprintf("%*s", width-host.Width(left)-host.Width(right), "") + right
}

func (o *DiffOverlay) footer() string {
	keys := o.opts.Keys
	if o.session.PickerOpen() {
		return o.help.ShortHelpView(keys.Bindings(host.KeyUp, host.KeyDown, host.KeyEnter, host.KeyEscape))
	}
	return o.help.ShortHelpView(keys.Bindings(
		host.KeyTab, host.KeyVisual, host.KeyYank, host.KeyDismiss, host.KeyPicker, host.KeyHelp, host.KeyEscape,
	))
}

// renderPicker lists the session files with the picker highlight kept in
// view.
func (o *DiffOverlay) renderPicker(width, rows int) []string {
	files := o.session.Files()
	if len(files) == 0 {
		return []string{o.styled(host.RoleMuted, "No pending changes")}
	}

	idx := o.session.PickerIndex()
	if idx >= o.pickerOffset+rows {
		o.pickerOffset = idx - rows + 1
	}
	if idx < o.pickerOffset {
		o.pickerOffset = idx
	}
	o.pickerOffset = max(0, min(o.pickerOffset, len(files)-rows))

	end := min(len(files), o.pickerOffset+rows)
	out := make([]string, 0, end-o.pickerOffset)
	for i := o.pickerOffset; i < end; i++ {
		out = append(out, o.pickerRow(files[i], i == idx, width))
	}
	return out
}

func (o *DiffOverlay) pickerRow(e review.Entry, selected bool, width int) string {
	marker := "  "
	path := e.Path
	if selected {
		marker = o.styled(host.RoleAccent, "❯ ")
		if o.opts.Theme != nil {
			path = o.opts.Theme.Bold(path)
		}
	}

	stats := o.styled(host.RoleAdded, fmt.Sprintf("+%d", e.Additions)) + " " +
		o.styled(host.RoleRemoved, fmt.Sprintf("-%d", e.Deletions))
	if e.IsNewFile {
		stats += " " + o.styled(host.RoleAccent, "new")
	}

	return host.Truncate(marker+path+"  "+stats, width)
}

func (o *DiffOverlay) styled(role host.Role, s string) string {
	if o.opts.Theme == nil {
		return s
	}
	return o.opts.Theme.Fg(role, s)
}
