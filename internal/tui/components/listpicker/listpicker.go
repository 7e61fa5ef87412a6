// Package listpicker is a bordered, keyboard-driven list of items sized to the
// host terminal.
package listpicker

import (
	"fmt"

	"charm.land/bubbles/v2/help"
	"github.com/colonyops/diffpane/internal/tui/components"
	"github.com/colonyops/diffpane/internal/tui/host"
)

// chromeRows is the number of rows taken by the top and bottom border.
const chromeRows = 2

// Item is one selectable entry.
type Item struct {
	ID          string
	Label       string
	Description string
	Meta        string // right aligned
}

// Options configures a ListPicker. Callbacks are optional.
type Options struct {
	Title     string
	EmptyText string
	Theme     host.Theme
	Host      host.Host
	Keys      *host.KeyMap

	OnSelect  func(Item)
	OnCancel  func()
	OnDismiss func(Item) // enables the dismiss key when set
}

// ListPicker is a scrollable list with a cursor. It is not safe for concurrent
// use.
type ListPicker struct {
	opts   Options
	frame  components.Frame
	help   help.Model
	items  []Item
	cursor int
	offset int
}

// New creates a ListPicker over items.
func New(items []Item, opts Options) *ListPicker {
	if opts.Keys == nil {
		opts.Keys = host.DefaultKeyMap()
	}
	if opts.EmptyText == "" {
		opts.EmptyText = "Nothing here"
	}

	p := &ListPicker{opts: opts, frame: components.Frame{Theme: opts.Theme}, help: help.New()}
	p.SetItems(items)
	return p
}

// SetItems replaces the items, keeping the cursor in range.
func (p *ListPicker) SetItems(items []Item) {
	p.items = append([]Item(nil), items...)
	p.clamp()
}

// Items returns a copy of the items.
func (p *ListPicker) Items() []Item {
	return append([]Item(nil), p.items...)
}

// Len returns the item count.
func (p *ListPicker) Len() int { return len(p.items) }

// Cursor returns the highlighted index.
func (p *ListPicker) Cursor() int { return p.cursor }

// Offset returns the index of the first visible item.
func (p *ListPicker) Offset() int { return p.offset }

// SetCursor moves the highlight to i, clamped.
func (p *ListPicker) SetCursor(i int) {
	p.cursor = i
	p.clamp()
}

// Selected returns the highlighted item.
func (p *ListPicker) Selected() (Item, bool) {
	if len(p.items) == 0 {
		return Item{}, false
	}
	return p.items[p.cursor], true
}

func (p *ListPicker) clamp() {
	if len(p.items) == 0 {
		p.cursor, p.offset = 0, 0
		return
	}
	p.cursor = max(0, min(p.cursor, len(p.items)-1))
}

// Height returns the total rows Render produces.
func (p *ListPicker) Height() int {
	return host.OverlayHeight(host.HeightOf(p.opts.Host))
}

func (p *ListPicker) visibleRows() int {
	return max(p.Height()-chromeRows, 1)
}

func (p *ListPicker) requestRender() {
	if p.opts.Host != nil {
		p.opts.Host.RequestRender()
	}
}

// HandleInput applies a key token. It reports whether the token was consumed.
func (p *ListPicker) HandleInput(token string) bool {
	keys := p.opts.Keys

	switch {
	case keys.Matches(token, host.KeyUp):
		p.move(-1)
	case keys.Matches(token, host.KeyDown):
		p.move(1)
	case keys.Matches(token, host.KeyPageUp):
		p.move(-p.visibleRows() / 2)
	case keys.Matches(token, host.KeyPageDown):
		p.move(p.visibleRows() / 2)
	case keys.Matches(token, host.KeyTop):
		p.SetCursor(0)
		p.requestRender()
	case keys.Matches(token, host.KeyBottom):
		p.SetCursor(len(p.items) - 1)
		p.requestRender()
	case keys.Matches(token, host.KeyEnter):
		if item, ok := p.Selected(); ok && p.opts.OnSelect != nil {
			p.opts.OnSelect(item)
		}
	case keys.Matches(token, host.KeyEscape):
		if p.opts.OnCancel != nil {
			p.opts.OnCancel()
		}
	case p.opts.OnDismiss != nil && keys.Matches(token, host.KeyDismiss):
		p.dismiss()
	default:
		return false
	}

	return true
}

func (p *ListPicker) move(delta int) {
	p.SetCursor(p.cursor + delta)
	p.requestRender()
}

func (p *ListPicker) dismiss() {
	item, ok := p.Selected()
	if !ok {
		return
	}

	p.opts.OnDismiss(item)
	p.items = append(p.items[:p.cursor], p.items[p.cursor+1:]...)
	p.clamp()
	p.requestRender()

	if len(p.items) == 0 && p.opts.OnCancel != nil {
		p.opts.OnCancel()
	}
}

// Render returns exactly Height rows, each exactly width columns.
func (p *ListPicker) Render(width int) []string {
	height := p.Height()
	visible := height - chromeRows

	if p.cursor >= p.offset+visible {
		p.offset = p.cursor - visible + 1
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	p.offset = max(0, min(p.offset, len(p.items)-visible))

	title := p.opts.Title
	if len(p.items) > 0 {
		title = fmt.Sprintf("%s [%d/%d]", title, p.cursor+1, len(p.items))
	}

	out := make([]string, 0, height)
	out = append(out, p.frame.Top(p.styled(host.RoleTitle, title), width))

	inner := components.InnerWidth(width)
	for row := 0; row < visible; row++ {
		i := p.offset + row
		switch {
		case len(p.items) == 0 && row == 0:
			out = append(out, p.frame.Line(p.styled(host.RoleMuted, p.opts.EmptyText), width))
		case i < len(p.items):
			out = append(out, p.frame.Line(p.renderItem(p.items[i], i == p.cursor, inner), width))
		default:
			out = append(out, p.frame.Line("", width))
		}
	}

	out = append(out, p.frame.Bottom(p.footer(), width))
	return out
}

func (p *ListPicker) footer() string {
	ids := []host.KeyID{host.KeyEnter}
	if p.opts.OnDismiss != nil {
		ids = append(ids, host.KeyDismiss)
	}
	ids = append(ids, host.KeyEscape)
	return p.help.ShortHelpView(p.opts.Keys.Bindings(ids...))
}

func (p *ListPicker) renderItem(item Item, selected bool, width int) string {
	marker := "  "
	label := item.Label
	if selected {
		marker = p.styled(host.RoleAccent, "❯ ")
		label = p.bold(label)
	}

	left := marker + label
	if item.Description != "" {
		left += "  " + p.styled(host.RoleMuted, item.Description)
	}

	right := item.Meta
	if right == "" {
		return host.Truncate(left, width)
	}

	room := width - host.Width(right) - 1
	if room <= 0 {
		return host.Truncate(left, width)
	}

	left = host.Truncate(left, room)
	gap := width - host.Width(left) - host.Width(right)
	return left + fmt.Sprintf("%*s", gap, "") + right
}

func (p *ListPicker) styled(role host.Role, s string) string {
	if p.opts.Theme == nil {
		return s
	}
	return p.opts.Theme.Fg(role, s)
}

func (p *ListPicker) bold(s string) string {
	if p.opts.Theme == nil {
		return s
	}
	return p.opts.Theme.Bold(s)
}
