// Package overlay is the bordered diff review panel: title, inline diff body,
// status line and key help, driven by raw key tokens.
package overlay

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/help"
	"github.com/colonyops/diffpane/internal/core/diff"
	"github.com/colonyops/diffpane/internal/core/review"
	"github.com/colonyops/diffpane/internal/tui/components"
	diffview "github.com/colonyops/diffpane/internal/tui/diff"
	"github.com/colonyops/diffpane/internal/tui/host"
)

// chromeRows counts the top border, status line and bottom border.
const chromeRows = 3

// Options configures a DiffOverlay. Callbacks are optional.
type Options struct {
	Host                host.Host
	Theme               host.Theme
	Keys                *host.KeyMap
	Highlight           host.Highlighter
	CursorBackground    string
	SelectionBackground string

	OnYank    func(text string)
	OnDismiss func(path string)
	OnClose   func()
}

// DiffOverlay shows the selected file of a review session.
type DiffOverlay struct {
	session *review.Session
	view    *diffview.InlineView
	opts    Options
	frame   components.Frame
	help    help.Model

	loaded    bool
	loadedRes diff.Result

	pickerOffset int
	flash        string
	err          error
}

// New creates an overlay over session and loads the selected file.
func New(session *review.Session, opts Options) *DiffOverlay {
	if opts.Keys == nil {
		opts.Keys = host.DefaultKeyMap()
	}

	o := &DiffOverlay{
		session: session,
		view: diffview.New(diffview.Options{
			Theme:               opts.Theme,
			Highlight:           opts.Highlight,
			CursorBackground:    opts.CursorBackground,
			SelectionBackground: opts.SelectionBackground,
		}),
		opts:  opts,
		frame: components.Frame{Theme: opts.Theme},
		help:  help.New(),
	}
	o.reload()
	return o
}

// Session returns the bound review session.
func (o *DiffOverlay) Session() *review.Session { return o.session }

// View returns the inline view of the selected file.
func (o *DiffOverlay) View() *diffview.InlineView { return o.view }

// Flash returns the transient status message.
func (o *DiffOverlay) Flash() string { return o.flash }

// Height returns the number of rows Render produces.
func (o *DiffOverlay) Height() int {
	return host.OverlayHeight(host.HeightOf(o.opts.Host))
}

func (o *DiffOverlay) bodyRows() int {
	return max(o.Height()-chromeRows, 1)
}

// Refresh rebuilds the file list from the ledger and reloads the view when the
// selected diff changed.
func (o *DiffOverlay) Refresh() {
	if err := o.session.Refresh(); err != nil {
		o.err = err
	}
	o.reload()
	o.requestRender()
}

// reload loads the selected diff into the view unless it is already shown.
func (o *DiffOverlay) reload() {
	res, err := o.session.SelectedDiff()
	if errors.Is(err, review.ErrNoSelection) {
		if o.loaded {
			o.view.Load(diff.Result{})
			o.loaded = false
			o.loadedRes = diff.Result{}
		}
		return
	}
	if err != nil {
		o.err = err
		return
	}

	o.err = nil
	if o.loaded && sameDiff(o.loadedRes, res) {
		return
	}

	o.view.Load(res)
	o.loaded = true
	o.loadedRes = res
}

func sameDiff(a, b diff.Result) bool {
	return a.Path == b.Path && a.IsNewFile == b.IsNewFile && slices.Equal(a.Lines, b.Lines)
}

func (o *DiffOverlay) requestRender() {
	if o.opts.Host != nil {
		o.opts.Host.RequestRender()
	}
}

// HandleInput applies a key token and reports whether it was consumed.
func (o *DiffOverlay) HandleInput(token string) bool {
	o.flash = ""

	var consumed bool
	if o.session.PickerOpen() {
		consumed = o.handlePicker(token)
	} else {
		consumed = o.handleNormal(token)
	}

	if consumed {
		o.requestRender()
	}
	return consumed
}

func (o *DiffOverlay) handlePicker(token string) bool {
	keys := o.opts.Keys

	switch {
	case keys.Matches(token, host.KeyUp):
		o.session.PickerPrevious()
	case keys.Matches(token, host.KeyDown):
		o.session.PickerNext()
	case keys.Matches(token, host.KeyEnter):
		o.session.ConfirmPickerSelection()
		o.reload()
	case keys.Matches(token, host.KeyEscape), keys.Matches(token, host.KeyPicker):
		o.session.ClosePicker()
	default:
		return false
	}
	return true
}

func (o *DiffOverlay) handleNormal(token string) bool {
	keys := o.opts.Keys
	half := max(o.bodyRows()/2, 1)

	switch {
	case keys.Matches(token, host.KeyUp):
		o.view.MoveCursor(-1)
	case keys.Matches(token, host.KeyDown):
		o.view.MoveCursor(1)
	case keys.Matches(token, host.KeyPageUp):
		o.view.ScrollUp(half)
	case keys.Matches(token, host.KeyPageDown):
		o.view.ScrollDown(half)
	case keys.Matches(token, host.KeyTop):
		o.view.ScrollToTop()
	case keys.Matches(token, host.KeyBottom):
		o.view.ScrollToBottom()
	case keys.Matches(token, host.KeyTab):
		o.session.SelectNext()
		o.reload()
	case keys.Matches(token, host.KeyShiftTab):
		o.session.SelectPrevious()
		o.reload()
	case keys.Matches(token, host.KeyPicker):
		o.session.OpenPicker()
	case keys.Matches(token, host.KeyVisual):
		if o.view.VisualMode() {
			o.view.ExitVisualMode()
		} else {
			o.view.EnterVisualMode()
		}
	case keys.Matches(token, host.KeyEscape):
		if o.view.VisualMode() {
			o.view.ExitVisualMode()
		} else if o.opts.OnClose != nil {
			o.opts.OnClose()
		}
	case keys.Matches(token, host.KeyYank):
		o.yank()
	case keys.Matches(token, host.KeyDismiss):
		o.dismiss()
	case keys.Matches(token, host.KeyRefresh):
		if err := o.session.Refresh(); err != nil {
			o.err = err
		}
		o.reload()
	default:
		return false
	}
	return true
}

func (o *DiffOverlay) yank() {
	var text string
	if o.view.VisualMode() {
		text = FormatSelection(o.view.Path(), o.view.SelectedLineRecords(), o.view.SelectedRawLines())
		o.view.ExitVisualMode()
	} else if rec, ok := o.view.CursorRecord(); ok {
		text = FormatReference(o.view.Path(), rec)
	}

	if text == "" {
		o.flash = "nothing to yank"
		return
	}

	if o.opts.OnYank != nil {
		o.opts.OnYank(text)
	}
	o.flash = "yanked " + strings.SplitN(text, "\n", 2)[0]
}

func (o *DiffOverlay) dismiss() {
	path, ok := o.session.SelectedPath()
	if !ok {
		return
	}

	dismissed, err := o.session.DismissSelected()
	if err != nil {
		o.err = err
	}
	o.reload()

	if dismissed && o.opts.OnDismiss != nil {
		o.opts.OnDismiss(path)
	}
}

// FormatReference formats a single line reference as path:line.
func FormatReference(path string, rec diff.LineRecord) string {
	line, _ := rec.Anchor()
	return fmt.Sprintf("%s:%d", path, line)
}

// FormatSelection formats a visual selection as a header naming the line
// range followed by a fenced block of the raw lines. It returns "" when the
// selection holds no diff lines.
func FormatSelection(path string, records []diff.LineRecord, raw []string) string {
	lo, hi := 0, 0
	for _, rec := range records {
		n, ok := rec.Anchor()
		if !ok {
			continue
		}
		if lo == 0 || n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	if lo == 0 {
		return ""
	}

	header := fmt.Sprintf("`%s:%d-%d`", path, lo, hi)
	if lo == hi {
		header = fmt.Sprintf("`%s:%d`", path, lo)
	}

	return header + "\n```\n" + strings.Join(raw, "\n") + "\n```"
}
