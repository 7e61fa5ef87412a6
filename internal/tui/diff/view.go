// Package diff renders a materialized diff as inline scrollable rows with a
// cursor and an optional visual selection.
package diff

import (
	coreDiff "github.com/colonyops/diffpane/internal/core/diff"
	"github.com/colonyops/diffpane/internal/tui/host"
)

const (
	// DefaultCursorBackground is the 256-color background of the cursor row.
	DefaultCursorBackground = "\x1b[48;5;237m"
	// DefaultSelectionBackground is the 256-color background of selected rows.
	DefaultSelectionBackground = "\x1b[48;5;239m"
)

// Options configures an InlineView. Zero fields fall back to defaults.
type Options struct {
	Theme               host.Theme
	Highlight           host.Highlighter
	CursorBackground    string
	SelectionBackground string
}

// InlineView holds the row sequence of one file's diff and the navigation
// state over it. It is not safe for concurrent use.
type InlineView struct {
	theme     host.Theme
	highlight host.Highlighter
	cursorBg  string
	selectBg  string

	path   string
	rows   []Row
	maxNum int

	cursor int
	offset int

	visual       bool
	visualAnchor int
}

// New creates an empty InlineView.
func New(opts Options) *InlineView {
	v := &InlineView{
		theme:     opts.Theme,
		highlight: opts.Highlight,
		cursorBg:  opts.CursorBackground,
		selectBg:  opts.SelectionBackground,
	}
	if v.theme == nil {
		v.theme = plainTheme{}
	}
	if v.highlight == nil {
		v.highlight = host.NoHighlight
	}
	if v.cursorBg == "" {
		v.cursorBg = DefaultCursorBackground
	}
	if v.selectBg == "" {
		v.selectBg = DefaultSelectionBackground
	}
	return v
}

// Load replaces the displayed diff and resets cursor, scroll and selection.
func (v *InlineView) Load(res coreDiff.Result) {
	v.path = res.Path
	v.rows = buildRows(res.Lines)
	v.maxNum = maxAnchor(v.rows)
	styleRows(v.rows, v.path, v.theme, v.highlight)

	v.cursor = 0
	v.offset = 0
	v.visual = false
	v.visualAnchor = 0
}

// Path returns the path of the loaded diff.
func (v *InlineView) Path() string { return v.path }

// Len returns the number of rows, separators included.
func (v *InlineView) Len() int { return len(v.rows) }

// Rows returns a copy of the row sequence.
func (v *InlineView) Rows() []Row {
	out := make([]Row, len(v.rows))
	copy(out, v.rows)
	return out
}

// MaxLineNumber returns the widest line number shown in the gutter.
func (v *InlineView) MaxLineNumber() int { return v.maxNum }

// Cursor returns the cursor row index.
func (v *InlineView) Cursor() int { return v.cursor }

// Offset returns the index of the first visible row.
func (v *InlineView) Offset() int { return v.offset }

func (v *InlineView) clampRow(i int) int {
	if len(v.rows) == 0 {
		return 0
	}
	return max(0, min(i, len(v.rows)-1))
}

// MoveCursor moves the cursor by delta rows, clamped to the row range.
func (v *InlineView) MoveCursor(delta int) {
	v.cursor = v.clampRow(v.cursor + delta)
}

// SetCursor places the cursor at row, clamped to the row range.
func (v *InlineView) SetCursor(row int) {
	v.cursor = v.clampRow(row)
}

// ScrollAndMove shifts the viewport and the cursor by the same signed delta.
// The offset never goes below zero; the next Render clamps it from above.
func (v *InlineView) ScrollAndMove(delta int) {
	v.offset = max(0, v.offset+delta)
	v.cursor = v.clampRow(v.cursor + delta)
}

// ScrollUp moves the viewport and cursor n rows up.
func (v *InlineView) ScrollUp(n int) { v.ScrollAndMove(-n) }

// ScrollDown moves the viewport and cursor n rows down.
func (v *InlineView) ScrollDown(n int) { v.ScrollAndMove(n) }

// ScrollToTop jumps to the first row.
func (v *InlineView) ScrollToTop() {
	v.offset = 0
	v.cursor = 0
}

// ScrollToBottom jumps to the last row. The offset is left past the end and
// corrected by the next Render.
func (v *InlineView) ScrollToBottom() {
	v.cursor = v.clampRow(len(v.rows) - 1)
	v.offset = len(v.rows)
}

// EnterVisualMode starts a selection anchored at the cursor.
func (v *InlineView) EnterVisualMode() {
	v.visual = true
	v.visualAnchor = v.cursor
}

// ExitVisualMode clears the selection.
func (v *InlineView) ExitVisualMode() {
	v.visual = false
}

// VisualMode reports whether a selection is active.
func (v *InlineView) VisualMode() bool { return v.visual }

// VisualRange returns the inclusive row range between the selection anchor and
// the cursor, smallest first.
func (v *InlineView) VisualRange() (int, int) {
	lo, hi := v.visualAnchor, v.cursor
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func (v *InlineView) selectedRows() []Row {
	if len(v.rows) == 0 {
		return nil
	}
	lo, hi := v.VisualRange()
	lo, hi = v.clampRow(lo), v.clampRow(hi)
	return v.rows[lo : hi+1]
}

// SelectedRawLines returns the raw text of every row in the visual range.
// Separators contribute SeparatorText.
func (v *InlineView) SelectedRawLines() []string {
	rows := v.selectedRows()
	if rows == nil {
		return nil
	}

	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Raw
	}
	return out
}

// SelectedLineRecords returns the records of the non-separator rows in the
// visual range.
func (v *InlineView) SelectedLineRecords() []coreDiff.LineRecord {
	var out []coreDiff.LineRecord
	for _, r := range v.selectedRows() {
		if !r.IsSeparator() {
			out = append(out, r.Record)
		}
	}
	return out
}

// CursorRecord returns the record under the cursor. It reports false when the
// view is empty or the cursor is on a separator.
func (v *InlineView) CursorRecord() (coreDiff.LineRecord, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return coreDiff.LineRecord{}, false
	}
	r := v.rows[v.cursor]
	if r.IsSeparator() {
		return coreDiff.LineRecord{}, false
	}
	return r.Record, true
}

// Render returns at most height rows, each no wider than width visible
// characters. It scrolls to keep the cursor visible and clamps the offset.
func (v *InlineView) Render(width, height int) []string {
	if height <= 0 || len(v.rows) == 0 {
		return nil
	}

	if v.cursor >= v.offset+height {
		v.offset = v.cursor - height + 1
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	v.offset = max(0, min(v.offset, len(v.rows)-height))

	lo, hi := v.VisualRange()
	end := min(len(v.rows), v.offset+height)

	out := make([]string, 0, end-v.offset)
	for i := v.offset; i < end; i++ {
		line := v.rows[i].Styled
		switch {
		case i == v.cursor:
			line = withBackground(line, v.cursorBg)
		case v.visual && i >= lo && i <= hi:
			line = withBackground(line, v.selectBg)
		}
		out = append(out, truncateVisible(line, width))
	}

	return out
}

// plainTheme applies no styling.
type plainTheme struct{}

func (plainTheme) Fg(_ host.Role, text string) string { return text }
func (plainTheme) Bold(text string) string            { return text }
