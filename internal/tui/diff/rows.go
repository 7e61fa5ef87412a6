package diff

import (
	"fmt"
	"strings"

	coreDiff "github.com/colonyops/diffpane/internal/core/diff"
	"github.com/colonyops/diffpane/internal/tui/host"
)

// SeparatorText is the raw text of a gap row between two non-adjacent hunks.
const SeparatorText = "···"

// tabWidth matches lipgloss' tab conversion so styled and highlighted rows
// expand tabs the same way.
const tabWidth = 4

var tabSpaces = strings.Repeat(" ", tabWidth)

// displayText is the on-screen form of a line: the carriage return of a CRLF
// line is dropped and tabs are expanded. Raw keeps the original text.
func displayText(s string) string {
	s = strings.TrimSuffix(s, "\r")
	return strings.ReplaceAll(s, "\t", tabSpaces)
}

// RowKind distinguishes rendered diff lines from hunk separators.
type RowKind int

const (
	RowLine RowKind = iota
	RowSeparator
)

// Row is one displayable row of an inline diff. Record is only meaningful
// for RowLine rows.
type Row struct {
	Kind   RowKind
	Record coreDiff.LineRecord
	Styled string
	Raw    string
}

// IsSeparator reports whether the row is a hunk gap.
func (r Row) IsSeparator() bool { return r.Kind == RowSeparator }

// buildRows flattens records into rows, inserting a separator wherever the
// anchors of two consecutive records are not adjacent.
func buildRows(lines []coreDiff.LineRecord) []Row {
	rows := make([]Row, 0, len(lines))

	prev, havePrev := 0, false
	for _, rec := range lines {
		anchor, ok := rec.Anchor()
		if havePrev && ok && anchor != prev+1 {
			rows = append(rows, Row{Kind: RowSeparator, Raw: SeparatorText})
		}

		rows = append(rows, Row{Kind: RowLine, Record: rec, Raw: rec.Text})
		prev, havePrev = anchor, ok
	}

	return rows
}

// maxAnchor returns the greatest line number across line rows, or 0.
func maxAnchor(rows []Row) int {
	best := 0
	for _, r := range rows {
		if r.IsSeparator() {
			continue
		}
		if a, ok := r.Record.Anchor(); ok && a > best {
			best = a
		}
	}
	return best
}

// styleRows fills in the Styled text of every row.
func styleRows(rows []Row, path string, theme host.Theme, highlight host.Highlighter) {
	numWidth := len(fmt.Sprint(maxAnchor(rows)))

	for i := range rows {
		r := &rows[i]
		if r.IsSeparator() {
			r.Styled = theme.Fg(host.RoleSeparator, SeparatorText)
			continue
		}

		anchor, _ := r.Record.Anchor()
		prefix := fmt.Sprintf("%*d %s ", numWidth, anchor, r.Record.Kind.Marker())
		text := displayText(r.Record.Text)

		switch r.Record.Kind {
		case coreDiff.LineAdded:
			r.Styled = theme.Fg(host.RoleAdded, prefix+text)
		case coreDiff.LineRemoved:
			r.Styled = theme.Fg(host.RoleRemoved, prefix+text)
		default:
			r.Styled = theme.Fg(host.RoleContext, prefix) + highlight(text, path)
		}
	}
}
