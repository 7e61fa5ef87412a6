package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	coreDiff "github.com/colonyops/diffpane/internal/core/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextLines(nums ...int) []coreDiff.LineRecord {
	out := make([]coreDiff.LineRecord, len(nums))
	for i, n := range nums {
		out[i] = coreDiff.LineRecord{
			Kind:    coreDiff.LineContext,
			Text:    fmt.Sprintf("line %d", n),
			OldLine: n,
			NewLine: n,
		}
	}
	return out
}

func sequential(n int) []coreDiff.LineRecord {
	nums := make([]int, n)
	for i := range nums {
		nums[i] = i + 1
	}
	return contextLines(nums...)
}

func loaded(lines []coreDiff.LineRecord) *InlineView {
	v := New(Options{})
	v.Load(coreDiff.Result{Path: "main.go", Lines: lines})
	return v
}

func TestLoad_SeparatorBetweenGaps(t *testing.T) {
	v := loaded(contextLines(1, 2, 10, 11))

	rows := v.Rows()
	require.Len(t, rows, 5)
	for i, r := range rows {
		assert.Equal(t, i == 2, r.IsSeparator(), "row %d", i)
	}
	assert.Equal(t, SeparatorText, rows[2].Raw)
	assert.Equal(t, 11, v.MaxLineNumber())
	assert.Equal(t, "main.go", v.Path())
}

func TestLoad_RemovedAnchorsOnOldLine(t *testing.T) {
	v := loaded([]coreDiff.LineRecord{
		{Kind: coreDiff.LineContext, Text: "a", OldLine: 1, NewLine: 1},
		{Kind: coreDiff.LineRemoved, Text: "b", OldLine: 2},
		{Kind: coreDiff.LineAdded, Text: "c", NewLine: 2},
	})

	// The added line's anchor (2) does not follow the removed line's (2).
	rows := v.Rows()
	require.Len(t, rows, 4)
	assert.True(t, rows[2].IsSeparator())
}

func TestLoad_RowFormat(t *testing.T) {
	v := loaded([]coreDiff.LineRecord{
		{Kind: coreDiff.LineContext, Text: "ctx", OldLine: 9, NewLine: 9},
		{Kind: coreDiff.LineAdded, Text: "new", NewLine: 10},
	})

	rows := v.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, " 9   ctx", rows[0].Styled)
	assert.Equal(t, "10 + new", rows[1].Styled)
	assert.Equal(t, "new", rows[1].Raw)
}

func TestLoad_ResetsState(t *testing.T) {
	v := loaded(sequential(10))
	v.SetCursor(5)
	v.EnterVisualMode()

	v.Load(coreDiff.Result{Path: "b.go", Lines: sequential(3)})

	assert.Equal(t, 0, v.Cursor())
	assert.Equal(t, 0, v.Offset())
	assert.False(t, v.VisualMode())
}

func TestCursorClamp(t *testing.T) {
	v := loaded(sequential(5))

	v.MoveCursor(-3)
	assert.Equal(t, 0, v.Cursor())

	v.MoveCursor(100)
	assert.Equal(t, 4, v.Cursor())

	v.SetCursor(-1)
	assert.Equal(t, 0, v.Cursor())

	v.SetCursor(2)
	assert.Equal(t, 2, v.Cursor())

	empty := loaded(nil)
	empty.MoveCursor(3)
	assert.Equal(t, 0, empty.Cursor())
	_, ok := empty.CursorRecord()
	assert.False(t, ok)
	assert.Nil(t, empty.Render(80, 10))
}

func TestVisualRangeSymmetric(t *testing.T) {
	v := loaded(sequential(10))
	v.SetCursor(4)
	v.EnterVisualMode()

	v.SetCursor(1)
	lo, hi := v.VisualRange()
	assert.Equal(t, 1, lo)
	assert.Equal(t, 4, hi)

	v.SetCursor(7)
	lo, hi = v.VisualRange()
	assert.Equal(t, 4, lo)
	assert.Equal(t, 7, hi)

	v.ExitVisualMode()
	assert.False(t, v.VisualMode())
}

func TestSelectedLines(t *testing.T) {
	v := loaded(contextLines(1, 2, 10, 11))
	v.SetCursor(1)
	v.EnterVisualMode()
	v.SetCursor(3)

	assert.Equal(t, []string{"line 2", SeparatorText, "line 10"}, v.SelectedRawLines())

	records := v.SelectedLineRecords()
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].NewLine)
	assert.Equal(t, 10, records[1].NewLine)
}

func TestCursorRecord(t *testing.T) {
	v := loaded(contextLines(1, 5))

	rec, ok := v.CursorRecord()
	require.True(t, ok)
	assert.Equal(t, 1, rec.NewLine)

	v.SetCursor(1)
	_, ok = v.CursorRecord()
	assert.False(t, ok, "separator row has no record")
}

func TestRender_AutoScroll(t *testing.T) {
	v := loaded(sequential(30))

	v.SetCursor(25)
	lines := v.Render(80, 10)
	assert.Len(t, lines, 10)
	assert.Equal(t, 16, v.Offset())

	v.SetCursor(3)
	v.Render(80, 10)
	assert.Equal(t, 3, v.Offset())
}

func TestRender_ScrollToBottomClamps(t *testing.T) {
	v := loaded(sequential(30))

	v.ScrollToBottom()
	assert.Equal(t, 29, v.Cursor())

	lines := v.Render(80, 10)
	assert.Len(t, lines, 10)
	assert.Equal(t, 20, v.Offset())

	v.ScrollToTop()
	v.Render(80, 10)
	assert.Equal(t, 0, v.Offset())
	assert.Equal(t, 0, v.Cursor())
}

func TestRender_ShortContent(t *testing.T) {
	v := loaded(sequential(3))
	v.ScrollDown(5)

	lines := v.Render(80, 10)
	assert.Len(t, lines, 3)
	assert.Equal(t, 0, v.Offset())
	assert.Equal(t, 2, v.Cursor())
}

func TestScrollAndMove(t *testing.T) {
	v := loaded(sequential(50))
	v.Render(80, 10)

	v.ScrollDown(10)
	assert.Equal(t, 10, v.Offset())
	assert.Equal(t, 10, v.Cursor())

	v.ScrollUp(4)
	assert.Equal(t, 6, v.Offset())
	assert.Equal(t, 6, v.Cursor())

	v.ScrollUp(100)
	assert.Equal(t, 0, v.Offset())
	assert.Equal(t, 0, v.Cursor())
}

func TestRender_WidthNeverExceeded(t *testing.T) {
	v := loaded([]coreDiff.LineRecord{
		{Kind: coreDiff.LineAdded, Text: strings.Repeat("x", 200), NewLine: 1},
		{Kind: coreDiff.LineContext, Text: strings.Repeat("y", 200), OldLine: 1, NewLine: 2},
	})
	v.SetCursor(1)
	v.EnterVisualMode()
	v.SetCursor(0)

	for _, width := range []int{0, 1, 5, 40} {
		for _, line := range v.Render(width, 10) {
			assert.LessOrEqual(t, ansi.StringWidth(line), width)
		}
	}
}

func TestRender_Highlights(t *testing.T) {
	v := New(Options{CursorBackground: "<C>", SelectionBackground: "<S>"})
	v.Load(coreDiff.Result{Path: "a.go", Lines: sequential(4)})

	lines := v.Render(80, 10)
	assert.True(t, strings.HasPrefix(lines[0], "<C>"))
	assert.False(t, strings.HasPrefix(lines[1], "<S>"))

	v.EnterVisualMode()
	v.SetCursor(2)
	lines = v.Render(80, 10)
	assert.True(t, strings.HasPrefix(lines[0], "<S>"))
	assert.True(t, strings.HasPrefix(lines[1], "<S>"))
	assert.True(t, strings.HasPrefix(lines[2], "<C>"))
	assert.Equal(t, "4   line 4", lines[3])
}

func TestRender_HeightZero(t *testing.T) {
	v := loaded(sequential(3))
	assert.Empty(t, v.Render(80, 0))
}

type highlightCall struct {
	text string
	path string
}

func TestLoad_OnlyContextIsHighlighted(t *testing.T) {
	var calls []highlightCall
	v := New(Options{Highlight: func(text, path string) string {
		calls = append(calls, highlightCall{text: text, path: path})
		return text
	}})

	v.Load(coreDiff.Result{Path: "pkg/a.go", Lines: []coreDiff.LineRecord{
		{Kind: coreDiff.LineContext, Text: "package a", OldLine: 1, NewLine: 1},
		{Kind: coreDiff.LineRemoved, Text: "var x = 1", OldLine: 2},
		{Kind: coreDiff.LineAdded, Text: "var x = 2", NewLine: 2},
		{Kind: coreDiff.LineContext, Text: "func f() {}", OldLine: 3, NewLine: 3},
	}})

	assert.Equal(t, []highlightCall{
		{text: "package a", path: "pkg/a.go"},
		{text: "func f() {}", path: "pkg/a.go"},
	}, calls)
}

func TestLoad_TabsAndCarriageReturns(t *testing.T) {
	var highlighted []string
	v := New(Options{Highlight: func(text, _ string) string {
		highlighted = append(highlighted, text)
		return text
	}})

	v.Load(coreDiff.Result{Path: "a.go", Lines: []coreDiff.LineRecord{
		{Kind: coreDiff.LineContext, Text: "\treturn", OldLine: 1, NewLine: 1},
		{Kind: coreDiff.LineAdded, Text: "\t\tx := 1\r", NewLine: 2},
		{Kind: coreDiff.LineRemoved, Text: "old\r", OldLine: 3},
	}})

	rows := v.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "1       return", ansi.Strip(rows[0].Styled))
	assert.Equal(t, "2 +         x := 1", ansi.Strip(rows[1].Styled))
	assert.Equal(t, "3 - old", ansi.Strip(rows[2].Styled))
	assert.Equal(t, []string{"    return"}, highlighted)

	assert.Equal(t, "\treturn", rows[0].Raw, "raw text is kept for yanks")
	assert.Equal(t, "\t\tx := 1\r", rows[1].Raw)

	for _, line := range v.Render(80, 10) {
		plain := ansi.Strip(line)
		assert.NotContains(t, plain, "\t")
		assert.NotContains(t, plain, "\r")
	}
}
