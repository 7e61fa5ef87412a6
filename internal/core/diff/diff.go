// Package diff turns a pair of file contents into a flat sequence of typed
// diff lines with independent old/new line numbers.
package diff

import (
	"fmt"
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
)

// ContextLines is the number of unchanged lines kept around each change.
const ContextLines = 3

// LineKind represents the type of a line in a diff.
type LineKind int

const (
	LineContext LineKind = iota // Unchanged line present on both sides
	LineAdded                   // Line present only in the current content
	LineRemoved                 // Line present only in the baseline content
)

// String returns a short name for the kind.
func (k LineKind) String() string {
	switch k {
	case LineAdded:
		return "added"
	case LineRemoved:
		return "removed"
	default:
		return "context"
	}
}

// Marker returns the unified diff prefix for the kind.
func (k LineKind) Marker() string {
	switch k {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// LineRecord is a single diff-visible line.
//
// Line numbers are 1-based; 0 means the line does not exist on that side.
// Added lines only carry NewLine, removed lines only OldLine.
type LineRecord struct {
	Kind    LineKind
	Text    string // Line content without the trailing newline
	OldLine int
	NewLine int
}

// Anchor returns the line number used to order and reference the record:
// the new line number when present, otherwise the old one.
func (l LineRecord) Anchor() (int, bool) {
	if l.NewLine > 0 {
		return l.NewLine, true
	}
	if l.OldLine > 0 {
		return l.OldLine, true
	}
	return 0, false
}

// Result is the materialized diff of one file.
type Result struct {
	Path      string
	IsNewFile bool
	Lines     []LineRecord
	Additions int
	Deletions int
}

// Materializer computes a Result from a baseline/current content pair.
type Materializer interface {
	Compute(path, baseline, current string) (Result, error)
}

// MaterializerFunc adapts a function to the Materializer interface.
type MaterializerFunc func(path, baseline, current string) (Result, error)

// Compute calls f.
func (f MaterializerFunc) Compute(path, baseline, current string) (Result, error) {
	return f(path, baseline, current)
}

// Default is the Materializer backed by Compute.
var Default Materializer = MaterializerFunc(Compute)

// Compute diffs baseline against current and returns one LineRecord per line
// of every hunk, using a fixed context window of ContextLines.
func Compute(path, baseline, current string) (Result, error) {
	res := Result{Path: path}

	if baseline == "" && current == "" {
		return res, nil
	}

	res.IsNewFile = baseline == "" && current != ""

	if baseline == current {
		return res, nil
	}

	edits := udiff.Strings(baseline, current)
	if len(edits) == 0 {
		return res, nil
	}

	unified, err := udiff.ToUnifiedDiff(path, path, baseline, edits, ContextLines)
	if err != nil {
		return Result{}, fmt.Errorf("compute diff for %s: %w", path, err)
	}

	for _, h := range unified.Hunks {
		oldLine := h.FromLine
		newLine := h.ToLine

		for _, l := range h.Lines {
			text := strings.TrimSuffix(l.Content, "\n")

			switch l.Kind {
			case udiff.Insert:
				res.Lines = append(res.Lines, LineRecord{Kind: LineAdded, Text: text, NewLine: newLine})
				res.Additions++
				newLine++
			case udiff.Delete:
				res.Lines = append(res.Lines, LineRecord{Kind: LineRemoved, Text: text, OldLine: oldLine})
				res.Deletions++
				oldLine++
			default:
				res.Lines = append(res.Lines, LineRecord{Kind: LineContext, Text: text, OldLine: oldLine, NewLine: newLine})
				oldLine++
				newLine++
			}
		}
	}

	return res, nil
}

// Unified returns the textual unified diff between baseline and current,
// labelled a/<path> and b/<path>. It returns an empty string when the
// contents are equal.
func Unified(path, baseline, current string) string {
	if baseline == current {
		return ""
	}
	return udiff.Unified("a/"+path, "b/"+path, baseline, current)
}
