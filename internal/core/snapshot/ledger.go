// Package snapshot tracks baseline/current content pairs per file path and is
// the source of truth for which files have pending changes.
package snapshot

import (
	"errors"

	"github.com/colonyops/diffpane/internal/core/diff"
	"github.com/colonyops/diffpane/pkg/kv"
)

// ErrNotTracked is returned when a diff is requested for an untracked path.
var ErrNotTracked = errors.New("path is not tracked")

// Snapshot is the content pair recorded for a tracked file.
type Snapshot struct {
	Baseline string
	Current  string
}

// Changed reports whether the current content differs from the baseline.
func (s Snapshot) Changed() bool {
	return s.Baseline != s.Current
}

// Ledger owns the tracked snapshots keyed by path, in the order the paths
// were first tracked. Snapshots are stored by value so callers never alias
// ledger state.
//
// Ledger is not safe for concurrent use.
type Ledger struct {
	files *kv.Ordered[string, Snapshot]
	diff  diff.Materializer
}

// New returns an empty ledger that computes diffs with diff.Default.
func New() *Ledger {
	return NewWithMaterializer(diff.Default)
}

// NewWithMaterializer returns an empty ledger using m to compute diffs.
func NewWithMaterializer(m diff.Materializer) *Ledger {
	if m == nil {
		m = diff.Default
	}
	return &Ledger{
		files: kv.New[string, Snapshot](),
		diff:  m,
	}
}

// Track starts tracking path. If path is already tracked only the current
// content is replaced; the existing baseline is preserved.
func (l *Ledger) Track(path, baseline, current string) {
	if l.files.Has(path) {
		l.Update(path, current)
		return
	}
	l.files.Set(path, Snapshot{Baseline: baseline, Current: current})
}

// Update replaces the current content of a tracked path. Untracked paths are
// ignored.
func (l *Ledger) Update(path, current string) {
	l.files.Update(path, func(s Snapshot) Snapshot {
		s.Current = current
		return s
	})
}

// Dismiss resets the baseline of a tracked path to its current content, so
// its diff is empty until the next update. Untracked paths are ignored.
func (l *Ledger) Dismiss(path string) {
	l.files.Update(path, func(s Snapshot) Snapshot {
		s.Baseline = s.Current
		return s
	})
}

// IsTracked reports whether path is tracked.
func (l *Ledger) IsTracked(path string) bool {
	return l.files.Has(path)
}

// Get returns a copy of the snapshot for path.
func (l *Ledger) Get(path string) (Snapshot, bool) {
	return l.files.Get(path)
}

// Paths returns all tracked paths in ledger order.
func (l *Ledger) Paths() []string {
	return l.files.Keys()
}

// Len returns the number of tracked paths.
func (l *Ledger) Len() int {
	return l.files.Len()
}

// DiffFor computes the diff of a tracked path on demand. Results are never
// cached. Returns ErrNotTracked when the path is absent.
func (l *Ledger) DiffFor(path string) (diff.Result, error) {
	s, ok := l.files.Get(path)
	if !ok {
		return diff.Result{}, ErrNotTracked
	}
	return l.diff.Compute(path, s.Baseline, s.Current)
}

// ChangedPaths returns the tracked paths whose baseline differs from the
// current content, in ledger order.
func (l *Ledger) ChangedPaths() []string {
	var paths []string
	l.files.Each(func(path string, s Snapshot) bool {
		if s.Changed() {
			paths = append(paths, path)
		}
		return true
	})
	return paths
}

// PendingCount returns the number of changed paths.
func (l *Ledger) PendingCount() int {
	return len(l.ChangedPaths())
}
