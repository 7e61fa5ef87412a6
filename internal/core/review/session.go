// Package review holds the multi-file navigation state that drives the diff
// overlay: the ordered list of changed files, the current selection and the
// file picker sub-mode.
package review

import (
	"errors"
	"fmt"

	"github.com/colonyops/diffpane/internal/core/diff"
	"github.com/colonyops/diffpane/internal/core/snapshot"
)

// ErrNoSelection is returned when an operation needs a selected file but the
// file list is empty.
var ErrNoSelection = errors.New("no file selected")

// Entry is the per-file summary shown in the navigator.
type Entry struct {
	Path      string
	Additions int
	Deletions int
	IsNewFile bool
}

// Session navigates the changed files of one ledger.
//
// Invariants: 0 <= selected < len(files) when files is non-empty, selected
// is 0 when empty. The picker index is bounded the same way while the
// picker is open.
type Session struct {
	ledger *snapshot.Ledger

	files      []Entry
	selected   int
	pickerOpen bool
	pickerIdx  int
}

// NewSession creates a session over ledger and loads its file list.
func NewSession(ledger *snapshot.Ledger) (*Session, error) {
	s := &Session{ledger: ledger}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Ledger returns the ledger backing the session.
func (s *Session) Ledger() *snapshot.Ledger {
	return s.ledger
}

// Refresh recomputes the file list from the ledger's changed paths and
// clamps the selection into the new bounds.
func (s *Session) Refresh() error {
	paths := s.ledger.ChangedPaths()
	files := make([]Entry, 0, len(paths))
	for _, p := range paths {
		res, err := s.ledger.DiffFor(p)
		if err != nil {
			return fmt.Errorf("refresh %s: %w", p, err)
		}
		files = append(files, Entry{
			Path:      p,
			Additions: res.Additions,
			Deletions: res.Deletions,
			IsNewFile: res.IsNewFile,
		})
	}

	s.files = files
	s.selected = s.clamp(s.selected)
	if s.pickerOpen {
		s.pickerIdx = s.clamp(s.pickerIdx)
	}
	return nil
}

// Files returns a copy of the current file list.
func (s *Session) Files() []Entry {
	out := make([]Entry, len(s.files))
	copy(out, s.files)
	return out
}

// Len returns the number of files in the list.
func (s *Session) Len() int {
	return len(s.files)
}

// SelectedIndex returns the index of the selected file.
func (s *Session) SelectedIndex() int {
	return s.selected
}

// SelectNext moves the selection forward, wrapping at the end.
func (s *Session) SelectNext() {
	if len(s.files) == 0 {
		return
	}
	s.selected = (s.selected + 1) % len(s.files)
}

// SelectPrevious moves the selection backward, wrapping at the start.
func (s *Session) SelectPrevious() {
	if len(s.files) == 0 {
		return
	}
	s.selected = (s.selected - 1 + len(s.files)) % len(s.files)
}

// SelectIndex selects file i, clamped into range.
func (s *Session) SelectIndex(i int) {
	s.selected = s.clamp(i)
}

// SelectPath selects the file with the given path. It returns false when the
// path is not in the list.
func (s *Session) SelectPath(path string) bool {
	for i, f := range s.files {
		if f.Path == path {
			s.selected = i
			return true
		}
	}
	return false
}

// SelectedPath returns the path of the selected file.
func (s *Session) SelectedPath() (string, bool) {
	if len(s.files) == 0 {
		return "", false
	}
	return s.files[s.selected].Path, true
}

// SelectedEntry returns the summary of the selected file.
func (s *Session) SelectedEntry() (Entry, bool) {
	if len(s.files) == 0 {
		return Entry{}, false
	}
	return s.files[s.selected], true
}

// SelectedDiff computes the diff of the selected file.
func (s *Session) SelectedDiff() (diff.Result, error) {
	path, ok := s.SelectedPath()
	if !ok {
		return diff.Result{}, ErrNoSelection
	}
	return s.ledger.DiffFor(path)
}

// DismissSelected resets the baseline of the selected file and refreshes the
// list. It returns false when no file is selected.
func (s *Session) DismissSelected() (bool, error) {
	path, ok := s.SelectedPath()
	if !ok {
		return false, nil
	}
	s.ledger.Dismiss(path)
	if err := s.Refresh(); err != nil {
		return true, err
	}
	return true, nil
}

// OpenPicker enters the picker sub-mode starting at the current selection.
func (s *Session) OpenPicker() {
	s.pickerOpen = true
	s.pickerIdx = s.selected
}

// ClosePicker leaves the picker sub-mode without changing the selection.
func (s *Session) ClosePicker() {
	s.pickerOpen = false
}

// PickerOpen reports whether the picker sub-mode is active.
func (s *Session) PickerOpen() bool {
	return s.pickerOpen
}

// PickerIndex returns the highlighted picker entry.
func (s *Session) PickerIndex() int {
	return s.pickerIdx
}

// PickerNext moves the picker highlight forward, wrapping at the end.
func (s *Session) PickerNext() {
	if len(s.files) == 0 {
		return
	}
	s.pickerIdx = (s.pickerIdx + 1) % len(s.files)
}

// PickerPrevious moves the picker highlight backward, wrapping at the start.
func (s *Session) PickerPrevious() {
	if len(s.files) == 0 {
		return
	}
	s.pickerIdx = (s.pickerIdx - 1 + len(s.files)) % len(s.files)
}

// ConfirmPickerSelection selects the highlighted picker entry and closes the
// picker.
func (s *Session) ConfirmPickerSelection() {
	s.selected = s.clamp(s.pickerIdx)
	s.pickerOpen = false
}

func (s *Session) clamp(i int) int {
	if len(s.files) == 0 || i < 0 {
		return 0
	}
	if i >= len(s.files) {
		return len(s.files) - 1
	}
	return i
}
