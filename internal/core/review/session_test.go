package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/diffpane/internal/core/snapshot"
)

func newSession(t *testing.T, paths ...string) *Session {
	t.Helper()
	l := snapshot.New()
	for _, p := range paths {
		l.Track(p, "old "+p+"\n", "new "+p+"\n")
	}
	s, err := NewSession(l)
	require.NoError(t, err)
	return s
}

func paths(s *Session) []string {
	var out []string
	for _, f := range s.Files() {
		out = append(out, f.Path)
	}
	return out
}

func TestSession_RefreshBuildsEntries(t *testing.T) {
	l := snapshot.New()
	l.Track("a.go", "", "package a\n")
	l.Track("b.go", "x\ny\n", "x\n")
	l.Track("c.go", "same\n", "same\n")

	s, err := NewSession(l)
	require.NoError(t, err)

	files := s.Files()
	require.Len(t, files, 2)
	assert.Equal(t, Entry{Path: "a.go", Additions: 1, IsNewFile: true}, files[0])
	assert.Equal(t, Entry{Path: "b.go", Deletions: 1}, files[1])
}

func TestSession_EmptySelection(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, 0, s.SelectedIndex())
	_, ok := s.SelectedPath()
	assert.False(t, ok)

	_, err := s.SelectedDiff()
	assert.ErrorIs(t, err, ErrNoSelection)

	s.SelectNext()
	s.SelectPrevious()
	s.SelectIndex(5)
	assert.Equal(t, 0, s.SelectedIndex())

	ok, err = s.DismissSelected()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_CircularSelection(t *testing.T) {
	s := newSession(t, "a", "b", "c")

	s.SelectPrevious()
	assert.Equal(t, 2, s.SelectedIndex())

	s.SelectNext()
	assert.Equal(t, 0, s.SelectedIndex())

	s.SelectNext()
	path, ok := s.SelectedPath()
	require.True(t, ok)
	assert.Equal(t, "b", path)
}

func TestSession_SelectIndexClamps(t *testing.T) {
	s := newSession(t, "a", "b", "c")

	tests := []struct {
		in   int
		want int
	}{
		{in: -4, want: 0},
		{in: 1, want: 1},
		{in: 99, want: 2},
	}
	for _, tt := range tests {
		s.SelectIndex(tt.in)
		assert.Equal(t, tt.want, s.SelectedIndex(), "SelectIndex(%d)", tt.in)
	}
}

func TestSession_SelectPath(t *testing.T) {
	s := newSession(t, "a", "b")

	assert.True(t, s.SelectPath("b"))
	assert.Equal(t, 1, s.SelectedIndex())
	assert.False(t, s.SelectPath("nope"))
	assert.Equal(t, 1, s.SelectedIndex())
}

func TestSession_SelectedDiff(t *testing.T) {
	s := newSession(t, "a", "b")
	s.SelectIndex(1)

	res, err := s.SelectedDiff()
	require.NoError(t, err)
	assert.Equal(t, "b", res.Path)
	assert.Equal(t, 1, res.Additions)
	assert.Equal(t, 1, res.Deletions)
}

func TestSession_DismissClampsSelection(t *testing.T) {
	s := newSession(t, "A", "B")
	s.SelectIndex(1)

	ok, err := s.DismissSelected()
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, []string{"A"}, paths(s))
	assert.Equal(t, 0, s.SelectedIndex())
	assert.Equal(t, 1, s.Ledger().PendingCount())
}

func TestSession_DismissMiddleKeepsIndex(t *testing.T) {
	s := newSession(t, "a", "b", "c")
	s.SelectIndex(1)

	_, err := s.DismissSelected()
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, paths(s))
	path, _ := s.SelectedPath()
	assert.Equal(t, "c", path)
}

func TestSession_RefreshAfterLedgerChange(t *testing.T) {
	s := newSession(t, "a")
	s.Ledger().Track("b", "1\n", "2\n")

	assert.Equal(t, 1, s.Len())
	require.NoError(t, s.Refresh())
	assert.Equal(t, []string{"a", "b"}, paths(s))
}

func TestSession_Picker(t *testing.T) {
	s := newSession(t, "a", "b", "c")
	s.SelectIndex(1)

	s.OpenPicker()
	assert.True(t, s.PickerOpen())
	assert.Equal(t, 1, s.PickerIndex())

	s.PickerNext()
	s.PickerNext()
	assert.Equal(t, 0, s.PickerIndex())
	assert.Equal(t, 1, s.SelectedIndex(), "selection is independent until confirmed")

	s.PickerPrevious()
	assert.Equal(t, 2, s.PickerIndex())

	s.ConfirmPickerSelection()
	assert.False(t, s.PickerOpen())
	assert.Equal(t, 2, s.SelectedIndex())
}

func TestSession_ClosePickerKeepsSelection(t *testing.T) {
	s := newSession(t, "a", "b")

	s.OpenPicker()
	s.PickerNext()
	s.ClosePicker()

	assert.False(t, s.PickerOpen())
	assert.Equal(t, 0, s.SelectedIndex())
}

func TestSession_PickerEmpty(t *testing.T) {
	s := newSession(t)

	s.OpenPicker()
	s.PickerNext()
	s.PickerPrevious()
	assert.Equal(t, 0, s.PickerIndex())

	s.ConfirmPickerSelection()
	assert.Equal(t, 0, s.SelectedIndex())
}

func TestSession_FilesIsCopy(t *testing.T) {
	s := newSession(t, "a")

	files := s.Files()
	files[0].Path = "mutated"

	path, _ := s.SelectedPath()
	assert.Equal(t, "a", path)
}
