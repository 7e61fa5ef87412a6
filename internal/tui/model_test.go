package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/diffpane/internal/core/config"
	"github.com/colonyops/diffpane/internal/core/review"
	"github.com/colonyops/diffpane/internal/core/snapshot"
	"github.com/colonyops/diffpane/internal/core/styles"
	"github.com/colonyops/diffpane/internal/store/jsonfile"
	"github.com/colonyops/diffpane/internal/tui/components/listpicker"
	"github.com/colonyops/diffpane/pkg/executil"
	"github.com/colonyops/diffpane/pkg/tuitest"
)

// runCmd executes cmd, expanding batches, and returns the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func hasQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

type fixture struct {
	model *Model
	store *jsonfile.SnapshotStore
	exec  *executil.RecordingExecutor
}

func newFixture(t *testing.T, opts Opts) fixture {
	t.Helper()

	ledger := snapshot.New()
	ledger.Track("a.go", "one\nthree\n", "one\ntwo\nthree\n")
	ledger.Track("b.go", "", "new\n")
	ledger.Track("same.go", "x\n", "x\n")

	cfg := config.DefaultConfig()
	cfg.Highlight.Enabled = false
	cfg.CopyCommand = "pbcopy"

	store := jsonfile.NewSnapshotStore(filepath.Join(t.TempDir(), "state.json"))
	exec := &executil.RecordingExecutor{}

	m, err := New(Deps{Config: &cfg, Ledger: ledger, Store: store, Exec: exec}, opts)
	require.NoError(t, err)

	m.Update(tuitest.WindowSize(80, 40))
	return fixture{model: m, store: store, exec: exec}
}

func (f fixture) press(keys ...string) []tea.Msg {
	var msgs []tea.Msg
	for _, k := range keys {
		_, cmd := f.model.Update(tuitest.KeyPress(k))
		msgs = append(msgs, runCmd(cmd)...)
	}
	return msgs
}

func (f fixture) content() string {
	f.model.View()
	if f.model.quitting {
		return ""
	}
	return tuitest.StripANSI(f.model.cached)
}

func TestModel_StartsOnPendingList(t *testing.T) {
	f := newFixture(t, Opts{})

	out := f.content()
	assert.Contains(t, out, "Pending changes [1/2]")
	assert.Contains(t, out, "a.go")
	assert.Contains(t, out, "b.go")
	assert.NotContains(t, out, "same.go", "unchanged files are not pending")

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 30)
}

func TestEntryItem(t *testing.T) {
	e := review.Entry{Path: "a.go", Additions: 2, Deletions: 1}
	assert.Equal(t, listpicker.Item{ID: "a.go", Label: "a.go", Meta: "+2 -1"}, entryItem(e, false))

	withIcon := entryItem(e, true)
	assert.Equal(t, styles.IconGoFile+" a.go", withIcon.Label)

	e.IsNewFile = true
	item := entryItem(e, true)
	assert.Equal(t, styles.IconFileNew+" a.go", item.Label)
	assert.Equal(t, "new", item.Description)
}

func TestModel_InitialPathOpensDiff(t *testing.T) {
	f := newFixture(t, Opts{InitialPath: "b.go"})

	assert.Equal(t, screenDiff, f.model.screen)
	assert.Equal(t, "b.go", f.model.overlay.View().Path())
}

func TestModel_OpenAndCloseDiff(t *testing.T) {
	f := newFixture(t, Opts{})

	f.press("j", "enter")
	require.Equal(t, screenDiff, f.model.screen)
	assert.Contains(t, f.content(), "b.go +1 -0 [2/2] new")

	f.press("esc")
	assert.Equal(t, screenList, f.model.screen)
	assert.Equal(t, 1, f.model.list.Cursor(), "list keeps its highlight")
}

func TestModel_YankRunsCopyCommand(t *testing.T) {
	f := newFixture(t, Opts{InitialPath: "a.go"})

	msgs := f.press("j", "y")

	require.Len(t, f.exec.Commands, 1)
	cmd := f.exec.Commands[0]
	assert.Equal(t, "sh", cmd.Cmd)
	assert.Equal(t, []string{"-c", "pbcopy"}, cmd.Args)
	assert.Equal(t, "a.go:2", cmd.Stdin)
	assert.Contains(t, msgs, tea.Msg(yankedMsg{}))
}

func TestModel_YankWithoutCopyCommandUsesClipboard(t *testing.T) {
	f := newFixture(t, Opts{InitialPath: "a.go"})
	f.model.cfg.CopyCommand = ""

	msgs := f.press("y")

	assert.Empty(t, f.exec.Commands)
	assert.NotEmpty(t, msgs)
}

func TestModel_DismissPersists(t *testing.T) {
	f := newFixture(t, Opts{InitialPath: "a.go"})

	f.press("d")

	assert.Equal(t, 1, f.model.Session().Len())
	assert.Equal(t, 1, f.model.list.Len())

	loaded, err := f.store.Load(context.Background())
	require.NoError(t, err)
	snap, ok := loaded.Get("a.go")
	require.True(t, ok)
	assert.False(t, snap.Changed())
	assert.Equal(t, []string{"b.go"}, loaded.ChangedPaths())
}

func TestModel_DismissFromList(t *testing.T) {
	f := newFixture(t, Opts{})

	msgs := f.press("d")
	assert.False(t, hasQuit(msgs))
	assert.Equal(t, []string{"b.go"}, f.model.Ledger().ChangedPaths())

	msgs = f.press("d")
	assert.True(t, hasQuit(msgs), "empty list closes the program")
}

func TestModel_FileChangeUpdatesLedger(t *testing.T) {
	f := newFixture(t, Opts{})

	f.model.Update(fileChangedMsg{event: jsonfile.FileEvent{Path: "same.go", Content: "y\n"}})
	assert.Equal(t, []string{"a.go", "b.go", "same.go"}, f.model.Ledger().ChangedPaths())
	assert.Equal(t, 3, f.model.list.Len())

	f.model.Update(fileChangedMsg{event: jsonfile.FileEvent{Path: "untracked.go", Content: "z\n"}})
	assert.False(t, f.model.Ledger().IsTracked("untracked.go"))

	f.model.Update(fileChangedMsg{event: jsonfile.FileEvent{Path: "b.go", Removed: true}})
	assert.Equal(t, []string{"a.go", "same.go"}, f.model.Ledger().ChangedPaths())

	loaded, err := f.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "same.go"}, loaded.ChangedPaths())
}

func TestModel_HelpDialog(t *testing.T) {
	f := newFixture(t, Opts{})

	f.press("?")
	require.True(t, f.model.showHelp)
	assert.Contains(t, f.content(), "Keyboard shortcuts")

	msgs := f.press("q")
	assert.False(t, f.model.showHelp)
	assert.False(t, hasQuit(msgs), "quit key closes the dialog first")
}

func TestModel_CtrlCQuitsFromHelp(t *testing.T) {
	f := newFixture(t, Opts{})

	f.press("?")
	assert.True(t, hasQuit(f.press("ctrl+c")))
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t, Opts{InitialPath: "a.go"})

	assert.True(t, hasQuit(f.press("q")))
	assert.True(t, f.model.quitting)
}

func TestModel_RenderIsCached(t *testing.T) {
	f := newFixture(t, Opts{})

	f.model.View()
	first := f.model.cached
	f.model.cached = "stale"
	f.model.View()
	assert.Equal(t, "stale", f.model.cached, "clean model reuses the cached frame")

	f.model.RequestRender()
	f.model.View()
	assert.Equal(t, first, f.model.cached)
}
