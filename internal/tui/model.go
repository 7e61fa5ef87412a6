// Package tui is the Bubble Tea program hosting the pending-changes list and
// the diff overlay.
package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/diffpane/internal/core/config"
	"github.com/colonyops/diffpane/internal/core/highlight"
	"github.com/colonyops/diffpane/internal/core/review"
	"github.com/colonyops/diffpane/internal/core/snapshot"
	"github.com/colonyops/diffpane/internal/core/styles"
	"github.com/colonyops/diffpane/internal/store/jsonfile"
	"github.com/colonyops/diffpane/internal/tui/components"
	"github.com/colonyops/diffpane/internal/tui/components/listpicker"
	"github.com/colonyops/diffpane/internal/tui/host"
	"github.com/colonyops/diffpane/internal/tui/views/overlay"
	"github.com/colonyops/diffpane/pkg/executil"
)

// Default dimensions used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

type screen int

const (
	screenList screen = iota
	screenDiff
)

// Deps are the collaborators of the TUI. Store and Watcher are optional.
type Deps struct {
	Config  *config.Config
	Ledger  *snapshot.Ledger
	Store   *jsonfile.SnapshotStore
	Watcher *jsonfile.FileWatcher
	Exec    executil.Executor
}

// Opts tune the initial state.
type Opts struct {
	// InitialPath opens the diff of this pending file directly.
	InitialPath string
}

// Model is the Bubble Tea model. It also serves as the host.Host of the
// shells it drives, so it must be used through a pointer.
type Model struct {
	cfg     *config.Config
	ledger  *snapshot.Ledger
	store   *jsonfile.SnapshotStore
	watcher *jsonfile.FileWatcher
	exec    executil.Executor
	keys    *host.KeyMap
	theme   *styles.Theme

	session *review.Session
	list    *listpicker.ListPicker
	overlay *overlay.DiffOverlay
	help    *components.HelpDialog

	screen   screen
	showHelp bool
	width    int
	height   int

	dirty    bool
	cached   string
	cmds     []tea.Cmd
	quitting bool
}

var _ host.Host = (*Model)(nil)

// New creates the TUI model.
func New(deps Deps, opts Opts) (*Model, error) {
	cfg := deps.Config
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}

	ledger := deps.Ledger
	if ledger == nil {
		ledger = snapshot.New()
	}

	keys, err := host.NewKeyMap(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("build key map: %w", err)
	}

	theme, ok := styles.ThemeByName(cfg.Theme)
	if !ok {
		theme = styles.NewTheme(cfg.Palette())
	}

	session, err := review.NewSession(ledger)
	if err != nil {
		return nil, fmt.Errorf("open review session: %w", err)
	}

	exec := deps.Exec
	if exec == nil {
		exec = &executil.RealExecutor{}
	}

	m := &Model{
		cfg:     cfg,
		ledger:  ledger,
		store:   deps.Store,
		watcher: deps.Watcher,
		exec:    exec,
		keys:    keys,
		theme:   theme,
		session: session,
		help:    components.NewHelpDialog("Keyboard shortcuts", helpSections(keys)),
		width:   defaultWidth,
		height:  defaultHeight,
		dirty:   true,
	}

	hl := host.NoHighlight
	if cfg.Highlight.Enabled {
		hl = highlight.New(cfg.Highlight.Style).Line
	}

	m.overlay = overlay.New(session, overlay.Options{
		Host:                m,
		Theme:               theme,
		Keys:                keys,
		Highlight:           hl,
		CursorBackground:    theme.CursorBackground(),
		SelectionBackground: theme.SelectionBackground(),
		OnYank:              m.yank,
		OnDismiss:           m.dismissed,
		OnClose:             m.showList,
	})

	m.list = listpicker.New(nil, listpicker.Options{
		Title:     "Pending changes",
		EmptyText: "No pending changes",
		Theme:     theme,
		Host:      m,
		Keys:      keys,
		OnSelect:  m.openItem,
		OnCancel:  m.quit,
		OnDismiss: m.dismissItem,
	})
	m.syncList()

	if opts.InitialPath != "" && session.SelectPath(opts.InitialPath) {
		m.overlay.Refresh()
		m.screen = screenDiff
	}

	return m, nil
}

// Height implements host.Host.
func (m *Model) Height() int { return m.height }

// RequestRender implements host.Host.
func (m *Model) RequestRender() { m.dirty = true }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.watch()
}

// Ledger returns the ledger the model mutates.
func (m *Model) Ledger() *snapshot.Ledger { return m.ledger }

// Session returns the review session shared by both screens.
func (m *Model) Session() *review.Session { return m.session }

// fileChangedMsg carries a watcher event into the update loop.
type fileChangedMsg struct {
	event jsonfile.FileEvent
}

// yankedMsg reports the result of a copy command.
type yankedMsg struct {
	err error
}

// watch waits for the next watcher event.
func (m *Model) watch() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return fileChangedMsg{event: ev}
	}
}

// persist writes the ledger to the state file. Failures are logged; the TUI
// keeps running on the in-memory ledger.
func (m *Model) persist() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(context.Background(), m.ledger); err != nil {
		log.Error().Err(err).Str("path", m.store.Path()).Msg("failed to save state")
	}
}

// queue schedules a command to run after the current update.
func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

func (m *Model) takeCmds() tea.Cmd {
	if len(m.cmds) == 0 {
		return nil
	}
	cmds := m.cmds
	m.cmds = nil
	return tea.Batch(cmds...)
}
