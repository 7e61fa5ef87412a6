package tui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/diffpane/internal/core/review"
	"github.com/colonyops/diffpane/internal/core/styles"
	"github.com/colonyops/diffpane/internal/store/jsonfile"
	"github.com/colonyops/diffpane/internal/tui/components/listpicker"
	"github.com/colonyops/diffpane/internal/tui/host"
	"github.com/colonyops/diffpane/pkg/executil"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dirty = true
		return m, nil

	case tea.KeyPressMsg:
		m.handleKey(msg.String())
		return m, m.takeCmds()

	case fileChangedMsg:
		m.applyFileEvent(msg.event)
		m.queue(m.watch())
		return m, m.takeCmds()

	case yankedMsg:
		if msg.err != nil {
			log.Error().Err(msg.err).Str("command", m.cfg.CopyCommand).Msg("copy command failed")
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(token string) {
	if token == "ctrl+c" {
		m.quit()
		return
	}

	if m.showHelp {
		if m.keys.Matches(token, host.KeyEscape) || m.keys.Matches(token, host.KeyHelp) || m.keys.Matches(token, host.KeyQuit) {
			m.showHelp = false
			m.dirty = true
		}
		return
	}

	var consumed bool
	switch m.screen {
	case screenDiff:
		consumed = m.overlay.HandleInput(token)
	default:
		consumed = m.list.HandleInput(token)
	}
	if consumed {
		return
	}

	switch {
	case m.keys.Matches(token, host.KeyHelp):
		m.showHelp = true
		m.dirty = true
	case m.keys.Matches(token, host.KeyRefresh):
		m.refresh()
	case m.keys.Matches(token, host.KeyQuit):
		m.quit()
	}
}

// applyFileEvent feeds a disk change for a tracked file into the ledger.
func (m *Model) applyFileEvent(ev jsonfile.FileEvent) {
	if ev.Err != nil {
		log.Warn().Err(ev.Err).Str("path", ev.Path).Msg("failed to read changed file")
		return
	}
	if !m.ledger.IsTracked(ev.Path) {
		return
	}

	content := ev.Content
	if ev.Removed {
		content = ""
	}

	log.Debug().Str("path", ev.Path).Bool("removed", ev.Removed).Msg("tracked file changed")
	m.ledger.Update(ev.Path, content)
	m.persist()
	m.refresh()
}

// refresh re-reads the ledger into both screens.
func (m *Model) refresh() {
	m.overlay.Refresh()
	m.syncList()
	m.dirty = true
}

// syncList rebuilds the list items from the session, keeping the highlighted
// path when it is still pending.
func (m *Model) syncList() {
	current, hadCurrent := m.list.Selected()

	files := m.session.Files()
	items := make([]listpicker.Item, len(files))
	cursor := 0
	for i, f := range files {
		items[i] = entryItem(f, m.cfg.Icons)
		if hadCurrent && f.Path == current.ID {
			cursor = i
		}
	}

	m.list.SetItems(items)
	m.list.SetCursor(cursor)
}

func entryItem(e review.Entry, icons bool) listpicker.Item {
	label := e.Path
	if icons {
		icon := styles.IconForPath(e.Path)
		if e.IsNewFile {
			icon = styles.IconFileNew
		}
		label = icon + " " + label
	}

	item := listpicker.Item{
		ID:    e.Path,
		Label: label,
		Meta:  fmt.Sprintf("+%d -%d", e.Additions, e.Deletions),
	}
	if e.IsNewFile {
		item.Description = "new"
	}
	return item
}

func (m *Model) openItem(item listpicker.Item) {
	if !m.session.SelectPath(item.ID) {
		return
	}
	m.overlay.Refresh()
	m.screen = screenDiff
	m.dirty = true
}

func (m *Model) dismissItem(item listpicker.Item) {
	m.ledger.Dismiss(item.ID)
	m.persist()
	if err := m.session.Refresh(); err != nil {
		log.Error().Err(err).Msg("failed to refresh review session")
	}
}

func (m *Model) dismissed(path string) {
	log.Debug().Str("path", path).Msg("dismissed file")
	m.persist()
	m.syncList()
}

func (m *Model) showList() {
	m.syncList()
	m.screen = screenList
	m.dirty = true
}

func (m *Model) quit() {
	m.quitting = true
	m.dirty = true
	m.queue(tea.Quit)
}

// yank copies text with the configured copy command, or through the
// terminal clipboard (OSC 52) when none is set.
func (m *Model) yank(text string) {
	m.queue(m.copyCmd(text))
}

func (m *Model) copyCmd(text string) tea.Cmd {
	if strings.TrimSpace(m.cfg.CopyCommand) == "" {
		return tea.SetClipboard(text)
	}

	name, args := executil.ShellArgs(m.cfg.CopyCommand)
	exec := m.exec
	return func() tea.Msg {
		_, err := exec.RunStdin(context.Background(), strings.NewReader(text), name, args...)
		return yankedMsg{err: err}
	}
}
