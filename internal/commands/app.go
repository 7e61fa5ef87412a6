package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/colonyops/diffpane/internal/core/config"
	"github.com/colonyops/diffpane/internal/core/git"
	"github.com/colonyops/diffpane/internal/core/snapshot"
	"github.com/colonyops/diffpane/internal/store/jsonfile"
	"github.com/colonyops/diffpane/pkg/executil"
)

// App bundles what the commands share. It is populated in the root Before
// hook; commands hold a pointer to it from registration time.
type App struct {
	Root   string // working directory; tracked paths are relative to it
	Config *config.Config
	Store  *jsonfile.SnapshotStore
	Git    git.Git
	Exec   executil.Executor
}

// NewApp wires the store and git executor for root. A relative statePath is
// resolved against root.
func NewApp(root string, cfg *config.Config, statePath string, exec executil.Executor) *App {
	if !filepath.IsAbs(statePath) {
		statePath = filepath.Join(root, statePath)
	}
	return &App{
		Root:   root,
		Config: cfg,
		Store:  jsonfile.NewSnapshotStore(statePath),
		Git:    git.NewExecutor(cfg.GitPath, exec),
		Exec:   exec,
	}
}

// LoadLedger reads the ledger from the state file.
func (a *App) LoadLedger(ctx context.Context) (*snapshot.Ledger, error) {
	ledger, err := a.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return ledger, nil
}

// SaveLedger writes the ledger to the state file.
func (a *App) SaveLedger(ctx context.Context, ledger *snapshot.Ledger) error {
	if err := a.Store.Save(ctx, ledger); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// syncFromDisk re-reads the current content of every tracked path matching
// patterns (all paths when patterns is empty). It returns the paths read.
func (a *App) syncFromDisk(ledger *snapshot.Ledger, patterns []string) ([]string, error) {
	var synced []string
	for _, p := range ledger.Paths() {
		if len(patterns) > 0 && !matchAny(patterns, p) {
			continue
		}

		content, _, err := readWorkingFile(a.Root, p)
		if err != nil {
			return synced, err
		}
		ledger.Update(p, content)
		synced = append(synced, p)
	}
	return synced, nil
}
