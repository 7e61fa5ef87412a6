package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/diffpane/internal/store/jsonfile"
	"github.com/colonyops/diffpane/internal/tui"
	"github.com/colonyops/diffpane/pkg/utils"
)

type TuiCmd struct {
	flags *Flags
	app   *App

	// flags
	noWatch bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *App) *TuiCmd {
	return &TuiCmd{flags: flags, app: app}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not watch tracked files for changes",
			Sources:     cli.EnvVars("DIFFPANE_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	ledger, err := cmd.app.LoadLedger(ctx)
	if err != nil {
		return err
	}

	initialPath := ""
	if c.Args().Len() > 0 {
		initialPath = normalizePattern(c.Args().First())
		if !ledger.IsTracked(initialPath) {
			return fmt.Errorf("unknown command or untracked path %q. Run 'diffpane --help' for usage", c.Args().First())
		}
	}

	// Edits made while the TUI was closed.
	if _, err := cmd.app.syncFromDisk(ledger, nil); err != nil {
		return err
	}
	if err := cmd.app.SaveLedger(ctx, ledger); err != nil {
		return err
	}

	// Held until the program exits so nothing is drawn over the TUI.
	notices := &utils.DeferredWriter{}
	defer func() { _ = notices.Flush(c.Root().ErrWriter) }()

	var watcher *jsonfile.FileWatcher
	if !cmd.noWatch {
		watcher, err = jsonfile.NewFileWatcher(cmd.app.Root, cmd.app.Config.Ignore)
		if err != nil {
			return fmt.Errorf("start file watcher: %w", err)
		}
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close file watcher")
			}
		}()

		if err := watcher.Track(ledger.Paths()...); err != nil {
			log.Warn().Err(err).Msg("some tracked files cannot be watched")
			notices.Printf("warning: live updates are incomplete: %v", err)
		}
	}

	m, err := tui.New(tui.Deps{
		Config:  cmd.app.Config,
		Ledger:  ledger,
		Store:   cmd.app.Store,
		Watcher: watcher,
		Exec:    cmd.app.Exec,
	}, tui.Opts{InitialPath: initialPath})
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
