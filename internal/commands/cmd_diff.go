package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/diffpane/internal/core/diff"
)

type DiffCmd struct {
	flags *Flags
	app   *App
}

// NewDiffCmd creates a new diff command
func NewDiffCmd(flags *Flags, app *App) *DiffCmd {
	return &DiffCmd{flags: flags, app: app}
}

// Register adds the diff command to the application
func (cmd *DiffCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "diff",
		Usage:         "Print pending changes as a unified patch",
		UsageText:     "diffpane diff [patterns...]",
		Description:   "Writes the unified diff of every pending file matching the patterns, or of all pending files.",
		ShellComplete: TrackedPathCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *DiffCmd) run(ctx context.Context, c *cli.Command) error {
	ledger, err := cmd.app.LoadLedger(ctx)
	if err != nil {
		return err
	}

	patterns := c.Args().Slice()
	out := c.Root().Writer

	for _, p := range ledger.ChangedPaths() {
		if len(patterns) > 0 && !matchAny(patterns, p) {
			continue
		}
		snap, _ := ledger.Get(p)
		if _, err := fmt.Fprint(out, diff.Unified(p, snap.Baseline, snap.Current)); err != nil {
			return err
		}
	}

	return nil
}
