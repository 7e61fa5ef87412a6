package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type UpdateCmd struct {
	flags *Flags
	app   *App
}

// NewUpdateCmd creates a new update command
func NewUpdateCmd(flags *Flags, app *App) *UpdateCmd {
	return &UpdateCmd{flags: flags, app: app}
}

// Register adds the update command to the application
func (cmd *UpdateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "update",
		Usage:         "Re-read tracked files from disk",
		UsageText:     "diffpane update [patterns...]",
		Description:   "Refreshes the current content of tracked files matching the patterns, or of all tracked files.",
		ShellComplete: TrackedPathCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *UpdateCmd) run(ctx context.Context, c *cli.Command) error {
	ledger, err := cmd.app.LoadLedger(ctx)
	if err != nil {
		return err
	}

	synced, err := cmd.app.syncFromDisk(ledger, c.Args().Slice())
	if err != nil {
		return err
	}

	if err := cmd.app.SaveLedger(ctx, ledger); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Updated %d file(s), %d pending\n", len(synced), ledger.PendingCount())
	return nil
}
