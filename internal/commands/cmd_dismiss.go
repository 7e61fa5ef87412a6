package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type DismissCmd struct {
	flags *Flags
	app   *App

	// flags
	all bool
}

// NewDismissCmd creates a new dismiss command
func NewDismissCmd(flags *Flags, app *App) *DismissCmd {
	return &DismissCmd{flags: flags, app: app}
}

// Register adds the dismiss command to the application
func (cmd *DismissCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dismiss",
		Usage:     "Accept pending changes",
		UsageText: "diffpane dismiss [--all] [paths...]",
		Description: `Moves the baseline of each file to its current content. The files stay
tracked, so later edits show up as new pending changes.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "dismiss every pending file",
				Destination: &cmd.all,
			},
		},
		ShellComplete: TrackedPathCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *DismissCmd) run(ctx context.Context, c *cli.Command) error {
	paths := c.Args().Slice()
	if len(paths) == 0 && !cmd.all {
		return fmt.Errorf("nothing to dismiss: pass paths or --all")
	}

	ledger, err := cmd.app.LoadLedger(ctx)
	if err != nil {
		return err
	}

	if cmd.all {
		paths = ledger.ChangedPaths()
	}

	dismissed := 0
	for _, raw := range paths {
		p := normalizePattern(raw)
		if !ledger.IsTracked(p) {
			_, _ = fmt.Fprintf(c.Root().ErrWriter, "Skipping %s: not tracked\n", raw)
			continue
		}
		ledger.Dismiss(p)
		dismissed++
	}

	if err := cmd.app.SaveLedger(ctx, ledger); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Dismissed %d file(s), %d pending\n", dismissed, ledger.PendingCount())
	return nil
}
