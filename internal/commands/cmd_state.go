package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/diffpane/internal/core/snapshot"
	"github.com/colonyops/diffpane/pkg/iojson"
)

type StateCmd struct {
	flags *Flags
	app   *App

	// flags
	input   iojson.FileReader[snapshot.Data]
	replace bool
}

// NewStateCmd creates a new state command
func NewStateCmd(flags *Flags, app *App) *StateCmd {
	return &StateCmd{flags: flags, app: app}
}

// Register adds the state command to the application
func (cmd *StateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "state",
		Usage: "Export or load the tracked snapshots",
		Commands: []*cli.Command{
			{
				Name:        "export",
				Usage:       "Write the ledger as JSON to stdout",
				UsageText:   "diffpane state export",
				Description: "Prints every tracked file with its baseline and current content in the state file format.",
				Action:      cmd.runExport,
			},
			{
				Name:      "load",
				Usage:     "Load snapshots from a JSON document",
				UsageText: "diffpane state load [-f file] [--replace]",
				Description: `Reads a document produced by 'diffpane state export'. Entries are merged
into the ledger: new paths are tracked, tracked paths get the new current
content and keep their baseline. Use --replace to discard the existing
ledger first.`,
				Flags: []cli.Flag{
					cmd.input.Flag(),
					&cli.BoolFlag{
						Name:        "replace",
						Usage:       "replace the ledger instead of merging",
						Destination: &cmd.replace,
					},
				},
				Action: cmd.runLoad,
			},
		},
	})

	return app
}

func (cmd *StateCmd) runExport(ctx context.Context, c *cli.Command) error {
	ledger, err := cmd.app.LoadLedger(ctx)
	if err != nil {
		return err
	}
	return cmd.app.writeJSON(c, ledger.ToSnapshot())
}

func (cmd *StateCmd) runLoad(ctx context.Context, c *cli.Command) error {
	data, err := cmd.input.Read()
	if err != nil {
		return err
	}

	incoming, err := snapshot.FromSnapshot(data)
	if err != nil {
		return fmt.Errorf("load snapshots: %w", err)
	}

	ledger := incoming
	if !cmd.replace {
		ledger, err = cmd.app.LoadLedger(ctx)
		if err != nil {
			return err
		}
		for _, p := range incoming.Paths() {
			s, _ := incoming.Get(p)
			ledger.Track(p, s.Baseline, s.Current)
		}
	}

	if err := cmd.app.SaveLedger(ctx, ledger); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Loaded %d file(s), %d pending\n", incoming.Len(), ledger.PendingCount())
	return nil
}
