package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/diffpane/internal/core/review"
)

type StatusCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
}

// NewStatusCmd creates a new status command
func NewStatusCmd(flags *Flags, app *App) *StatusCmd {
	return &StatusCmd{flags: flags, app: app}
}

// Register adds the status command to the application
func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "status",
		Usage:     "List pending changes",
		UsageText: "diffpane status [--json]",
		Description: `Displays every tracked file whose content differs from its baseline, with
added and removed line counts.

Use --json for machine readable output.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// statusInfo is the JSON output format for diffpane status --json.
type statusInfo struct {
	Tracked int           `json:"tracked"`
	Pending int           `json:"pending"`
	Files   []statusEntry `json:"files"`
}

type statusEntry struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	New       bool   `json:"new"`
}

func (cmd *StatusCmd) run(ctx context.Context, c *cli.Command) error {
	ledger, err := cmd.app.LoadLedger(ctx)
	if err != nil {
		return err
	}

	session, err := review.NewSession(ledger)
	if err != nil {
		return fmt.Errorf("compute pending changes: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		info := statusInfo{Tracked: ledger.Len(), Pending: session.Len(), Files: []statusEntry{}}
		for _, f := range session.Files() {
			info.Files = append(info.Files, statusEntry{
				Path:      f.Path,
				Additions: f.Additions,
				Deletions: f.Deletions,
				New:       f.IsNewFile,
			})
		}
		return cmd.app.writeJSON(c, info)
	}

	if session.Len() == 0 {
		_, _ = fmt.Fprintf(c.Root().ErrWriter, "No pending changes (%d tracked)\n", ledger.Len())
		return nil
	}

	// Leave room for the count columns when truncating long paths.
	pathWidth := 0
	if width := terminalWidth(out); width > 0 {
		pathWidth = max(width-24, 10)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tADDED\tREMOVED\tSTATE")
	for _, f := range session.Files() {
		state := "modified"
		if f.IsNewFile {
			state = "new"
		}

		path := f.Path
		if pathWidth > 0 {
			path = ansi.Truncate(path, pathWidth, "…")
		}
		_, _ = fmt.Fprintf(w, "%s\t+%d\t-%d\t%s\n", path, f.Additions, f.Deletions, state)
	}
	return w.Flush()
}

// terminalWidth returns the column count of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
