package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// TrackedPathCompleter returns a ShellCompleteFunc that suggests tracked paths
// as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TrackedPathCompleter(app *App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app == nil || app.Store == nil {
			return
		}

		ledger, err := app.LoadLedger(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, p := range ledger.Paths() {
			_, _ = fmt.Fprintln(w, p)
		}
	}
}
