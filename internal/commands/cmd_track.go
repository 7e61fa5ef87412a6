package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/diffpane/internal/core/config"
)

type TrackCmd struct {
	flags *Flags
	app   *App

	// flags
	baseline string
	changed  bool
}

// NewTrackCmd creates a new track command
func NewTrackCmd(flags *Flags, app *App) *TrackCmd {
	return &TrackCmd{flags: flags, app: app}
}

// Register adds the track command to the application
func (cmd *TrackCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "track",
		Usage:     "Start tracking files for review",
		UsageText: "diffpane track [--baseline head|disk|empty] [--changed] [patterns...]",
		Description: `Records a baseline for every file matching the given doublestar patterns.
Later edits to those files show up as pending changes.

The baseline defaults to the committed content at HEAD. Use --baseline disk
to review only edits made from now on, or --baseline empty to treat files as
new. Files that are already tracked keep their existing baseline.

Examples:
  diffpane track 'internal/**/*.go'
  diffpane track --changed
  diffpane track --baseline disk main.go`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "baseline",
				Aliases:     []string{"b"},
				Usage:       "baseline source (head, disk, empty); defaults to the config value",
				Destination: &cmd.baseline,
			},
			&cli.BoolFlag{
				Name:        "changed",
				Usage:       "also track every file git reports as changed or untracked",
				Destination: &cmd.changed,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *TrackCmd) run(ctx context.Context, c *cli.Command) error {
	patterns := c.Args().Slice()
	if len(patterns) == 0 && !cmd.changed {
		return fmt.Errorf("nothing to track: pass file patterns or --changed")
	}

	mode := cmd.app.Config.Baseline
	if cmd.baseline != "" {
		mode = config.Baseline(cmd.baseline)
	}
	if !mode.IsValid() {
		return fmt.Errorf("invalid baseline %q: must be one of head, disk, empty", mode)
	}

	paths, err := expandPatterns(cmd.app.Root, patterns, cmd.app.Config.Ignore)
	if err != nil {
		return err
	}

	if cmd.changed {
		changed, err := cmd.app.Git.ChangedFiles(ctx, cmd.app.Root)
		if err != nil {
			return fmt.Errorf("list changed files: %w", err)
		}
		paths = appendUnique(paths, filterIgnored(changed, cmd.app.Config.Ignore)...)
	}

	ledger, err := cmd.app.LoadLedger(ctx)
	if err != nil {
		return err
	}

	added := 0
	for _, p := range paths {
		current, _, err := readWorkingFile(cmd.app.Root, p)
		if err != nil {
			return err
		}

		if !ledger.IsTracked(p) {
			added++
		}

		baseline, err := cmd.baselineFor(ctx, mode, p, current)
		if err != nil {
			return err
		}
		ledger.Track(p, baseline, current)
		log.Debug().Str("path", p).Str("baseline", string(mode)).Msg("tracked file")
	}

	if err := cmd.app.SaveLedger(ctx, ledger); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Tracking %d new file(s), %d pending\n", added, ledger.PendingCount())
	return nil
}

func (cmd *TrackCmd) baselineFor(ctx context.Context, mode config.Baseline, path, current string) (string, error) {
	switch mode {
	case config.BaselineDisk:
		return current, nil
	case config.BaselineEmpty:
		return "", nil
	default:
		content, ok, err := cmd.app.Git.ShowHead(ctx, cmd.app.Root, path)
		if err != nil {
			return "", fmt.Errorf("read %s at HEAD: %w", path, err)
		}
		if !ok {
			return "", nil
		}
		return content, nil
	}
}

func filterIgnored(paths, ignore []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !matchAny(ignore, p) {
			out = append(out, p)
		}
	}
	return out
}

func appendUnique(dst []string, src ...string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, p := range dst {
		seen[p] = struct{}{}
	}
	for _, p := range src {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		dst = append(dst, p)
	}
	return dst
}
