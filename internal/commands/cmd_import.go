package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/diffpane/internal/core/patch"
)

type ImportCmd struct {
	flags *Flags
	app   *App
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Preview a patch as pending changes",
		UsageText: "diffpane import <patch-file|->",
		Description: `Reads a unified git patch and tracks every file it touches, with the
content on disk as the baseline and the patched content as current. Nothing
on disk is modified.

Examples:
  git diff main | diffpane import -
  diffpane import fix.patch`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("import takes exactly one patch file or - for stdin")
	}

	var r io.Reader
	if name := c.Args().First(); name == "-" {
		r = c.Root().Reader
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open patch: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	files, err := patch.Parse(r)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("patch contains no file changes")
	}

	ledger, err := cmd.app.LoadLedger(ctx)
	if err != nil {
		return err
	}

	imported := 0
	for _, fp := range files {
		baseline := ""
		if !fp.IsNew {
			baseline, _, err = readWorkingFile(cmd.app.Root, fp.Path)
			if err != nil {
				return err
			}
		}

		current := ""
		if !fp.IsDelete {
			current, err = fp.Apply(baseline)
			if errors.Is(err, patch.ErrBinaryPatch) {
				_, _ = fmt.Fprintf(c.Root().ErrWriter, "Skipping %s: binary patch\n", fp.Path)
				continue
			}
			if err != nil {
				return err
			}
		}

		ledger.Track(fp.Path, baseline, current)
		imported++
		log.Debug().Str("path", fp.Path).Msg("imported patch")
	}

	if err := cmd.app.SaveLedger(ctx, ledger); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Imported %d file(s), %d pending\n", imported, ledger.PendingCount())
	return nil
}
