package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/diffpane/internal/commands"
	"github.com/colonyops/diffpane/internal/core/config"
	"github.com/colonyops/diffpane/internal/core/styles"
	"github.com/colonyops/diffpane/pkg/executil"
	"github.com/colonyops/diffpane/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &commands.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "diffpane",
		Usage:     "Review pending file changes in a terminal diff overlay",
		UsageText: "diffpane [global options] [command [command options]] [path]",
		Description: `diffpane records a baseline for the files you track and shows every edit
made since then as an inline diff you can step through, select from and copy.

Run 'diffpane track <patterns>' to start tracking files.
Run 'diffpane' with no arguments to open the review overlay.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("DIFFPANE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <state-dir>/diffpane.log)",
				Sources:     cli.EnvVars("DIFFPANE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DIFFPANE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "state",
				Usage:       "path to the snapshot state file",
				Sources:     cli.EnvVars("DIFFPANE_STATE"),
				Value:       commands.DefaultStatePath,
				Destination: &flags.StatePath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return ctx, fmt.Errorf("resolve working directory: %w", err)
			}

			// Always log to a file so the TUI owns the terminal.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = commands.DefaultLogFile(cwd, flags.StatePath)
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			styles.SetTheme(cfg.Palette())

			// Populate the pre-allocated App (commands already hold a pointer to it)
			*app = *commands.NewApp(cwd, cfg, flags.StatePath, &executil.RealExecutor{})

			log.Debug().Str("root", cwd).Str("state", app.Store.Path()).Msg("diffpane started")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, app)

	root = commands.NewTrackCmd(flags, app).Register(root)
	root = commands.NewUpdateCmd(flags, app).Register(root)
	root = commands.NewDismissCmd(flags, app).Register(root)
	root = commands.NewStatusCmd(flags, app).Register(root)
	root = commands.NewDiffCmd(flags, app).Register(root)
	root = commands.NewImportCmd(flags, app).Register(root)
	root = commands.NewStateCmd(flags, app).Register(root)
	root = commands.NewConfigCmd(flags).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// TUI is the default action when no subcommand is provided
	root.Action = tuiCmd.Run

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
