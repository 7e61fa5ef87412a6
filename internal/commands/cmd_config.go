package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

type ConfigCmd struct {
	flags *Flags
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "show",
				Usage:       "Print the effective configuration",
				UsageText:   "diffpane config show",
				Description: "Prints the loaded configuration, with defaults applied, as YAML.",
				Action:      cmd.runShow,
			},
			{
				Name:        "path",
				Usage:       "Print the configuration file path",
				UsageText:   "diffpane config path",
				Description: "Prints the path the configuration is read from.",
				Action:      cmd.runPath,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runShow(_ context.Context, c *cli.Command) error {
	if cmd.flags.Config == nil {
		return fmt.Errorf("config not loaded")
	}

	data, err := yaml.Marshal(cmd.flags.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err = c.Root().Writer.Write(data)
	return err
}

func (cmd *ConfigCmd) runPath(_ context.Context, c *cli.Command) error {
	_, err := fmt.Fprintln(c.Root().Writer, cmd.flags.ConfigPath)
	return err
}
