package commands

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/diffpane/internal/core/styles"
	"github.com/colonyops/diffpane/internal/tui/jsoncolor"
	"github.com/colonyops/diffpane/pkg/iojson"
)

// writeJSON writes obj to the command's stdout. Terminals get colored output
// using the configured theme; pipes get plain indented JSON.
func (a *App) writeJSON(c *cli.Command, obj any) error {
	out := c.Root().Writer
	if terminalWidth(out) == 0 {
		return iojson.WriteWith(out, c.Root().ErrWriter, obj)
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	theme, ok := styles.ThemeByName(a.Config.Theme)
	if !ok {
		theme = styles.NewTheme(a.Config.Palette())
	}

	_, err = fmt.Fprintln(out, jsoncolor.Colorize(data, theme))
	return err
}
