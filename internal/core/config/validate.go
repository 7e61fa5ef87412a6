package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/colonyops/diffpane/internal/core/styles"
	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is valid. Every problem is reported
// as a criterio field error.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("theme", c.Theme, themeExists),
		criterio.Run("baseline", string(c.Baseline), baselineValid),
		criterio.Run("git_path", c.GitPath, notEmpty),
		c.validateHighlight(),
		c.validateIgnore(),
		c.validateKeys(),
	)
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func baselineValid(b string) error {
	if !Baseline(b).IsValid() {
		return fmt.Errorf("must be one of head, disk, empty; got %q", b)
	}
	return nil
}

func (c *Config) validateHighlight() error {
	if !c.Highlight.Enabled {
		return nil
	}
	if !slices.Contains(chromastyles.Names(), c.Highlight.Style) {
		return criterio.NewFieldErrors("highlight.style", fmt.Errorf("unknown chroma style %q", c.Highlight.Style))
	}
	return nil
}

func (c *Config) validateIgnore() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("ignore[%d]", i), fmt.Errorf("invalid pattern %q", pattern))
		}
	}
	return errs.ToError()
}

func (c *Config) validateKeys() error {
	ids := make([]string, 0, len(c.Keys))
	for id := range c.Keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs criterio.FieldErrorsBuilder
	for _, id := range ids {
		keys := c.Keys[id]
		if len(keys) == 0 {
			errs = errs.Append(fmt.Sprintf("keys.%s", id), fmt.Errorf("must list at least one key"))
			continue
		}
		for j, k := range keys {
			if strings.TrimSpace(k) == "" {
				errs = errs.Append(fmt.Sprintf("keys.%s[%d]", id, j), fmt.Errorf("key cannot be empty"))
			}
		}
	}
	return errs.ToError()
}
