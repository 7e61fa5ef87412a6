package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/diffpane/internal/tui/host"
)

func TestHelpSections_CoverEveryKey(t *testing.T) {
	sections := helpSections(host.DefaultKeyMap())

	seen := map[string]bool{}
	for _, s := range sections {
		assert.NotEmpty(t, s.Title)
		for _, b := range s.Bindings {
			seen[b.Help().Desc] = true
		}
	}

	for _, id := range host.KeyIDs() {
		desc := host.DefaultKeyMap().Binding(id).Help().Desc
		assert.True(t, seen[desc], "help dialog is missing %q", id)
	}
}

func TestHelpSections_UsesOverrides(t *testing.T) {
	keys, err := host.NewKeyMap(map[string][]string{"yank": {"Y"}})
	require.NoError(t, err)

	var yank []string
	for _, s := range helpSections(keys) {
		if s.Title == "Selection" {
			yank = s.Bindings[1].Keys()
		}
	}
	assert.Equal(t, []string{"Y"}, yank)
}
