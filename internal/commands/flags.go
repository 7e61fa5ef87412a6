package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/diffpane/internal/core/config"
)

// DefaultStatePath is the ledger file, relative to the working directory.
const DefaultStatePath = ".diffpane/state.json"

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	StatePath  string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "diffpane", "config.yaml")
}

// DefaultLogFile places the log next to the state file.
func DefaultLogFile(root, statePath string) string {
	if !filepath.IsAbs(statePath) {
		statePath = filepath.Join(root, statePath)
	}
	return filepath.Join(filepath.Dir(statePath), "diffpane.log")
}
