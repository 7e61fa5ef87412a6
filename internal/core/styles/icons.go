package styles

import (
	"path/filepath"
	"strings"
)

// Nerd Font glyphs used next to file paths.
const (
	IconFile     = ""
	IconFileNew  = ""
	IconGoFile   = ""
	IconMarkdown = ""
	IconConfig   = ""
	IconShell    = ""
	IconDocker   = "\U000f0868"
	IconMakefile = ""
)

var iconsByName = map[string]string{
	"dockerfile": IconDocker,
	"makefile":   IconMakefile,
	"readme":     IconMarkdown,
	"readme.md":  IconMarkdown,
}

var iconsByExt = map[string]string{
	".go":    IconGoFile,
	".md":    IconMarkdown,
	".json":  IconConfig,
	".yaml":  IconConfig,
	".yml":   IconConfig,
	".toml":  IconConfig,
	".sh":    IconShell,
	".bash":  IconShell,
	".zsh":   IconShell,
	".js":    "\U000f031e",
	".ts":    "\U000f06e6",
	".py":    "",
	".rs":    "",
	".rb":    "",
	".lua":   "",
	".html":  "",
	".css":   "",
	".c":     "",
	".cpp":   "",
	".java":  "",
	".php":   "",
	".sql":   "",
	".proto": IconConfig,
}

// IconForPath returns a file type icon for path, falling back to IconFile.
func IconForPath(path string) string {
	if icon, ok := iconsByName[strings.ToLower(filepath.Base(path))]; ok {
		return icon
	}
	if icon, ok := iconsByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return icon
	}
	return IconFile
}
