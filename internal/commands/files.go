package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// readWorkingFile returns the content of rel under root. A missing file reads
// as empty with exists false.
func readWorkingFile(root, rel string) (content string, exists bool, err error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", rel, err)
	}
	return string(data), true, nil
}

// normalizePattern turns a command line path or glob into a slash separated
// pattern relative to root.
func normalizePattern(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	if p == "" {
		return "."
	}
	return path.Clean(p)
}

// expandPatterns resolves doublestar patterns to regular files under root,
// skipping ignored paths. Every pattern must match at least one file.
func expandPatterns(root string, patterns, ignore []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	var out []string

	for _, raw := range patterns {
		pattern := normalizePattern(raw)
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", raw)
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", raw, err)
		}

		added := 0
		for _, m := range matches {
			if matchAny(ignore, m) {
				continue
			}
			added++
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
		if added == 0 {
			return nil, fmt.Errorf("no files match %q", raw)
		}
	}

	return out, nil
}

// matchAny reports whether p matches one of the doublestar patterns.
func matchAny(patterns []string, p string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(normalizePattern(pattern), p); ok {
			return true
		}
	}
	return false
}
