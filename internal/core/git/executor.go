package git

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/colonyops/diffpane/pkg/executil"
)

// Executor implements Git using the git command-line tool.
type Executor struct {
	gitPath string
	exec    executil.Executor
}

var _ Git = (*Executor)(nil)

// NewExecutor creates a new git executor with the specified git binary path.
func NewExecutor(gitPath string, exec executil.Executor) *Executor {
	return &Executor{gitPath: gitPath, exec: exec}
}

func (e *Executor) RepoRoot(ctx context.Context, dir string) (string, error) {
	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("find repo root: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// missingMarkers are fragments of git's stderr when a path or HEAD is absent.
var missingMarkers = []string{
	"does not exist in",
	"exists on disk, but not in",
	"invalid object name",
	"unknown revision",
	"bad revision",
}

func (e *Executor) ShowHead(ctx context.Context, dir, path string) (string, bool, error) {
	rel := filepath.ToSlash(path)
	if !filepath.IsAbs(path) && !strings.HasPrefix(rel, "./") {
		rel = "./" + rel
	}

	out, err := e.exec.RunDir(ctx, dir, e.gitPath, "show", "HEAD:"+rel)
	if err != nil {
		msg := string(out) + err.Error()
		for _, marker := range missingMarkers {
			if strings.Contains(msg, marker) {
				return "", false, nil
			}
		}
		return "", false, fmt.Errorf("git show %s: %w", path, err)
	}

	return string(out), true, nil
}

func (e *Executor) ChangedFiles(ctx context.Context, dir string) ([]string, error) {
	modified, err := e.exec.RunDir(ctx, dir, e.gitPath, "diff", "--name-only", "--relative", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("git diff: %w", err)
	}

	untracked, err := e.exec.RunDir(ctx, dir, e.gitPath, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	return mergePathLists(string(modified), string(untracked)), nil
}

// mergePathLists splits newline separated path lists and returns the sorted,
// de-duplicated union.
func mergePathLists(lists ...string) []string {
	seen := make(map[string]struct{})
	var paths []string

	for _, list := range lists {
		for _, line := range strings.Split(list, "\n") {
			p := strings.TrimSpace(line)
			if p == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}

	sort.Strings(paths)
	return paths
}
