// Package git provides the git operations used to seed snapshot baselines.
package git

import "context"

// Git defines git operations needed by diffpane.
type Git interface {
	// RepoRoot returns the top-level directory of the repository containing dir.
	RepoRoot(ctx context.Context, dir string) (string, error)
	// ShowHead returns the content of path at HEAD. The bool is false when the
	// path does not exist in HEAD.
	ShowHead(ctx context.Context, dir, path string) (string, bool, error)
	// ChangedFiles returns paths, relative to dir, that differ from HEAD,
	// including untracked files that are not ignored.
	ChangedFiles(ctx context.Context, dir string) ([]string, error)
}
