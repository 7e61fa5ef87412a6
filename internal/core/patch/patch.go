// Package patch reads unified git patches and applies them to file content.
package patch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// ErrBinaryPatch is returned when applying a patch for a binary file.
var ErrBinaryPatch = errors.New("binary patches are not supported")

// FilePatch is the change to a single file within a patch.
type FilePatch struct {
	Path     string
	IsNew    bool
	IsDelete bool
	IsBinary bool

	file *gitdiff.File
}

// Parse reads every file patch from r.
func Parse(r io.Reader) ([]FilePatch, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}

	out := make([]FilePatch, 0, len(files))
	for _, f := range files {
		path := f.NewName
		if f.IsDelete || path == "" {
			path = f.OldName
		}

		out = append(out, FilePatch{
			Path:     path,
			IsNew:    f.IsNew,
			IsDelete: f.IsDelete,
			IsBinary: f.IsBinary,
			file:     f,
		})
	}

	return out, nil
}

// Apply returns baseline with the patch applied.
func (p FilePatch) Apply(baseline string) (string, error) {
	if p.IsBinary {
		return "", fmt.Errorf("%s: %w", p.Path, ErrBinaryPatch)
	}
	if p.file == nil {
		return baseline, nil
	}

	var buf bytes.Buffer
	if err := gitdiff.Apply(&buf, strings.NewReader(baseline), p.file); err != nil {
		return "", fmt.Errorf("apply patch to %s: %w", p.Path, err)
	}
	return buf.String(), nil
}
