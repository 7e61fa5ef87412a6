package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePattern(t *testing.T) {
	tests := map[string]string{
		"./a.go":     "a.go",
		"src//b.go":  "src/b.go",
		"src/../c":   "c",
		"":           ".",
		"**/*.go":    "**/*.go",
		"./dir/x/..": "dir",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizePattern(in), in)
	}
}

func TestExpandPatterns(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"a.go", "src/b.go", "src/c.txt", "node_modules/d/e.go"} {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte("x"), 0o644))
	}
	ignore := []string{"**/node_modules/**", "node_modules/**"}

	got, err := expandPatterns(root, []string{"**/*.go", "a.go"}, ignore)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "src/b.go"}, got)

	got, err = expandPatterns(root, []string{"src/*"}, ignore)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/b.go", "src/c.txt"}, got)

	_, err = expandPatterns(root, []string{"src"}, ignore)
	require.ErrorContains(t, err, "no files match", "directories are not files")

	_, err = expandPatterns(root, []string{"node_modules/d/e.go"}, ignore)
	require.ErrorContains(t, err, "no files match")

	_, err = expandPatterns(root, []string{"[a-"}, ignore)
	require.ErrorContains(t, err, "invalid pattern")
}

func TestReadWorkingFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hi\n"), 0o644))

	content, exists, err := readWorkingFile(root, "a.txt")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "hi\n", content)

	content, exists, err = readWorkingFile(root, "gone.txt")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, content)
}

func TestMatchAny(t *testing.T) {
	assert.True(t, matchAny([]string{"*.md", "src/**"}, "src/x/y.go"))
	assert.True(t, matchAny([]string{"./README.md"}, "README.md"))
	assert.False(t, matchAny([]string{"*.md"}, "docs/a.md"))
	assert.False(t, matchAny(nil, "a.go"))
}
