package executil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStdin_PipesInput(t *testing.T) {
	e := &RealExecutor{}

	out, err := e.RunStdin(context.Background(), strings.NewReader("a.go:12"), "cat")
	require.NoError(t, err)
	assert.Equal(t, "a.go:12", string(out))
}

func TestRunStdin_StderrCappedAtMaxLen(t *testing.T) {
	e := &RealExecutor{}

	longStderr := strings.Repeat("A", maxStderrLen*2)
	cmd, args := ShellArgs(fmt.Sprintf("printf '%%s' '%s' >&2; exit 1", longStderr))

	_, err := e.RunStdin(context.Background(), strings.NewReader(""), cmd, args...)
	require.Error(t, err)

	errMsg := err.Error()
	assert.LessOrEqual(t, len(errMsg), maxStderrLen+20, "error message should be capped")
	assert.Equal(t, strings.Repeat("A", maxStderrLen), errMsg[:maxStderrLen])
}

func TestRunStdin_PreservesExitError(t *testing.T) {
	e := &RealExecutor{}
	cmd, args := ShellArgs("exit 2")

	_, err := e.RunStdin(context.Background(), strings.NewReader(""), cmd, args...)
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestRealExecutor_Run(t *testing.T) {
	e := &RealExecutor{}
	ctx := context.Background()

	t.Run("successful command", func(t *testing.T) {
		out, err := e.Run(ctx, "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})

	t.Run("command not found", func(t *testing.T) {
		_, err := e.Run(ctx, "nonexistent-command-12345")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exec nonexistent-command-12345")
	})
}

func TestRealExecutor_RunDir(t *testing.T) {
	e := &RealExecutor{}
	dir := t.TempDir()

	out, err := e.RunDir(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Contains(t, string(out), dir)

	_, err = e.RunDir(context.Background(), "/nonexistent-dir-12345", "pwd")
	assert.Error(t, err)
}

func TestRecordingExecutor(t *testing.T) {
	ctx := context.Background()

	t.Run("records commands", func(t *testing.T) {
		e := &RecordingExecutor{}

		_, _ = e.RunDir(ctx, "/repo", "git", "show", "HEAD:./a.go")
		_, _ = e.RunStdin(ctx, strings.NewReader("copied"), "sh", "-c", "pbcopy")

		require.Len(t, e.Commands, 2)
		assert.Equal(t, "/repo", e.Commands[0].Dir)
		assert.Equal(t, []string{"show", "HEAD:./a.go"}, e.Commands[0].Args)
		assert.Equal(t, "copied", e.Commands[1].Stdin)

		e.Reset()
		assert.Empty(t, e.Commands)
	})

	t.Run("returns configured output and error", func(t *testing.T) {
		wantErr := errors.New("command failed")
		e := &RecordingExecutor{
			Outputs: map[string][]byte{"git": []byte("output")},
			Errors:  map[string]error{"sh": wantErr},
		}

		out, err := e.Run(ctx, "git", "status")
		require.NoError(t, err)
		assert.Equal(t, []byte("output"), out)

		_, err = e.Run(ctx, "sh")
		assert.Equal(t, wantErr, err)
	})

	t.Run("handler overrides maps", func(t *testing.T) {
		e := &RecordingExecutor{
			Outputs: map[string][]byte{"git": []byte("ignored")},
			Handler: func(c RecordedCommand) ([]byte, error) {
				return []byte(strings.Join(c.Args, " ")), nil
			},
		}

		out, err := e.Run(ctx, "git", "rev-parse", "--show-toplevel")
		require.NoError(t, err)
		assert.Equal(t, "rev-parse --show-toplevel", string(out))
	})
}
