package executil

import (
	"context"
	"io"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Dir   string
	Cmd   string
	Args  []string
	Stdin string
}

// RecordingExecutor captures commands for testing.
// Configure Outputs and Errors maps to control return values.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Outputs maps command names to their output.
	// Key is the command name (e.g., "git").
	Outputs map[string][]byte

	// Errors maps command names to their error.
	Errors map[string]error

	// Handler, when set, computes the result instead of Outputs and Errors.
	Handler func(c RecordedCommand) ([]byte, error)
}

// Run records the command and returns configured output/error.
func (e *RecordingExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.record(RecordedCommand{Cmd: cmd, Args: args})
}

// RunDir records the command with directory and returns configured output/error.
func (e *RecordingExecutor) RunDir(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	return e.record(RecordedCommand{Dir: dir, Cmd: cmd, Args: args})
}

// RunStdin records the command with its stdin and returns configured output/error.
func (e *RecordingExecutor) RunStdin(ctx context.Context, r io.Reader, cmd string, args ...string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return e.record(RecordedCommand{Cmd: cmd, Args: args, Stdin: string(data)})
}

func (e *RecordingExecutor) record(c RecordedCommand) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, c)

	if e.Handler != nil {
		return e.Handler(c)
	}

	var out []byte
	var err error

	if e.Outputs != nil {
		out = e.Outputs[c.Cmd]
	}
	if e.Errors != nil {
		err = e.Errors[c.Cmd]
	}

	return out, err
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
