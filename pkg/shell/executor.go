package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

type IOBindings struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// OutputMode selects how a child's stdout reaches the shell.
type OutputMode int

const (
	// OutputInherit connects the child directly to the shell's writers.
	OutputInherit OutputMode = iota
	// OutputCapture buffers stdout and writes it once the child exits.
	// Stderr is always passed through.
	OutputCapture
)

func (m OutputMode) String() string {
	if m == OutputCapture {
		return "capture"
	}
	return "inherit"
}

// Executor runs an external command and waits for it to finish.
type Executor interface {
	Execute(ctx context.Context, cmd Command, args []string, io IOBindings) (int, error)
}

var ErrNotExternal = errors.New("not an external command")

// ProcessExecutor spawns child processes. Children get no stdin: programs
// that read it, such as cat with no arguments, see end of file immediately.
type ProcessExecutor struct {
	Mode OutputMode
}

func NewProcessExecutor(mode OutputMode) *ProcessExecutor {
	return &ProcessExecutor{Mode: mode}
}

// Execute returns the child's exit status. A non-zero status is not an
// error; errors mean the child could not be started or waited for.
func (e *ProcessExecutor) Execute(ctx context.Context, cmd Command, args []string, io IOBindings) (int, error) {

	if cmd.Kind != KindExternal {
		return -1, fmt.Errorf("%s: %w", cmd.Name, ErrNotExternal)
	}

	externalCmd := exec.CommandContext(ctx, cmd.Path, args...)
	externalCmd.Args = append([]string{cmd.Name}, args...)
	externalCmd.Stdin = io.Stdin
	externalCmd.Stderr = io.Stderr

	var captured bytes.Buffer
	if e.Mode == OutputCapture {
		externalCmd.Stdout = &captured
	} else {
		externalCmd.Stdout = io.Stdout
	}

	err := externalCmd.Run()

	if e.Mode == OutputCapture && captured.Len() > 0 {
		if _, werr := captured.WriteTo(io.Stdout); werr != nil && err == nil {
			err = werr
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}

		return -1, err
	}

	return 0, nil

}

var _ Executor = (*ProcessExecutor)(nil)
