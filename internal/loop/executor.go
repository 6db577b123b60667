package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// DefaultBinary is the Claude CLI executable looked up on PATH.
const DefaultBinary = "claude"

// ClaudeArgs returns the fixed argument list for one non-interactive Claude
// run. The prompt is passed by reference, not inlined.
func ClaudeArgs(promptPath string) []string {
	return []string{
		"--dangerously-skip-permissions",
		"--print",
		"--verbose",
		"--output-format=stream-json",
		"--chrome",
		"@" + promptPath,
	}
}

// Executor runs one Claude invocation.
type Executor interface {
	// Execute runs the command with args and calls onLine for every raw line
	// of merged stdout/stderr, in order, before returning. Lines keep their
	// trailing newline; the last line may lack one. An error from onLine
	// stops reading and is returned. When ctx ends before the process does,
	// the process is killed and ctx.Err() is returned. The exit code is only
	// meaningful when err is nil.
	Execute(ctx context.Context, args []string, onLine func(string) error) (exitCode int, err error)
}

// LocalExecutor runs the Claude CLI as a child process.
type LocalExecutor struct {
	// Binary is the executable to run. Defaults to DefaultBinary if empty.
	Binary string
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// NewLocalExecutor creates a LocalExecutor for binary.
func NewLocalExecutor(binary string) *LocalExecutor {
	if binary == "" {
		binary = DefaultBinary
	}
	return &LocalExecutor{Binary: binary}
}

// Execute starts the process with stdout and stderr sharing one pipe and
// reads it on the calling goroutine.
func (e *LocalExecutor) Execute(ctx context.Context, args []string, onLine func(string) error) (int, error) {
	binary := e.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return -1, fmt.Errorf("failed to create output pipe: %w", err)
	}
	defer pr.Close()

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = e.Dir
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		return -1, fmt.Errorf("failed to start %s: %w", binary, err)
	}
	// The child holds its own copy; closing ours lets reads hit EOF on exit.
	pw.Close()

	readErr := readLines(pr, onLine)
	if readErr != nil {
		// Stop the child so Wait does not block on a consumer that gave up.
		_ = cmd.Process.Kill()
	}

	waitErr := cmd.Wait()
	if readErr != nil {
		return -1, readErr
	}
	// A killed child reports -1; surface the cancellation instead.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("%s failed: %w", binary, waitErr)
	}
	return 0, nil
}

// readLines calls onLine for each line read from r until EOF.
func readLines(r io.Reader, onLine func(string) error) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" && onLine != nil {
			if cbErr := onLine(line); cbErr != nil {
				return cbErr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read output: %w", err)
		}
	}
}
