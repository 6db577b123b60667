//go:build e2e

// cli_harness_test.go provides a harness for end-to-end tests of the
// claude-loop binary.
//
// The harness builds the binary once per test and installs a fake `claude`
// shell script that replays canned stream-json output, so the real Claude CLI
// is never needed.
package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thruflo/claude-loop/internal/testutil"
)

// fakeClaude replays run<N>.jsonl on the Nth invocation (default.jsonl when
// missing), writes one line to stderr, records its arguments, and exits with
// the code in exit<N> if present.
const fakeClaude = `#!/bin/sh
dir="$(dirname "$0")"
n=$(cat "$dir/count" 2>/dev/null || echo 0)
n=$((n + 1))
echo "$n" > "$dir/count"
echo "$@" >> "$dir/args"
f="$dir/run$n.jsonl"
[ -f "$f" ] || f="$dir/default.jsonl"
[ -f "$f" ] && cat "$f"
echo "fake-claude stderr $n" >&2
[ -f "$dir/exit$n" ] && exit "$(cat "$dir/exit$n")"
exit 0
`

// CLIHarness manages a claude-loop binary and a fake Claude for E2E testing.
type CLIHarness struct {
	// BinaryPath is the built claude-loop binary.
	BinaryPath string

	// FakeDir holds the fake claude script and its canned output.
	FakeDir string

	// Inputs are the PRD, prompt and progress files of the workspace.
	Inputs testutil.Inputs

	t *testing.T
}

// CLIResult contains the output from a CLI command execution.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success returns true if the command completed with exit code 0.
func (r *CLIResult) Success() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// NewCLIHarness builds the binary and creates a workspace with input files
// and a fake claude executable.
func NewCLIHarness(t *testing.T) *CLIHarness {
	t.Helper()

	projectRoot := findProjectRoot(t)
	require.NotEmpty(t, projectRoot, "could not find project root (directory containing go.mod)")

	tmpDir := t.TempDir()
	binaryPath := filepath.Join(tmpDir, "claude-loop")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/claude-loop")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build claude-loop binary: %s", output)

	fakeDir := filepath.Join(tmpDir, "fake")
	require.NoError(t, os.MkdirAll(fakeDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(fakeDir, "claude"), []byte(fakeClaude), 0o755))

	return &CLIHarness{
		BinaryPath: binaryPath,
		FakeDir:    fakeDir,
		Inputs:     testutil.SetupInputs(t),
		t:          t,
	}
}

// Script sets the output of the nth fake Claude run (1-based).
func (h *CLIHarness) Script(n int, lines []string, exitCode int) {
	h.t.Helper()
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
	}
	require.NoError(h.t, os.WriteFile(filepath.Join(h.FakeDir, fmt.Sprintf("run%d.jsonl", n)), buf.Bytes(), 0o644))
	if exitCode != 0 {
		require.NoError(h.t, os.WriteFile(filepath.Join(h.FakeDir, fmt.Sprintf("exit%d", n)), []byte(fmt.Sprint(exitCode)), 0o644))
	}
}

// ScriptDefault sets the output of every run without its own script.
func (h *CLIHarness) ScriptDefault(lines []string) {
	h.t.Helper()
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
	}
	require.NoError(h.t, os.WriteFile(filepath.Join(h.FakeDir, "default.jsonl"), buf.Bytes(), 0o644))
}

// Launches returns how many times the fake Claude was started.
func (h *CLIHarness) Launches() int {
	data, err := os.ReadFile(filepath.Join(h.FakeDir, "count"))
	if err != nil {
		return 0
	}
	var n int
	_, _ = fmt.Sscan(string(data), &n)
	return n
}

// Run executes claude-loop with iterations and the workspace inputs, plus
// any extra flags. The fake claude is passed via --claude-bin.
func (h *CLIHarness) Run(iterations string, extra ...string) *CLIResult {
	h.t.Helper()

	ctx, cancel := testutil.ProcessContext(h.t)
	defer cancel()

	args := []string{iterations, h.Inputs.PRD, h.Inputs.Prompt, h.Inputs.Progress,
		"--claude-bin", filepath.Join(h.FakeDir, "claude")}
	args = append(args, extra...)

	cmd := exec.CommandContext(ctx, h.BinaryPath, args...)
	cmd.Dir = h.Inputs.Dir
	cmd.Env = append(os.Environ(), "NO_COLOR=1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &CLIResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		result.Err = err
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}
	return result
}

// findProjectRoot walks up from the current directory to the go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// RequireSuccess fails the test if the command result indicates failure.
func (h *CLIHarness) RequireSuccess(result *CLIResult) {
	h.t.Helper()
	if !result.Success() {
		h.t.Fatalf("command failed: exit=%d err=%v\nstdout: %s\nstderr: %s",
			result.ExitCode, result.Err, result.Stdout, result.Stderr)
	}
}
