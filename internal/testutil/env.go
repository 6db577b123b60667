package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Inputs are the paths created by SetupInputs.
type Inputs struct {
	Dir      string
	PRD      string
	Prompt   string
	Progress string
}

// SetupInputs creates a temp directory with a PRD, a prompt and an empty
// progress file. The directory is removed when the test completes.
func SetupInputs(t *testing.T) Inputs {
	t.Helper()

	dir := t.TempDir()
	in := Inputs{
		Dir:      dir,
		PRD:      filepath.Join(dir, "PRD.json"),
		Prompt:   filepath.Join(dir, "PROMPT.md"),
		Progress: filepath.Join(dir, "PROGRESS.md"),
	}
	WriteTestFile(t, in.PRD, `{"phases": [{"name": "one", "done": false}]}`)
	WriteTestFile(t, in.Prompt, "# Prompt\nWork through @PRD.json.\n")
	WriteTestFile(t, in.Progress, "")
	return in
}

// WriteTestFile writes content to path, creating parent directories.
func WriteTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// ReadTestFile returns the content of path or fails the test.
func ReadTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// AssertLinesInOrder asserts that every entry of lines occurs exactly once
// in text and that they occur in the given order.
func AssertLinesInOrder(t *testing.T, text string, lines []string) {
	t.Helper()

	offset := 0
	for i, line := range lines {
		if !assert.Equal(t, 1, strings.Count(text, line), "line %d should appear exactly once: %q", i, line) {
			return
		}
		pos := strings.Index(text[offset:], line)
		if !assert.GreaterOrEqual(t, pos, 0, "line %d out of order: %q", i, line) {
			return
		}
		offset += pos + len(line)
	}
}
