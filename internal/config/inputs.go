package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseInputs builds Inputs from the four positional arguments
// <iterations> <prd_file> <prompt_file> <progress_file>.
func ParseInputs(args []string) (Inputs, error) {
	if len(args) != 4 {
		return Inputs{}, fmt.Errorf("expected 4 arguments, got %d", len(args))
	}

	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return Inputs{}, ValidationError{Field: "iterations", Message: fmt.Sprintf("invalid integer %q", args[0])}
	}

	return Inputs{
		Iterations:   n,
		PRDPath:      args[1],
		PromptPath:   args[2],
		ProgressPath: args[3],
	}, nil
}

// Validate checks the inputs in the order an operator would fix them: the
// PRD file, the prompt file, then the iteration count. It does not touch the
// progress file.
func (in Inputs) Validate() error {
	if !exists(in.PRDPath) {
		return ValidationError{Field: "prd", Message: fmt.Sprintf("PRD file not found: %s", in.PRDPath)}
	}
	if !exists(in.PromptPath) {
		return ValidationError{Field: "prompt", Message: fmt.Sprintf("Prompt file not found: %s", in.PromptPath)}
	}
	if in.Iterations < 1 {
		return ValidationError{Field: "iterations", Message: "Iterations must be at least 1"}
	}
	return nil
}

// PrepareProgressFile makes sure the progress file exists and is empty.
// A missing file is created and created is true; an existing non-empty file
// is an error.
func (in Inputs) PrepareProgressFile() (created bool, err error) {
	info, err := os.Stat(in.ProgressPath)
	switch {
	case err == nil:
		if info.Size() > 0 {
			return false, ValidationError{
				Field:   "progress",
				Message: fmt.Sprintf("Progress file already exists and is not empty: %s", in.ProgressPath),
			}
		}
		return false, nil
	case os.IsNotExist(err):
		f, err := os.OpenFile(in.ProgressPath, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return false, fmt.Errorf("failed to create progress file: %w", err)
		}
		if err := f.Close(); err != nil {
			return false, fmt.Errorf("failed to create progress file: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("failed to stat progress file: %w", err)
	}
}

// LogPath returns the transcript path: fileName next to the prompt file.
func (in Inputs) LogPath(fileName string) string {
	if fileName == "" {
		fileName = DefaultLogFileName
	}
	return filepath.Join(filepath.Dir(in.PromptPath), fileName)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
