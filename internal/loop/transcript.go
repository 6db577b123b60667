package loop

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// separator frames iteration headers in the transcript and on screen.
var separator = strings.Repeat("=", 60)

// Transcript is the append-only raw log of Claude output. It is opened once
// per iteration and every write goes straight to the file, so a killed run
// leaves a consistent partial log.
type Transcript struct {
	path string
	f    *os.File
}

// OpenTranscript opens path for appending, creating it if needed.
func OpenTranscript(path string) (*Transcript, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &Transcript{path: path, f: f}, nil
}

// WriteHeader writes the block that starts an iteration.
func (t *Transcript) WriteHeader(iteration int, at time.Time) error {
	header := fmt.Sprintf("\n%s\nIteration %d - %s\n%s\n",
		separator, iteration, at.Format(time.RFC3339Nano), separator)
	if _, err := t.f.WriteString(header); err != nil {
		return fmt.Errorf("failed to write log header: %w", err)
	}
	return nil
}

// Append writes one raw output line verbatim.
func (t *Transcript) Append(line string) error {
	if _, err := t.f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append to log file: %w", err)
	}
	return nil
}

// Path returns the transcript location.
func (t *Transcript) Path() string {
	return t.path
}

// Close closes the underlying file.
func (t *Transcript) Close() error {
	return t.f.Close()
}
