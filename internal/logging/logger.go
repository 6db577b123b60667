// Package logging provides leveled diagnostic logging for claude-loop.
//
// Diagnostics go to stderr and are separate from the operator-facing stream
// of rendered Claude output. Entries carry key=value fields so a run can be
// correlated with its transcript.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level represents a log level.
type Level int

const (
	// LevelDebug is for verbose debugging information.
	LevelDebug Level = iota
	// LevelInfo is for per-iteration progress.
	LevelInfo
	// LevelWarn is for recoverable errors and warnings.
	LevelWarn
	// LevelError is for failures that end the run.
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// String returns the upper-case level name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a level name such as "debug" or "WARN".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}

// shared is the mutable part of a logger family: children created with With
// follow level and output changes made on their parent.
type shared struct {
	mu       sync.RWMutex
	minLevel Level
	output   *log.Logger
}

// Logger writes leveled entries with context fields.
type Logger struct {
	s      *shared
	fields map[string]interface{}
}

var defaultLogger = New(os.Stderr)

// New creates a Logger writing to w at warn level.
func New(w io.Writer) *Logger {
	return &Logger{
		s: &shared{
			minLevel: LevelWarn,
			output:   log.New(w, "", log.LstdFlags),
		},
		fields: map[string]interface{}{},
	}
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.minLevel = level
}

// SetOutput sets the output logger.
func (l *Logger) SetOutput(output *log.Logger) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.output = output
}

// Enabled reports whether entries at level are written.
func (l *Logger) Enabled(level Level) bool {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return level >= l.s.minLevel
}

// With returns a child Logger with an additional context field.
func (l *Logger) With(key string, value interface{}) *Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a child Logger with additional context fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{s: l.s, fields: merged}
}

func (l *Logger) log(level Level, msg string, keyVals ...interface{}) {
	l.s.mu.RLock()
	minLevel := l.s.minLevel
	output := l.s.output
	l.s.mu.RUnlock()

	if level < minLevel {
		return
	}

	all := make(map[string]interface{}, len(l.fields)+len(keyVals)/2)
	for k, v := range l.fields {
		all[k] = v
	}
	for i := 0; i+1 < len(keyVals); i += 2 {
		if key, ok := keyVals[i].(string); ok {
			all[key] = keyVals[i+1]
		}
	}

	var sb strings.Builder
	sb.WriteString(level.String())
	sb.WriteString(": ")
	sb.WriteString(msg)

	if len(all) > 0 {
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" |")
		for _, k := range keys {
			sb.WriteString(" ")
			sb.WriteString(k)
			sb.WriteString("=")
			sb.WriteString(formatValue(all[k]))
		}
	}

	output.Print(sb.String())
}

// formatValue quotes strings containing whitespace and all errors.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t\n") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case error:
		return fmt.Sprintf("%q", val.Error())
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keyVals ...interface{}) { l.log(LevelDebug, msg, keyVals...) }

// Info logs at info level.
func (l *Logger) Info(msg string, keyVals ...interface{}) { l.log(LevelInfo, msg, keyVals...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keyVals ...interface{}) { l.log(LevelWarn, msg, keyVals...) }

// Error logs at error level.
func (l *Logger) Error(msg string, keyVals ...interface{}) { l.log(LevelError, msg, keyVals...) }

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetOutput sets the output for the default logger.
func SetOutput(output *log.Logger) {
	defaultLogger.SetOutput(output)
}
