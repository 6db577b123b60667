package testutil

import (
	"context"
	"testing"
	"time"
)

const (
	// DefaultProcessTimeout bounds tests that start a real child process.
	DefaultProcessTimeout = 30 * time.Second

	// DefaultTestBuffer is subtracted from the test deadline to leave time
	// for cleanup before the test binary times out.
	DefaultTestBuffer = 5 * time.Second
)

// ContextWithTestDeadline creates a context that ends before the test's
// deadline. Tests without a deadline use fallback.
//
// Usage:
//
//	ctx, cancel := testutil.ContextWithTestDeadline(t, 10*time.Second)
//	defer cancel()
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	if deadline, ok := t.Deadline(); ok {
		adjusted := deadline.Add(-DefaultTestBuffer)
		if time.Until(adjusted) > 0 && time.Until(adjusted) < fallback {
			return context.WithDeadline(context.Background(), adjusted)
		}
	}
	return context.WithTimeout(context.Background(), fallback)
}

// ProcessContext returns a context suitable for running a short-lived child
// process in a test.
func ProcessContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadline(t, DefaultProcessTimeout)
}
