package testutil

import (
	"context"
	"sync"
)

// Run is the canned outcome of one scripted invocation.
type Run struct {
	Lines    []string
	ExitCode int
	Err      error
}

// ScriptedExecutor replays Runs in order, one per Execute call. Calls past
// the end of Runs replay Default. It satisfies loop.Executor.
type ScriptedExecutor struct {
	Runs    []Run
	Default Run

	mu    sync.Mutex
	calls [][]string
}

// Execute records args and feeds the next run's lines to onLine.
func (s *ScriptedExecutor) Execute(ctx context.Context, args []string, onLine func(string) error) (int, error) {
	s.mu.Lock()
	idx := len(s.calls)
	s.calls = append(s.calls, append([]string(nil), args...))
	run := s.Default
	if idx < len(s.Runs) {
		run = s.Runs[idx]
	}
	s.mu.Unlock()

	for _, line := range run.Lines {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		if err := onLine(line); err != nil {
			return -1, err
		}
	}
	if run.Err != nil {
		return -1, run.Err
	}
	return run.ExitCode, nil
}

// Calls returns the argument lists of every invocation so far.
func (s *ScriptedExecutor) Calls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.calls...)
}

// CallCount returns how many times Execute was invoked.
func (s *ScriptedExecutor) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
