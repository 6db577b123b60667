package loop

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thruflo/claude-loop/internal/logging"
	"github.com/thruflo/claude-loop/internal/render"
)

// ExitReason indicates why the loop stopped.
type ExitReason int

const (
	ExitReasonUnknown       ExitReason = iota
	ExitReasonDone                     // Claude printed the done sentinel
	ExitReasonBlocked                  // Claude reported a blocker
	ExitReasonMaxIterations            // Hit iteration limit
	ExitReasonCrash                    // Claude exited non-zero or could not run
	ExitReasonInterrupted              // Context cancelled between iterations
	ExitReasonInvalid                  // Loop was misconfigured
)

// String returns a human-readable description of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonDone:
		return "completed"
	case ExitReasonBlocked:
		return "blocked"
	case ExitReasonMaxIterations:
		return "max iterations"
	case ExitReasonCrash:
		return "crash"
	case ExitReasonInterrupted:
		return "interrupted"
	case ExitReasonInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a loop execution.
type Result struct {
	Reason      ExitReason
	Iterations  int    // Number of Claude launches
	Explanation string // Set when Reason is ExitReasonBlocked
	ExitCode    int    // Claude's exit code when Reason is ExitReasonCrash
	RunID       string
	Error       error
}

// Code returns the process exit status for the result.
func (r Result) Code() int {
	if r.Reason == ExitReasonDone {
		return 0
	}
	return 1
}

// Options holds configuration for creating a Loop.
type Options struct {
	MaxIterations int
	PromptPath    string
	LogPath       string

	Executor Executor
	Renderer *render.Renderer

	// Out receives rendered output and banners. Err receives failures.
	// Both default to the process streams.
	Out io.Writer
	Err io.Writer

	Now    func() time.Time // For testing
	Logger *logging.Logger
}

// Loop drives repeated Claude runs until a sentinel or the iteration limit.
type Loop struct {
	maxIterations int
	promptPath    string
	logPath       string

	executor Executor
	renderer *render.Renderer
	out      io.Writer
	errOut   io.Writer
	now      func() time.Time
	log      *logging.Logger

	runID     string
	iteration int
}

// New creates a Loop with the given options.
func New(opts Options) *Loop {
	l := &Loop{
		maxIterations: opts.MaxIterations,
		promptPath:    opts.PromptPath,
		logPath:       opts.LogPath,
		executor:      opts.Executor,
		renderer:      opts.Renderer,
		out:           opts.Out,
		errOut:        opts.Err,
		now:           opts.Now,
		runID:         uuid.NewString(),
	}
	if l.executor == nil {
		l.executor = NewLocalExecutor(DefaultBinary)
	}
	if l.renderer == nil {
		l.renderer = render.New(render.NewPalette(false))
	}
	if l.out == nil {
		l.out = os.Stdout
	}
	if l.errOut == nil {
		l.errOut = os.Stderr
	}
	if l.now == nil {
		l.now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	l.log = logger.With("run", l.runID)
	return l
}

// RunID returns the identifier attached to this run's diagnostics.
func (l *Loop) RunID() string {
	return l.runID
}

// Run executes iterations until Claude is done, blocked, fails, or the
// iteration limit is reached. Iterations never overlap.
func (l *Loop) Run(ctx context.Context) Result {
	if l.maxIterations < 1 {
		return l.result(Result{
			Reason: ExitReasonInvalid,
			Error:  fmt.Errorf("iterations must be at least 1, got %d", l.maxIterations),
		})
	}

	l.log.Debug("starting loop", "max_iterations", l.maxIterations, "prompt", l.promptPath, "log", l.logPath)

	for l.iteration = 1; l.iteration <= l.maxIterations; l.iteration++ {
		if ctx.Err() != nil {
			l.banner("INTERRUPTED: stopped before iteration %d", l.iteration)
			return l.result(Result{Reason: ExitReasonInterrupted, Iterations: l.iteration - 1, Error: ctx.Err()})
		}

		fmt.Fprintf(l.out, "\n%s\nIteration %d/%d\n%s\n\n", separator, l.iteration, l.maxIterations, separator)

		exitCode, output, err := l.runIteration(ctx)
		if err != nil && ctx.Err() != nil {
			l.log.Warn("iteration interrupted", "iteration", l.iteration, "error", err)
			l.banner("INTERRUPTED: stopped during iteration %d", l.iteration)
			return l.result(Result{Reason: ExitReasonInterrupted, Iterations: l.iteration, ExitCode: -1, Error: ctx.Err()})
		}
		if err != nil {
			l.log.Error("iteration failed", "iteration", l.iteration, "error", err)
			fmt.Fprintf(l.errOut, "\nError: %v\n", err)
			return l.result(Result{Reason: ExitReasonCrash, Iterations: l.iteration, ExitCode: -1, Error: err})
		}

		if exitCode != 0 {
			l.log.Warn("claude exited non-zero", "iteration", l.iteration, "exit_code", exitCode)
			fmt.Fprintf(l.errOut, "\nError: Claude exited with code %d\n", exitCode)
			return l.result(Result{
				Reason:     ExitReasonCrash,
				Iterations: l.iteration,
				ExitCode:   exitCode,
				Error:      fmt.Errorf("claude exited with code %d", exitCode),
			})
		}

		verdict := CheckOutput(output)
		l.log.Info("iteration finished", "iteration", l.iteration, "verdict", verdict.Kind, "bytes", len(output))

		switch verdict.Kind {
		case VerdictDone:
			l.banner("SUCCESS: All phases completed")
			return l.result(Result{Reason: ExitReasonDone, Iterations: l.iteration})
		case VerdictBlocked:
			l.banner("BLOCKED: %s", verdict.Explanation)
			return l.result(Result{
				Reason:      ExitReasonBlocked,
				Iterations:  l.iteration,
				Explanation: verdict.Explanation,
			})
		}
	}

	l.banner("FAILED: Maximum iterations (%d) reached without completion", l.maxIterations)
	return l.result(Result{Reason: ExitReasonMaxIterations, Iterations: l.maxIterations})
}

// runIteration executes a single Claude invocation and returns its exit
// code and the full raw output.
func (l *Loop) runIteration(ctx context.Context) (int, string, error) {
	transcript, err := OpenTranscript(l.logPath)
	if err != nil {
		return -1, "", err
	}
	defer func() {
		if err := transcript.Close(); err != nil {
			l.log.Warn("failed to close log file", "path", l.logPath, "error", err)
		}
	}()

	if err := transcript.WriteHeader(l.iteration, l.now()); err != nil {
		return -1, "", err
	}

	var output strings.Builder
	onLine := func(line string) error {
		if err := transcript.Append(line); err != nil {
			return err
		}
		output.WriteString(line)
		if display, ok := l.renderer.Render(line); ok {
			fmt.Fprintln(l.out, display)
		}
		return nil
	}

	exitCode, err := l.executor.Execute(ctx, ClaudeArgs(l.promptPath), onLine)
	if err != nil {
		return -1, output.String(), err
	}
	return exitCode, output.String(), nil
}

func (l *Loop) banner(format string, args ...any) {
	fmt.Fprintf(l.out, "\n%s\n%s\n%s\n", separator, fmt.Sprintf(format, args...), separator)
}

func (l *Loop) result(r Result) Result {
	r.RunID = l.runID
	l.log.Debug("loop stopped", "reason", r.Reason, "iterations", r.Iterations)
	return r
}
