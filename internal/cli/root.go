package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thruflo/claude-loop/internal/config"
	"github.com/thruflo/claude-loop/internal/logging"
	"github.com/thruflo/claude-loop/internal/loop"
	"github.com/thruflo/claude-loop/internal/render"
)

// Version is set at build time via ldflags.
var Version = "dev"

// newExecutor builds the executor for the configured Claude binary.
// Tests replace it to avoid launching Claude.
var newExecutor = func(binary string) loop.Executor {
	return loop.NewLocalExecutor(binary)
}

// ExitCodeError carries a non-zero exit status. Reported is true when the
// failure has already been shown to the operator.
type ExitCodeError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

type rootOptions struct {
	noColor    bool
	logLevel   string
	configPath string
	claudeBin  string
}

// NewRootCmd creates the claude-loop command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "claude-loop <iterations> <prd_file> <prompt_file> <progress_file>",
		Short: "Run Claude Code in a loop until the PRD is done",
		Long: `Run the Claude CLI repeatedly against a prompt until it reports
<CLAUDE>DONE</CLAUDE>, reports <CLAUDE>BLOCKED: reason</CLAUDE>, fails, or the
iteration limit is reached.

Arguments:
  iterations     maximum number of Claude runs
  prd_file       PRD.jsonc or PRD.json (must exist)
  prompt_file    PROMPT.md passed to Claude as @prompt_file (must exist)
  progress_file  PROGRESS.md (created if missing, must be empty)

Every raw line of Claude output is appended to claude.log next to the prompt
file. Set NO_COLOR to disable colored output.

Example:
  claude-loop 10 PRD.jsonc PROMPT.md PROGRESS.md`,
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoop(cmd, args, opts)
		},
	}

	cmd.SetFlagErrorFunc(negativeIterations)

	cmd.Version = Version
	cmd.SetVersionTemplate("claude-loop version {{.Version}}\n")

	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a YAML settings file")
	cmd.Flags().StringVar(&opts.claudeBin, "claude-bin", "", "Claude CLI executable (overrides the settings file)")

	return cmd
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	return exitCode(cmd.ErrOrStderr(), err)
}

// exitCode prints err unless it was already reported and maps it to a
// process exit status.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		if !exitErr.Reported {
			fmt.Fprintf(w, "Error: %v\n", exitErr)
		}
		return exitErr.Code
	}
	fmt.Fprintf(w, "Error: %s\n", errorMessage(err))
	return 1
}

// errorMessage shows validation failures without their field prefix.
func errorMessage(err error) string {
	var ve config.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

func runLoop(cmd *cobra.Command, args []string, opts *rootOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := logging.New(cmd.ErrOrStderr())
	logger.SetLevel(level)

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.claudeBin != "" {
		cfg.Claude.Binary = opts.claudeBin
	}

	inputs, err := config.ParseInputs(args)
	if err != nil {
		return err
	}
	if err := inputs.Validate(); err != nil {
		return err
	}

	created, err := inputs.PrepareProgressFile()
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(out, "Created progress file: %s\n", inputs.ProgressPath)
	}

	palette := render.NewPalette(!opts.noColor && colorOutput(out))
	logPath := inputs.LogPath(cfg.Log.FileName)

	l := loop.New(loop.Options{
		MaxIterations: inputs.Iterations,
		PromptPath:    inputs.PromptPath,
		LogPath:       logPath,
		Executor:      newExecutor(cfg.Claude.Binary),
		Renderer:      render.New(palette),
		Out:           out,
		Err:           cmd.ErrOrStderr(),
		Logger:        logger,
	})
	logger.Info("starting run", "run", l.RunID(), "binary", cfg.Claude.Binary, "log", logPath, "color", palette.Enabled())

	result := l.Run(ctx)
	if code := result.Code(); code != 0 {
		err := result.Error
		if err == nil {
			err = fmt.Errorf("run stopped: %s", result.Reason)
		}
		return &ExitCodeError{Code: code, Err: err, Reported: result.Reason != loop.ExitReasonInvalid}
	}
	return nil
}

var digitShorthand = regexp.MustCompile(`^unknown shorthand flag: '[0-9]'`)

// negativeIterations reports a negative iteration count, which pflag would
// otherwise reject as an unknown shorthand flag such as -1.
func negativeIterations(_ *cobra.Command, err error) error {
	if digitShorthand.MatchString(err.Error()) {
		return config.ValidationError{Field: "iterations", Message: "Iterations must be at least 1"}
	}
	return err
}

// colorOutput reports whether w is a terminal that should get styling.
func colorOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return render.ColorEnabled(f, os.Getenv)
}
