package execute

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/dotstrap/dotstrap/pkg/errors"
	"github.com/dotstrap/dotstrap/pkg/logging"
)

// Options configures a Runner. The flags are immutable for the life of
// the runner; behavior is a pure function of these explicit inputs.
type Options struct {
	DryRun  bool
	Verbose bool

	// Counter receives one Record call per previewed operation.
	// Required when DryRun is set.
	Counter *Counter

	// Stdout is where previewed and verbose-echoed commands are
	// printed. Defaults to os.Stdout.
	Stdout io.Writer

	Logger zerolog.Logger
}

// Runner is the single choke point for every mutating action. In
// preview mode it renders, records and counts the operation without
// executing it; in real mode it executes synchronously and propagates
// failures unchanged.
type Runner struct {
	dryRun  bool
	verbose bool
	counter *Counter
	stdout  io.Writer
	logger  zerolog.Logger
	changes []string
}

// New creates a runner from the given options.
func New(opts Options) *Runner {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("execute")
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	return &Runner{
		dryRun:  opts.DryRun,
		verbose: opts.Verbose,
		counter: opts.Counter,
		stdout:  stdout,
		logger:  logger,
	}
}

// DryRun reports whether the runner is in preview mode.
func (r *Runner) DryRun() bool {
	return r.dryRun
}

// Changes returns the operations previewed through this runner, in
// the order they were requested.
func (r *Runner) Changes() []string {
	return r.changes
}

// Run executes an external command, or previews it in dry-run mode.
// The command's exit status is propagated unchanged via the wrapped
// *exec.ExitError.
func (r *Runner) Run(name string, args ...string) error {
	display := ShellJoin(append([]string{name}, args...))

	if r.dryRun {
		return r.preview(display)
	}

	if r.verbose {
		fmt.Fprintln(r.stdout, display)
	}

	r.logger.Debug().Str("command", name).Strs("args", args).Msg("Executing command")

	cmd := exec.Command(name, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrExecFailed, "command failed: %s", display)
	}
	return nil
}

// Do routes an in-process filesystem mutation through the same
// preview/record logic as Run. The display string is the shell
// rendition of the operation; fn performs it.
func (r *Runner) Do(display string, fn func() error) error {
	if r.dryRun {
		return r.preview(display)
	}

	if r.verbose {
		fmt.Fprintln(r.stdout, display)
	}

	r.logger.Debug().Str("operation", display).Msg("Applying operation")
	return fn()
}

// preview reports the operation without performing it.
func (r *Runner) preview(display string) error {
	fmt.Fprintf(r.stdout, "[dry-run] %s\n", display)
	r.changes = append(r.changes, display)

	if r.counter != nil {
		if err := r.counter.Record(); err != nil {
			r.logger.Warn().Err(err).Msg("Failed to record dry-run operation")
		}
	}
	return nil
}
