package commands

import (
	"io"
	"os"

	"github.com/dotstrap/dotstrap/pkg/config"
	"github.com/dotstrap/dotstrap/pkg/execute"
	"github.com/dotstrap/dotstrap/pkg/filesystem"
	"github.com/dotstrap/dotstrap/pkg/ledger"
	"github.com/dotstrap/dotstrap/pkg/logging"
	"github.com/dotstrap/dotstrap/pkg/paths"
	"github.com/dotstrap/dotstrap/pkg/types"
)

// Options carries the shared dependencies of every command. FS and Out
// default to the OS filesystem and stdout.
type Options struct {
	Config *config.Config
	Paths  *paths.Paths
	FS     types.FS
	Out    io.Writer
}

func (o *Options) normalize() {
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
}

// newRunner builds the execution wrapper for this invocation, with a
// session dry-run counter attached in preview mode.
func (o *Options) newRunner() (*execute.Runner, *execute.Counter) {
	var counter *execute.Counter
	if o.Config.DryRun {
		counter = execute.NewCounter(o.Paths.TempRoot())
	}
	runner := execute.New(execute.Options{
		DryRun:  o.Config.DryRun,
		Verbose: o.Config.Verbose > 0,
		Counter: counter,
		Stdout:  o.Out,
		Logger:  logging.GetLogger("execute"),
	})
	return runner, counter
}

// newLedger builds the tracking ledger bound to the given runner.
func (o *Options) newLedger(runner *execute.Runner) *ledger.Ledger {
	return ledger.New(o.Paths.LedgerPath(), o.FS, runner)
}
