package commands

import (
	"fmt"

	"github.com/dotstrap/dotstrap/pkg/errors"
	"github.com/dotstrap/dotstrap/pkg/linker"
	"github.com/dotstrap/dotstrap/pkg/lock"
	"github.com/dotstrap/dotstrap/pkg/logging"
)

// Up deploys every configured link into the home directory. The whole
// run holds the session lock; failures abort without rollback and the
// deferred release still fires.
func Up(opts Options) error {
	opts.normalize()
	logger := logging.GetLogger("commands.up")

	lk, err := lock.NewManager(opts.Paths.LockPath()).Acquire()
	if err != nil {
		return err
	}
	defer lk.Release()

	runner, counter := opts.newRunner()
	lnk := linker.New(opts.FS, runner, opts.newLedger(runner))

	for _, spec := range opts.Config.Links {
		if spec.Source == "" || spec.Target == "" {
			return errors.Newf(errors.ErrInvalidInput, "link spec needs both source and target (got source=%q target=%q)", spec.Source, spec.Target)
		}

		source := opts.Paths.ResolveSource(spec.Source)
		target, err := opts.Paths.ResolveTarget(spec.Target)
		if err != nil {
			return err
		}

		logger.Info().Str("source", source).Str("target", target).Msg("Ensuring symlink")
		if err := lnk.EnsureSymlink(source, target); err != nil {
			return err
		}
	}

	if counter != nil {
		count, err := counter.Summarize()
		if err != nil {
			return err
		}
		fmt.Fprintf(opts.Out, "%d operation(s) would be performed\n", count)
	}
	return nil
}
