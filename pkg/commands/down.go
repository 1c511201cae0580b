package commands

import (
	"fmt"
	"os"

	"github.com/dotstrap/dotstrap/pkg/errors"
	"github.com/dotstrap/dotstrap/pkg/execute"
	"github.com/dotstrap/dotstrap/pkg/lock"
	"github.com/dotstrap/dotstrap/pkg/logging"
)

// Down removes tracked symlinks that still point at their recorded
// source and untracks them. Destinations the user has since replaced
// are left alone, with their ledger entry kept for inspection.
func Down(opts Options) error {
	opts.normalize()
	logger := logging.GetLogger("commands.down")

	lk, err := lock.NewManager(opts.Paths.LockPath()).Acquire()
	if err != nil {
		return err
	}
	defer lk.Release()

	runner, counter := opts.newRunner()
	led := opts.newLedger(runner)

	entries, err := led.ListTracked()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		info, lerr := opts.FS.Lstat(entry.Destination)
		switch {
		case os.IsNotExist(lerr):
			// Link already gone; drop the stale entry.
			if err := led.Untrack(entry.Source, entry.Destination); err != nil {
				return err
			}
			continue
		case lerr != nil:
			return errors.Wrapf(lerr, errors.ErrFileAccess, "cannot inspect %s", entry.Destination)
		}

		if info.Mode()&os.ModeSymlink == 0 {
			logger.Warn().Str("destination", entry.Destination).Msg("Tracked path is no longer a symlink; leaving it in place")
			continue
		}
		target, rerr := opts.FS.Readlink(entry.Destination)
		if rerr != nil {
			return errors.Wrapf(rerr, errors.ErrFileAccess, "cannot read symlink %s", entry.Destination)
		}
		if target != entry.Source {
			logger.Warn().Str("destination", entry.Destination).Str("target", target).Msg("Tracked symlink points elsewhere; leaving it in place")
			continue
		}

		if derr := runner.Do(
			fmt.Sprintf("rm %s", execute.ShellQuote(entry.Destination)),
			func() error { return opts.FS.Remove(entry.Destination) },
		); derr != nil {
			return errors.Wrapf(derr, errors.ErrFileAccess, "cannot remove %s", entry.Destination)
		}
		if err := led.Untrack(entry.Source, entry.Destination); err != nil {
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
