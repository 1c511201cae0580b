package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/dotstrap/dotstrap/pkg/errors"
	"github.com/dotstrap/dotstrap/pkg/execute"
	"github.com/dotstrap/dotstrap/pkg/ledger"
	"github.com/dotstrap/dotstrap/pkg/logging"
	"github.com/dotstrap/dotstrap/pkg/types"
)

// backupTimeFormat gives backups second resolution, so re-running
// against a conflicting destination produces a new backup each time.
const backupTimeFormat = "20060102-150405"

// Linker reconciles destinations in the home directory with sources in
// the managed repository. Every mutation goes through the execution
// wrapper; every created link is recorded in the ledger.
type Linker struct {
	fs     types.FS
	runner *execute.Runner
	ledger *ledger.Ledger
	logger zerolog.Logger

	// now is swappable for deterministic backup names in tests.
	now func() time.Time
}

// New creates a linker using the given filesystem, wrapper and ledger.
func New(fs types.FS, runner *execute.Runner, led *ledger.Ledger) *Linker {
	return &Linker{
		fs:     fs,
		runner: runner,
		ledger: led,
		logger: logging.GetLogger("linker"),
		now:    time.Now,
	}
}

// EnsureSymlink makes destination a symlink pointing exactly at source
// and records the pair in the ledger. A correct pre-existing link is
// left untouched; a link to the wrong target is removed; regular
// files or directories are moved aside to a timestamped backup first.
// Failures propagate without partial cleanup and halt the run.
func (l *Linker) EnsureSymlink(source, destination string) error {
	info, err := l.fs.Lstat(destination)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink != 0:
		target, rerr := l.fs.Readlink(destination)
		if rerr != nil {
			return errors.Wrapf(rerr, errors.ErrFileAccess, "cannot read symlink %s", destination)
		}
		if target == source {
			l.logger.Debug().Str("destination", destination).Msg("Symlink already correct")
			return l.ledger.Track(source, destination)
		}
		l.logger.Info().Str("destination", destination).Str("target", target).Msg("Replacing symlink with wrong target")
		if derr := l.runner.Do(
			fmt.Sprintf("rm %s", execute.ShellQuote(destination)),
			func() error { return l.fs.Remove(destination) },
		); derr != nil {
			return errors.Wrapf(derr, errors.ErrFileAccess, "cannot remove mislinked %s", destination)
		}

	case err == nil:
		backup := fmt.Sprintf("%s.backup.%s", destination, l.now().Format(backupTimeFormat))
		l.logger.Warn().
			Str("destination", destination).
			Str("backup", backup).
			Msg("Existing content will be moved aside; this step is not idempotent")
		if derr := l.runner.Do(
			fmt.Sprintf("mv %s %s", execute.ShellQuote(destination), execute.ShellQuote(backup)),
			func() error { return l.fs.Rename(destination, backup) },
		); derr != nil {
			return errors.Wrapf(derr, errors.ErrBackupFailed, "cannot back up %s", destination)
		}

	case os.IsNotExist(err):
		// Nothing at the destination.

	default:
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", destination)
	}

	if err := l.ensureParentDir(destination); err != nil {
		return err
	}

	if derr := l.runner.Do(
		fmt.Sprintf("ln -s %s %s", execute.ShellQuote(source), execute.ShellQuote(destination)),
		func() error { return l.fs.Symlink(source, destination) },
	); derr != nil {
		return errors.Wrapf(derr, errors.ErrSymlinkCreate, "cannot link %s to %s", destination, source)
	}

	return l.ledger.Track(source, destination)
}

// WouldChange reports, without mutating anything, whether destination
// already is a symlink pointing exactly at source.
func (l *Linker) WouldChange(source, destination string) (bool, error) {
	info, err := l.fs.Lstat(destination)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", destination)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return true, nil
	}
	target, err := l.fs.Readlink(destination)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read symlink %s", destination)
	}
	return target != source, nil
}

// ensureParentDir creates the destination's parent directory when it
// is missing, through the wrapper so previews count it.
func (l *Linker) ensureParentDir(destination string) error {
	parent := filepath.Dir(destination)
	if _, err := l.fs.Stat(parent); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", parent)
	}

	if derr := l.runner.Do(
		fmt.Sprintf("mkdir -p %s", execute.ShellQuote(parent)),
		func() error { return l.fs.MkdirAll(parent, 0755) },
	); derr != nil {
		return errors.Wrapf(derr, errors.ErrFileAccess, "cannot create %s", parent)
	}
	return nil
}
