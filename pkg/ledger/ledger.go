package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dotstrap/dotstrap/pkg/errors"
	"github.com/dotstrap/dotstrap/pkg/execute"
	"github.com/dotstrap/dotstrap/pkg/logging"
	"github.com/dotstrap/dotstrap/pkg/types"
)

const (
	headerLine1 = "# dotstrap tracked links"
	headerLine2 = "# one entry per line: <source> -> <destination>"
	separator   = " -> "
)

// Entry is one tracked symlink: a source inside the managed repository
// and a destination in the home directory.
type Entry struct {
	Source      string
	Destination string
}

// String renders the entry in its on-disk form.
func (e Entry) String() string {
	return e.Source + separator + e.Destination
}

// Ledger is the durable record of symlinks dotstrap has created.
// The file holds two header comment lines followed by one entry per
// line; internally it is treated as a set of pairs and rewritten
// atomically on every mutation.
type Ledger struct {
	path   string
	fs     types.FS
	runner *execute.Runner
	logger zerolog.Logger
}

// New creates a ledger at path. Mutations route through the runner so
// preview mode reports them without writing.
func New(path string, fs types.FS, runner *execute.Runner) *Ledger {
	return &Ledger{
		path:   path,
		fs:     fs,
		runner: runner,
		logger: logging.GetLogger("ledger"),
	}
}

// Path returns the ledger file location.
func (l *Ledger) Path() string {
	return l.path
}

// Track records a (source, destination) pair. A pair already present
// is a no-op that never reaches the execution wrapper, so repeat runs
// record nothing.
func (l *Ledger) Track(source, destination string) error {
	entries, err := l.read()
	if err != nil {
		return err
	}

	entry := Entry{Source: source, Destination: destination}
	for _, existing := range entries {
		if existing == entry {
			return nil
		}
	}

	display := fmt.Sprintf("echo %s >> %s", execute.ShellQuote(entry.String()), execute.ShellQuote(l.path))
	return l.runner.Do(display, func() error {
		return l.write(append(entries, entry))
	})
}

// Untrack removes a pair if present; removing an absent pair is a
// silent no-op.
func (l *Ledger) Untrack(source, destination string) error {
	entries, err := l.read()
	if err != nil {
		return err
	}

	entry := Entry{Source: source, Destination: destination}
	kept := entries[:0]
	found := false
	for _, existing := range entries {
		if existing == entry {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return nil
	}

	display := fmt.Sprintf("untrack %s from %s", execute.ShellQuote(entry.String()), execute.ShellQuote(l.path))
	return l.runner.Do(display, func() error {
		return l.write(kept)
	})
}

// ListTracked parses the ledger fresh and returns its entries in file
// order. A missing ledger yields an empty list.
func (l *Ledger) ListTracked() ([]Entry, error) {
	return l.read()
}

// DiscoverRepoLinks reconstructs entries independently of the ledger
// by scanning the given roots (the home directory's top-level
// dotfiles, the config directory, the local-binaries directory) for
// symlinks resolving into repoRoot. The result is deduplicated and
// sorted; it is diagnostics only and never fed back into the ledger.
func (l *Ledger) DiscoverRepoLinks(repoRoot string, roots []string) ([]Entry, error) {
	prefix := strings.TrimRight(repoRoot, "/") + "/"
	seen := make(map[Entry]struct{})
	var found []Entry

	for i, root := range roots {
		dirents, err := l.fs.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot scan %s", root)
		}

		// The home directory itself is scanned for dotfiles only;
		// other roots are taken whole.
		homeRoot := i == 0
		for _, dirent := range dirents {
			if dirent.Type()&os.ModeSymlink == 0 {
				continue
			}
			if homeRoot && !strings.HasPrefix(dirent.Name(), ".") {
				continue
			}

			linkPath := filepath.Join(root, dirent.Name())
			target, err := l.fs.Readlink(linkPath)
			if err != nil {
				l.logger.Warn().Err(err).Str("path", linkPath).Msg("Cannot read symlink during discovery")
				continue
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(root, target)
			}
			target = filepath.Clean(target)
			if !strings.HasPrefix(target, prefix) {
				continue
			}

			entry := Entry{Source: target, Destination: linkPath}
			if _, dup := seen[entry]; dup {
				continue
			}
			seen[entry] = struct{}{}
			found = append(found, entry)
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Destination != found[j].Destination {
			return found[i].Destination < found[j].Destination
		}
		return found[i].Source < found[j].Source
	})
	return found, nil
}

// read parses the ledger file. Malformed lines are skipped with a
// warning rather than failing the run.
func (l *Ledger) read() ([]Entry, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrLedgerRead, "cannot read ledger %s", l.path)
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, separator, 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			l.logger.Warn().Str("line", line).Str("path", l.path).Msg("Skipping malformed ledger line")
			continue
		}
		entries = append(entries, Entry{Source: parts[0], Destination: parts[1]})
	}
	return entries, nil
}

// write rewrites the whole ledger atomically: header plus entries go
// to a temp file which is renamed into place.
func (l *Ledger) write(entries []Entry) error {
	var b strings.Builder
	b.WriteString(headerLine1 + "\n")
	b.WriteString(headerLine2 + "\n")
	for _, entry := range entries {
		b.WriteString(entry.String() + "\n")
	}

	tmp := l.path + ".tmp"
	if err := l.fs.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrLedgerWrite, "cannot write ledger temp file %s", tmp)
	}
	if err := l.fs.Rename(tmp, l.path); err != nil {
		return errors.Wrapf(err, errors.ErrLedgerWrite, "cannot replace ledger %s", l.path)
	}
	return nil
}
