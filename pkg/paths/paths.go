// Package paths provides centralized path handling for dotstrap: the
// managed repository root, the lock and dry-run counter locations, the
// ledger file, and the directories scanned for reverse link discovery.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/dotstrap/dotstrap/pkg/errors"
)

// Environment variable names
const (
	// EnvRepoRoot is the primary environment variable for the managed
	// repository location
	EnvRepoRoot = "DOTSTRAP_REPO"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Well-known file and directory names.
// These define dotstrap's on-disk contract and are not user-configurable.
const (
	// DefaultRepoDir is the fallback repository directory under $HOME
	DefaultRepoDir = "dotfiles"

	// LedgerFileName is the tracking ledger inside the repository
	LedgerFileName = ".links"

	// LockDirName is the mutual-exclusion lock directory in the temp root
	LockDirName = "dotstrap-bootstrap.lock"

	// CounterFilePrefix prefixes the per-session dry-run counter file
	CounterFilePrefix = "dotstrap-dryrun-count"

	// LocalBinDir is the local-binaries directory scanned during discovery
	LocalBinDir = ".local/bin"
)

// Paths resolves every filesystem location dotstrap cares about.
type Paths struct {
	repoRoot string
	homeDir  string
	tempRoot string
}

// New creates a Paths instance. The repository root is resolved from
// the argument, then $DOTSTRAP_REPO, then $HOME/dotfiles.
func New(repoRoot string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot determine home directory")
	}

	root := repoRoot
	if root == "" {
		root = os.Getenv(EnvRepoRoot)
	}
	if root == "" {
		root = filepath.Join(home, DefaultRepoDir)
	}

	root, err = expandHome(root, home)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve repository root %q", root)
		}
		root = abs
	}

	return &Paths{
		repoRoot: filepath.Clean(root),
		homeDir:  home,
		tempRoot: os.TempDir(),
	}, nil
}

// RepoRoot returns the managed repository root.
func (p *Paths) RepoRoot() string {
	return p.repoRoot
}

// HomeDir returns the user's home directory.
func (p *Paths) HomeDir() string {
	return p.homeDir
}

// LedgerPath returns the tracking ledger file inside the repository.
func (p *Paths) LedgerPath() string {
	return filepath.Join(p.repoRoot, LedgerFileName)
}

// LockPath returns the lock directory in the shared temp root.
func (p *Paths) LockPath() string {
	return filepath.Join(p.tempRoot, LockDirName)
}

// TempRoot returns the shared temporary directory.
func (p *Paths) TempRoot() string {
	return p.tempRoot
}

// ScanRoots returns the directories inspected by reverse link
// discovery: the home directory itself, the XDG config directory and
// the local-binaries directory.
func (p *Paths) ScanRoots() []string {
	return []string{
		p.homeDir,
		xdg.ConfigHome,
		filepath.Join(p.homeDir, LocalBinDir),
	}
}

// ResolveSource turns a link source from configuration into an
// absolute path inside the repository.
func (p *Paths) ResolveSource(source string) string {
	if filepath.IsAbs(source) {
		return filepath.Clean(source)
	}
	return filepath.Join(p.repoRoot, source)
}

// ResolveTarget expands a link target from configuration, supporting
// the ~/ prefix. Relative targets are taken relative to the home
// directory.
func (p *Paths) ResolveTarget(target string) (string, error) {
	expanded, err := expandHome(target, p.homeDir)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(p.homeDir, expanded)
	}
	return filepath.Clean(expanded), nil
}

func expandHome(path, home string) (string, error) {
	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:]), nil
	}
	if strings.HasPrefix(path, "~") {
		return "", errors.Newf(errors.ErrInvalidInput, "cannot expand user-specific home in %q", path)
	}
	return path, nil
}
