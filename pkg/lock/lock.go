package lock

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dotstrap/dotstrap/pkg/errors"
	"github.com/dotstrap/dotstrap/pkg/logging"
)

// PidFileName is the file inside the lock directory holding the
// decimal pid of the holder.
const PidFileName = "pid"

// Manager serializes whole dotstrap runs with an exclusive lock.
// The lock is a directory: os.Mkdir either fully succeeds or fully
// fails, so a racing second process can never observe a torn state.
type Manager struct {
	// Path is the lock directory location.
	Path string

	// Alive reports whether a pid belongs to a live process. It is
	// pluggable for tests; the default probes with signal 0. A pid
	// reused by an unrelated process yields a false positive, which
	// is an accepted risk.
	Alive func(pid int) bool

	logger zerolog.Logger
}

// NewManager creates a lock manager for the given lock directory.
func NewManager(path string) *Manager {
	return &Manager{
		Path:   path,
		Alive:  processAlive,
		logger: logging.GetLogger("lock"),
	}
}

// Lock is the scoped handle returned by a successful acquisition.
// Release is guaranteed safe on every exit path: callers defer it
// immediately after acquiring.
type Lock struct {
	path    string
	release sync.Once
}

// Path returns the lock directory this handle owns.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lock directory. It is idempotent; releasing a
// lock twice, or one already gone, is a silent no-op.
func (l *Lock) Release() {
	if l == nil {
		return
	}
	l.release.Do(func() {
		_ = os.RemoveAll(l.path)
	})
}

// Acquire takes the lock or fails fast. A lock held by a live process
// is fatal contention, reported with the offending pid. A lock whose
// stored pid is no longer running is reclaimed with a warning and
// acquisition is retried exactly once.
func (m *Manager) Acquire() (*Lock, error) {
	lk, err := m.tryAcquire()
	if err == nil {
		return lk, nil
	}
	if !os.IsExist(err) {
		return nil, errors.Wrapf(err, errors.ErrLockAcquire, "cannot create lock at %s", m.Path)
	}

	pid, pidErr := m.holderPID()
	if pidErr != nil {
		// The directory exists but its pid is unreadable: another
		// process may be mid-acquisition, so treat it as contention
		// rather than reclaiming a possibly live lock.
		return nil, errors.Wrapf(pidErr, errors.ErrLockContention, "lock at %s is held but its pid is unreadable", m.Path)
	}

	if m.Alive(pid) {
		return nil, errors.Newf(errors.ErrLockContention, "another dotstrap run (pid %d) holds the lock at %s", pid, m.Path).
			WithDetail("pid", pid).
			WithDetail("path", m.Path)
	}

	m.logger.Warn().Int("pid", pid).Str("path", m.Path).Msg("Reclaiming stale lock from dead process")
	if err := os.RemoveAll(m.Path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockAcquire, "cannot remove stale lock at %s", m.Path)
	}

	lk, err = m.tryAcquire()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockContention, "lock at %s contended during stale reclaim", m.Path)
	}
	return lk, nil
}

// tryAcquire performs one atomic acquisition attempt.
func (m *Manager) tryAcquire() (*Lock, error) {
	if err := os.Mkdir(m.Path, 0755); err != nil {
		return nil, err
	}

	pidFile := filepath.Join(m.Path, PidFileName)
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		_ = os.RemoveAll(m.Path)
		return nil, err
	}

	m.logger.Debug().Str("path", m.Path).Int("pid", os.Getpid()).Msg("Lock acquired")
	return &Lock{path: m.Path}, nil
}

// holderPID reads the pid stored inside the lock directory.
func (m *Manager) holderPID() (int, error) {
	data, err := os.ReadFile(filepath.Join(m.Path, PidFileName))
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}
	return pid, nil
}
