package execute

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dotstrap/dotstrap/pkg/errors"
	"github.com/dotstrap/dotstrap/pkg/paths"
)

// EnvSessionPID carries the top-level process id to child processes so
// that every invocation within one preview session appends to the same
// counter file.
const EnvSessionPID = "DOTSTRAP_SESSION_PID"

// Counter counts the operations a preview run would perform. It is a
// flat file with one line per operation; only the line count matters,
// so recording is a single append with no read-modify-write.
type Counter struct {
	path string
}

// NewCounter returns the counter for the current session. The first
// process in a session names the file after its own pid and exports
// that pid so subprocesses share the file.
func NewCounter(tempRoot string) *Counter {
	pid := sessionPID()
	return &Counter{
		path: filepath.Join(tempRoot, fmt.Sprintf("%s.%d", paths.CounterFilePrefix, pid)),
	}
}

func sessionPID() int {
	if v := os.Getenv(EnvSessionPID); v != "" {
		if pid, err := strconv.Atoi(v); err == nil {
			return pid
		}
	}
	pid := os.Getpid()
	// Exported so forked children within this session find the same file.
	_ = os.Setenv(EnvSessionPID, strconv.Itoa(pid))
	return pid
}

// Path returns the counter file location.
func (c *Counter) Path() string {
	return c.path
}

// Record appends one line to the counter file.
func (c *Counter) Record() error {
	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open dry-run counter %s", c.path)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString("op\n"); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot append to dry-run counter %s", c.path)
	}
	return nil
}

// Summarize returns the recorded operation count and deletes the
// counter file. A missing file counts as zero.
func (c *Counter) Summarize() (int, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "cannot read dry-run counter %s", c.path)
	}

	count := bytes.Count(data, []byte("\n"))
	if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
		count++
	}

	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return count, errors.Wrapf(err, errors.ErrFileAccess, "cannot remove dry-run counter %s", c.path)
	}
	return count, nil
}
