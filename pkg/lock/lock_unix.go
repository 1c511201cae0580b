//go:build !windows

package lock

import (
	"os"
	"syscall"
)

// processAlive probes pid with the null signal. EPERM means the
// process exists but belongs to another user, so it still counts as
// alive.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || err == syscall.EPERM
}
