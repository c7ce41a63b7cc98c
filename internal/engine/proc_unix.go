//go:build unix

package engine

import (
	"errors"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// setProcessGroup starts the child as its own group leader and arranges for
// cancellation to signal the whole group: SIGTERM first, SIGKILL after grace.
func setProcessGroup(cmd *exec.Cmd, grace time.Duration) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.Cancel = func() error {
		pid := cmd.Process.Pid
		if err := signalGroup(pid, unix.SIGTERM); err != nil {
			return err
		}
		time.AfterFunc(grace, func() {
			_ = signalGroup(pid, unix.SIGKILL)
		})
		return nil
	}
}

func signalGroup(pid int, sig syscall.Signal) error {
	if pid <= 0 {
		return nil
	}
	if err := unix.Kill(-pid, sig); err != nil && !errors.Is(err, unix.ESRCH) {
		return err
	}
	return nil
}
