//go:build !unix

package engine

import (
	"os/exec"
	"time"
)

// Without process groups only the direct child is killed.
func setProcessGroup(cmd *exec.Cmd, _ time.Duration) {
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
}
