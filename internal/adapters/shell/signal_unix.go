//go:build unix

package shell

import (
	"os/exec"
	"syscall"
)

// setGracefulShutdown makes context cancellation send SIGINT before the kill
// that follows WaitDelay.
func setGracefulShutdown(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGINT)
	}
}
