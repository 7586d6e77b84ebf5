//go:build !unix

package shell

import "os/exec"

// setGracefulShutdown keeps the default kill on cancellation.
func setGracefulShutdown(*exec.Cmd) {}
