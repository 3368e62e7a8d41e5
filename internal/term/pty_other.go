//go:build !linux && !darwin

package term

import "os/exec"

// startPTY is unavailable on this platform.
func startPTY(cmd *exec.Cmd, cols, rows uint16) (PTY, error) {
	return nil, ErrPTYNotSupported
}
