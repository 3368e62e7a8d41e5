package term

import (
	"os"
	"os/exec"
)

// PTY is a pseudo-terminal master.
type PTY interface {
	// File returns the master file descriptor.
	File() *os.File

	// Read reads shell output from the PTY.
	Read(p []byte) (n int, err error)

	// Write sends input to the PTY.
	Write(p []byte) (n int, err error)

	// Resize changes the PTY window size.
	Resize(cols, rows uint16) error

	// Close closes the PTY.
	Close() error
}

// StartPTY starts cmd with a PTY of the given size as its controlling
// terminal.
func StartPTY(cmd *exec.Cmd, cols, rows uint16) (PTY, error) {
	return startPTY(cmd, cols, rows)
}
