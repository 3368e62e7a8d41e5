package term

import "errors"

// Sentinel errors for terminal sessions.
var (
	// ErrSessionClosed is returned when operating on a closed session.
	ErrSessionClosed = errors.New("terminal session is closed")

	// ErrShellNotFound is returned when the configured shell cannot be found.
	ErrShellNotFound = errors.New("shell not found")

	// ErrInvalidSize is returned for non-positive terminal dimensions.
	ErrInvalidSize = errors.New("invalid terminal size")

	// ErrPTYNotSupported is returned on platforms without PTY support.
	ErrPTYNotSupported = errors.New("PTY not supported on this platform")
)
