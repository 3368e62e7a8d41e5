package app

import "errors"

// Application errors.
var (
	// ErrQuit signals a normal user-requested exit.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrShuttingDown is returned for operations during shutdown.
	ErrShuttingDown = errors.New("application shutting down")
)
