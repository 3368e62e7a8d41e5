package sched

import "errors"

// Sentinel errors for the scheduler.
var (
	// ErrLoopAlreadyRunning is returned when Start is called on a running loop.
	ErrLoopAlreadyRunning = errors.New("scheduler loop is already running")

	// ErrLoopNotRunning is returned when Stop is called on a stopped loop.
	ErrLoopNotRunning = errors.New("scheduler loop is not running")
)
