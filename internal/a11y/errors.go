package a11y

import "errors"

// Sentinel errors for manager construction.
var (
	// ErrNilTerminal is returned when no terminal collaborator is provided.
	ErrNilTerminal = errors.New("terminal cannot be nil")

	// ErrNilRenderer is returned when no renderer collaborator is provided.
	ErrNilRenderer = errors.New("renderer cannot be nil")

	// ErrNilScheduler is returned when no scheduler is provided.
	ErrNilScheduler = errors.New("scheduler cannot be nil")
)
