package config

import "errors"

// Configuration errors.
var (
	// ErrInvalidSize indicates non-positive terminal dimensions.
	ErrInvalidSize = errors.New("config: terminal cols and rows must be positive")

	// ErrInvalidScrollback indicates a negative scrollback limit.
	ErrInvalidScrollback = errors.New("config: scrollback must not be negative")

	// ErrInvalidScale indicates a non-positive font scale or DPR.
	ErrInvalidScale = errors.New("config: font scale and dpr must be positive")

	// ErrInvalidLogLevel indicates an unrecognized log level name.
	ErrInvalidLogLevel = errors.New("config: log level must be debug, info, warn, or error")

	// ErrInvalidReattach indicates an unrecognized reattach mode.
	ErrInvalidReattach = errors.New("config: reattach_workaround must be auto, on, or off")

	// ErrWatcherClosed is returned when a closed watcher is used.
	ErrWatcherClosed = errors.New("config: watcher closed")
)
