// Package term provides the terminal screen model the accessibility
// engine mirrors.
//
// A Screen is a grid of text rows backed by a bounded scrollback buffer.
// Rows are addressed two ways: by absolute buffer line index (scrollback
// and the active screen form one contiguous sequence) and by viewport
// index (0-based within the currently displayed window). The viewport
// normally pins to the bottom of the buffer and detaches when the user
// scrolls back.
//
// The Screen accepts decoded text only. Escape-sequence interpretation is
// the transport's concern; Feed handles printables, newline, carriage
// return, and tab. Structural and content changes are published through
// typed event subscriptions, each returning an unsubscribe function.
//
// Session wraps a Screen with a PTY-attached shell process for live use.
package term
