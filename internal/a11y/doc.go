// Package a11y exposes the terminal screen to assistive technology.
//
// The Manager mirrors the terminal's visible rows into an accessible
// tree and keeps three event streams reconciled into one consistent
// presentation:
//
//   - bulk repaints flow through a RenderDebouncer that merges rapid
//     refresh requests into a single deferred row write
//   - single-character output flows through a LiveAnnouncer that
//     accumulates text into an assertive live region, suppressing
//     characters that merely echo a just-pressed key
//   - raw key presses feed the announcer's echo-suppression queue and,
//     while navigation mode is active, drive a focus pointer through
//     the mirrored rows
//
// All state in this package is confined to a single serialized
// scheduler; nothing here takes locks. Event callbacks arriving from
// other goroutines are posted onto the scheduler before they touch
// manager state. Dispose detaches every subscription synchronously and
// turns any still-scheduled deferred work into a no-op.
package a11y
