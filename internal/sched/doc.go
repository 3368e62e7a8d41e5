// Package sched provides a serialized task scheduler.
//
// A Loop runs every submitted task on a single goroutine, in submission
// order. Delayed tasks are timed off the wall clock and re-enter the same
// queue when they fire, so no two tasks ever execute concurrently. The
// accessibility engine runs all of its state mutations on one Loop, which
// gives it the single-threaded, cooperative execution model it assumes.
package sched
