// Package obsolete provides the one-way, externally-owned cancellation flag
// described in spec §4.5 and §9: "a plain atomic boolean; no other
// synchronization is required because the worker never writes it."
//
// Grounded on the atomic.Bool/atomic.Pointer idioms used throughout the
// teacher codebase (logger.go, internal/parallel/pool.go) for data that is
// written by one side and only ever read by the other.
package obsolete

import "sync/atomic"

// Flag is a shared, read-mostly cancellation flag. The owner (the parent
// tile) calls SetTrue when the worker's output no longer matters; the
// worker only ever calls IsSet. Once true, a Flag never returns to false.
type Flag struct {
	v atomic.Bool
}

// New returns a Flag that starts false.
func New() *Flag {
	return &Flag{}
}

// IsSet reports whether the flag has been marked obsolete. Safe to call
// from the worker's goroutine at any loop boundary inside layout or
// placement.
func (f *Flag) IsSet() bool {
	return f.v.Load()
}

// SetTrue marks the flag obsolete. Idempotent; only ever moves false->true.
// Owned by the parent, never called by the worker itself.
func (f *Flag) SetTrue() {
	f.v.Store(true)
}
