// Package clock provides a package-level, overridable notion of "now" so
// that telemetry item timestamps (and so envelope time) can be made
// deterministic in tests. Retry/backoff waits and Retry-After deadlines use
// the real clock, not this one. Go has no thread-locals; unlike the Rust original's thread-local
// override, this is a single process-wide override guarded by a mutex. That
// is acceptable here because the pipeline's own tests never need two
// different simulated clocks running concurrently within one process.
package clock

import (
	"sync"
	"time"
)

var (
	mu       sync.RWMutex
	override *time.Time
)

// Now returns the current time, or the value previously installed with Set
// if one is active.
func Now() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	if override != nil {
		return *override
	}
	return time.Now()
}

// Set pins Now to a fixed value. Intended for tests.
func Set(t time.Time) {
	mu.Lock()
	defer mu.Unlock()
	override = &t
}

// Reset removes any pinned value, returning Now to time.Now().
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	override = nil
}
