// Package uuid wraps github.com/google/uuid behind a package-level,
// overridable generator, mirroring the clock package's override shape so
// that telemetry item IDs can be pinned in tests.
package uuid

import (
	"sync"

	"github.com/google/uuid"
)

var (
	mu       sync.RWMutex
	override *uuid.UUID
)

// New returns a fresh random UUID-v4 string, or the pinned override value if
// one is active.
func New() string {
	mu.RLock()
	defer mu.RUnlock()
	if override != nil {
		return override.String()
	}
	return uuid.New().String()
}

// Set pins New to always return id. Intended for tests.
func Set(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	override = &parsed
	return nil
}

// Reset removes any pinned value, returning New to random generation.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	override = nil
}
