// Package blocking mirrors the original crate's blocking::TelemetryClient
// module. In Rust, the root TelemetryClient returns futures that must run on
// an async executor, so a separate blocking façade spun up its own
// single-threaded runtime and joined on every call. Go's
// appinsights.TelemetryClient has no such split: Track and FlushChannel are
// already synchronous non-blocking calls, and Close/Terminate already block the calling goroutine until the
// submission worker exits. So this package is a thin re-export rather than a
// second implementation, kept only so callers porting from the Rust crate's
// two-module layout (appinsights vs appinsights::blocking) find a familiar
// import path.
package blocking

import "github.com/microsoft/appinsights-go/appinsights"

// TelemetryClient is an alias of appinsights.TelemetryClient. Every method
// on it already blocks or returns immediately exactly as documented there.
type TelemetryClient = appinsights.TelemetryClient

// Config is an alias of appinsights.Config.
type Config = appinsights.Config

// New constructs a TelemetryClient for iKey using default configuration.
func New(iKey string) *TelemetryClient {
	return appinsights.New(iKey)
}

// NewFromConfig constructs a TelemetryClient from an explicitly built Config.
func NewFromConfig(cfg Config) *TelemetryClient {
	return appinsights.NewFromConfig(cfg)
}
