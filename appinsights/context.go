package appinsights

import (
	"runtime"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
)

const sdkVersion = "go:0.1.0"

// TelemetryContext carries contextual tags and properties common to every
// telemetry item submitted through one TelemetryClient: instrumentation
// key, ContextTags (the 28-key wire surface), and free-form Properties.
type TelemetryContext struct {
	IKey string

	tags       map[string]string
	properties map[string]string
}

// NewContext builds a TelemetryContext for iKey, pre-populating the
// internal.sdkVersion and device.osVersion tags the way the original
// crate's TelemetryContext::from_config does.
func NewContext(iKey string) *TelemetryContext {
	c := &TelemetryContext{
		IKey:       iKey,
		tags:       make(map[string]string),
		properties: make(map[string]string),
	}
	c.tags[contracts.TagInternalSDKVersion] = sdkVersion
	c.tags[contracts.TagDeviceOSVersion] = runtime.GOOS
	return c
}

// Tags returns the mutable tag map. Keys are typically one of the
// contracts.Tag* constants but any string is accepted, matching the wire
// schema's permissive tags bag.
func (c *TelemetryContext) Tags() map[string]string { return c.tags }

// Properties returns the mutable free-form property map attached to every
// telemetry item submitted through this context.
func (c *TelemetryContext) Properties() map[string]string { return c.properties }

// combine merges base and overlay into a fresh map, with overlay's values
// winning on key collision. Used to merge context tags/properties with an
// individual telemetry item's own tags/properties before building an
// envelope, matching the original's Properties::combine / ContextTags::combine
// (item wins over context).
func combine(base, overlay map[string]string) map[string]string {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}
