package appinsights

import "github.com/microsoft/appinsights-go/appinsights/contracts"

// EventTelemetry represents a custom event: a discrete, named occurrence
// worth analyzing in aggregate (e.g. "checkout completed").
type EventTelemetry struct {
	item
	Name string
}

// NewEventTelemetry constructs an EventTelemetry with the current time.
func NewEventTelemetry(name string) *EventTelemetry {
	return &EventTelemetry{item: newItem(), Name: name}
}

func (e *EventTelemetry) envelope(ctx *TelemetryContext) *contracts.Envelope {
	data := contracts.NewEventData(e.Name)
	data.Properties = combine(ctx.Properties(), e.properties)
	return buildEnvelope(ctx, e.timestamp, "EventData", data, e.tags)
}
