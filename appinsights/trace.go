package appinsights

import "github.com/microsoft/appinsights-go/appinsights/contracts"

// TraceTelemetry represents a log statement or other diagnostic message
// reported by the application.
type TraceTelemetry struct {
	item
	Message       string
	SeverityLevel contracts.SeverityLevel
}

// NewTraceTelemetry constructs a TraceTelemetry with the current time.
func NewTraceTelemetry(message string, severity contracts.SeverityLevel) *TraceTelemetry {
	return &TraceTelemetry{item: newItem(), Message: message, SeverityLevel: severity}
}

func (t *TraceTelemetry) envelope(ctx *TelemetryContext) *contracts.Envelope {
	data := contracts.NewMessageData(t.Message)
	data.SeverityLevel = t.SeverityLevel
	data.Properties = combine(ctx.Properties(), t.properties)
	return buildEnvelope(ctx, t.timestamp, "MessageData", data, t.tags)
}
