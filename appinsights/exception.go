package appinsights

import "github.com/microsoft/appinsights-go/appinsights/contracts"

// ExceptionTelemetry represents a handled or unhandled error reported by
// the application.
type ExceptionTelemetry struct {
	item
	Err           error
	SeverityLevel contracts.SeverityLevel
}

// NewExceptionTelemetry constructs an ExceptionTelemetry from err, defaulting
// to Error severity.
func NewExceptionTelemetry(err error) *ExceptionTelemetry {
	return &ExceptionTelemetry{item: newItem(), Err: err, SeverityLevel: contracts.Error}
}

func (e *ExceptionTelemetry) envelope(ctx *TelemetryContext) *contracts.Envelope {
	data := contracts.NewExceptionData(e.Err)
	data.SeverityLevel = e.SeverityLevel
	data.Properties = combine(ctx.Properties(), e.properties)
	return buildEnvelope(ctx, e.timestamp, "ExceptionData", data, e.tags)
}
