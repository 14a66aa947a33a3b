package appinsights

import (
	"time"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
	"github.com/microsoft/appinsights-go/appinsights/internal/uuid"
)

// AvailabilityTelemetry represents the result of a synthetic availability
// (uptime) test.
type AvailabilityTelemetry struct {
	item
	ID          string
	Name        string
	Duration    time.Duration
	Success     bool
	RunLocation string
	Message     string
}

// NewAvailabilityTelemetry constructs an AvailabilityTelemetry.
func NewAvailabilityTelemetry(name string, duration time.Duration, success bool) *AvailabilityTelemetry {
	return &AvailabilityTelemetry{
		item:     newItem(),
		ID:       uuid.New(),
		Name:     name,
		Duration: duration,
		Success:  success,
	}
}

func (a *AvailabilityTelemetry) envelope(ctx *TelemetryContext) *contracts.Envelope {
	data := contracts.NewAvailabilityData(a.ID, a.Name)
	data.Duration = contracts.Duration(a.Duration).String()
	data.Success = a.Success
	data.RunLocation = a.RunLocation
	data.Message = a.Message
	data.Properties = combine(ctx.Properties(), a.properties)
	return buildEnvelope(ctx, a.timestamp, "AvailabilityData", data, a.tags)
}
