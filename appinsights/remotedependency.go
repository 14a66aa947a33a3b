package appinsights

import (
	"time"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
	"github.com/microsoft/appinsights-go/appinsights/internal/uuid"
)

// RemoteDependencyTelemetry represents a call the application made to a
// remote dependency (HTTP API, database, queue, ...).
type RemoteDependencyTelemetry struct {
	item
	ID         string
	Name       string
	Type       string
	Target     string
	Duration   time.Duration
	Success    bool
	ResultCode string
}

// NewRemoteDependencyTelemetry constructs a RemoteDependencyTelemetry.
func NewRemoteDependencyTelemetry(name, dependencyType, target string, success bool) *RemoteDependencyTelemetry {
	return &RemoteDependencyTelemetry{
		item:    newItem(),
		ID:      uuid.New(),
		Name:    name,
		Type:    dependencyType,
		Target:  target,
		Success: success,
	}
}

func (d *RemoteDependencyTelemetry) envelope(ctx *TelemetryContext) *contracts.Envelope {
	data := contracts.NewRemoteDependencyData(d.Name)
	data.ID = d.ID
	data.Type = d.Type
	data.Target = d.Target
	data.Success = d.Success
	data.ResultCode = d.ResultCode
	data.Duration = contracts.Duration(d.Duration).String()
	data.Properties = combine(ctx.Properties(), d.properties)
	return buildEnvelope(ctx, d.timestamp, "RemoteDependencyData", data, d.tags)
}
