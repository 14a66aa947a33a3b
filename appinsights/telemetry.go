package appinsights

import (
	"strings"
	"time"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
	"github.com/microsoft/appinsights-go/appinsights/internal/clock"
)

// Telemetry is implemented by every trackable item (Event, Trace, Metric,
// AggregateMetric, Request, RemoteDependency, Availability). Track converts
// one into a contracts.Envelope by merging it against a TelemetryContext.
type Telemetry interface {
	Properties() map[string]string
	Tags() map[string]string
	envelope(ctx *TelemetryContext) *contracts.Envelope
}

// item holds the fields every telemetry kind shares: a measurement
// timestamp plus overridable properties/tags that take precedence over the
// client's context on collision.
type item struct {
	timestamp  time.Time
	properties map[string]string
	tags       map[string]string
}

func newItem() item {
	return item{
		timestamp:  clock.Now(),
		properties: make(map[string]string),
		tags:       make(map[string]string),
	}
}

func (i *item) Properties() map[string]string { return i.properties }
func (i *item) Tags() map[string]string        { return i.tags }

// buildEnvelope is the shared second half of every telemetry type's
// envelope method: wrap baseData with its discriminator, merge tags and
// properties (context first, item wins), and stamp the RFC3339
// millisecond-precision timestamp the wire format expects.
func buildEnvelope[T any](ctx *TelemetryContext, ts time.Time, baseType string, baseData T, itemTags map[string]string) *contracts.Envelope {
	name := envelopeName(baseType)
	env := contracts.NewEnvelope(name, ts.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	env.IKey = ctx.IKey
	env.Tags = combine(ctx.Tags(), itemTags)
	env.Data = contracts.NewData(baseType, baseData)
	return env
}

// envelopeName derives "Microsoft.ApplicationInsights.<Kind>" from a
// baseType like "EventData" by dropping the trailing "Data", matching the
// literal envelope names the Application Insights ingestion schema expects.
func envelopeName(baseType string) string {
	kind := strings.TrimSuffix(baseType, "Data")
	return "Microsoft.ApplicationInsights." + kind
}
