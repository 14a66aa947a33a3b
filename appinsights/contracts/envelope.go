package contracts

// Envelope is the system-level wrapper every telemetry item travels in.
// Field names and JSON tags mirror the Application Insights wire schema
// (https://github.com/microsoft/ApplicationInsights-dotnet) unchanged; Go
// callers build one through NewEnvelope rather than constructing it
// directly, since Name/Time/Ver/SampleRate have schema-mandated defaults.
type Envelope struct {
	Ver        int               `json:"ver"`
	Name       string            `json:"name"`
	Time       string            `json:"time"`
	SampleRate float64           `json:"sampleRate,omitempty"`
	Seq        string            `json:"seq,omitempty"`
	IKey       string            `json:"iKey,omitempty"`
	Flags      int64             `json:"flags,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
	// Data holds a *Data[T] for the concrete domain payload (EventData,
	// MessageData, MetricData, ...). Typed as any because Envelope itself
	// cannot be generic over T without forcing every caller that handles a
	// mixed batch of telemetry kinds to also parameterize on it.
	Data any `json:"data,omitempty"`
}

// NewEnvelope constructs an Envelope with the schema defaults: Ver=1,
// SampleRate=100 (no sampling applied).
func NewEnvelope(name, timeRFC3339 string) *Envelope {
	return &Envelope{
		Ver:        1,
		Name:       name,
		Time:       timeRFC3339,
		SampleRate: 100.0,
	}
}
