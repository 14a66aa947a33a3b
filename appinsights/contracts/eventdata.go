package contracts

// EventData is a custom event reported to the application.
type EventData struct {
	Ver          int                `json:"ver"`
	Name         string             `json:"name"`
	Properties   map[string]string  `json:"properties,omitempty"`
	Measurements map[string]float64 `json:"measurements,omitempty"`
}

// NewEventData constructs an EventData with the schema's default Ver=2.
func NewEventData(name string) *EventData {
	return &EventData{Ver: 2, Name: name}
}
