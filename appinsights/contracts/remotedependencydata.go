package contracts

// RemoteDependencyData describes a call the application made to a remote
// dependency (a database, an HTTP API, a queue, ...).
type RemoteDependencyData struct {
	Ver          int                `json:"ver"`
	Name         string             `json:"name"`
	ID           string             `json:"id,omitempty"`
	ResultCode   string             `json:"resultCode,omitempty"`
	Duration     string             `json:"duration"`
	Success      bool               `json:"success"`
	Data         string             `json:"data,omitempty"`
	Target       string             `json:"target,omitempty"`
	Type         string             `json:"type,omitempty"`
	Properties   map[string]string  `json:"properties,omitempty"`
	Measurements map[string]float64 `json:"measurements,omitempty"`
}

// NewRemoteDependencyData constructs a RemoteDependencyData with the
// schema's default Ver=2.
func NewRemoteDependencyData(name string) *RemoteDependencyData {
	return &RemoteDependencyData{Ver: 2, Name: name}
}
