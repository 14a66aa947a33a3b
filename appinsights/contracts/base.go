package contracts

// Data wraps a domain-specific telemetry payload (the "B" section of the
// wire schema) with the baseType discriminator the ingestion endpoint uses
// to decode it ("EventData", "MessageData", "MetricData", ...).
type Data[TDomain any] struct {
	BaseType string  `json:"baseType"`
	BaseData TDomain `json:"baseData"`
}

// NewData wraps baseData with its wire discriminator.
func NewData[TDomain any](baseType string, baseData TDomain) *Data[TDomain] {
	return &Data[TDomain]{BaseType: baseType, BaseData: baseData}
}
