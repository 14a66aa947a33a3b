package contracts

// SeverityLevel is the verbosity of a trace or exception telemetry item, as
// defined by the Application Insights schema.
type SeverityLevel int

const (
	Verbose SeverityLevel = iota
	Information
	Warning
	Error
	Critical
)

func (s SeverityLevel) String() string {
	switch s {
	case Verbose:
		return "Verbose"
	case Information:
		return "Information"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Critical:
		return "Critical"
	default:
		return "Information"
	}
}
