package contracts

import (
	"fmt"
	"time"
)

// Duration formats a time.Duration using the dotnet-style wire format the
// Application Insights ingestion endpoint expects for fields like
// RequestData.Duration: "d.hh:mm:ss.fffffff", where the fractional part is
// expressed in 100-nanosecond ticks (7 digits), matching .NET's
// TimeSpan.ToString().
type Duration time.Duration

// String renders the duration as "days.hours:minutes:seconds.ticks".
func (d Duration) String() string {
	nanoseconds := time.Duration(d).Nanoseconds()
	if nanoseconds < 0 {
		nanoseconds = -nanoseconds
	}
	ticks := (nanoseconds / 100) % 10_000_000
	totalSeconds := nanoseconds / 1_000_000_000
	seconds := totalSeconds % 60
	minutes := (totalSeconds / 60) % 60
	hours := (totalSeconds / 3600) % 24
	days := totalSeconds / 86400

	return fmt.Sprintf("%d.%02d:%02d:%02d.%07d", days, hours, minutes, seconds, ticks)
}

// MarshalText implements encoding.TextMarshaler so Duration fields serialize
// to their wire string form when a struct containing them is JSON-encoded.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
