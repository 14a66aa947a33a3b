package appinsights

import (
	"net/url"
	"strconv"
	"time"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
	"github.com/microsoft/appinsights-go/appinsights/internal/uuid"
)

// RequestTelemetry represents completion of a request served by the
// application (typically an inbound HTTP request).
type RequestTelemetry struct {
	item
	ID           string
	Name         string
	URL          string
	Duration     time.Duration
	ResponseCode string
}

// NewRequestTelemetry constructs a RequestTelemetry, normalizing rawURL to
// scheme+host[:port]+path (dropping query and fragment) the way the
// original crate's RequestTelemetry::new does, and deriving Name as
// "<METHOD> <normalized URL>".
func NewRequestTelemetry(method, rawURL string, duration time.Duration, responseCode string) *RequestTelemetry {
	normalized := normalizeRequestURL(rawURL)
	return &RequestTelemetry{
		item:         newItem(),
		ID:           uuid.New(),
		Name:         method + " " + normalized,
		URL:          normalized,
		Duration:     duration,
		ResponseCode: responseCode,
	}
}

// normalizeRequestURL strips query parameters and fragments, keeping only
// scheme, host[:port], and path.
func normalizeRequestURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// IsSuccess reports whether ResponseCode indicates a successful request:
// any code under 400, or 401 (matching the original's treatment of
// Unauthorized as "successfully handled, just unauthenticated"). A
// response code that does not parse as a number is treated as successful.
func (r *RequestTelemetry) IsSuccess() bool {
	code, err := strconv.Atoi(r.ResponseCode)
	if err != nil {
		return true
	}
	return code < 400 || code == 401
}

func (r *RequestTelemetry) envelope(ctx *TelemetryContext) *contracts.Envelope {
	data := contracts.NewRequestData(r.ID)
	data.Name = r.Name
	data.URL = r.URL
	data.Duration = contracts.Duration(r.Duration).String()
	data.ResponseCode = r.ResponseCode
	data.Success = r.IsSuccess()
	data.Properties = combine(ctx.Properties(), r.properties)
	return buildEnvelope(ctx, r.timestamp, "RequestData", data, r.tags)
}
