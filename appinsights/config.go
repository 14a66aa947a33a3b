package appinsights

import (
	"errors"
	"time"
)

// DefaultEndpointURL is the Application Insights ingestion endpoint used
// when no endpoint override is supplied.
const DefaultEndpointURL = "https://dc.services.visualstudio.com/v2/track"

// DefaultSubmissionInterval is how long the channel's background worker
// waits between scheduled batch sends when telemetry is arriving steadily.
const DefaultSubmissionInterval = 2 * time.Second

// DefaultMaxBufferSize bounds how many telemetry items the channel will
// hold in memory while waiting for the next scheduled send.
const DefaultMaxBufferSize = 500

// ErrMissingInstrumentationKey is returned by NewConfig when no
// instrumentation key was supplied.
var ErrMissingInstrumentationKey = errors.New("appinsights: instrumentation key is required")

// Config holds the parameters used to construct a TelemetryClient.
type Config struct {
	// InstrumentationKey identifies the Application Insights resource
	// telemetry is submitted to.
	InstrumentationKey string

	// EndpointURL is where batches of telemetry are POSTed.
	EndpointURL string

	// SubmissionInterval is the maximum time the channel waits before
	// sending a non-empty batch.
	SubmissionInterval time.Duration

	// MaxBufferSize bounds the number of items buffered in memory; Send
	// drops items (and increments a metric) once the buffer is full.
	MaxBufferSize int
}

// ConfigOption mutates a Config during construction.
type ConfigOption func(*Config)

// WithEndpointURL overrides the default ingestion endpoint, useful for
// testing against a local server or an alternate collector.
func WithEndpointURL(url string) ConfigOption {
	return func(c *Config) { c.EndpointURL = url }
}

// WithSubmissionInterval overrides the default batch submission interval.
func WithSubmissionInterval(interval time.Duration) ConfigOption {
	return func(c *Config) { c.SubmissionInterval = interval }
}

// WithMaxBufferSize overrides the default in-memory buffer capacity.
func WithMaxBufferSize(size int) ConfigOption {
	return func(c *Config) { c.MaxBufferSize = size }
}

// NewConfig builds a Config for iKey with defaults applied, then applies
// opts in order. It returns ErrMissingInstrumentationKey if iKey is empty.
func NewConfig(iKey string, opts ...ConfigOption) (Config, error) {
	if iKey == "" {
		return Config{}, ErrMissingInstrumentationKey
	}
	cfg := Config{
		InstrumentationKey: iKey,
		EndpointURL:        DefaultEndpointURL,
		SubmissionInterval: DefaultSubmissionInterval,
		MaxBufferSize:      DefaultMaxBufferSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}
