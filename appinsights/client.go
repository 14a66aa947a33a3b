// Package appinsights is the in-process client for submitting telemetry to
// Azure Application Insights: a context of common properties, a set of
// typed telemetry items, and a channel that batches and retries submission
// in the background.
package appinsights

import (
	"sync/atomic"
	"time"

	"github.com/microsoft/appinsights-go/appinsights/channel"
	"github.com/microsoft/appinsights-go/appinsights/contracts"
	"github.com/microsoft/appinsights-go/appinsights/internal/logging"
	"github.com/microsoft/appinsights-go/appinsights/internal/metrics"
)

// TelemetryClient is the main entry point for recording telemetry. A
// TelemetryClient is safe for concurrent use.
type TelemetryClient struct {
	enabled atomic.Bool
	context *TelemetryContext
	channel channel.TelemetryChannel
}

// New constructs a TelemetryClient for iKey using default configuration.
func New(iKey string) *TelemetryClient {
	cfg, err := NewConfig(iKey)
	if err != nil {
		// iKey is a non-empty literal in the common case; callers that pass
		// an empty key get a disabled client rather than a panic.
		cfg = Config{EndpointURL: DefaultEndpointURL, SubmissionInterval: DefaultSubmissionInterval, MaxBufferSize: DefaultMaxBufferSize}
	}
	c := NewFromConfig(cfg)
	if err != nil {
		c.SetEnabled(false)
	}
	return c
}

// NewFromConfig constructs a TelemetryClient from an explicitly built Config,
// wiring a real InMemoryChannel and transmitter.
func NewFromConfig(cfg Config) *TelemetryClient {
	return newClient(cfg, logging.Noop(), metrics.NewNoopProvider())
}

// NewFromConfigWithObservability is like NewFromConfig but wires an
// application-provided logger and metrics provider into the channel's
// submission worker, so retry/drop/throttle events are observable.
func NewFromConfigWithObservability(cfg Config, logger logging.Logger, metricsProvider metrics.Provider) *TelemetryClient {
	if logger == nil {
		logger = logging.Noop()
	}
	if metricsProvider == nil {
		metricsProvider = metrics.NewNoopProvider()
	}
	return newClient(cfg, logger, metricsProvider)
}

func newClient(cfg Config, logger logging.Logger, metricsProvider metrics.Provider) *TelemetryClient {
	ch := channel.NewInMemoryChannel(channel.Config{
		EndpointURL:   cfg.EndpointURL,
		Interval:      cfg.SubmissionInterval,
		MaxBufferSize: cfg.MaxBufferSize,
		Logger:        logger,
		Metrics:       metricsProvider,
	})
	c := &TelemetryClient{
		context: NewContext(cfg.InstrumentationKey),
		channel: ch,
	}
	c.enabled.Store(true)
	return c
}

// NewWithChannel builds a TelemetryClient around a caller-supplied channel,
// primarily for tests that want to substitute a fake TelemetryChannel.
func NewWithChannel(iKey string, ch channel.TelemetryChannel) *TelemetryClient {
	c := &TelemetryClient{context: NewContext(iKey), channel: ch}
	c.enabled.Store(true)
	return c
}

// IsEnabled reports whether Track calls currently submit telemetry.
func (c *TelemetryClient) IsEnabled() bool {
	return c.enabled.Load()
}

// SetEnabled toggles whether Track calls submit telemetry. Disabling a
// client silently drops everything passed to Track; it does not stop the
// underlying channel's background worker.
func (c *TelemetryClient) SetEnabled(enabled bool) {
	c.enabled.Store(enabled)
}

// Context returns the TelemetryContext shared by every item this client
// tracks. Mutating its Tags/Properties maps affects subsequently tracked
// items; items already converted to envelopes are unaffected, since Track
// clones context state into each envelope at submission time.
func (c *TelemetryClient) Context() *TelemetryContext {
	return c.context
}

// Track converts t into a wire envelope (merging the client's context into
// the item's own tags/properties) and hands it to the channel, unless the
// client has been disabled.
func (c *TelemetryClient) Track(t Telemetry) {
	if !c.IsEnabled() {
		return
	}
	env := t.envelope(c.context)
	c.channel.Send(env)
}

// TrackEvent records a named application event.
func (c *TelemetryClient) TrackEvent(name string) {
	c.Track(NewEventTelemetry(name))
}

// TrackTrace records a free-form diagnostic message at the given severity.
func (c *TelemetryClient) TrackTrace(message string, severity contracts.SeverityLevel) {
	c.Track(NewTraceTelemetry(message, severity))
}

// TrackMetric records a single numeric measurement.
func (c *TelemetryClient) TrackMetric(name string, value float64) {
	c.Track(NewMetricTelemetry(name, value))
}

// TrackRequest records completion of a request the application served.
func (c *TelemetryClient) TrackRequest(method, url string, duration time.Duration, responseCode string) {
	c.Track(NewRequestTelemetry(method, url, duration, responseCode))
}

// TrackRemoteDependency records a call the application made to a remote
// dependency.
func (c *TelemetryClient) TrackRemoteDependency(name, dependencyType, target string, success bool) {
	c.Track(NewRemoteDependencyTelemetry(name, dependencyType, target, success))
}

// TrackAvailability records the result of a synthetic availability test.
func (c *TelemetryClient) TrackAvailability(name string, duration time.Duration, success bool) {
	c.Track(NewAvailabilityTelemetry(name, duration, success))
}

// TrackException records a handled or unhandled error at Error severity.
func (c *TelemetryClient) TrackException(err error) {
	c.Track(NewExceptionTelemetry(err))
}

// TrackAggregateMetric records a pre-aggregated window of metric samples
// rather than one value at a time. Callers fold samples into stats with
// Stats.AddData before tracking.
func (c *TelemetryClient) TrackAggregateMetric(name string, stats Stats) {
	t := NewAggregateMetricTelemetry(name)
	t.Stats = stats
	c.Track(t)
}

// FlushChannel requests an out-of-band send of whatever is currently
// buffered without waiting for it to complete.
func (c *TelemetryClient) FlushChannel() {
	c.channel.Flush()
}

// CloseChannel makes at most one further send attempt and stops, blocking
// until the channel's background worker has exited.
func (c *TelemetryClient) CloseChannel() {
	c.channel.Close()
}

// Terminate stops the channel immediately, dropping anything still
// buffered, blocking until the background worker has exited.
func (c *TelemetryClient) Terminate() {
	c.channel.Terminate()
}
