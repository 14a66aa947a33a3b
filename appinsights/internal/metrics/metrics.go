// Package metrics provides a minimal, swappable metrics provider abstraction
// for the submission pipeline's own operational counters (items sent,
// dropped, retried, throttled, batch sizes, pending buffer depth). It is
// deliberately small: submission code depends only on the Provider
// interface, never on a specific backend.
package metrics

import "context"

// Provider is the minimal metrics provider contract used by the submission
// worker and channel façade.
type Provider interface {
	NewCounter(opts CounterOpts) Counter
	NewGauge(opts GaugeOpts) Gauge
	NewHistogram(opts HistogramOpts) Histogram
	NewTimer(h HistogramOpts) func() Timer
	Health(ctx context.Context) error
}

// Counter is a monotonically increasing instrument.
type Counter interface{ Inc(delta float64, labels ...string) }

// Gauge is a point-in-time value instrument.
type Gauge interface {
	Set(v float64, labels ...string)
	Add(delta float64, labels ...string)
}

// Histogram records a distribution of observed values.
type Histogram interface{ Observe(v float64, labels ...string) }

// Timer observes an elapsed duration once stopped.
type Timer interface{ ObserveDuration(labels ...string) }

// CommonOpts names and labels a metric.
type CommonOpts struct {
	Namespace, Subsystem, Name, Help string
	Labels                           []string
}

type CounterOpts struct{ CommonOpts }
type GaugeOpts struct{ CommonOpts }
type HistogramOpts struct {
	CommonOpts
	Buckets []float64
}

// noop provider ---------------------------------------------------------

type noopProvider struct{}
type noopCounter struct{}
type noopGauge struct{}
type noopHistogram struct{}
type noopTimer struct{}

// NewNoopProvider returns a Provider that discards every observation. It is
// the default when no backend is configured.
func NewNoopProvider() Provider { return &noopProvider{} }

func (p *noopProvider) NewCounter(CounterOpts) Counter     { return noopCounter{} }
func (p *noopProvider) NewGauge(GaugeOpts) Gauge           { return noopGauge{} }
func (p *noopProvider) NewHistogram(HistogramOpts) Histogram { return noopHistogram{} }
func (p *noopProvider) NewTimer(HistogramOpts) func() Timer {
	return func() Timer { return noopTimer{} }
}
func (p *noopProvider) Health(context.Context) error { return nil }

func (noopCounter) Inc(float64, ...string)     {}
func (noopGauge) Set(float64, ...string)       {}
func (noopGauge) Add(float64, ...string)       {}
func (noopHistogram) Observe(float64, ...string) {}
func (noopTimer) ObserveDuration(...string)      {}

// Names used by the submission pipeline's own instrumentation. Kept central
// so the Prometheus and OTel backends agree on what they're reporting.
const (
	MetricItemsSent      = "items_sent_total"
	MetricItemsDropped   = "items_dropped_total"
	MetricItemsRetried   = "items_retried_total"
	MetricItemsThrottled = "items_throttled_total"
	MetricBatchSize      = "batch_size"
	MetricBufferDepth    = "buffer_depth"
)
