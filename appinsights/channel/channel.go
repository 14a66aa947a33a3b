// Package channel is the public façade over the submission worker: a
// non-blocking Send/Flush and a blocking Close/Terminate, so callers never
// see the state machine underneath.
package channel

import (
	"runtime"
	"time"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
	"github.com/microsoft/appinsights-go/appinsights/internal/logging"
	"github.com/microsoft/appinsights-go/appinsights/internal/metrics"
	"github.com/microsoft/appinsights-go/appinsights/internal/worker"
	"github.com/microsoft/appinsights-go/appinsights/transmitter"
)

// TelemetryChannel is the interface TelemetryClient depends on, so tests can
// substitute a fake in place of InMemoryChannel.
type TelemetryChannel interface {
	Send(item *contracts.Envelope)
	Flush()
	Close()
	Terminate()
}

// Config configures an InMemoryChannel.
type Config struct {
	EndpointURL   string
	Interval      time.Duration
	MaxBufferSize int
	Logger        logging.Logger
	Metrics       metrics.Provider
	Transmitter   worker.Sender // overridable for tests; defaults to a real transmitter.Transmitter
}

// InMemoryChannel buffers envelopes in process memory and hands them to a
// submission worker goroutine. A channel that becomes unreachable without
// Close or Terminate having been called is terminated when the garbage
// collector finalizes it: pending items are lost and nothing further is
// sent.
type InMemoryChannel struct {
	w *worker.Worker
}

// NewInMemoryChannel builds and starts an InMemoryChannel.
func NewInMemoryChannel(cfg Config) *InMemoryChannel {
	sender := cfg.Transmitter
	if sender == nil {
		sender = transmitter.New(cfg.EndpointURL)
	}
	w := worker.New(worker.Config{
		Interval:      cfg.Interval,
		MaxBufferSize: cfg.MaxBufferSize,
		Transmitter:   sender,
		Logger:        cfg.Logger,
		Metrics:       cfg.Metrics,
	})
	w.Start()
	c := &InMemoryChannel{w: w}
	runtime.SetFinalizer(c, func(c *InMemoryChannel) { c.w.Terminate() })
	return c
}

// Send enqueues item without blocking. If the internal buffer is full the
// item is dropped and counted via the configured metrics provider.
func (c *InMemoryChannel) Send(item *contracts.Envelope) {
	c.w.Send(item)
}

// Flush asks for an out-of-band send attempt of whatever is buffered. It
// does not wait for the attempt to finish.
func (c *InMemoryChannel) Flush() {
	c.w.Flush()
}

// Close makes at most one more send attempt and stops, blocking until the
// worker goroutine has exited.
func (c *InMemoryChannel) Close() {
	c.w.Close()
}

// Terminate stops immediately, dropping anything buffered, blocking until
// the worker goroutine has exited.
func (c *InMemoryChannel) Terminate() {
	c.w.Terminate()
}
