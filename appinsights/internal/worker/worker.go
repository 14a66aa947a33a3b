// Package worker implements the submission state machine: it owns a buffer
// of envelopes, flushes it on a timer, and drives retry/backoff based on
// what the transmitter reports back. States are Receiving (buffering,
// waiting for the next timer tick or command), Sending (a transmit attempt
// in flight), Waiting (backing off before a retry), and Stopped (terminal).
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
	"github.com/microsoft/appinsights-go/appinsights/internal/logging"
	"github.com/microsoft/appinsights-go/appinsights/internal/metrics"
	"github.com/microsoft/appinsights-go/appinsights/transmitter"
)

// Sender is the subset of *transmitter.Transmitter the worker depends on,
// so tests can substitute a fake.
type Sender interface {
	Send(ctx context.Context, items []*contracts.Envelope) (transmitter.Response, error)
}

// Config configures a Worker.
type Config struct {
	Interval         time.Duration
	MaxBufferSize    int
	Transmitter      Sender
	Logger           logging.Logger
	Metrics          metrics.Provider
	NewRetrySchedule func() RetrySchedule
}

type commandKind int

const (
	cmdFlush commandKind = iota
	cmdClose
	cmdTerminate
)

type command struct {
	kind commandKind
	ack  chan struct{}
}

// Worker buffers envelopes and submits them on a timer, retrying failed
// batches per its retry schedule.
type Worker struct {
	cfg      Config
	items    chan *contracts.Envelope
	commands chan command
	stopped  chan struct{}
	once     sync.Once

	stateMu sync.RWMutex
	state   State
}

// New constructs a Worker. Call Start to begin its run loop.
func New(cfg Config) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.MaxBufferSize <= 0 {
		cfg.MaxBufferSize = 500
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Noop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoopProvider()
	}
	if cfg.NewRetrySchedule == nil {
		cfg.NewRetrySchedule = Exponential
	}
	return &Worker{
		cfg:      cfg,
		items:    make(chan *contracts.Envelope, cfg.MaxBufferSize),
		commands: make(chan command),
		stopped:  make(chan struct{}),
		state:    Receiving,
	}
}

// State reports the worker's current state. Intended for tests and
// diagnostics; not part of the steady-state control flow.
func (w *Worker) State() State {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()
	return w.state
}

func (w *Worker) setState(s State) {
	w.stateMu.Lock()
	w.state = s
	w.stateMu.Unlock()
}

// Send enqueues item without blocking. It returns false if the worker's
// internal buffer is full or already stopped, meaning the item is dropped.
func (w *Worker) Send(item *contracts.Envelope) bool {
	select {
	case <-w.stopped:
		return false
	default:
	}
	select {
	case w.items <- item:
		return true
	default:
		w.cfg.Metrics.NewCounter(metrics.CounterOpts{CommonOpts: metrics.CommonOpts{Name: metrics.MetricItemsDropped}}).Inc(1)
		return false
	}
}

// Flush asks the worker to attempt a send of whatever is currently
// buffered, without waiting for the next timer tick. It does not block
// until the send completes.
func (w *Worker) Flush() {
	w.sendCommand(cmdFlush, false)
}

// Close asks the worker to make at most one more send attempt and then
// stop, blocking until it has. Any items that arrive after Close is called
// are not guaranteed to be sent.
func (w *Worker) Close() {
	w.sendCommand(cmdClose, true)
}

// Terminate asks the worker to stop immediately, dropping anything
// buffered, blocking until it has.
func (w *Worker) Terminate() {
	w.sendCommand(cmdTerminate, true)
}

func (w *Worker) sendCommand(kind commandKind, wait bool) {
	cmd := command{kind: kind}
	if wait {
		cmd.ack = make(chan struct{})
	}
	select {
	case w.commands <- cmd:
	case <-w.stopped:
		if wait {
			return
		}
	}
	if wait {
		// Close and Terminate both end the run loop; returning only once
		// stopped is closed means the worker is already Stopped.
		<-w.stopped
	}
}

// Start launches the worker's run loop in a new goroutine.
func (w *Worker) Start() { go w.run() }

func (w *Worker) run() {
	defer func() {
		w.setState(Stopped)
		w.once.Do(func() { close(w.stopped) })
	}()

	var buffer []*contracts.Envelope
	var retrySchedule RetrySchedule
	var throttleUntil time.Time
	var closing bool

	timer := time.NewTimer(w.cfg.Interval)
	defer timer.Stop()

	var waitTimer *time.Timer
	defer func() {
		if waitTimer != nil {
			waitTimer.Stop()
		}
	}()

	ack := func(cmd command) {
		if cmd.ack != nil {
			close(cmd.ack)
		}
	}

	for {
		w.setState(stateFor(buffer, closing, retrySchedule != nil))

		switch {
		case closing && len(buffer) == 0:
			return

		case retrySchedule != nil:
			var d time.Duration
			if !throttleUntil.IsZero() {
				// A Throttled response dictates the wait itself; the
				// schedule is left untouched and not consulted.
				d = time.Until(throttleUntil)
				if d < 0 {
					d = 0
				}
				throttleUntil = time.Time{}
			} else {
				var ok bool
				d, ok = retrySchedule.Next()
				if !ok {
					w.cfg.Logger.WarnCtx(context.Background(), "appinsights: retry schedule exhausted, dropping batch", "items", len(buffer))
					w.cfg.Metrics.NewCounter(metrics.CounterOpts{CommonOpts: metrics.CommonOpts{Name: metrics.MetricItemsDropped}}).Inc(float64(len(buffer)))
					buffer = nil
					retrySchedule = nil
					if closing {
						return
					}
					continue
				}
			}
			waitTimer = time.NewTimer(d)
			select {
			case <-waitTimer.C:
				buffer, retrySchedule, throttleUntil = w.attemptSend(buffer, retrySchedule, closing)
			case cmd := <-w.commands:
				switch cmd.kind {
				case cmdTerminate:
					ack(cmd)
					return
				case cmdClose:
					// No further attempt while backing off: the batch
					// awaiting retry is dropped and the worker stops.
					ack(cmd)
					return
				case cmdFlush:
					ack(cmd)
				}
			}

		default:
			select {
			case item, ok := <-w.items:
				if !ok {
					return
				}
				if len(buffer) < w.cfg.MaxBufferSize {
					buffer = append(buffer, item)
				}

			case cmd := <-w.commands:
				// Take in items queued before the command so that Flush and
				// Close see everything sent ahead of them.
				for drained := false; !drained; {
					select {
					case item := <-w.items:
						if len(buffer) < w.cfg.MaxBufferSize {
							buffer = append(buffer, item)
						}
					default:
						drained = true
					}
				}
				switch cmd.kind {
				case cmdTerminate:
					ack(cmd)
					return
				case cmdClose:
					closing = true
					if len(buffer) == 0 {
						ack(cmd)
						return
					}
					buffer, retrySchedule, throttleUntil = w.attemptSend(buffer, Once(), closing)
					ack(cmd)
				case cmdFlush:
					if len(buffer) > 0 {
						buffer, retrySchedule, throttleUntil = w.attemptSend(buffer, w.cfg.NewRetrySchedule(), closing)
					}
					ack(cmd)
				}

			case <-timer.C:
				if len(buffer) > 0 {
					buffer, retrySchedule, throttleUntil = w.attemptSend(buffer, w.cfg.NewRetrySchedule(), closing)
				}
				timer.Reset(w.cfg.Interval)
			}
		}
	}
}

// attemptSend makes one transmit attempt. It returns the survivors that
// still need sending (empty on success or a terminal failure), a retry
// schedule to consult next (nil when nothing further is needed), and, for a
// Throttled response, the deadline the caller must wait until instead of
// consulting the schedule (zero otherwise).
func (w *Worker) attemptSend(buffer []*contracts.Envelope, schedule RetrySchedule, closing bool) ([]*contracts.Envelope, RetrySchedule, time.Time) {
	if len(buffer) == 0 {
		return buffer, nil, time.Time{}
	}

	w.setState(Sending)
	resp, err := w.cfg.Transmitter.Send(context.Background(), buffer)
	if err != nil {
		w.cfg.Logger.WarnCtx(context.Background(), "appinsights: send failed", "error", err, "items", len(buffer))
		if closing {
			return nil, nil, time.Time{}
		}
		return buffer, schedule, time.Time{}
	}

	switch resp.Kind {
	case transmitter.Success:
		w.cfg.Metrics.NewCounter(metrics.CounterOpts{CommonOpts: metrics.CommonOpts{Name: metrics.MetricItemsSent}}).Inc(float64(len(buffer)))
		return nil, nil, time.Time{}

	case transmitter.NoRetry:
		w.cfg.Logger.WarnCtx(context.Background(), "appinsights: batch rejected, not retryable", "items", len(buffer))
		w.cfg.Metrics.NewCounter(metrics.CounterOpts{CommonOpts: metrics.CommonOpts{Name: metrics.MetricItemsDropped}}).Inc(float64(len(buffer)))
		return nil, nil, time.Time{}

	case transmitter.Retry:
		survivors := survivorsOf(buffer, resp.RetryIndices)
		if len(survivors) == 0 {
			return nil, nil, time.Time{}
		}
		w.cfg.Metrics.NewCounter(metrics.CounterOpts{CommonOpts: metrics.CommonOpts{Name: metrics.MetricItemsRetried}}).Inc(float64(len(survivors)))
		if closing {
			// Close means at most one attempt; give up rather than retry.
			return nil, nil, time.Time{}
		}
		return survivors, schedule, time.Time{}

	case transmitter.Throttled:
		survivors := survivorsOf(buffer, resp.RetryIndices)
		if len(survivors) == 0 {
			return nil, nil, time.Time{}
		}
		w.cfg.Metrics.NewCounter(metrics.CounterOpts{CommonOpts: metrics.CommonOpts{Name: metrics.MetricItemsRetried}}).Inc(float64(len(survivors)))
		w.cfg.Metrics.NewCounter(metrics.CounterOpts{CommonOpts: metrics.CommonOpts{Name: metrics.MetricItemsThrottled}}).Inc(float64(len(survivors)))
		if closing {
			// Close means at most one attempt; give up rather than retry.
			return nil, nil, time.Time{}
		}
		// The server dictates the wait; the schedule is untouched and
		// consulted again only after this deadline passes.
		return survivors, schedule, resp.RetryAfter

	default:
		return nil, nil, time.Time{}
	}
}

// survivorsOf selects the buffer items named by indices, clamping out of
// range values and collapsing duplicates so a malformed server response
// cannot resend the same item twice or panic on an index past the batch.
func survivorsOf(buffer []*contracts.Envelope, indices []int) []*contracts.Envelope {
	if indices == nil {
		return buffer
	}
	n := len(buffer)
	seen := make(map[int]struct{}, len(indices))
	survivors := make([]*contracts.Envelope, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= n {
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		survivors = append(survivors, buffer[i])
	}
	return survivors
}

func stateFor(buffer []*contracts.Envelope, closing, retrying bool) State {
	switch {
	case retrying:
		return Waiting
	case closing && len(buffer) == 0:
		return Stopped
	default:
		return Receiving
	}
}
