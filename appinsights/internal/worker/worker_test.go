package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
	"github.com/microsoft/appinsights-go/appinsights/transmitter"
)

type fakeSender struct {
	mu    sync.Mutex
	resps []transmitter.Response
	errs  []error
	calls [][]*contracts.Envelope
}

func (f *fakeSender) Send(ctx context.Context, items []*contracts.Envelope) (transmitter.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, items)
	idx := len(f.calls) - 1
	if idx < len(f.errs) && f.errs[idx] != nil {
		return transmitter.Response{}, f.errs[idx]
	}
	if idx < len(f.resps) {
		return f.resps[idx], nil
	}
	return transmitter.Response{Kind: transmitter.Success}, nil
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSender) callArgs(i int) []*contracts.Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

func newEnvelope(name string) *contracts.Envelope {
	return contracts.NewEnvelope("Microsoft.ApplicationInsights."+name, time.Now().UTC().Format(time.RFC3339))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.True(t, cond(), "condition not met within %s", timeout)
}

func TestWorkerFlushSendsBufferedItems(t *testing.T) {
	sender := &fakeSender{resps: []transmitter.Response{{Kind: transmitter.Success}}}
	w := New(Config{Interval: time.Hour, Transmitter: sender})
	w.Start()
	defer w.Terminate()

	require.True(t, w.Send(newEnvelope("Event")))
	w.Flush()

	waitFor(t, time.Second, func() bool { return sender.callCount() == 1 })
}

func TestWorkerTimerSendsOnInterval(t *testing.T) {
	sender := &fakeSender{resps: []transmitter.Response{{Kind: transmitter.Success}}}
	w := New(Config{Interval: 20 * time.Millisecond, Transmitter: sender})
	w.Start()
	defer w.Terminate()

	require.True(t, w.Send(newEnvelope("Event")))
	waitFor(t, time.Second, func() bool { return sender.callCount() >= 1 })
}

func TestWorkerCloseMakesAtMostOneAttempt(t *testing.T) {
	sender := &fakeSender{resps: []transmitter.Response{{Kind: transmitter.Retry}}}
	w := New(Config{Interval: time.Hour, Transmitter: sender})
	w.Start()

	require.True(t, w.Send(newEnvelope("Event")))
	w.Close()

	assert.Equal(t, 1, sender.callCount())
	assert.Equal(t, Stopped, w.State())
}

func TestWorkerTerminateDropsBuffer(t *testing.T) {
	sender := &fakeSender{}
	w := New(Config{Interval: time.Hour, Transmitter: sender})
	w.Start()

	require.True(t, w.Send(newEnvelope("Event")))
	w.Terminate()

	assert.Equal(t, 0, sender.callCount())
	assert.Equal(t, Stopped, w.State())
}

func TestWorkerRetriesSurvivorsUntilSuccess(t *testing.T) {
	sender := &fakeSender{
		resps: []transmitter.Response{
			{Kind: transmitter.Retry, RetryIndices: []int{0}},
			{Kind: transmitter.Success},
		},
	}
	w := New(Config{
		Interval:         time.Hour,
		Transmitter:      sender,
		NewRetrySchedule: func() RetrySchedule { return &sliceSchedule{delays: []time.Duration{10 * time.Millisecond}} },
	})
	w.Start()
	defer w.Terminate()

	require.True(t, w.Send(newEnvelope("Event")))
	require.True(t, w.Send(newEnvelope("Event")))
	w.Flush()

	waitFor(t, time.Second, func() bool { return sender.callCount() >= 2 })
}

func TestWorkerDropsAfterScheduleExhausted(t *testing.T) {
	sender := &fakeSender{
		resps: []transmitter.Response{
			{Kind: transmitter.Retry},
			{Kind: transmitter.Retry},
		},
	}
	w := New(Config{
		Interval:         time.Hour,
		Transmitter:      sender,
		NewRetrySchedule: func() RetrySchedule { return &sliceSchedule{delays: []time.Duration{5 * time.Millisecond}} },
	})
	w.Start()
	defer w.Terminate()

	require.True(t, w.Send(newEnvelope("Event")))
	w.Flush()

	waitFor(t, time.Second, func() bool { return sender.callCount() >= 2 })
	// schedule only allowed one retry; a third attempt must never happen
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, sender.callCount(), 2)
}

func TestWorkerSendDropsWhenBufferFull(t *testing.T) {
	sender := &fakeSender{}
	// Never started: the channel backing Send never drains, so it fills to
	// capacity deterministically.
	w := New(Config{Interval: time.Hour, MaxBufferSize: 1, Transmitter: sender})

	require.True(t, w.Send(newEnvelope("Event")))
	assert.False(t, w.Send(newEnvelope("Event")), "send beyond buffer capacity must be dropped, not block")
}

func TestWorkerThrottledHonorsRetryAfterDeadlineWithoutConsumingSchedule(t *testing.T) {
	deadline := time.Now().Add(40 * time.Millisecond)
	sender := &fakeSender{
		resps: []transmitter.Response{
			{Kind: transmitter.Throttled, RetryAfter: deadline},
			{Kind: transmitter.Success},
		},
	}
	w := New(Config{
		Interval:    time.Hour,
		Transmitter: sender,
		// The schedule starts already exhausted. If the Throttled wait
		// consulted it instead of resp.RetryAfter, the batch would be
		// dropped after the first attempt and a second Send would never
		// happen.
		NewRetrySchedule: func() RetrySchedule { return &sliceSchedule{} },
	})
	w.Start()
	defer w.Terminate()

	require.True(t, w.Send(newEnvelope("Event")))
	w.Flush()

	waitFor(t, time.Second, func() bool { return sender.callCount() >= 2 })
	assert.True(t, time.Now().After(deadline) || time.Now().Equal(deadline))
}

func TestWorkerWaitingIgnoresEventsArrivingDuringBackoff(t *testing.T) {
	sender := &fakeSender{
		resps: []transmitter.Response{
			{Kind: transmitter.Retry, RetryIndices: []int{0}},
			{Kind: transmitter.Success},
		},
	}
	w := New(Config{
		Interval:         time.Hour,
		Transmitter:      sender,
		NewRetrySchedule: func() RetrySchedule { return &sliceSchedule{delays: []time.Duration{60 * time.Millisecond}} },
	})
	w.Start()
	defer w.Terminate()

	require.True(t, w.Send(newEnvelope("A")))
	require.True(t, w.Send(newEnvelope("B")))
	w.Flush()

	waitFor(t, time.Second, func() bool { return sender.callCount() >= 1 })
	// Sent while the worker is Waiting on the retry backoff: must not be
	// folded into the survivor batch that gets resent.
	require.True(t, w.Send(newEnvelope("C")))

	waitFor(t, time.Second, func() bool { return sender.callCount() >= 2 })
	assert.Len(t, sender.callArgs(1), 1, "retry batch must contain exactly the survivors, not items that arrived during the wait")
}

func TestSurvivorsOfClampsAndDedupes(t *testing.T) {
	buffer := []*contracts.Envelope{newEnvelope("A"), newEnvelope("B"), newEnvelope("C")}
	survivors := survivorsOf(buffer, []int{0, 0, 5, -1, 2})
	assert.Equal(t, []*contracts.Envelope{buffer[0], buffer[2]}, survivors)
}

func TestSurvivorsOfNilIndicesMeansWholeBuffer(t *testing.T) {
	buffer := []*contracts.Envelope{newEnvelope("A")}
	assert.Equal(t, buffer, survivorsOf(buffer, nil))
}

func TestExponentialScheduleOrder(t *testing.T) {
	s := Exponential()
	d1, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 16*time.Second, d1)
	d2, _ := s.Next()
	assert.Equal(t, 4*time.Second, d2)
	d3, _ := s.Next()
	assert.Equal(t, 2*time.Second, d3)
	_, ok = s.Next()
	assert.False(t, ok)
}

func TestOnceScheduleExhaustedImmediately(t *testing.T) {
	_, ok := Once().Next()
	assert.False(t, ok)
}
