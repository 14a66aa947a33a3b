package channel

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

type recordingSender struct {
	mu    sync.Mutex
	batches [][]*contracts.Envelope
}

func (r *recordingSender) Send(ctx context.Context, items []*contracts.Envelope) (transmitter.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, items)
	return transmitter.Response{Kind: transmitter.Success}, nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func TestInMemoryChannelFlushSends(t *testing.T) {
	sender := &recordingSender{}
	ch := NewInMemoryChannel(Config{Interval: time.Hour, MaxBufferSize: 10, Transmitter: sender})
	defer ch.Terminate()

	ch.Send(contracts.NewEnvelope("Microsoft.ApplicationInsights.Event", time.Now().UTC().Format(time.RFC3339)))
	ch.Flush()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && sender.count() == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, 1, sender.count())
}

func TestInMemoryChannelCloseBlocksUntilStopped(t *testing.T) {
	sender := &recordingSender{}
	ch := NewInMemoryChannel(Config{Interval: time.Hour, MaxBufferSize: 10, Transmitter: sender})

	ch.Send(contracts.NewEnvelope("Microsoft.ApplicationInsights.Event", time.Now().UTC().Format(time.RFC3339)))
	ch.Close()

	assert.Equal(t, 1, sender.count())
}

func TestInMemoryChannelTerminateDropsPending(t *testing.T) {
	sender := &recordingSender{}
	ch := NewInMemoryChannel(Config{Interval: time.Hour, MaxBufferSize: 10, Transmitter: sender})

	ch.Send(contracts.NewEnvelope("Microsoft.ApplicationInsights.Event", time.Now().UTC().Format(time.RFC3339)))
	ch.Terminate()

	assert.Equal(t, 0, sender.count())
}
