package appinsights

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
)

type fakeChannel struct {
	mu        sync.Mutex
	sent      []*contracts.Envelope
	flushed   int
	closed    int
	terminated int
}

func (f *fakeChannel) Send(item *contracts.Envelope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, item)
}
func (f *fakeChannel) Flush()     { f.mu.Lock(); f.flushed++; f.mu.Unlock() }
func (f *fakeChannel) Close()     { f.mu.Lock(); f.closed++; f.mu.Unlock() }
func (f *fakeChannel) Terminate() { f.mu.Lock(); f.terminated++; f.mu.Unlock() }

func (f *fakeChannel) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestClientEnabledByDefault(t *testing.T) {
	ch := &fakeChannel{}
	c := NewWithChannel("ikey", ch)
	assert.True(t, c.IsEnabled())
}

func TestClientTrackEventSendsEnvelope(t *testing.T) {
	ch := &fakeChannel{}
	c := NewWithChannel("ikey", ch)

	c.TrackEvent("app started")

	assert.Equal(t, 1, ch.sentCount())
	assert.Equal(t, "Microsoft.ApplicationInsights.Event", ch.sent[0].Name)
}

func TestClientDisabledSwallowsTelemetry(t *testing.T) {
	ch := &fakeChannel{}
	c := NewWithChannel("ikey", ch)
	c.SetEnabled(false)

	c.TrackEvent("should be dropped")

	assert.Equal(t, 0, ch.sentCount())
}

func TestClientTrackRequestAndMetric(t *testing.T) {
	ch := &fakeChannel{}
	c := NewWithChannel("ikey", ch)

	c.TrackRequest("GET", "https://example.com/resource", 15*time.Millisecond, "200")
	c.TrackMetric("queue_depth", 42)
	c.TrackRemoteDependency("sql", "SQL", "db.internal", true)
	c.TrackAvailability("homepage", 100*time.Millisecond, true)
	c.TrackException(assertableError("boom"))

	var stats Stats
	stats.AddData([]float64{1, 2, 3})
	c.TrackAggregateMetric("batch_latency", stats)

	assert.Equal(t, 6, ch.sentCount())
	assert.Equal(t, "Microsoft.ApplicationInsights.Metric", ch.sent[5].Name)
}

func TestClientFlushCloseTerminateDelegate(t *testing.T) {
	ch := &fakeChannel{}
	c := NewWithChannel("ikey", ch)

	c.FlushChannel()
	c.CloseChannel()
	c.Terminate()

	assert.Equal(t, 1, ch.flushed)
	assert.Equal(t, 1, ch.closed)
	assert.Equal(t, 1, ch.terminated)
}

func TestClientContextTagsApplyToTrackedItems(t *testing.T) {
	ch := &fakeChannel{}
	c := NewWithChannel("ikey", ch)
	c.Context().Tags()[contracts.TagCloudRole] = "worker"

	c.TrackEvent("tagged event")

	assert.Equal(t, "worker", ch.sent[0].Tags[contracts.TagCloudRole])
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
