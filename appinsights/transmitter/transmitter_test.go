package transmitter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
)

func TestSendEmptyBatchMakesNoRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	tr := New(server.URL)
	resp, err := tr.Send(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Success, resp.Kind)
	assert.False(t, called, "empty batch must not make an HTTP call")
}

func TestSendSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json; charset=utf-8", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(contracts.TransmissionResponse{ItemsReceived: 1, ItemsAccepted: 1})
	}))
	defer server.Close()

	tr := New(server.URL)
	env := contracts.NewEnvelope("Microsoft.ApplicationInsights.Event", time.Now().UTC().Format(time.RFC3339))
	resp, err := tr.Send(context.Background(), []*contracts.Envelope{env})
	require.NoError(t, err)
	assert.Equal(t, Success, resp.Kind)
}

func TestSendThrottledParsesRetryAfterSeconds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	tr := New(server.URL)
	env := contracts.NewEnvelope("Microsoft.ApplicationInsights.Event", time.Now().UTC().Format(time.RFC3339))
	resp, err := tr.Send(context.Background(), []*contracts.Envelope{env})
	require.NoError(t, err)
	assert.Equal(t, Throttled, resp.Kind)
	assert.WithinDuration(t, time.Now().Add(120*time.Second), resp.RetryAfter, 5*time.Second)
}

func TestSendNetworkErrorWraps(t *testing.T) {
	tr := New("http://127.0.0.1:0", WithHTTPClient(&http.Client{Timeout: 10 * time.Millisecond}))
	env := contracts.NewEnvelope("Microsoft.ApplicationInsights.Event", time.Now().UTC().Format(time.RFC3339))
	_, err := tr.Send(context.Background(), []*contracts.Envelope{env})
	require.Error(t, err)
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestParseRetryAfterHTTPDate(t *testing.T) {
	future := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	got := parseRetryAfter(future.Format(http.TimeFormat))
	assert.WithinDuration(t, future, got, time.Second)
}

func TestParseRetryAfterEmpty(t *testing.T) {
	assert.True(t, parseRetryAfter("").IsZero())
}

func TestParseRetryAfterGarbage(t *testing.T) {
	assert.True(t, parseRetryAfter("not-a-date-or-number").IsZero())
}
