package transmitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
	"github.com/microsoft/appinsights-go/appinsights/internal/tracing"
)

// Transmitter posts telemetry batches to an ingestion endpoint over HTTP and
// turns the response into a Response. It is safe for concurrent use.
type Transmitter struct {
	endpoint string
	client   *http.Client
	tracer   tracing.Tracer
}

// Option configures a Transmitter.
type Option func(*Transmitter)

// WithHTTPClient overrides the default http.Client, e.g. to set a custom
// Transport or timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transmitter) { t.client = c }
}

// WithTracer attaches an internal/tracing.Tracer so each send attempt is
// wrapped in a span. Defaults to a no-op tracer.
func WithTracer(tr tracing.Tracer) Option {
	return func(t *Transmitter) { t.tracer = tr }
}

// New builds a Transmitter that posts to endpoint.
func New(endpoint string, opts ...Option) *Transmitter {
	t := &Transmitter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		tracer:   tracing.Noop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send posts items as a single JSON batch and interprets the result. An
// empty batch is a no-op that never makes an HTTP call and always reports
// Success, matching spec: the worker must not post empty batches.
func (t *Transmitter) Send(ctx context.Context, items []*contracts.Envelope) (Response, error) {
	if len(items) == 0 {
		return Response{Kind: Success}, nil
	}

	ctx, span := t.tracer.Start(ctx, "telemetry.send", map[string]any{"item_count": len(items)})
	defer span.End()

	payload, err := json.Marshal(items)
	if err != nil {
		span.RecordError(err)
		return Response{}, fmt.Errorf("transmitter: marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		span.RecordError(err)
		return Response{}, fmt.Errorf("transmitter: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := t.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return Response{}, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(map[string]any{"status_code": resp.StatusCode})

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		span.RecordError(err)
		return Response{}, &NetworkError{Err: err}
	}

	retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent {
		var decoded contracts.TransmissionResponse
		if len(body) > 0 {
			if err := json.Unmarshal(body, &decoded); err != nil {
				span.RecordError(err)
				return Response{}, &DecodeError{Err: err}
			}
		}
		r := interpret(resp.StatusCode, retryAfter, decoded)
		span.Finish(r.Kind == Success)
		return r, nil
	}

	r := interpret(resp.StatusCode, retryAfter, contracts.TransmissionResponse{})
	span.Finish(r.Kind == Success)
	return r, nil
}

// parseRetryAfter accepts either an HTTP-date (RFC 1123, the modern
// descendant of RFC 2822 used by the Retry-After header per RFC 7231 §7.1.3)
// or a delta-seconds integer. A header that parses as neither yields the
// zero time, which callers treat as "no explicit throttle deadline".
func parseRetryAfter(header string) time.Time {
	if header == "" {
		return time.Time{}
	}
	if t, err := http.ParseTime(header); err == nil {
		return t
	}
	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Now().Add(time.Duration(seconds) * time.Second)
	}
	return time.Time{}
}
