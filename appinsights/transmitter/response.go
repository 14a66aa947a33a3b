// Package transmitter sends telemetry batches to the ingestion endpoint and
// interprets the HTTP response into a Response the submission worker can act
// on without knowing anything about HTTP status codes itself.
package transmitter

import (
	"time"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
)

// Kind classifies how the submission worker should react to a Response.
type Kind int

const (
	// Success means every item in the batch was accepted; nothing to retry.
	Success Kind = iota
	// Retry means the whole batch (or the items named by RetryIndices)
	// should be resubmitted after the worker's normal backoff.
	Retry
	// Throttled means the server asked the client to back off until
	// RetryAfter before resubmitting RetryIndices.
	Throttled
	// NoRetry means the batch was rejected for a reason that resending
	// will not fix (e.g. 400 Bad Request); the items are dropped.
	NoRetry
)

// Response is the submission worker's view of what happened to one send
// attempt. RetryIndices is nil when every item in the batch should be
// retried (e.g. a bare 500), and non-nil (possibly empty) when only the
// named 0-based indices from the submitted batch survive.
type Response struct {
	Kind         Kind
	RetryIndices []int
	RetryAfter   time.Time
}

// interpret turns an HTTP status code and decoded body into a Response,
// following the same logic as the original crate's Transmission::new: 206
// computes per-item retry eligibility from response.errors, overall success
// requires either 200 or (206 with itemsReceived == itemsAccepted).
func interpret(status int, retryAfter time.Time, body contracts.TransmissionResponse) Response {
	success := status == 200 || (status == 206 && body.ItemsReceived == body.ItemsAccepted)
	if success {
		return Response{Kind: Success}
	}

	if !retryAfter.IsZero() {
		return Response{Kind: Throttled, RetryIndices: retryIndices(status, body), RetryAfter: retryAfter}
	}

	if isRetryableStatus(status) {
		return Response{Kind: Retry, RetryIndices: retryIndices(status, body)}
	}

	return Response{Kind: NoRetry}
}

func retryIndices(status int, body contracts.TransmissionResponse) []int {
	if status != 206 {
		return nil
	}
	indices := make([]int, 0, len(body.Errors))
	for _, e := range body.Errors {
		if e.CanRetry() {
			indices = append(indices, e.Index)
		}
	}
	return indices
}

func isRetryableStatus(status int) bool {
	switch status {
	case 206, 408, 429, 500, 503:
		return true
	default:
		return false
	}
}
