package appinsights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRequestURLStripsQueryAndFragment(t *testing.T) {
	got := normalizeRequestURL("https://example.com:8443/api/widgets?id=1&verbose=true#section")
	assert.Equal(t, "https://example.com:8443/api/widgets", got)
}

func TestNormalizeRequestURLInvalidURLReturnedAsIs(t *testing.T) {
	got := normalizeRequestURL("://not a url")
	assert.Equal(t, "://not a url", got)
}

func TestRequestTelemetryName(t *testing.T) {
	r := NewRequestTelemetry("GET", "https://example.com/a?x=1", 10*time.Millisecond, "200")
	assert.Equal(t, "GET https://example.com/a", r.Name)
}

func TestRequestIsSuccess(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"200", true},
		{"204", true},
		{"399", true},
		{"400", false},
		{"401", true},
		{"404", false},
		{"500", false},
		{"not-a-number", true},
	}
	for _, tt := range tests {
		r := &RequestTelemetry{ResponseCode: tt.code}
		assert.Equal(t, tt.want, r.IsSuccess(), "code %s", tt.code)
	}
}
