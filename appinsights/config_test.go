package appinsights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig("ikey")
	require.NoError(t, err)
	assert.Equal(t, "ikey", cfg.InstrumentationKey)
	assert.Equal(t, DefaultEndpointURL, cfg.EndpointURL)
	assert.Equal(t, DefaultSubmissionInterval, cfg.SubmissionInterval)
	assert.Equal(t, DefaultMaxBufferSize, cfg.MaxBufferSize)
}

func TestNewConfigMissingInstrumentationKey(t *testing.T) {
	_, err := NewConfig("")
	assert.ErrorIs(t, err, ErrMissingInstrumentationKey)
}

func TestNewConfigOptionsOverrideDefaults(t *testing.T) {
	cfg, err := NewConfig("ikey",
		WithEndpointURL("https://example.test/track"),
		WithSubmissionInterval(5*time.Second),
		WithMaxBufferSize(10),
	)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/track", cfg.EndpointURL)
	assert.Equal(t, 5*time.Second, cfg.SubmissionInterval)
	assert.Equal(t, 10, cfg.MaxBufferSize)
}
