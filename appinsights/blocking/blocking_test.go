package blocking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/appinsights-go/appinsights"
)

func TestNewReturnsEnabledClient(t *testing.T) {
	c := New("ikey")
	assert.True(t, c.IsEnabled())
	assert.Equal(t, "ikey", c.Context().IKey)
}

func TestNewFromConfigReturnsEnabledClient(t *testing.T) {
	cfg, err := appinsights.NewConfig("ikey",
		appinsights.WithSubmissionInterval(10*time.Millisecond),
		appinsights.WithMaxBufferSize(5),
	)
	require.NoError(t, err)

	c := NewFromConfig(cfg)
	assert.True(t, c.IsEnabled())

	c.Terminate()
}
