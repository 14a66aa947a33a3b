package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityLevelString(t *testing.T) {
	assert.Equal(t, "Verbose", Verbose.String())
	assert.Equal(t, "Information", Information.String())
	assert.Equal(t, "Warning", Warning.String())
	assert.Equal(t, "Error", Error.String())
	assert.Equal(t, "Critical", Critical.String())
	assert.Equal(t, "Information", SeverityLevel(99).String())
}
