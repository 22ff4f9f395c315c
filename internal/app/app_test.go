package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriteTimeoutCoversSpin(t *testing.T) {
	assert.Equal(t, defaultWriteTimeout, writeTimeoutFor(5*time.Second))
	assert.Equal(t, defaultWriteTimeout, writeTimeoutFor(0))

	long := 45 * time.Second
	got := writeTimeoutFor(long)
	assert.Greater(t, got, long)
	assert.Equal(t, long+spinResponseSlack, got)
}
