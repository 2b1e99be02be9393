package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	code, err := Generate(10 * time.Minute)
	require.NoError(t, err)

	assert.Len(t, code.Value, Length)
	for _, r := range code.Value {
		assert.True(t, r >= '0' && r <= '9', "code must be numeric, got %q", code.Value)
	}
	assert.True(t, code.ExpiresAt.After(time.Now()))
}

func TestExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, Expired(now.Add(time.Minute), now))
	assert.True(t, Expired(now.Add(-time.Minute), now))
	// The expiry instant itself is still valid.
	assert.False(t, Expired(now, now))
}
