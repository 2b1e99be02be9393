package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationList(t *testing.T) {
	ctx := context.Background()
	list := NewMemoryRevocationList()

	revoked, err := list.Contains(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, list.Add(ctx, "token-a"))

	revoked, err = list.Contains(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Revocation is exact-match: other tokens stay live.
	revoked, err = list.Contains(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)

	// Adding twice is a no-op.
	require.NoError(t, list.Add(ctx, "token-a"))
	revoked, err = list.Contains(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)
}
