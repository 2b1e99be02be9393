package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateToken(42, "alice", "12345@sliet.ac.in", "student")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "12345@sliet.ac.in", claims.Email)
	assert.Equal(t, "student", claims.Role)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute)

	token, err := svc.GenerateToken(42, "alice", "12345@sliet.ac.in", "student")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(42, "alice", "12345@sliet.ac.in", "student")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
