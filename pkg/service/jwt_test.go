package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, zap.NewNop())

	token, err := svc.GenerateToken(42, "juan.delacruz", "borrower")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "juan.delacruz", claims.Username)
	assert.Equal(t, "borrower", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, zap.NewNop())
	verifier := NewJWTService("secret-b", time.Hour, zap.NewNop())

	token, err := issuer.GenerateToken(1, "staff.user", "staff")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, zap.NewNop())

	token, err := svc.GenerateToken(1, "expired.user", "borrower")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, zap.NewNop())

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestGetAccessTokenTTL(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, zap.NewNop())
	assert.Equal(t, time.Hour, svc.GetAccessTokenTTL())
}
