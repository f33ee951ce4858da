//go:build !integration

package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}

func TestTokenService_IssueValidate(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	token, err := svc.Issue("ops@example.com", []string{"admin"}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("editor"))
}

func TestTokenService_Validate(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)
	other, err := NewTokenService("other-secret")
	require.NoError(t, err)

	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	expiring, err := svc.Issue("ops", nil, time.Minute)
	require.NoError(t, err)

	forged, err := other.Issue("ops", []string{"admin"}, time.Hour)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "ops", "iss": tokenIssuer}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		now   time.Time
	}{
		{name: "garbage", token: "not-a-token", now: issuedAt},
		{name: "expired", token: expiring, now: issuedAt.Add(2 * time.Minute)},
		{name: "wrong secret", token: forged, now: time.Now()},
		{name: "none algorithm", token: noneAlg, now: time.Now()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.now = func() time.Time { return tt.now }
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_NoExpiry(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	token, err := svc.Issue("deploy-bot", []string{"admin"}, 0)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }
	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "deploy-bot", claims.Subject)
}
