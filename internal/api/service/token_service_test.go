package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokenService([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	token, err := tokens.Issue("session-1")
	require.NoError(t, err)

	sessionID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", sessionID)
}

func TestVerifyRejects(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := &tokenService{secret: []byte("test-secret"), ttl: time.Minute, now: func() time.Time { return issued }}
	valid, err := svc.Issue("session-1")
	require.NoError(t, err)

	other := &tokenService{secret: []byte("other-secret"), ttl: time.Minute, now: svc.now}
	foreign, err := other.Issue("session-1")
	require.NoError(t, err)

	noClaim, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": issued.Add(time.Minute).Unix(),
	}).SignedString(svc.secret)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sid": "session-1",
		"exp": issued.Add(time.Minute).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	t.Run("Expired", func(t *testing.T) {
		later := &tokenService{secret: svc.secret, ttl: time.Minute, now: func() time.Time { return issued.Add(2 * time.Minute) }}
		_, err := later.Verify(valid)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	tests := []struct {
		name  string
		token string
	}{
		{"Garbage", "not-a-token"},
		{"WrongSecret", foreign},
		{"MissingSessionClaim", noClaim},
		{"NoneAlgorithm", unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestRandomSecret(t *testing.T) {
	a, err := NewTokenService(nil, time.Hour)
	require.NoError(t, err)
	b, err := NewTokenService(nil, time.Hour)
	require.NoError(t, err)

	token, err := a.Issue("session-1")
	require.NoError(t, err)
	_, err = b.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "each process gets its own key")
}
