package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/internal/models"
)

const testSecret = "test-secret-key-with-at-least-32-chars"

func TestService_AccessTokenRoundTrip(t *testing.T) {
	s := NewService(testSecret, 15*time.Minute, time.Hour)

	token, expiresIn, err := s.GenerateAccessToken("user-1", "anna", models.RoleTrainer)
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := s.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "anna", claims.Username)
	assert.Equal(t, models.RoleTrainer, claims.Role)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestService_ValidateAccessToken_Errors(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	issuer := NewService(testSecret, 15*time.Minute, time.Hour).WithClock(func() time.Time { return now })

	valid, _, err := issuer.GenerateAccessToken("user-1", "anna", models.RoleClient)
	require.NoError(t, err)

	foreign, _, err := NewService("another-secret-key-with-32-characters", time.Minute, time.Hour).
		WithClock(func() time.Time { return now }).
		GenerateAccessToken("user-1", "anna", models.RoleClient)
	require.NoError(t, err)

	noneSigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		at    time.Time
		name  string
		token string
	}{
		{name: "expired", token: valid, at: now.Add(time.Hour)},
		{name: "wrong secret", token: foreign, at: now},
		{name: "unsigned", token: noneSigned, at: now},
		{name: "garbage", token: "not.a.token", at: now},
		{name: "empty", token: "", at: now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := NewService(testSecret, 15*time.Minute, time.Hour).WithClock(func() time.Time { return tt.at })
			_, err := verifier.ValidateAccessToken(tt.token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestService_GenerateRefreshToken(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	s := NewService(testSecret, time.Minute, 24*time.Hour).WithClock(func() time.Time { return now })

	first, expiresAt, err := s.GenerateRefreshToken()
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), expiresAt)
	assert.Len(t, first, 43)

	second, _, err := s.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
