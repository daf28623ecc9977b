package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, 24*time.Hour)
	loc := "loc-1"

	token, exp, err := svc.GenerateAccessToken("user-1", "sac-super", user.RoleSupervisor, &loc)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := parsed.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "sac-super", claims["username"])
	assert.Equal(t, "supervisor", claims["role"])
	assert.Equal(t, "loc-1", claims["location_id"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestParseRefreshToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, 24*time.Hour)

	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	access, _, err := svc.GenerateAccessToken("user-1", "admin", user.RoleAdmin, nil)
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(access)
	assert.Error(t, err, "access token must not be accepted as refresh token")

	other := NewJWTService("another-secret", time.Hour, 24*time.Hour)
	_, err = other.ParseRefreshToken(refresh)
	assert.Error(t, err)
}
