package jwt

import (
	"Household-Food-Tracker/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *jwtService {
	return &jwtService{secretKey: "test-secret", issuer: "HOUSEHOLD_FOOD_TRACKER"}
}

func TestUserTokenRoundTrip(t *testing.T) {
	j := testService()

	token := j.GenerateTokenUser("0c7af4ff-0db5-4d89-b0ef-0fb1c0f2d0a1", "user")
	require.NotEmpty(t, token)

	id, role, err := j.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "0c7af4ff-0db5-4d89-b0ef-0fb1c0f2d0a1", id)
	assert.Equal(t, "user", role)
}

func TestUserTokenRejectsGarbage(t *testing.T) {
	j := testService()

	_, _, err := j.GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestLinkTokenRoundTrip(t *testing.T) {
	j := testService()

	token, err := j.GenerateLinkToken(map[string]any{"email": "alice@example.com"}, time.Minute)
	require.NoError(t, err)

	claims, err := j.ValidateLinkToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims["email"])
}

func TestLinkTokenExpires(t *testing.T) {
	j := testService()

	token, err := j.GenerateLinkToken(map[string]any{"email": "alice@example.com"}, -time.Minute)
	require.NoError(t, err)

	_, err = j.ValidateLinkToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
