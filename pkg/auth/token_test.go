package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batoolapp/lenses-backend/pkg/config"
)

func tokenConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "batool-lenses",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParse_RoundTrip(t *testing.T) {
	cfg := tokenConfig()
	adminID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{
		AdminID: adminID,
		Email:   "admin@batool.app",
		JTI:     "jti-1",
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, "admin@batool.app", claims.Email)
	assert.Equal(t, "jti-1", claims.ID)
	assert.Equal(t, "batool-lenses", claims.Issuer)
}

func TestMint_GeneratesJTIWhenBlank(t *testing.T) {
	token, err := MintAccessToken(tokenConfig(), time.Now().UTC(), AccessTokenPayload{
		AdminID: uuid.New(),
		Email:   "admin@batool.app",
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(tokenConfig(), token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestMint_RejectsMissingAdminID(t *testing.T) {
	_, err := MintAccessToken(tokenConfig(), time.Now().UTC(), AccessTokenPayload{})
	require.Error(t, err)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	token, err := MintAccessToken(tokenConfig(), time.Now().UTC(), AccessTokenPayload{AdminID: uuid.New()})
	require.NoError(t, err)

	bad := tokenConfig()
	bad.Secret = "some-other-secret"
	_, err = ParseAccessToken(bad, token)
	require.Error(t, err)
}

func TestParse_RejectsWrongIssuer(t *testing.T) {
	cfg := tokenConfig()
	cfg.Issuer = "someone-else"
	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{AdminID: uuid.New()})
	require.NoError(t, err)

	_, err = ParseAccessToken(tokenConfig(), token)
	require.Error(t, err)
}

func TestParse_RejectsExpiredToken(t *testing.T) {
	token, err := MintAccessToken(tokenConfig(), time.Now().UTC().Add(-time.Hour), AccessTokenPayload{AdminID: uuid.New()})
	require.NoError(t, err)

	_, err = ParseAccessToken(tokenConfig(), token)
	require.Error(t, err)
}
