package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := DefaultConfig("test-secret")

	token, err := GenerateToken("user123", "reporter@example.com", "user", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "user123", claims.UserID)
	require.Equal(t, "reporter@example.com", claims.Email)
	require.Equal(t, "user", claims.Role)
	require.Equal(t, "crimewatch-api", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := DefaultConfig("test-secret")

	token, err := GenerateToken("user123", "reporter@example.com", "admin", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := DefaultConfig("test-secret")
	cfg.AccessExpiry = -1 * time.Minute

	token, err := GenerateToken("user123", "reporter@example.com", "user", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "test-secret")
	require.Error(t, err)
}
