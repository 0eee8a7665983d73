package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken(7, "worker", "w@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "worker", claims.Role)
	assert.Equal(t, "w@x.com", claims.Email)
	assert.Greater(t, claims.Expiry, claims.Iat)
}

func TestVerifyTokenBearerPrefix(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken(7, "user", "u@x.com")
	require.NoError(t, err)

	claims, err := auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)

	_, err = auth.VerifyToken("Bearer ")
	assert.Error(t, err)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken(7, "user", "u@x.com")
	require.NoError(t, err)

	other := SetupAuth("different-secret")
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.VerifyToken("")
	assert.Error(t, err)

	_, err = auth.VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestGenerateTokenMissingInputs(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.GenerateToken(0, "user", "u@x.com")
	assert.Error(t, err)

	_, err = auth.GenerateToken(7, "user", "")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	auth := SetupAuth("test-secret")

	hashed, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)

	assert.NoError(t, auth.VerifyPassword("secret1", hashed))
	assert.Error(t, auth.VerifyPassword("wrong", hashed))
}
