package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, username string, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return token
}

func TestExtractBearer(t *testing.T) {
	token, err := ExtractBearer("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "abc.def.ghi", "Basic abc", "Bearer "} {
		_, err := ExtractBearer(header)
		assert.ErrorIs(t, err, ErrNoToken, "header %q", header)
	}
}

func TestInspect_ValidToken(t *testing.T) {
	token := signedToken(t, "keerthan", time.Now().Add(time.Hour))

	info, err := Inspect(token)

	require.NoError(t, err)
	assert.Equal(t, "keerthan", info.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), info.ExpiresAt, 5*time.Second)
}

func TestInspect_ExpiredToken(t *testing.T) {
	token := signedToken(t, "keerthan", time.Now().Add(-time.Minute))

	_, err := Inspect(token)

	assert.ErrorIs(t, err, ErrExpired)
}

func TestInspect_MalformedToken(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	assert.Error(t, err)
}

func TestInspect_OpaqueTokenWithoutClaims(t *testing.T) {
	// Tokens without an exp claim are accepted; the upstream is the
	// authority and will reject them if invalid.
	claims := jwt.MapClaims{"sub": "keerthan"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s"))
	require.NoError(t, err)

	info, err := Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "keerthan", info.Username)
	assert.True(t, info.ExpiresAt.IsZero())
}
