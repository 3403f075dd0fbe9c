package auth_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/bshengine-client/internal/auth"
	"github.com/fivetwenty-io/bshengine-client/internal/constants"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}

func TestExpiresAt(t *testing.T) {
	t.Parallel()

	exp := time.Unix(1893456000, 0)

	got, ok, err := auth.ExpiresAt(signedToken(t, jwt.MapClaims{"exp": exp.Unix(), "sub": "u1"}))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, exp.Equal(got))
}

func TestExpiresAt_NoExpClaim(t *testing.T) {
	t.Parallel()

	_, ok, err := auth.ExpiresAt(signedToken(t, jwt.MapClaims{"sub": "u1"}))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiresAt_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "no dots", token: "abc"},
		{name: "empty", token: ""},
		{name: "bad base64", token: "a.!!!.c"},
		{name: "payload not json", token: "a." + base64.RawURLEncoding.EncodeToString([]byte("nope")) + ".c"},
		{name: "exp not a number", token: "a." + base64.RawURLEncoding.EncodeToString([]byte(`{"exp":"soon"}`)) + ".c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := auth.ExpiresAt(tt.token)
			require.Error(t, err)
		})
	}

	_, _, err := auth.ExpiresAt("abc")
	require.ErrorIs(t, err, constants.ErrInvalidJWTFormat)
}

func TestExpiresAt_TwoSegmentsAreEnough(t *testing.T) {
	t.Parallel()

	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"exp":4102444800}`))

	_, ok, err := auth.ExpiresAt("header." + payload)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsFresh(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0)

	assert.True(t, auth.IsFresh(signedToken(t, jwt.MapClaims{"exp": now.Add(time.Minute).Unix()}), now))
	assert.False(t, auth.IsFresh(signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), now))
	assert.False(t, auth.IsFresh(signedToken(t, jwt.MapClaims{"exp": now.Unix()}), now))
	assert.False(t, auth.IsFresh(signedToken(t, jwt.MapClaims{}), now))
	assert.False(t, auth.IsFresh("garbage", now))
}
