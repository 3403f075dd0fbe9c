package bsh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredential(t *testing.T) {
	tests := []struct {
		kind     string
		expected CredentialKind
	}{
		{kind: "JWT", expected: CredentialBearer},
		{kind: "jwt", expected: CredentialBearer},
		{kind: "Bearer", expected: CredentialBearer},
		{kind: "APIKEY", expected: CredentialAPIKey},
		{kind: "apikey", expected: CredentialAPIKey},
		{kind: "api-key", expected: CredentialAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cred, err := ParseCredential(tt.kind, "secret")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cred.Kind)
			assert.Equal(t, "secret", cred.Token)
		})
	}

	_, err := ParseCredential("basic", "x")
	require.ErrorIs(t, err, ErrUnknownCredentialKind)
}

func TestCredential_Header(t *testing.T) {
	name, value, ok := BearerToken("abc").Header()
	require.True(t, ok)
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Bearer abc", value)

	name, value, ok = APIKey("k1").Header()
	require.True(t, ok)
	assert.Equal(t, "X-BSH-APIKEY", name)
	assert.Equal(t, "k1", value)

	var none *Credential
	_, _, ok = none.Header()
	assert.False(t, ok)

	_, _, ok = (&Credential{Kind: "OTHER", Token: "x"}).Header()
	assert.False(t, ok)
}

func TestStaticCredential_ReturnsCopies(t *testing.T) {
	auth := StaticCredential(BearerToken("abc"))

	first, err := auth.Credential(context.Background())
	require.NoError(t, err)

	first.Token = "mutated"

	second, err := auth.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", second.Token)

	cred, err := StaticCredential(nil).Credential(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cred)
}

func TestStaticRefresher(t *testing.T) {
	token, err := StaticRefresher("r1").RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "r1", token)
}
