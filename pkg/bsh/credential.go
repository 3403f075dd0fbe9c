package bsh

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
)

// CredentialKind selects how a credential is sent to the engine.
type CredentialKind string

const (
	// CredentialBearer is a JWT access token sent as Authorization: Bearer.
	CredentialBearer CredentialKind = "JWT"
	// CredentialAPIKey is an engine API key sent as X-BSH-APIKEY.
	CredentialAPIKey CredentialKind = "APIKEY"
)

// Credential is the auth material attached to a single request.
type Credential struct {
	Kind  CredentialKind
	Token string
}

// BearerToken returns a JWT credential.
func BearerToken(token string) *Credential {
	return &Credential{Kind: CredentialBearer, Token: token}
}

// APIKey returns an API key credential.
func APIKey(key string) *Credential {
	return &Credential{Kind: CredentialAPIKey, Token: key}
}

// ParseCredential accepts the usual spellings of a credential kind.
func ParseCredential(kind, token string) (*Credential, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "jwt", "bearer", "token":
		return BearerToken(token), nil
	case "apikey", "api-key", "api_key", "key":
		return APIKey(token), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCredentialKind, kind)
	}
}

// Header returns the header name and value carrying the credential.
func (c *Credential) Header() (string, string, bool) {
	if c == nil {
		return "", "", false
	}

	switch c.Kind {
	case CredentialBearer:
		return constants.HeaderAuthorization, constants.BearerPrefix + c.Token, true
	case CredentialAPIKey:
		return constants.HeaderAPIKey, c.Token, true
	default:
		return "", "", false
	}
}

// Authenticator yields the credential for the next call. A nil credential
// means the call goes out unauthenticated.
type Authenticator interface {
	Credential(ctx context.Context) (*Credential, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context) (*Credential, error)

// Credential implements Authenticator.
func (f AuthenticatorFunc) Credential(ctx context.Context) (*Credential, error) {
	return f(ctx)
}

// StaticCredential always yields a copy of the given credential.
func StaticCredential(cred *Credential) Authenticator {
	return AuthenticatorFunc(func(context.Context) (*Credential, error) {
		if cred == nil {
			return nil, nil
		}

		cp := *cred

		return &cp, nil
	})
}

// Refresher yields the refresh token used when an access token has expired.
type Refresher interface {
	RefreshToken(ctx context.Context) (string, error)
}

// RefresherFunc adapts a function to Refresher.
type RefresherFunc func(ctx context.Context) (string, error)

// RefreshToken implements Refresher.
func (f RefresherFunc) RefreshToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticRefresher always yields the same refresh token.
func StaticRefresher(token string) Refresher {
	return RefresherFunc(func(context.Context) (string, error) {
		return token, nil
	})
}
