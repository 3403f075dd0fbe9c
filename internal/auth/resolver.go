package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

// Exchanger trades a refresh token for a new access token.
type Exchanger func(ctx context.Context, refreshToken string) (string, error)

// Resolver turns the configured authenticator into request headers,
// refreshing expired bearer tokens on the way.
type Resolver struct {
	Authenticator bsh.Authenticator
	Refresher     bsh.Refresher
	Exchange      Exchanger
	// Persister, when set, is told about every access token obtained by a
	// refresh.
	Persister TokenPersister
	Logger    bsh.Logger
	Now       func() time.Time
}

// IsAuthPath reports whether path belongs to the auth routes, which never
// carry credentials.
func IsAuthPath(path string) bool {
	return strings.Contains(path, constants.AuthRoutePrefix)
}

// Headers returns the auth headers for a call to path. It returns an empty
// map for auth routes and when no authenticator is configured.
func (r *Resolver) Headers(ctx context.Context, path string) (map[string]string, error) {
	headers := make(map[string]string, 1)

	if r.Authenticator == nil || IsAuthPath(path) {
		return headers, nil
	}

	cred, err := r.Authenticator.Credential(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bsh.ErrCredentialLookup, err)
	}

	cred = r.refreshIfExpired(ctx, cred)

	if name, value, ok := cred.Header(); ok {
		headers[name] = value
	}

	return headers, nil
}

// refreshIfExpired makes at most one refresh attempt. Every failure falls
// back to the original credential.
func (r *Resolver) refreshIfExpired(ctx context.Context, cred *bsh.Credential) *bsh.Credential {
	if cred == nil || cred.Kind != bsh.CredentialBearer {
		return cred
	}

	if r.Refresher == nil || r.Exchange == nil {
		return cred
	}

	logger := bsh.LoggerOrNoop(r.Logger)

	exp, ok, err := ExpiresAt(cred.Token)
	if err != nil {
		logger.Debug("could not read token expiry, using token as is", map[string]interface{}{"error": err.Error()})

		return cred
	}

	if ok && r.now().UnixMilli() < exp.UnixMilli() {
		return cred
	}

	refreshToken, err := r.Refresher.RefreshToken(ctx)
	if err != nil || refreshToken == "" {
		logger.Debug("no refresh token available, using expired token", map[string]interface{}{"error": errString(err)})

		return cred
	}

	logger.Debug("access token expired, refreshing", nil)

	access, err := r.Exchange(ctx, refreshToken)
	if err != nil || access == "" {
		logger.Debug("token refresh failed, using expired token", map[string]interface{}{"error": errString(err)})

		return cred
	}

	if r.Persister != nil {
		persistErr := r.Persister.PersistAccessToken(ctx, access)
		if persistErr != nil {
			logger.Warn("failed to persist refreshed token", map[string]interface{}{"error": persistErr.Error()})
		}
	}

	return bsh.BearerToken(access)
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}

	return time.Now()
}

func errString(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}
