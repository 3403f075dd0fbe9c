package auth

import "context"

// TokenPersister stores access tokens obtained by a refresh, for example in
// the CLI config file.
type TokenPersister interface {
	PersistAccessToken(ctx context.Context, token string) error
}

// TokenPersisterFunc adapts a function to TokenPersister.
type TokenPersisterFunc func(ctx context.Context, token string) error

// PersistAccessToken implements TokenPersister.
func (f TokenPersisterFunc) PersistAccessToken(ctx context.Context, token string) error {
	return f(ctx, token)
}
