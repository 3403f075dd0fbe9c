package constants

import "errors"

// Configuration errors.
var (
	ErrNoHostConfigured  = errors.New("no engine host configured, use 'bsh config set host <url>' or --host")
	ErrNotLoggedIn       = errors.New("not logged in, use 'bsh login' or configure an API key")
	ErrConfigKeyUnknown  = errors.New("unknown configuration key")
	ErrConfigValueNeeded = errors.New("configuration value is required")
)

// Token errors.
var (
	ErrInvalidJWTFormat  = errors.New("invalid JWT format")
	ErrNoAccessInRefresh = errors.New("refresh response carried no access token")
	ErrEmptyLoginResult  = errors.New("login response carried no tokens")
)

// Input errors.
var (
	ErrPayloadRequired     = errors.New("a JSON payload is required, use --data or --file")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrPasswordRequired    = errors.New("password is required")
)
