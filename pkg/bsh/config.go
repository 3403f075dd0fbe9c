package bsh

import "time"

// Config represents engine configuration for building an Engine with
// bshengine.NewFromConfig.
//
// # Authentication precedence
//
// An access token is sent as a bearer credential when present. Otherwise
// the API key is sent in the X-BSH-APIKEY header. When a refresh token is
// configured, expired access tokens are exchanged before each call.
type Config struct {
	// Host: base URL of the engine (e.g., "https://engine.example.com").
	// NewFromConfig trims a trailing slash and adds "https://" when no scheme
	// is present.
	Host string

	// APIKey: engine API key.
	APIKey string
	// AccessToken: JWT access token obtained from auth.login.
	AccessToken string
	// RefreshToken: refresh token used to renew AccessToken when it expires.
	RefreshToken string

	// HTTPTimeout: timeout for each HTTP request. Zero uses the default.
	HTTPTimeout time.Duration
	// RetryMax: retries on connection errors and 5xx. Zero disables retries.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables verbose HTTP request logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the pipeline and transport.
	Logger Logger
}
