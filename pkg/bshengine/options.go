package bshengine

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

// Option configures an Engine at construction.
type Option func(*Engine)

// WithAPIKey sends key in the X-BSH-APIKEY header. A bearer token or an
// explicit authenticator takes precedence.
func WithAPIKey(key string) Option {
	return func(e *Engine) {
		e.apiKey = key
	}
}

// WithBearerToken sends token as a bearer credential. An explicit
// authenticator takes precedence.
func WithBearerToken(token string) Option {
	return func(e *Engine) {
		e.bearerToken = token
	}
}

// WithRefreshToken renews expired bearer tokens with a fixed refresh token.
// It overrides WithRefresher.
func WithRefreshToken(token string) Option {
	return func(e *Engine) {
		e.refreshToken = token
	}
}

// WithAuthenticator supplies credentials on every call.
func WithAuthenticator(authenticator bsh.Authenticator) Option {
	return func(e *Engine) {
		e.authenticator = authenticator
	}
}

// WithRefresher supplies refresh tokens when a bearer token has expired.
func WithRefresher(refresher bsh.Refresher) Option {
	return func(e *Engine) {
		e.refresher = refresher
	}
}

// WithTransport replaces the default HTTP transport.
func WithTransport(transport bsh.Transport) Option {
	return func(e *Engine) {
		e.transport = transport
	}
}

// WithLogger sets the logger used by the pipeline and the default transport.
func WithLogger(logger bsh.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTokenPersister is called with every access token obtained by an
// automatic refresh.
func WithTokenPersister(persist func(ctx context.Context, accessToken string) error) Option {
	return func(e *Engine) {
		e.persist = persist
	}
}

// WithMetrics records call outcomes and dispatch latency.
func WithMetrics(metrics *bsh.Metrics) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// WithTracing opens a client span around every dispatch. A nil provider
// uses the global one.
func WithTracing(provider trace.TracerProvider) Option {
	return func(e *Engine) {
		e.tracing = true
		e.tracerProvider = provider
	}
}

// WithEventPublisher publishes a CallEvent for every call outcome.
func WithEventPublisher(publisher *bsh.EventPublisher) Option {
	return func(e *Engine) {
		e.events = publisher
	}
}
