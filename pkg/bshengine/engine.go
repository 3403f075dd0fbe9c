package bshengine

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/bshengine-client/internal/auth"
	"github.com/fivetwenty-io/bshengine-client/internal/client"
	internalhttp "github.com/fivetwenty-io/bshengine-client/internal/http"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

// Engine is the entry point to a BSH Engine instance. It holds the host,
// credentials, transport and interceptors, and hands out service clients
// built from its current state.
//
// Setters are not synchronized. Configure an Engine before sharing it
// between goroutines; interceptors may be added at any time.
type Engine struct {
	host          string
	transport     bsh.Transport
	authenticator bsh.Authenticator
	refresher     bsh.Refresher
	apiKey        string
	bearerToken   string
	refreshToken  string
	persist       func(ctx context.Context, accessToken string) error
	interceptors  *bsh.Interceptors
	logger        bsh.Logger

	metrics        *bsh.Metrics
	events         *bsh.EventPublisher
	tracing        bool
	tracerProvider trace.TracerProvider
}

// New creates an Engine for host. The host is used verbatim as the prefix
// of every request path.
func New(host string, opts ...Option) *Engine {
	e := &Engine{
		host:         host,
		interceptors: bsh.NewInterceptors(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.logger = bsh.LoggerOrNoop(e.logger)

	if e.transport == nil {
		e.transport = internalhttp.NewTransport(internalhttp.WithLogger(e.logger))
	}

	if e.metrics != nil {
		e.interceptors.AddPost(e.metrics.PostInterceptor())
		e.interceptors.AddError(e.metrics.ErrorInterceptor())
	}

	if e.events != nil {
		e.interceptors.AddPost(e.events.PostInterceptor())
		e.interceptors.AddError(e.events.ErrorInterceptor())
	}

	return e
}

// NewFromConfig creates an Engine from config. The host is normalized and
// the default transport is built from the HTTP settings. Options are
// applied after the config.
func NewFromConfig(config *bsh.Config, opts ...Option) (*Engine, error) {
	if config == nil {
		return nil, bsh.ErrConfigRequired
	}

	logger := bsh.LoggerOrNoop(config.Logger)

	transport := internalhttp.NewTransport(
		internalhttp.WithTimeout(config.HTTPTimeout),
		internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax),
		internalhttp.WithUserAgent(config.UserAgent),
		internalhttp.WithLogger(logger),
		internalhttp.WithDebug(config.Debug),
	)

	base := []Option{
		WithTransport(transport),
		WithLogger(logger),
		WithAPIKey(config.APIKey),
		WithBearerToken(config.AccessToken),
		WithRefreshToken(config.RefreshToken),
	}

	return New(NormalizeHost(config.Host), append(base, opts...)...), nil
}

// NewWithAPIKey creates an Engine that authenticates with an API key.
func NewWithAPIKey(host, apiKey string) (*Engine, error) {
	return NewFromConfig(&bsh.Config{Host: host, APIKey: apiKey})
}

// NewWithToken creates an Engine that authenticates with a bearer token and
// renews it with refreshToken when it expires. refreshToken may be empty.
func NewWithToken(host, accessToken, refreshToken string) (*Engine, error) {
	return NewFromConfig(&bsh.Config{Host: host, AccessToken: accessToken, RefreshToken: refreshToken})
}

// NormalizeHost trims a trailing slash and adds https:// when no scheme is
// present.
func NormalizeHost(host string) string {
	host = strings.TrimSuffix(strings.TrimSpace(host), "/")
	if host == "" {
		return host
	}

	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}

	return host
}

// Host returns the engine host.
func (e *Engine) Host() string {
	return e.host
}

// WithTransport replaces the transport used by clients created afterwards.
func (e *Engine) WithTransport(transport bsh.Transport) *Engine {
	e.transport = transport

	return e
}

// WithAuthenticator replaces the authenticator used by clients created
// afterwards.
func (e *Engine) WithAuthenticator(authenticator bsh.Authenticator) *Engine {
	e.authenticator = authenticator

	return e
}

// WithRefresher replaces the refresher used by clients created afterwards.
func (e *Engine) WithRefresher(refresher bsh.Refresher) *Engine {
	e.refresher = refresher

	return e
}

// WithLogger replaces the pipeline logger used by clients created afterwards.
func (e *Engine) WithLogger(logger bsh.Logger) *Engine {
	e.logger = bsh.LoggerOrNoop(logger)

	return e
}

// AddPreInterceptor appends a pre-request interceptor.
func (e *Engine) AddPreInterceptor(interceptor bsh.PreInterceptor) *Engine {
	e.interceptors.AddPre(interceptor)

	return e
}

// AddPostInterceptor appends a post-success interceptor.
func (e *Engine) AddPostInterceptor(interceptor bsh.PostInterceptor) *Engine {
	e.interceptors.AddPost(interceptor)

	return e
}

// AddErrorInterceptor appends an error interceptor.
func (e *Engine) AddErrorInterceptor(interceptor bsh.ErrorInterceptor) *Engine {
	e.interceptors.AddError(interceptor)

	return e
}

// PreInterceptors returns a copy of the pre-request interceptors.
func (e *Engine) PreInterceptors() []bsh.PreInterceptor {
	return e.interceptors.Pre()
}

// PostInterceptors returns a copy of the post-success interceptors.
func (e *Engine) PostInterceptors() []bsh.PostInterceptor {
	return e.interceptors.Post()
}

// ErrorInterceptors returns a copy of the error interceptors.
func (e *Engine) ErrorInterceptors() []bsh.ErrorInterceptor {
	return e.interceptors.Errors()
}

// Client returns a raw pipeline for endpoints without a dedicated client.
func (e *Engine) Client() bsh.Pipeline {
	return e.pipeline()
}

// Entity returns a client for the named entity.
func (e *Engine) Entity(name string) (bsh.EntityClient, error) {
	c, err := client.NewEntityClient(e.pipeline(), name)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Core returns clients for the engine's built-in entities.
func (e *Engine) Core() *bsh.CoreEntities {
	return client.NewCoreEntities(e.pipeline())
}

// Auth returns the authentication client.
func (e *Engine) Auth() bsh.AuthClient {
	return client.NewAuthClient(e.pipeline())
}

// Users returns the users client.
func (e *Engine) Users() bsh.UsersClient {
	return client.NewUsersClient(e.pipeline())
}

// Settings returns the settings client.
func (e *Engine) Settings() bsh.SettingsClient {
	return client.NewSettingsClient(e.pipeline())
}

// Images returns the images client.
func (e *Engine) Images() bsh.ImagesClient {
	return client.NewImagesClient(e.pipeline())
}

// Mailing returns the mailing client.
func (e *Engine) Mailing() bsh.MailingClient {
	return client.NewMailingClient(e.pipeline())
}

// Utils returns the utils client.
func (e *Engine) Utils() bsh.UtilsClient {
	return client.NewUtilsClient(e.pipeline())
}

// Caching returns the caching client.
func (e *Engine) Caching() bsh.CachingClient {
	return client.NewCachingClient(e.pipeline())
}

// APIKeys returns the API keys client.
func (e *Engine) APIKeys() bsh.APIKeysClient {
	return client.NewAPIKeysClient(e.pipeline())
}

// pipeline snapshots the current engine state. Interceptors stay shared so
// later registrations reach existing clients.
func (e *Engine) pipeline() *client.Pipeline {
	opts := client.Options{
		Host:          e.host,
		Transport:     e.instrumentedTransport(),
		Authenticator: e.effectiveAuthenticator(),
		Refresher:     e.effectiveRefresher(),
		Interceptors:  e.interceptors,
		Logger:        e.logger,
	}

	if e.persist != nil {
		opts.TokenPersister = auth.TokenPersisterFunc(e.persist)
	}

	return client.NewPipeline(opts)
}

func (e *Engine) instrumentedTransport() bsh.Transport {
	transport := e.transport
	if transport == nil {
		return nil
	}

	if e.metrics != nil {
		transport = e.metrics.InstrumentTransport(transport)
	}

	if e.tracing {
		transport = bsh.TracingTransport(transport, e.tracerProvider)
	}

	return transport
}

func (e *Engine) effectiveAuthenticator() bsh.Authenticator {
	switch {
	case e.authenticator != nil:
		return e.authenticator
	case e.bearerToken != "":
		return bsh.StaticCredential(bsh.BearerToken(e.bearerToken))
	case e.apiKey != "":
		return bsh.StaticCredential(bsh.APIKey(e.apiKey))
	default:
		return nil
	}
}

func (e *Engine) effectiveRefresher() bsh.Refresher {
	if e.refreshToken != "" {
		return bsh.StaticRefresher(e.refreshToken)
	}

	return e.refresher
}
