package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/bshengine-client/internal/auth"
	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

var _ bsh.Pipeline = (*Pipeline)(nil)

// Options are the values a Pipeline snapshots at construction.
type Options struct {
	Host          string
	Transport     bsh.Transport
	Authenticator bsh.Authenticator
	Refresher     bsh.Refresher
	// Interceptors is shared with the owner and read at call time.
	Interceptors   *bsh.Interceptors
	TokenPersister auth.TokenPersister
	Logger         bsh.Logger
}

// Pipeline implements bsh.Pipeline: credential resolution, header merge,
// pre-interceptors, transport dispatch and response normalization.
type Pipeline struct {
	host         string
	transport    bsh.Transport
	interceptors *bsh.Interceptors
	resolver     *auth.Resolver
	logger       bsh.Logger
}

// NewPipeline creates a pipeline from opts.
func NewPipeline(opts Options) *Pipeline {
	logger := bsh.LoggerOrNoop(opts.Logger)

	p := &Pipeline{
		host:         opts.Host,
		transport:    opts.Transport,
		interceptors: opts.Interceptors,
		logger:       logger,
	}

	p.resolver = &auth.Resolver{
		Authenticator: opts.Authenticator,
		Refresher:     opts.Refresher,
		Exchange:      p.exchangeRefreshToken,
		Persister:     opts.TokenPersister,
		Logger:        logger,
	}

	return p
}

// Host returns the host prefix applied to every path.
func (p *Pipeline) Host() string {
	return p.host
}

// Get implements bsh.Pipeline.Get.
func (p *Pipeline) Get(ctx context.Context, req *bsh.Request) (*bsh.Envelope, error) {
	return p.call(ctx, http.MethodGet, req)
}

// Post implements bsh.Pipeline.Post.
func (p *Pipeline) Post(ctx context.Context, req *bsh.Request) (*bsh.Envelope, error) {
	return p.call(ctx, http.MethodPost, req)
}

// Put implements bsh.Pipeline.Put.
func (p *Pipeline) Put(ctx context.Context, req *bsh.Request) (*bsh.Envelope, error) {
	return p.call(ctx, http.MethodPut, req)
}

// Delete implements bsh.Pipeline.Delete.
func (p *Pipeline) Delete(ctx context.Context, req *bsh.Request) (*bsh.Envelope, error) {
	return p.call(ctx, http.MethodDelete, req)
}

// Patch implements bsh.Pipeline.Patch.
func (p *Pipeline) Patch(ctx context.Context, req *bsh.Request) (*bsh.Envelope, error) {
	return p.call(ctx, http.MethodPatch, req)
}

// Download implements bsh.Pipeline.Download. The request method is kept
// when set and defaults to GET.
func (p *Pipeline) Download(ctx context.Context, req *bsh.Request) ([]byte, error) {
	if req == nil {
		return nil, bsh.ErrNilRequest
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	prepared, err := p.prepare(ctx, method, bsh.ResponseBlob, req)
	if err != nil {
		return nil, err
	}

	resp, err := p.dispatch(ctx, prepared)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, p.fail(ctx, resp, prepared)
	}

	if onDownload := prepared.Callbacks.OnDownload; onDownload != nil {
		onDownload(resp.Body)

		return nil, nil
	}

	return resp.Body, nil
}

func (p *Pipeline) call(ctx context.Context, method string, req *bsh.Request) (*bsh.Envelope, error) {
	if req == nil {
		return nil, bsh.ErrNilRequest
	}

	prepared, err := p.prepare(ctx, method, bsh.ResponseJSON, req)
	if err != nil {
		return nil, err
	}

	resp, err := p.dispatch(ctx, prepared)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, p.fail(ctx, resp, prepared)
	}

	env, decodeErr := bsh.ParseEnvelope(resp.Body)
	if decodeErr != nil {
		p.logger.Debug("response is not an envelope, wrapping body", map[string]interface{}{
			"path":   prepared.Path,
			"status": resp.StatusCode,
		})

		env = bsh.FallbackEnvelope(resp.StatusCode, resp.Text())
	}

	if onSuccess := prepared.Callbacks.OnSuccess; onSuccess != nil {
		onSuccess(env)

		return nil, nil
	}

	env.OperationName = prepared.OperationName

	return p.interceptors.ApplyPost(ctx, env, prepared), nil
}

// prepare resolves credentials against the unprefixed path, then builds the
// outgoing copy and runs the pre-interceptors over it.
func (p *Pipeline) prepare(ctx context.Context, method string, kind bsh.ResponseKind, req *bsh.Request) (*bsh.Request, error) {
	authHeaders, err := p.resolver.Headers(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	out := req.Clone()
	out.Path = p.host + req.Path
	out.Method = method
	out.ResponseKind = kind

	if out.Format == "" {
		out.Format = bsh.FormatJSON
	}

	// Auth headers are applied last and overwrite caller headers.
	for name, value := range authHeaders {
		out.Headers[name] = value
	}

	return p.interceptors.ApplyPre(ctx, out), nil
}

func (p *Pipeline) dispatch(ctx context.Context, req *bsh.Request) (*bsh.RawResponse, error) {
	if p.transport == nil {
		return nil, bsh.ErrNoTransport
	}

	p.logger.Debug("dispatching request", map[string]interface{}{
		"method":    req.Method,
		"path":      req.Path,
		"operation": req.OperationName,
	})

	resp, err := p.transport.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("sending %s %s: %w", req.Method, req.Path, err)
	}

	if resp == nil {
		return nil, fmt.Errorf("sending %s %s: %w", req.Method, req.Path, bsh.ErrNilResponse)
	}

	return resp, nil
}

// fail builds the engine error, folds the error interceptors over it and
// delivers it. A nil return means OnError consumed the error.
func (p *Pipeline) fail(ctx context.Context, resp *bsh.RawResponse, req *bsh.Request) error {
	env, decodeErr := bsh.ParseEnvelope(resp.Body)
	if decodeErr != nil {
		env = nil
	}

	apiErr := bsh.NewError(resp.StatusCode, req.Path, env)

	final := p.interceptors.ApplyError(ctx, apiErr, env, req)
	if final != apiErr {
		p.logger.Debug("error replaced by interceptor", map[string]interface{}{
			"path":   req.Path,
			"status": resp.StatusCode,
		})
	}

	if onError := req.Callbacks.OnError; onError != nil {
		onError(final)

		return nil
	}

	return final
}

// exchangeRefreshToken calls the refresh endpoint through this pipeline.
// The auth route skips credential lookup, so this never recurses.
func (p *Pipeline) exchangeRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	var rejected *bsh.Error

	env, err := NewAuthClient(p).RefreshToken(ctx, &bsh.RefreshParams{Refresh: refreshToken},
		bsh.OnError(func(e *bsh.Error) { rejected = e }))
	if err != nil {
		return "", err
	}

	if rejected != nil {
		return "", rejected
	}

	first, ok := env.First().(map[string]any)
	if !ok {
		return "", constants.ErrNoAccessInRefresh
	}

	access, ok := first["access"].(string)
	if !ok || access == "" {
		return "", constants.ErrNoAccessInRefresh
	}

	return access, nil
}
