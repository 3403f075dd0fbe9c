package bsh

import (
	"context"
	"strings"
	"sync"
)

// PreInterceptor may replace an outgoing request. Returning nil passes the
// request on unchanged. The first interceptor that returns a request wins
// and the rest are skipped.
type PreInterceptor func(ctx context.Context, req *Request) *Request

// PostInterceptor may replace a successful envelope. Interceptors are folded
// in order and a nil return keeps the current envelope.
type PostInterceptor func(ctx context.Context, env *Envelope, req *Request) *Envelope

// ErrorInterceptor may replace an engine error. Interceptors are folded in
// order and a nil return keeps the current error.
type ErrorInterceptor func(ctx context.Context, err *Error, env *Envelope, req *Request) *Error

// Interceptors is an ordered, concurrency-safe interceptor registry.
type Interceptors struct {
	mu   sync.RWMutex
	pre  []PreInterceptor
	post []PostInterceptor
	errs []ErrorInterceptor
}

// NewInterceptors creates an empty registry.
func NewInterceptors() *Interceptors {
	return &Interceptors{
		pre:  make([]PreInterceptor, 0),
		post: make([]PostInterceptor, 0),
		errs: make([]ErrorInterceptor, 0),
	}
}

// AddPre appends a pre-request interceptor.
func (c *Interceptors) AddPre(interceptor PreInterceptor) {
	if interceptor == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pre = append(c.pre, interceptor)
}

// AddPost appends a post-success interceptor.
func (c *Interceptors) AddPost(interceptor PostInterceptor) {
	if interceptor == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.post = append(c.post, interceptor)
}

// AddError appends an error interceptor.
func (c *Interceptors) AddError(interceptor ErrorInterceptor) {
	if interceptor == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs = append(c.errs, interceptor)
}

// Pre returns a copy of the pre-request interceptors.
func (c *Interceptors) Pre() []PreInterceptor {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]PreInterceptor(nil), c.pre...)
}

// Post returns a copy of the post-success interceptors.
func (c *Interceptors) Post() []PostInterceptor {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]PostInterceptor(nil), c.post...)
}

// Errors returns a copy of the error interceptors.
func (c *Interceptors) Errors() []ErrorInterceptor {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]ErrorInterceptor(nil), c.errs...)
}

// ApplyPre runs the pre-request chain. This is a find-first-match, unlike
// the post and error chains which fold.
func (c *Interceptors) ApplyPre(ctx context.Context, req *Request) *Request {
	for _, interceptor := range c.Pre() {
		if replaced := interceptor(ctx, req); replaced != nil {
			return replaced
		}
	}

	return req
}

// ApplyPost folds the post-success chain over env.
func (c *Interceptors) ApplyPost(ctx context.Context, env *Envelope, req *Request) *Envelope {
	current := env

	for _, interceptor := range c.Post() {
		if replaced := interceptor(ctx, current, req); replaced != nil {
			current = replaced
		}
	}

	return current
}

// ApplyError folds the error chain over err.
func (c *Interceptors) ApplyError(ctx context.Context, err *Error, env *Envelope, req *Request) *Error {
	current := err

	for _, interceptor := range c.Errors() {
		if replaced := interceptor(ctx, current, env, req); replaced != nil {
			current = replaced
		}
	}

	return current
}

// Common Interceptors

// HeaderInterceptor returns a pre-request interceptor that adds headers.
// Because it always returns a request, interceptors registered after it
// never run.
func HeaderInterceptor(headers map[string]string) PreInterceptor {
	return func(_ context.Context, req *Request) *Request {
		out := req.Clone()
		for key, value := range headers {
			out.Headers[key] = value
		}

		return out
	}
}

// LoggingPostInterceptor logs successful calls.
func LoggingPostInterceptor(logger Logger) PostInterceptor {
	return func(_ context.Context, env *Envelope, req *Request) *Envelope {
		logger.Debug("API Response", map[string]interface{}{
			"method":    req.Method,
			"path":      req.Path,
			"operation": env.OperationName,
			"code":      env.Code,
		})

		return nil
	}
}

// LoggingErrorInterceptor logs failed calls.
func LoggingErrorInterceptor(logger Logger) ErrorInterceptor {
	return func(_ context.Context, err *Error, _ *Envelope, req *Request) *Error {
		logger.Error("API Response Error", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"operation":   req.OperationName,
			"status_code": err.StatusCode,
			"error":       err.Error(),
		})

		return nil
	}
}

// PostForOperations applies next only to calls whose operation name starts
// with one of the prefixes.
func PostForOperations(next PostInterceptor, prefixes ...string) PostInterceptor {
	return func(ctx context.Context, env *Envelope, req *Request) *Envelope {
		if !matchesOperation(req.OperationName, prefixes) {
			return nil
		}

		return next(ctx, env, req)
	}
}

// ErrorForOperations applies next only to calls whose operation name starts
// with one of the prefixes.
func ErrorForOperations(next ErrorInterceptor, prefixes ...string) ErrorInterceptor {
	return func(ctx context.Context, err *Error, env *Envelope, req *Request) *Error {
		if !matchesOperation(req.OperationName, prefixes) {
			return nil
		}

		return next(ctx, err, env, req)
	}
}

func matchesOperation(operation string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(operation, prefix) {
			return true
		}
	}

	return false
}
