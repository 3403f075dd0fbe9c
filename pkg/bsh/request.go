package bsh

import (
	"io"
	"maps"
)

// Format selects how a request body is encoded.
type Format string

const (
	// FormatJSON encodes the body as JSON.
	FormatJSON Format = "json"
	// FormatForm sends the body as multipart or urlencoded form data.
	FormatForm Format = "form"
)

// ResponseKind selects how a response body is interpreted.
type ResponseKind string

const (
	// ResponseJSON decodes the body into an Envelope.
	ResponseJSON ResponseKind = "json"
	// ResponseBlob hands back the raw bytes.
	ResponseBlob ResponseKind = "blob"
)

// Callbacks redirect the outcome of a call. When a callback fires the call
// returns (nil, nil) and the callback owns the result.
type Callbacks struct {
	OnSuccess  func(env *Envelope)
	OnError    func(err *Error)
	OnDownload func(data []byte)
}

// CallOption customises a single call.
type CallOption func(*Callbacks)

// OnSuccess routes successful envelopes to fn.
func OnSuccess(fn func(env *Envelope)) CallOption {
	return func(c *Callbacks) { c.OnSuccess = fn }
}

// OnError routes engine errors to fn. Transport failures are still returned.
func OnError(fn func(err *Error)) CallOption {
	return func(c *Callbacks) { c.OnError = fn }
}

// OnDownload routes downloaded bytes to fn.
func OnDownload(fn func(data []byte)) CallOption {
	return func(c *Callbacks) { c.OnDownload = fn }
}

// ApplyCallOptions folds options into a Callbacks value.
func ApplyCallOptions(opts ...CallOption) Callbacks {
	var cb Callbacks

	for _, opt := range opts {
		if opt != nil {
			opt(&cb)
		}
	}

	return cb
}

// Request describes one call to the engine. Path is relative to the engine
// host until the pipeline prefixes it.
type Request struct {
	Path          string
	Method        string
	Headers       map[string]string
	Body          any
	Format        Format
	ResponseKind  ResponseKind
	Callbacks     Callbacks
	OperationName string
}

// Clone returns a copy with its own header map. The body is shared.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}

	cp := *r
	cp.Headers = make(map[string]string, len(r.Headers))
	maps.Copy(cp.Headers, r.Headers)

	return &cp
}

// WithHeader returns a clone carrying one more header.
func (r *Request) WithHeader(name, value string) *Request {
	cp := r.Clone()
	cp.Headers[name] = value

	return cp
}

// Form is a multipart body.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// FormFile is one file part of a multipart body.
type FormFile struct {
	Field    string
	Filename string
	Content  io.Reader
}
