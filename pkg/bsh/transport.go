package bsh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// RawResponse is what a transport hands back to the pipeline.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewRawResponse builds a response, mostly for custom transports and tests.
func NewRawResponse(statusCode int, body []byte) *RawResponse {
	return &RawResponse{StatusCode: statusCode, Header: make(http.Header), Body: body}
}

// OK reports whether the status is below 400.
func (r *RawResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

// DecodeJSON unmarshals the body into v.
func (r *RawResponse) DecodeJSON(v any) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	return nil
}

// Text returns the body as a string.
func (r *RawResponse) Text() string {
	return string(r.Body)
}

// Transport performs a single prepared request. Implementations must not
// interpret status codes; the pipeline does that.
type Transport interface {
	Do(ctx context.Context, req *Request) (*RawResponse, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *Request) (*RawResponse, error)

// Do implements Transport.
func (f TransportFunc) Do(ctx context.Context, req *Request) (*RawResponse, error) {
	return f(ctx, req)
}
