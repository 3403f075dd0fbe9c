package client

import (
	"context"
	"sync"
	"testing"

	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

const testHost = "https://engine.test"

// recordingTransport answers every request with the next canned response
// and keeps a copy of what it was sent.
type recordingTransport struct {
	mu        sync.Mutex
	requests  []*bsh.Request
	responses []*bsh.RawResponse
	err       error
}

func respondWith(responses ...*bsh.RawResponse) *recordingTransport {
	return &recordingTransport{responses: responses}
}

func respondJSON(status int, body string) *recordingTransport {
	return respondWith(bsh.NewRawResponse(status, []byte(body)))
}

func (r *recordingTransport) Do(_ context.Context, req *bsh.Request) (*bsh.RawResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req.Clone())

	if r.err != nil {
		return nil, r.err
	}

	if len(r.responses) == 0 {
		return bsh.NewRawResponse(200, []byte(`{"data":[],"code":200,"status":"OK"}`)), nil
	}

	resp := r.responses[0]
	if len(r.responses) > 1 {
		r.responses = r.responses[1:]
	}

	return resp, nil
}

func (r *recordingTransport) last(t *testing.T) *bsh.Request {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.requests) == 0 {
		t.Fatal("no request was sent")
	}

	return r.requests[len(r.requests)-1]
}

func (r *recordingTransport) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.requests)
}

func newTestPipeline(transport bsh.Transport, auth bsh.Authenticator) *Pipeline {
	return NewPipeline(Options{
		Host:          testHost,
		Transport:     transport,
		Authenticator: auth,
		Interceptors:  bsh.NewInterceptors(),
	})
}
