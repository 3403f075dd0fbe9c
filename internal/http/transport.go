package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

// Transport is the default bsh.Transport. It sends prepared requests with
// go-retryablehttp and never interprets status codes.
type Transport struct {
	httpClient *retryablehttp.Client
	userAgent  string
	logger     bsh.Logger
	debug      bool
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			t.httpClient.HTTPClient = client
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		if timeout > 0 {
			t.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetryConfig enables retries on connection errors and 5xx responses.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(t *Transport) {
		t.httpClient.RetryMax = maxRetries

		if waitMin > 0 {
			t.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			t.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(t *Transport) {
		if userAgent != "" {
			t.userAgent = userAgent
		}
	}
}

// WithLogger sets the logger used for debug output and retry messages.
func WithLogger(logger bsh.Logger) Option {
	return func(t *Transport) {
		if logger == nil {
			return
		}

		t.logger = logger
		t.httpClient.Logger = &leveledLogger{logger: logger}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(t *Transport) {
		t.debug = debug
	}
}

// NewTransport creates a transport. Retries are off unless WithRetryConfig
// asks for them.
func NewTransport(opts ...Option) *Transport {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	// Hand the last response back instead of an error once retries run out.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	t := &Transport{
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
		logger:     bsh.NoopLogger{},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Do implements bsh.Transport.
func (t *Transport) Do(ctx context.Context, req *bsh.Request) (*bsh.RawResponse, error) {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, req.Path, rawBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range req.Headers {
		if contentType != "" && strings.EqualFold(key, constants.HeaderContentType) {
			continue
		}

		httpReq.Header.Set(key, value)
	}

	if contentType != "" {
		httpReq.Header.Set(constants.HeaderContentType, contentType)
	}

	if httpReq.Header.Get(constants.HeaderAccept) == "" && req.ResponseKind != bsh.ResponseBlob {
		httpReq.Header.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	}

	if httpReq.Header.Get(constants.HeaderUserAgent) == "" {
		httpReq.Header.Set(constants.HeaderUserAgent, t.userAgent)
	}

	if httpReq.Header.Get(constants.HeaderRequestID) == "" {
		httpReq.Header.Set(constants.HeaderRequestID, uuid.NewString())
	}

	if t.debug {
		t.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     method,
			"url":        req.Path,
			"request_id": httpReq.Header.Get(constants.HeaderRequestID),
		})
	}

	start := time.Now()

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if t.debug {
		t.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
			"size":     len(respBody),
		})
	}

	return &bsh.RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// encodeBody returns the wire body and, when the encoding dictates it, the
// content type that replaces the caller's.
func encodeBody(req *bsh.Request) ([]byte, string, error) {
	if req.Body == nil {
		return nil, "", nil
	}

	if req.Format == bsh.FormatForm {
		return encodeForm(req.Body)
	}

	switch body := req.Body.(type) {
	case []byte:
		return body, "", nil
	case string:
		return []byte(body), "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	contentType := ""
	if !hasHeader(req.Headers, constants.HeaderContentType) {
		contentType = constants.ContentTypeJSON
	}

	return data, contentType, nil
}

func encodeForm(body any) ([]byte, string, error) {
	switch form := body.(type) {
	case *bsh.Form:
		return encodeMultipart(form)
	case bsh.Form:
		return encodeMultipart(&form)
	case url.Values:
		return []byte(form.Encode()), constants.ContentTypeForm, nil
	default:
		return nil, "", fmt.Errorf("%w: got %T", bsh.ErrUnsupportedFormBody, body)
	}
}

func encodeMultipart(form *bsh.Form) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(form.Fields))
	for key := range form.Fields {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		err := writer.WriteField(key, form.Fields[key])
		if err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	for _, file := range form.Files {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %s: %w", file.Field, err)
		}

		if file.Content != nil {
			_, err = io.Copy(part, file.Content)
			if err != nil {
				return nil, "", fmt.Errorf("failed to copy form file %s: %w", file.Field, err)
			}
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

func hasHeader(headers map[string]string, name string) bool {
	for key := range headers {
		if strings.EqualFold(key, name) {
			return true
		}
	}

	return false
}
