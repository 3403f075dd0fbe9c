package bsh

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned when the engine answers with a non-success status.
type Error struct {
	StatusCode int
	Endpoint   string
	Envelope   *Envelope
	Message    string
}

// NewError builds an Error and stamps the endpoint onto the envelope.
func NewError(statusCode int, endpoint string, envelope *Envelope) *Error {
	if envelope != nil {
		envelope.Endpoint = endpoint
	}

	return &Error{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Envelope:   envelope,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Envelope != nil && e.Envelope.Error != "" {
		return fmt.Sprintf("%s: %s (code: %d, endpoint: %s)", e.Envelope.Status, e.Envelope.Error, e.StatusCode, e.Endpoint)
	}

	return fmt.Sprintf("HTTP %d error at %s", e.StatusCode, e.Endpoint)
}

// Unwrap maps well-known status codes onto the package sentinels.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// Validations returns the field failures carried by the envelope, if any.
func (e *Error) Validations() []Validation {
	if e.Envelope == nil {
		return nil
	}

	return e.Envelope.Validations
}

// WithMessage returns a copy of the error carrying a custom message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg

	return &cp
}

// Common static errors that can be wrapped with context.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("not authenticated")
	ErrForbidden             = errors.New("not authorized")
	ErrNotAnEnvelope         = errors.New("response body is not a JSON object")
	ErrEntityNameRequired    = errors.New("entity name is required")
	ErrIDRequired            = errors.New("id is required")
	ErrNilRequest            = errors.New("request is nil")
	ErrNilResponse           = errors.New("transport returned no response")
	ErrNoTransport           = errors.New("no transport configured")
	ErrCredentialLookup      = errors.New("credential lookup failed")
	ErrUnknownCredentialKind = errors.New("unknown credential kind")
	ErrUnsupportedFormBody   = errors.New("form requests need a *bsh.Form or url.Values body")
	ErrConfigRequired        = errors.New("config is required")
	ErrUploadRequired        = errors.New("upload content is required")
)

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
