package bsh

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
)

// Validation is a single field-level validation failure reported by the engine.
type Validation struct {
	Field string `json:"field" yaml:"field"`
	Error string `json:"error" yaml:"error"`
}

// Envelope is the uniform response shape returned by every JSON call.
type Envelope struct {
	Data          []any          `json:"data"                  yaml:"data"`
	Timestamp     int64          `json:"timestamp"             yaml:"timestamp"`
	Code          int            `json:"code"                  yaml:"code"`
	Status        string         `json:"status"                yaml:"status"`
	Error         string         `json:"error,omitempty"       yaml:"error,omitempty"`
	Meta          map[string]any `json:"meta,omitempty"        yaml:"meta,omitempty"`
	Pagination    map[string]any `json:"pagination,omitempty"  yaml:"pagination,omitempty"`
	Endpoint      string         `json:"endpoint,omitempty"    yaml:"endpoint,omitempty"`
	Validations   []Validation   `json:"validations,omitempty" yaml:"validations,omitempty"`
	OperationName string         `json:"api,omitempty"         yaml:"api,omitempty"`
}

// IsOK reports whether env is present and carries a 2xx code.
func IsOK(env *Envelope) bool {
	return env != nil && env.Code >= 200 && env.Code < 300
}

// IsOK is the method form of IsOK.
func (e *Envelope) IsOK() bool {
	return IsOK(e)
}

// First returns the first data element, or nil when there is none.
func (e *Envelope) First() any {
	if e == nil || len(e.Data) == 0 {
		return nil
	}

	return e.Data[0]
}

// ParseEnvelope decodes a raw response body. Bodies that are not a JSON
// object fail with ErrNotAnEnvelope.
func ParseEnvelope(body []byte) (*Envelope, error) {
	var raw map[string]any

	err := json.Unmarshal(body, &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAnEnvelope, err)
	}

	if raw == nil {
		return nil, ErrNotAnEnvelope
	}

	return EnvelopeFromMap(raw), nil
}

// EnvelopeFromMap builds an envelope from a decoded JSON object. Missing
// optional keys stay empty and a scalar data value is wrapped in a list.
func EnvelopeFromMap(raw map[string]any) *Envelope {
	return &Envelope{
		Data:          toList(raw["data"]),
		Timestamp:     toInt64(raw["timestamp"]),
		Code:          int(toInt64(raw["code"])),
		Status:        toString(raw["status"]),
		Error:         toString(raw["error"]),
		Meta:          toObject(raw["meta"]),
		Pagination:    toObject(raw["pagination"]),
		Endpoint:      toString(raw["endpoint"]),
		Validations:   toValidations(raw["validations"]),
		OperationName: toString(raw["api"]),
	}
}

// ToMap renders the envelope as a plain map, omitting unset optional keys.
func (e *Envelope) ToMap() map[string]any {
	out := map[string]any{
		"data":      e.Data,
		"timestamp": e.Timestamp,
		"code":      e.Code,
		"status":    e.Status,
	}

	if e.Data == nil {
		out["data"] = []any{}
	}

	if e.Error != "" {
		out["error"] = e.Error
	}

	if e.Meta != nil {
		out["meta"] = e.Meta
	}

	if e.Pagination != nil {
		out["pagination"] = e.Pagination
	}

	if e.Endpoint != "" {
		out["endpoint"] = e.Endpoint
	}

	if len(e.Validations) > 0 {
		validations := make([]any, 0, len(e.Validations))
		for _, v := range e.Validations {
			validations = append(validations, map[string]any{"field": v.Field, "error": v.Error})
		}

		out["validations"] = validations
	}

	if e.OperationName != "" {
		out["api"] = e.OperationName
	}

	return out
}

// FallbackEnvelope wraps a successful body that was not a JSON object.
// The timestamp is left at zero.
func FallbackEnvelope(statusCode int, text string) *Envelope {
	return &Envelope{
		Data:   []any{text},
		Code:   statusCode,
		Status: constants.StatusOK,
	}
}

// DecodeData re-decodes the envelope data list into typed values.
func DecodeData[T any](env *Envelope) ([]T, error) {
	if env == nil {
		return nil, nil
	}

	raw, err := json.Marshal(env.Data)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope data: %w", err)
	}

	var out []T

	err = json.Unmarshal(raw, &out)
	if err != nil {
		return nil, fmt.Errorf("decoding envelope data: %w", err)
	}

	return out, nil
}

func toList(v any) []any {
	switch typed := v.(type) {
	case nil:
		return []any{}
	case []any:
		return typed
	default:
		return []any{typed}
	}
}

func toInt64(v any) int64 {
	switch typed := v.(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0
		}

		return int64(typed)
	case json.Number:
		n, err := typed.Int64()
		if err == nil {
			return n
		}

		f, err := typed.Float64()
		if err == nil {
			return int64(f)
		}
	case int:
		return int64(typed)
	case int64:
		return typed
	}

	return 0
}

func toString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		raw, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}

		return string(raw)
	}
}

func toObject(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	return m
}

func toValidations(v any) []Validation {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]Validation, 0, len(items))

	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		out = append(out, Validation{Field: toString(m["field"]), Error: toString(m["error"])})
	}

	return out
}
