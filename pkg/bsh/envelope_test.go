package bsh

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOK(t *testing.T) {
	tests := []struct {
		name     string
		env      *Envelope
		expected bool
	}{
		{name: "nil envelope", env: nil, expected: false},
		{name: "200", env: &Envelope{Code: 200}, expected: true},
		{name: "299", env: &Envelope{Code: 299}, expected: true},
		{name: "300", env: &Envelope{Code: 300}, expected: false},
		{name: "199", env: &Envelope{Code: 199}, expected: false},
		{name: "zero", env: &Envelope{}, expected: false},
		{name: "404", env: &Envelope{Code: 404}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsOK(tt.env))
			assert.Equal(t, tt.expected, tt.env.IsOK())
		})
	}
}

func TestEnvelopeFromMap_DataIsAlwaysAList(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		expected []any
	}{
		{name: "missing", raw: map[string]any{}, expected: []any{}},
		{name: "null", raw: map[string]any{"data": nil}, expected: []any{}},
		{name: "list", raw: map[string]any{"data": []any{"a", "b"}}, expected: []any{"a", "b"}},
		{name: "object", raw: map[string]any{"data": map[string]any{"id": "1"}}, expected: []any{map[string]any{"id": "1"}}},
		{name: "scalar", raw: map[string]any{"data": float64(3)}, expected: []any{float64(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := EnvelopeFromMap(tt.raw)
			assert.Equal(t, tt.expected, env.Data)
		})
	}
}

func TestEnvelopeFromMap_Defaults(t *testing.T) {
	env := EnvelopeFromMap(map[string]any{"code": "not-a-number", "status": 5})

	assert.Equal(t, int64(0), env.Timestamp)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "5", env.Status)
	assert.Empty(t, env.Error)
	assert.Nil(t, env.Meta)
	assert.Nil(t, env.Validations)
}

func TestEnvelope_RoundTrip(t *testing.T) {
	raw := map[string]any{
		"data":       []any{map[string]any{"id": "42"}},
		"timestamp":  int64(1700000000000),
		"code":       200,
		"status":     "ok",
		"error":      "",
		"meta":       map[string]any{"total": float64(1)},
		"pagination": map[string]any{"page": float64(1)},
		"endpoint":   "https://h/api/entities/User/42",
		"validations": []any{
			map[string]any{"field": "email", "error": "required"},
		},
		"api": "entities.User.findById",
	}

	env := EnvelopeFromMap(raw)
	again := EnvelopeFromMap(env.ToMap())

	assert.Equal(t, env, again)
	assert.Equal(t, []Validation{{Field: "email", Error: "required"}}, again.Validations)
	assert.Equal(t, "entities.User.findById", again.OperationName)
}

func TestEnvelope_ToMapOmitsUnsetKeys(t *testing.T) {
	m := (&Envelope{Code: 200, Status: "ok"}).ToMap()

	assert.Equal(t, []any{}, m["data"])
	assert.NotContains(t, m, "error")
	assert.NotContains(t, m, "meta")
	assert.NotContains(t, m, "endpoint")
	assert.NotContains(t, m, "validations")
	assert.NotContains(t, m, "api")
}

func TestParseEnvelope(t *testing.T) {
	env, err := ParseEnvelope([]byte(`{"data":[{"id":"42"}],"code":200,"status":"ok","timestamp":1}`))
	require.NoError(t, err)
	assert.Equal(t, 200, env.Code)
	assert.Len(t, env.Data, 1)

	for _, body := range []string{"", "plain text", "null", "[1,2]", `"str"`} {
		_, err := ParseEnvelope([]byte(body))
		require.ErrorIs(t, err, ErrNotAnEnvelope, "body %q", body)
	}
}

func TestFallbackEnvelope(t *testing.T) {
	env := FallbackEnvelope(201, "created")

	assert.Equal(t, []any{"created"}, env.Data)
	assert.Equal(t, "ok", env.Status)
	assert.Equal(t, 201, env.Code)
	assert.Zero(t, env.Timestamp)
}

func TestDecodeData(t *testing.T) {
	type user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"data":[{"id":"1","email":"a@b.c"},{"id":"2"}]}`), &raw))

	users, err := DecodeData[user](EnvelopeFromMap(raw))
	require.NoError(t, err)
	assert.Equal(t, []user{{ID: "1", Email: "a@b.c"}, {ID: "2"}}, users)

	none, err := DecodeData[user](nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}
