package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyResponse(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		probe   bool
		kind    ErrorKind
		message string
	}{
		{
			name:    "401 is unauthorized",
			status:  401,
			body:    `{"message":"invalid api key"}`,
			kind:    KindUnauthorized,
			message: "invalid api key",
		},
		{
			name:    "401 with empty body falls back",
			status:  401,
			body:    "",
			kind:    KindUnauthorized,
			message: "unauthorized",
		},
		{
			name:    "404 during probe is notFound",
			status:  404,
			body:    `{"message":"no route"}`,
			probe:   true,
			kind:    KindNotFound,
			message: "endpoint not found, the server address is likely wrong",
		},
		{
			name:    "404 outside probe is generic",
			status:  404,
			body:    `{"message":"record missing"}`,
			kind:    KindGeneric,
			message: "record missing",
		},
		{
			name:   "422 with field errors is validation",
			status: 422,
			body:   `{"message":[{"field":"name","message":"required"}]}`,
			kind:   KindValidation,
		},
		{
			name:    "422 without field errors is generic",
			status:  422,
			body:    `{"message":"bad input"}`,
			kind:    KindGeneric,
			message: "bad input",
		},
		{
			name:    "500 is generic with status text fallback",
			status:  500,
			body:    "",
			kind:    KindGeneric,
			message: http.StatusText(500),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := classifyResponse(tt.status, []byte(tt.body), tt.probe)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.status, e.StatusCode)
			if tt.message != "" {
				assert.Equal(t, tt.message, e.Message)
			}
		})
	}
}

func TestClassifyResponseFieldErrors(t *testing.T) {
	body := `{"message":[{"field":"serverUrl","message":"must be a URL"},{"field":"token","message":"required"}]}`
	e := classifyResponse(422, []byte(body), false)

	require.Equal(t, KindValidation, e.Kind)
	require.Len(t, e.FieldErrors, 2)
	assert.Equal(t, FieldError{Field: "serverUrl", Message: "must be a URL"}, e.FieldErrors[0])
	assert.Equal(t, FieldError{Field: "token", Message: "required"}, e.FieldErrors[1])
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "detail wins over message",
			body:     `{"detail":"specific reason","message":"general reason"}`,
			expected: "specific reason",
		},
		{
			name:     "string message",
			body:     `{"message":"plain reason"}`,
			expected: "plain reason",
		},
		{
			name:     "message array joined",
			body:     `{"message":["first","second"]}`,
			expected: "first\nsecond",
		},
		{
			name:     "message array skips non-strings",
			body:     `{"message":["first",42,"second"]}`,
			expected: "first\nsecond",
		},
		{
			name:     "first string field by sorted key",
			body:     `{"zeta":"late","alpha":"early","count":3}`,
			expected: "early",
		},
		{
			name:     "bare string body",
			body:     `"just text"`,
			expected: "just text",
		},
		{
			name:     "non-json body used verbatim",
			body:     "upstream exploded",
			expected: "upstream exploded",
		},
		{
			name:     "empty body falls back",
			body:     "",
			expected: "fallback",
		},
		{
			name:     "no usable field falls back",
			body:     `{"count":3,"ok":false}`,
			expected: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractMessage([]byte(tt.body), "fallback"))
		})
	}
}

func TestRequestErrorError(t *testing.T) {
	assert.Equal(t, "boom", (&RequestError{Kind: KindGeneric, Message: "boom"}).Error())
	assert.Equal(t, "unauthorized", (&RequestError{Kind: KindUnauthorized}).Error())
}
