package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// ErrorKind classifies a failed request.
type ErrorKind string

const (
	// KindValidation is a 422 with structured per-field messages.
	KindValidation ErrorKind = "validation"
	// KindUnauthorized is a 401; the session manager treats it as a forced logout.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindNotFound is a 404 during credential validation, which usually means
	// the server address is wrong.
	KindNotFound ErrorKind = "notFound"
	// KindNetworkUnreachable is a transport failure with no HTTP response.
	KindNetworkUnreachable ErrorKind = "networkUnreachable"
	// KindGeneric is everything else, with a best-effort message.
	KindGeneric ErrorKind = "generic"
)

// FieldError is a per-field validation message from a 422 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RequestError is the normalized error value produced from any failed call.
// The client never lets a raw transport error escape its boundary.
type RequestError struct {
	Kind        ErrorKind
	Message     string
	FieldErrors []FieldError
	StatusCode  int
	Raw         any
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// newGenericError builds a generic RequestError with the given message.
func newGenericError(message string) *RequestError {
	return &RequestError{Kind: KindGeneric, Message: message}
}

// classifyResponse derives a RequestError from an HTTP error response.
// probe marks the credential-validation context, where a 404 indicates a
// wrong server address rather than a missing record.
func classifyResponse(status int, body []byte, probe bool) *RequestError {
	e := &RequestError{
		StatusCode: status,
		Raw:        json.RawMessage(body),
	}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindUnauthorized
		e.Message = extractMessage(body, "unauthorized")
	case status == http.StatusNotFound && probe:
		e.Kind = KindNotFound
		e.Message = "endpoint not found, the server address is likely wrong"
	case status == http.StatusUnprocessableEntity:
		if fields := extractFieldErrors(body); len(fields) > 0 {
			e.Kind = KindValidation
			e.FieldErrors = fields
			e.Message = extractMessage(body, "validation failed")
			break
		}
		e.Kind = KindGeneric
		e.Message = extractMessage(body, http.StatusText(status))
	default:
		e.Kind = KindGeneric
		e.Message = extractMessage(body, http.StatusText(status))
	}
	return e
}

// extractFieldErrors parses the 422 body shape {message: [{field, message}]}.
func extractFieldErrors(body []byte) []FieldError {
	var payload struct {
		Message []FieldError `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}
	var fields []FieldError
	for _, f := range payload.Message {
		if f.Field != "" || f.Message != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// extractMessage pulls a human-readable message out of a response body.
// Precedence: a string detail field, a string message field, string elements
// of a message array joined by newline, the first string-valued field of the
// body object, then the fallback.
func extractMessage(body []byte, fallback string) string {
	if len(body) == 0 {
		return fallback
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		if s := strings.TrimSpace(string(body)); s != "" {
			return s
		}
		return fallback
	}

	switch v := data.(type) {
	case string:
		if v != "" {
			return v
		}
	case map[string]any:
		if detail, ok := v["detail"].(string); ok && detail != "" {
			return detail
		}
		switch msg := v["message"].(type) {
		case string:
			if msg != "" {
				return msg
			}
		case []any:
			var parts []string
			for _, item := range msg {
				if s, ok := item.(string); ok {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, "\n")
			}
		}
		// Sorted for a deterministic pick.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := v[k].(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}
