package logstream

import (
	"encoding/json"
	"strings"
)

// payloadFields are the object keys the server is known to put log text
// under, in lookup order.
var payloadFields = []string{"message", "log", "data", "line", "stdout", "stderr"}

// normalizePayload turns one inbound frame into zero or more text lines.
// Accepted shapes: a JSON string, a JSON array of strings (non-strings
// filtered out), an object exposing one of the known fields as a string, or
// a plain-text frame taken as one bare line. Anything else yields nothing.
func normalizePayload(frame []byte) []string {
	var payload any
	if err := json.Unmarshal(frame, &payload); err != nil {
		if s := strings.TrimRight(string(frame), "\r\n"); s != "" {
			return []string{s}
		}
		return nil
	}

	switch v := payload.(type) {
	case string:
		return []string{v}
	case []any:
		var lines []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				lines = append(lines, s)
			}
		}
		return lines
	case map[string]any:
		for _, field := range payloadFields {
			if s, ok := v[field].(string); ok {
				return []string{s}
			}
		}
	}
	return nil
}
