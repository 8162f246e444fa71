// Package jsonutil provides shared helpers for decoding API payloads:
// context-wrapped errors, one-or-many documents, and error message extraction.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// GetString safely extracts a string value from a map[string]interface{}.
// Returns the value if it's a string, otherwise returns empty string.
func GetString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// UnmarshalOneOrMany decodes either a JSON array of T or a single JSON
// object of T. A single object is returned as a one-element slice; null
// and an empty array both yield an empty, non-nil slice.
func UnmarshalOneOrMany[T any](data []byte, context string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: empty document", context)
	}
	switch trimmed[0] {
	case '[':
		var entries []T
		if err := UnmarshalWithContext(trimmed, &entries, context); err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []T{}
		}
		return entries, nil
	case '{':
		var one T
		if err := UnmarshalWithContext(trimmed, &one, context); err != nil {
			return nil, err
		}
		return []T{one}, nil
	case 'n':
		if string(trimmed) == "null" {
			return []T{}, nil
		}
	}
	return nil, fmt.Errorf("%s: expected JSON array or object", context)
}

// ErrorText turns a server error payload into a display string.
// A JSON string yields the string, an object yields its "error" or "message"
// field, anything else yields the trimmed raw body.
func ErrorText(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var s string
		if json.Unmarshal(trimmed, &s) == nil {
			return strings.TrimSpace(s)
		}
	case '{':
		var m map[string]interface{}
		if json.Unmarshal(trimmed, &m) == nil {
			if s := GetString(m, "error"); s != "" {
				return s
			}
			if s := GetString(m, "message"); s != "" {
				return s
			}
		}
	}
	return string(trimmed)
}
