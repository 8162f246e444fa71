package api

import (
	"errors"
	"fmt"
	"net/http"

	"productdesk/internal/jsonutil"
)

// TransportError means no HTTP response was received (dial failure, timeout, bad URL).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx response. Body holds the raw payload.
type StatusError struct {
	Op         string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s: %d %s: %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode), msg)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
}

// Message returns the server-provided error text, or "" when the body is empty.
func (e *StatusError) Message() string {
	return jsonutil.ErrorText(e.Body)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// IsTransport reports whether err means no response was received.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
