package product

import "fmt"

// ValidationError reports client-side input that must not reach the server.
type ValidationError struct {
	Field  string // form label, e.g. "Product ID"; empty for whole-input errors
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// DecodeError reports a response body that is neither a Product nor a list of them.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode product response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
