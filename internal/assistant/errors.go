package assistant

import "fmt"

// TransportError wraps failures to reach the service
type TransportError struct {
	Endpoint   string
	Underlying error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Underlying)
}

func (e *TransportError) Unwrap() error { return e.Underlying }

// DecodeError wraps responses that are not the expected JSON
type DecodeError struct {
	Endpoint   string
	Underlying error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response from %s: %v", e.Endpoint, e.Underlying)
}

func (e *DecodeError) Unwrap() error { return e.Underlying }

// StatusError is a non-2xx reply that carried no "error" field
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}
