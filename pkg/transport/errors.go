package transport

import (
	"fmt"
)

// APIError is returned for unexpected responses and failed requests.
type APIError struct {
	Message      string
	StatusCode   int
	ResponseBody string
	RequestID    string
	Err          error
}

func (e *APIError) Error() string {
	if e.RequestID == "" {
		return e.Message
	}

	return fmt.Sprintf("%s (request id: %s)", e.Message, e.RequestID)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AuthenticationError is returned when the API key is missing or rejected.
type AuthenticationError struct {
	Message      string
	StatusCode   int
	ResponseBody string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// ValidationError is returned when the service rejects the request content.
type ValidationError struct {
	Message      string
	Errors       map[string]any
	StatusCode   int
	ResponseBody string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TimeoutError is returned when the service does not answer in time.
type TimeoutError struct {
	Message string
	Err     error
}

func (e *TimeoutError) Error() string {
	return e.Message
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}
