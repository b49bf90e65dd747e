// Package errors defines common error types used throughout the Bluesky API wrapper.
package errors

import (
	"fmt"
	"strings"
)

// ConfigError indicates a problem with the client configuration or with
// arguments supplied to an operation.
type ConfigError struct {
	// Field contains the name of the configuration field that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// AuthError indicates an authentication failure: the PDS rejected a
// createSession call, or a session record holds no usable access token.
type AuthError struct {
	// StatusCode is the HTTP status code (if from an HTTP response)
	StatusCode int
	// Message contains the detailed error message
	Message string
	// Body contains the raw response body (if available)
	Body string
	// Err contains the underlying error if available
	Err error
}

func (e *AuthError) Error() string {
	var parts []string
	parts = append(parts, "auth error")

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status code %d", e.StatusCode))
	}

	if e.Body != "" {
		parts = append(parts, fmt.Sprintf("body: %q", e.Body))
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Err != nil {
		parts = append(parts, fmt.Sprintf("err: %v", e.Err))
	}

	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + ": " + strings.Join(parts[1:], ", ")
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// RequestError indicates a transport-level problem issuing an API request.
type RequestError struct {
	// Operation is the name of the API operation that failed
	Operation string
	// URL is the URL that was being accessed
	URL string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Operation != "" && e.URL != "" {
		return fmt.Sprintf("request error during %s to %s: %s", e.Operation, e.URL, msg)
	} else if e.Operation != "" {
		return fmt.Sprintf("request error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("request error: %s", msg)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a problem decoding a success response body.
type DecodeError struct {
	// Operation is the name of the API operation where decoding failed
	Operation string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Operation != "" {
		return fmt.Sprintf("decode error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("decode error: %s", msg)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// APIError represents a non-success response from an XRPC endpoint.
type APIError struct {
	// StatusCode is the HTTP status code
	StatusCode int
	// ErrorCode is the machine-readable error name from the XRPC error body
	// (if the body carried one)
	ErrorCode string
	// Message is the human-readable message from the XRPC error body
	Message string
	// Body contains the raw response body
	Body string
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("bluesky API error (status %d, code %s): %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
	}
	if e.Body != "" {
		return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}

// StorageError indicates a problem reading, writing, or decoding the
// session file.
type StorageError struct {
	// Path is the session file path
	Path string
	// Operation describes what was being done to the file (read, write, decode, encode)
	Operation string
	// Err contains the underlying error
	Err error
}

func (e *StorageError) Error() string {
	if e.Path != "" && e.Operation != "" {
		return fmt.Sprintf("storage error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	if e.Operation != "" {
		return fmt.Sprintf("storage error during %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("storage error: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
