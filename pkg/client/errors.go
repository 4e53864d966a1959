package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")
)

// ErrorClass categorizes an API failure.
type ErrorClass string

const (
	// ErrorClassNotFound means the addressed resource does not exist (404).
	ErrorClassNotFound ErrorClass = "not_found"

	// ErrorClassValidation means the server rejected the arguments (400, 422).
	ErrorClassValidation ErrorClass = "validation"

	// ErrorClassAuth means the access key is invalid or expired (401, 403).
	ErrorClassAuth ErrorClass = "auth"

	// ErrorClassRateLimit means the request budget is exhausted (429).
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassServer means a 5xx server failure.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork means a transport-level failure.
	ErrorClassNetwork ErrorClass = "network"
)

// APIError is a categorized Verso API error. Errors of this type
// propagate unchanged through the paging and manager layers.
type APIError struct {
	StatusCode int
	Class      ErrorClass
	Code       string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("verso %s error (status %d): %s: %v",
			e.Class, e.StatusCode, e.Message, e.Err)
	}
	if e.Code != "" {
		return fmt.Sprintf("verso %s error (status %d): %s: %s",
			e.Class, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("verso %s error (status %d): %s",
		e.Class, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFound builds a local not-found error for a known-invalid identifier,
// raised before any request is attempted.
func NotFound(resource, identification string) *APIError {
	return &APIError{
		StatusCode: http.StatusNotFound,
		Class:      ErrorClassNotFound,
		Message:    fmt.Sprintf("the %s %q does not exist", resource, identification),
	}
}

// IsNotFound reports whether err is a not-found API error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Class == ErrorClassNotFound
}

// classifyStatus maps a non-success HTTP status to an error class.
func classifyStatus(status int) ErrorClass {
	switch {
	case status == http.StatusNotFound:
		return ErrorClassNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorClassAuth
	case status == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case status >= 400 && status < 500:
		return ErrorClassValidation
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// parseAPIError builds an APIError from a non-success response body.
// The API reports failures as {"code": <str>, "message": <str>}.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Class:      classifyStatus(status),
		Message:    http.StatusText(status),
	}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Code = payload.Code
		if payload.Message != "" {
			apiErr.Message = payload.Message
		}
	}

	return apiErr
}

// shouldRetry determines if an error class should be retried.
func shouldRetry(class ErrorClass) bool {
	switch class {
	case ErrorClassServer, ErrorClassRateLimit, ErrorClassNetwork:
		return true
	default:
		// not_found, validation and auth failures never heal on retry.
		return false
	}
}
