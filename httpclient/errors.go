package httpclient

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a failed device call.
type ErrorCode int

const (
	// ErrCodeTransport indicates the request never produced a response
	// (refused connection, DNS failure, reset, unreadable body).
	ErrCodeTransport ErrorCode = iota
	// ErrCodeTimeout indicates the context or client deadline expired.
	ErrCodeTimeout
	// ErrCodeParse indicates a non-empty body that is not valid JSON.
	ErrCodeParse
	// ErrCodeApplication indicates a JSON object carrying an "errors" key.
	ErrCodeApplication
	// ErrCodeStatus indicates a status code outside 200..299.
	ErrCodeStatus
	// ErrCodeUsage indicates a request that could not be built.
	ErrCodeUsage
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTransport:
		return "transport"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeParse:
		return "parse"
	case ErrCodeApplication:
		return "application"
	case ErrCodeStatus:
		return "status"
	case ErrCodeUsage:
		return "usage"
	default:
		return "unknown"
	}
}

// Error is a structured device call error.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// StatusCode is the HTTP status code (0 when no response was received).
	StatusCode int
	// Status is the reason phrase of the response, e.g. "Not Found".
	Status string
	// Message describes the error.
	Message string
	// Payload is the value of the "errors" key for application errors.
	Payload any
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		status := strings.TrimSpace(fmt.Sprintf("%d %s", e.StatusCode, e.Status))
		return fmt.Sprintf("httpclient: %s (HTTP %s): %s", e.Code, status, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a network level failure.
func NewTransportError(err error) *Error {
	return &Error{
		Code:    ErrCodeTransport,
		Message: err.Error(),
		Err:     err,
	}
}

// NewTimeoutError wraps a deadline or cancellation failure.
func NewTimeoutError(err error) *Error {
	return &Error{
		Code:    ErrCodeTimeout,
		Message: err.Error(),
		Err:     err,
	}
}

// NewParseError reports an undecodable response body. The body itself is
// not retained.
func NewParseError(statusCode int, status string, err error) *Error {
	return &Error{
		Code:       ErrCodeParse,
		StatusCode: statusCode,
		Status:     status,
		Message:    "JSON parse error",
		Err:        err,
	}
}

// NewApplicationError reports errors the device embedded in its response.
func NewApplicationError(statusCode int, status string, payload any) *Error {
	return &Error{
		Code:       ErrCodeApplication,
		StatusCode: statusCode,
		Status:     status,
		Message:    fmt.Sprintf("device reported errors: %v", payload),
		Payload:    payload,
	}
}

// NewStatusError reports a non-2xx response without embedded errors.
func NewStatusError(statusCode int, status string) *Error {
	return &Error{
		Code:       ErrCodeStatus,
		StatusCode: statusCode,
		Status:     status,
		Message:    "HTTP error",
	}
}

// NewUsageError reports a call that was rejected before dispatch.
func NewUsageError(msg string) *Error {
	return &Error{
		Code:    ErrCodeUsage,
		Message: msg,
	}
}

// IsTransport checks if an error is a transport error.
func IsTransport(err error) bool {
	return hasCode(err, ErrCodeTransport)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return hasCode(err, ErrCodeTimeout)
}

// IsParse checks if an error is a JSON parse error.
func IsParse(err error) bool {
	return hasCode(err, ErrCodeParse)
}

// IsApplication checks if an error carries device reported errors.
func IsApplication(err error) bool {
	return hasCode(err, ErrCodeApplication)
}

// IsStatus checks if an error is a non-2xx status error.
func IsStatus(err error) bool {
	return hasCode(err, ErrCodeStatus)
}

// IsUsage checks if an error is a usage error.
func IsUsage(err error) bool {
	return hasCode(err, ErrCodeUsage)
}

// ApplicationPayload returns the "errors" value of an application error.
// The payload may be nil even when ok is true.
func ApplicationPayload(err error) (payload any, ok bool) {
	var e *Error
	if errors.As(err, &e) && e.Code == ErrCodeApplication {
		return e.Payload, true
	}
	return nil, false
}

// StatusCode returns the HTTP status code carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
