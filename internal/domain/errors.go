// Package domain defines the core client-side models for fittrack.
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ClientError.
type ErrorKind string

const (
	// KindValidation marks bad input caught before any I/O.
	KindValidation ErrorKind = "validation"

	// KindAPI marks a server response with a non-2xx status.
	KindAPI ErrorKind = "api"

	// KindNetwork marks a transport failure where no response was received.
	KindNetwork ErrorKind = "network"

	// KindSetup marks a request that could not be constructed or sent.
	KindSetup ErrorKind = "setup"

	// KindProtocol marks a 2xx response whose payload violates the
	// expected contract (e.g. missing user or token).
	KindProtocol ErrorKind = "protocol"
)

// GenericMessage is the fallback shown for errors that carry no
// human-readable message of their own.
const GenericMessage = "an unexpected error occurred"

// ClientError is the one error shape surfaced by the client layers.
//
// Every ClientError carries a non-empty Message. Status and Data are only
// populated for KindAPI errors, where the server produced a response.
type ClientError struct {
	Kind    ErrorKind
	Message string
	Status  int   // HTTP status, 0 when no response was received
	Data    any   // decoded error payload from the server, if any
	Cause   error // underlying error, if any
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support: two ClientErrors match on Kind.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *ClientError {
	return &ClientError{Kind: KindValidation, Message: message}
}

// NewAPIError creates an API error from a non-2xx server response.
func NewAPIError(status int, data any, serverMessage string) *ClientError {
	msg := serverMessage
	if msg == "" {
		msg = "Request failed"
	}
	return &ClientError{
		Kind:    KindAPI,
		Status:  status,
		Data:    data,
		Message: fmt.Sprintf("API Error: %d - %s", status, msg),
	}
}

// NewNetworkError creates a network error wrapping the transport failure.
func NewNetworkError(cause error) *ClientError {
	return &ClientError{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("Network Error: %v", cause),
		Cause:   cause,
	}
}

// NewSetupError creates a setup error wrapping the construction failure.
func NewSetupError(cause error) *ClientError {
	return &ClientError{
		Kind:    KindSetup,
		Message: fmt.Sprintf("Request Setup Error: %v", cause),
		Cause:   cause,
	}
}

// NewProtocolError creates a protocol error.
func NewProtocolError(message string) *ClientError {
	return &ClientError{Kind: KindProtocol, Message: message}
}

// IsKind reports whether err is a ClientError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// KindOf extracts the kind from an error, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// ErrorInfo is the error shape surfaced to the UI by the session store.
// Message is always non-empty; Status and Data are present only when the
// failure originated from a server response.
type ErrorInfo struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// InfoFromError converts any error into an ErrorInfo, using fallback when
// the error carries no message of its own. A nil error yields nil.
func InfoFromError(err error, fallback string) *ErrorInfo {
	if err == nil {
		return nil
	}
	info := &ErrorInfo{Message: err.Error()}
	if info.Message == "" {
		info.Message = fallback
	}
	if info.Message == "" {
		info.Message = GenericMessage
	}
	var ce *ClientError
	if errors.As(err, &ce) {
		info.Status = ce.Status
		info.Data = ce.Data
	}
	return info
}

// MessageOf extracts a user-visible message from any error. Foreign errors
// with an empty message fall back to GenericMessage so the UI never shows
// a blank string.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericMessage
}
