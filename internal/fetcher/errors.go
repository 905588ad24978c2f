package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind represents the category of error that occurred during a fetch or normalization
type ErrorKind string

const (
	// KindProvider indicates a network or HTTP failure talking to a provider
	KindProvider ErrorKind = "provider"
	// KindTimeout indicates the provider did not answer within the configured maximum wait
	KindTimeout ErrorKind = "timeout"
	// KindMalformedData indicates an unexpected response shape, or normalization left no usable rows
	KindMalformedData ErrorKind = "malformed_data"
	// KindEntityNotFound indicates an unknown country, ticker or indicator
	KindEntityNotFound ErrorKind = "entity_not_found"
	// KindMetadataUnavailable indicates a display-name lookup failed; never fatal
	KindMetadataUnavailable ErrorKind = "metadata_unavailable"
	// KindInvalidRequest indicates the caller asked for something malformed (e.g. start after end)
	KindInvalidRequest ErrorKind = "invalid_request"
)

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrProvider            = &Error{Kind: KindProvider}
	ErrTimeout             = &Error{Kind: KindTimeout}
	ErrMalformedData       = &Error{Kind: KindMalformedData}
	ErrEntityNotFound      = &Error{Kind: KindEntityNotFound}
	ErrMetadataUnavailable = &Error{Kind: KindMetadataUnavailable}
	ErrInvalidRequest      = &Error{Kind: KindInvalidRequest}
)

// Error represents a structured error from a fetch or normalize operation
type Error struct {
	Kind       ErrorKind
	Entity     string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Entity != "" {
		msg = e.Entity + ": " + msg
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// NewProviderError creates a network/HTTP failure error
func NewProviderError(entity string, cause error) *Error {
	return &Error{
		Kind:    KindProvider,
		Entity:  entity,
		Message: "provider request failed",
		Cause:   cause,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(entity string, cause error) *Error {
	return &Error{
		Kind:    KindTimeout,
		Entity:  entity,
		Message: "provider did not respond in time",
		Cause:   cause,
	}
}

// NewMalformedDataError creates a malformed data error
func NewMalformedDataError(entity, message string) *Error {
	return &Error{
		Kind:    KindMalformedData,
		Entity:  entity,
		Message: message,
	}
}

// NewEntityNotFoundError creates an unknown identifier/indicator error
func NewEntityNotFoundError(entity, message string) *Error {
	return &Error{
		Kind:    KindEntityNotFound,
		Entity:  entity,
		Message: message,
	}
}

// NewMetadataUnavailableError creates a metadata lookup error
func NewMetadataUnavailableError(entity string, cause error) *Error {
	return &Error{
		Kind:    KindMetadataUnavailable,
		Entity:  entity,
		Message: "display name unavailable",
		Cause:   cause,
	}
}

// NewInvalidRequestError creates a request validation error
func NewInvalidRequestError(entity, message string) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Entity:  entity,
		Message: message,
	}
}

// ClassifyHTTPError classifies a non-2xx HTTP status code into an appropriate Error
func ClassifyHTTPError(entity string, statusCode int) *Error {
	switch {
	case statusCode == http.StatusNotFound:
		e := NewEntityNotFoundError(entity, "provider has no such entity")
		e.StatusCode = statusCode
		return e
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusGatewayTimeout:
		e := NewTimeoutError(entity, nil)
		e.StatusCode = statusCode
		return e
	default:
		return &Error{
			Kind:       KindProvider,
			Entity:     entity,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		}
	}
}

// ClassifyTransportError maps an error returned by the HTTP client to an Error.
// Deadline expiry becomes a timeout, JSON decode failures become malformed data,
// everything else is a provider error.
func ClassifyTransportError(entity string, err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewTimeoutError(entity, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		e := NewMalformedDataError(entity, "response is not the expected JSON shape")
		e.Cause = err
		return e
	}

	return NewProviderError(entity, err)
}
