// Package apperr carries the application error taxonomy. Failures raised
// before an SSE response opens are mapped to HTTP status codes by the error
// middleware; failures raised after the stream has started surface as
// terminal error frames instead.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidRequest
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindQuotaExceeded
	KindGeneratorFailure
	KindPersistenceFailure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Invalid(message string) *Error         { return New(KindInvalidRequest, message) }
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }
func Forbidden(message string) *Error       { return New(KindForbidden, message) }
func NotFound(message string) *Error        { return New(KindNotFound, message) }
func QuotaExceeded(message string) *Error   { return New(KindQuotaExceeded, message) }

// KindOf extracts the taxonomy kind from any error in the chain, defaulting
// to KindInternal for unclassified failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind to the response code used before a stream opens.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidRequest:
		return fiber.StatusBadRequest
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindQuotaExceeded:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// ClientMessage returns the sanitized message for the client. Internal
// failure details stay in the logs.
func ClientMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Unexpected server error"
}
