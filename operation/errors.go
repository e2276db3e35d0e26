package operation

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSpecRequired is returned by Init when no SpecLoader was configured.
	ErrSpecRequired = errors.New("openapi spec loader is required")
	// ErrUnsupportedMethod is returned for methods outside GET, POST, PUT,
	// DELETE and PATCH.
	ErrUnsupportedMethod = errors.New("unsupported method")
	// ErrMalformedPath is returned for path templates with unbalanced braces.
	ErrMalformedPath = errors.New("malformed path template")
	// ErrUnsupportedPattern is returned when a host cannot express a route
	// pattern, such as a ServeMux placeholder followed by a literal suffix.
	ErrUnsupportedPattern = errors.New("route pattern not supported by host")
	// ErrOperationNotFound is returned when the document does not declare
	// the path and method being registered.
	ErrOperationNotFound = errors.New("operation not found in openapi document")
)

const unknownErrorMessage = "Unknown Error"

// Error is the structured failure handlers return to control the default
// error response. A zero Status becomes 500 and an empty Message becomes
// "Unknown Error".
type Error struct {
	Status  int
	Message string
	Err     error
}

// NewError builds an *Error with the given status and message.
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Errorf builds an *Error with a formatted message. A %w verb in format is
// kept as the cause.
func Errorf(status int, format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Status: status, Message: err.Error(), Err: errors.Unwrap(err)}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = unknownErrorMessage
	}
	return fmt.Sprintf("%d: %s", e.status(), msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *Error) status() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// describe extracts the status and message for the default error body.
// Plain errors keep their text and map to 500.
func describe(err error) (int, string) {
	var opErr *Error
	if errors.As(err, &opErr) && opErr != nil {
		msg := opErr.Message
		if msg == "" {
			msg = unknownErrorMessage
		}
		return opErr.status(), msg
	}
	if err == nil || err.Error() == "" {
		return http.StatusInternalServerError, unknownErrorMessage
	}
	return http.StatusInternalServerError, err.Error()
}
