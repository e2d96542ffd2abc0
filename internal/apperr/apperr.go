// Package apperr defines the application error taxonomy.
// Failures cross the service boundary as *Error values carrying a Kind;
// the handler layer owns the single mapping from Kind to HTTP status.
package apperr

import "errors"

// Kind categorizes a failure for the transport boundary.
type Kind string

const (
	KindAuthenticationFailed Kind = "AUTHENTICATION_FAILED"
	KindAccessDenied         Kind = "ACCESS_DENIED"
	KindProjectNotFound      Kind = "PROJECT_NOT_FOUND"
	KindTaskNotFound         Kind = "TASK_NOT_FOUND"
	KindConflict             Kind = "CONFLICT"
	KindValidation           Kind = "VALIDATION_ERROR"
	KindInternal             Kind = "INTERNAL_ERROR"
)

// Error is a tagged application error.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// New creates an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error that preserves the underlying cause for
// errors.Is/errors.As chains and logging.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the Kind from an error chain.
// Unrecognized errors degrade to KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf extracts the user-facing message from an error chain.
// Unrecognized errors yield a generic message so internals never leak.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Unexpected error occurred"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
