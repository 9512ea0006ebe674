package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies the failures the data layer can surface.
type Kind string

const (
	// KindValidation indicates malformed input rejected at the validation boundary.
	KindValidation Kind = "VALIDATION"

	// KindDuplicateEmail indicates a registration attempt with an email that already exists.
	KindDuplicateEmail Kind = "DUPLICATE_EMAIL"

	// KindNotFound indicates a user, review or drink lookup miss.
	KindNotFound Kind = "NOT_FOUND"

	// KindInvalidCredentials indicates a failed login. The message is identical
	// whether the email is unknown or the password mismatches.
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"

	// KindUnavailable indicates a reservation attempt on a drink that is not available.
	KindUnavailable Kind = "UNAVAILABLE"

	// KindPersistence indicates the store acknowledged nothing, or modified
	// nothing when a change was expected.
	KindPersistence Kind = "PERSISTENCE"

	// KindCascade indicates a secondary write failed after a primary write had
	// already been applied.
	KindCascade Kind = "CASCADE"

	// KindAssetWrite indicates a filesystem failure while storing an asset.
	KindAssetWrite Kind = "ASSET_WRITE"

	// KindAssetCleanup indicates a filesystem failure while removing a
	// superseded asset after its record update succeeded.
	KindAssetCleanup Kind = "ASSET_CLEANUP"
)

// Error is the error type returned by every operation in the data layer.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err, or the empty Kind when err does not carry one.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
