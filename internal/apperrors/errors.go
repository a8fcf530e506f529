package apperrors

import "errors"

// Failure categories surfaced to callers. Every error leaving the service
// layer unwraps to exactly one of these.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrValidationFailed   = errors.New("validation failed")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Login failures never say whether the identifier or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CustomError carries a user-visible message on top of a category sentinel.
type CustomError struct {
	Err     error
	Message string
	Field   string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Validation reports a violated input constraint.
func Validation(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NotFound reports a missing record. The sentinel stays generic; message
// names what was missing.
func NotFound(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// Duplicate reports a unique-constraint violation on field.
func Duplicate(field, message string) error {
	return &CustomError{Err: ErrDuplicateKey, Message: message, Field: field}
}

// Storage wraps a filesystem failure. The cause is kept for logging only;
// Error() never includes it so paths do not leak into responses.
func Storage(cause error) error {
	return &storageError{cause: cause}
}

type storageError struct {
	cause error
}

func (e *storageError) Error() string {
	return ErrStorageUnavailable.Error()
}

func (e *storageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

func (e *storageError) Unwrap() error {
	return e.cause
}

// Message returns the user-visible message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
