package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSlugTaken is returned when the events.slug unique index rejects a write.
	// The store's constraint is the authoritative guard; the in-application
	// suffix search is only a fast-path pre-check.
	ErrSlugTaken = errors.New("slug already in use")
	// ErrEventNotFound is returned when a booking references an event that
	// does not exist at creation time.
	ErrEventNotFound = errors.New("referenced event does not exist")
	// ErrInvalidCredentials is returned on a failed admin login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError marks input that failed a field or format rule. Handlers
// map it to a 400 response; anything else non-sentinel is a server error.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
