package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every per-entity lookup error so the HTTP
// boundary can map the whole family with one errors.Is check.
var ErrNotFound = errors.New("not found")

var (
	ErrCompanyNotFound = fmt.Errorf("company %w", ErrNotFound)
	ErrJobNotFound     = fmt.Errorf("job %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
	ErrCompanyExists      = errors.New("company already exists")
)

// InvalidRequest wraps ErrInvalidRequest with a client-facing reason.
func InvalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// RejectedError is an invalid request whose cause must stay server-side.
// Error() carries only Reason; Cause is reachable through errors.Is/As.
type RejectedError struct {
	Reason string
	Cause  error
}

// Rejected builds a RejectedError.
func Rejected(reason string, cause error) error {
	return &RejectedError{Reason: reason, Cause: cause}
}

func (e *RejectedError) Error() string {
	return ErrInvalidRequest.Error() + ": " + e.Reason
}

func (e *RejectedError) Unwrap() []error {
	return []error{ErrInvalidRequest, e.Cause}
}
