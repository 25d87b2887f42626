// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Request-level errors surfaced to callers.
	ErrProfileUnavailable = errors.New("profile unavailable")
	ErrAddressNotFound    = errors.New("address not found")

	// Errors recovered locally and never surfaced as request failures.
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrCacheUnavailable    = errors.New("cache unavailable")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsUserCorrectable reports whether an error should be presented as a bad
// request rather than a server failure.
func IsUserCorrectable(err error) bool {
	return errors.Is(err, ErrProfileUnavailable) || errors.Is(err, ErrAddressNotFound)
}
