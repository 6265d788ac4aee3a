package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types for the portal
var (
	// Configuration errors
	ErrConfigMissing = errors.New("required configuration value missing")

	// Session errors
	ErrUnauthenticated = errors.New("no authenticated user")
	ErrNoSession       = errors.New("session not found")
	ErrInvalidSession  = errors.New("invalid session")

	// Identity provider errors
	ErrIdentityUpdate      = errors.New("identity provider update failed")
	ErrIdentityUnavailable = errors.New("identity provider cannot persist changes for this account")

	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// StatusError carries the HTTP status a page failure should be presented with.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d: %v", e.Status, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// WithStatus attaches an HTTP status to err.
func WithStatus(status int, err error) error {
	return &StatusError{Status: status, Err: err}
}

// Unauthorized is the failure raised when a page requires a logged in user.
func Unauthorized() error {
	return &StatusError{Status: http.StatusForbidden, Err: ErrUnauthenticated}
}

// NotFound is the failure raised for unknown resources.
func NotFound(what string) error {
	return &StatusError{Status: http.StatusNotFound, Err: fmt.Errorf("%s: %w", what, ErrNotFound)}
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join is errors.Join, re-exported so callers need only this package.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
