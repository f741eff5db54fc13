// Package common provides shared constants, types, and utilities
// used across NetBar.
package common

import "errors"

// Sentinel errors for indicator operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Service errors.
	ErrServiceUnavailable = errors.New("network-management service unavailable")
	ErrServiceAbsent      = errors.New("network-management service not installed")
	ErrClosed             = errors.New("use after close")

	// Configuration errors.
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrConfigLoad      = errors.New("failed to load configuration")
	ErrInvalidIconRef  = errors.New("invalid icon reference")
	ErrInvalidIconSize = errors.New("invalid icon size")

	// History errors.
	ErrHistoryStorage = errors.New("failed to access history store")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
