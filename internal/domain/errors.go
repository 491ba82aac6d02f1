package domain

import (
	"errors" // Sentinel errors
	"fmt"    // Message formatting
)

// Error taxonomy shared by the server and the client
var (
	// ErrConflict is returned when an account with the same username already exists
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned for bad credentials or a missing/invalid token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when input fails validation
	ErrValidation = errors.New("validation failed")
)

// Error carries a user-facing message and classifies as one of the sentinels above
type Error struct {
	Kind    error  // One of the sentinel errors
	Message string // Message safe to show to the user
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel to errors.Is
func (e *Error) Unwrap() error {
	return e.Kind
}

// Errorf builds an Error of the given kind
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Message returns the user-facing text of err, or fallback for unclassified errors
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return fallback
}
