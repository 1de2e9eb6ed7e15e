package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across layers. Handlers translate these into
// HTTP status codes at the response boundary.
var (
	// ErrClubNotFound is returned by the conditional validate/reject
	// operations when no pending club matched the id. The caller cannot
	// tell an unknown id from an already-validated club, and does not
	// need to.
	ErrClubNotFound = errors.New("club not found or already validated")

	// ErrUserNotFound is returned when no user row matches a username.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both unknown username and wrong
	// password so login failures stay indistinguishable to the client.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound is returned when a session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError reports a structural problem with a create request.
// The message names the offending field and is safe to return to clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
