package store

import (
	"errors"
	"fmt"
)

// PermissionDeniedError reports a read or write attempted on a field
// whose effective permission forbids that operation. It propagates
// synchronously from the call that attempted the access; the store never
// retries or recovers on the caller's behalf.
type PermissionDeniedError struct {
	// Op is the denied operation, "read" or "write".
	Op string

	// Store names the store definition owning the field, when known.
	Store string

	// Field is the path segment whose permission denied the access.
	Field string
}

// Error implements the error interface.
func (e *PermissionDeniedError) Error() string {
	if e.Store != "" {
		return fmt.Sprintf("permission denied: cannot %s field %q on store %q", e.Op, e.Field, e.Store)
	}
	return fmt.Sprintf("permission denied: cannot %s field %q", e.Op, e.Field)
}

// IsPermissionDenied reports whether err is a PermissionDeniedError.
// Uses errors.As to handle wrapped errors.
func IsPermissionDenied(err error) bool {
	var pe *PermissionDeniedError
	return errors.As(err, &pe)
}
