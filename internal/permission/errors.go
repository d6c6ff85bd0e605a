package permission

import (
	"errors"
	"fmt"
)

// InvalidPermissionError reports a declaration whose level is not one of
// read-only, write-only, read-write, none.
//
// It is raised at declaration time. A failed declaration registers
// nothing: the field keeps whatever state it had before the attempt.
type InvalidPermissionError struct {
	// Value is the rejected declaration string.
	Value string

	// Field names the field being declared, when known.
	Field string
}

// Error implements the error interface.
func (e *InvalidPermissionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid permission %q for field %q: must be read-only, write-only, read-write, or none", e.Value, e.Field)
	}
	return fmt.Sprintf("invalid permission %q: must be read-only, write-only, read-write, or none", e.Value)
}

// IsInvalidPermission reports whether err is an InvalidPermissionError.
// Uses errors.As to handle wrapped errors.
func IsInvalidPermission(err error) bool {
	var pe *InvalidPermissionError
	return errors.As(err, &pe)
}
