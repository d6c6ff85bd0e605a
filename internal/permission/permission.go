package permission

// Permission is a declared access level for a store field.
type Permission string

const (
	// ReadOnly allows reads and forbids writes.
	ReadOnly Permission = "read-only"

	// WriteOnly allows writes and forbids reads.
	WriteOnly Permission = "write-only"

	// ReadWrite allows both reads and writes.
	ReadWrite Permission = "read-write"

	// None forbids both reads and writes.
	None Permission = "none"
)

// Parse converts a raw declaration string into a Permission.
// The empty string normalizes to None (a declaration with no value).
// Any other unrecognized value returns InvalidPermissionError.
func Parse(s string) (Permission, error) {
	switch Permission(s) {
	case ReadOnly, WriteOnly, ReadWrite, None:
		return Permission(s), nil
	case "":
		return None, nil
	default:
		return "", &InvalidPermissionError{Value: s}
	}
}

// Validate checks that p is one of the four defined levels.
func (p Permission) Validate() error {
	switch p {
	case ReadOnly, WriteOnly, ReadWrite, None:
		return nil
	default:
		return &InvalidPermissionError{Value: string(p)}
	}
}

// CanRead reports whether the level permits reading.
func (p Permission) CanRead() bool {
	return p == ReadOnly || p == ReadWrite
}

// CanWrite reports whether the level permits writing.
func (p Permission) CanWrite() bool {
	return p == WriteOnly || p == ReadWrite
}
