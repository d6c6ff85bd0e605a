package store

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the types a store field can hold.
// Only Null, String, Number, Bool, Array, Object, Thunk, and *Store
// implement it. An absent field is represented by a nil Value, which is
// distinct from Null (an explicitly stored JSON null).
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents an explicitly stored JSON null.
type Null struct{}

func (Null) value() {}

// String represents a string value.
type String string

func (String) value() {}

// Number represents a JSON number. Stored as float64, matching the JSON
// data model.
type Number float64

func (Number) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Array represents an ordered sequence of Values. Elements are addressed
// in paths by base-10 index segments.
type Array []Value

func (Array) value() {}

// Object represents a plain mapping from string keys to Values. Unlike a
// nested *Store, an Object carries no permissions of its own: traversal
// into it is covered by the authorization already granted for the path's
// first segment.
type Object map[string]Value

func (Object) value() {}

// Thunk is a zero-argument function stored as a value. Reads invoke it
// automatically and use its result; writes overwrite it like any other
// value.
type Thunk func() Value

func (Thunk) value() {}

// SortedKeys returns the object's keys in UTF-16 code unit order
// (RFC 8785), used wherever deterministic iteration is required.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required by
// RFC 8785 canonical JSON. Go's native string comparison is UTF-8 and
// produces a different order for strings outside the basic plane.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}
