package store

import (
	"strconv"
	"strings"
)

// Write places value at a colon-delimited path and returns the value
// written.
//
// The delegation rule mirrors Read: a first segment holding a nested
// Store hands the remaining path to that store, unchecked at this level.
// Otherwise the first segment must pass AllowedToWrite.
//
// Absent intermediate fields are auto-vivified as empty Objects. The leaf
// assignment overwrites any prior value, functions and containers
// included; there are no merge semantics.
func (s *Store) Write(path string, value Value) (Value, error) {
	segments := splitPath(path)
	head, rest := segments[0], segments[1:]

	if len(rest) > 0 {
		if nested, ok := s.fields[head].(*Store); ok {
			return nested.Write(strings.Join(rest, PathSeparator), value)
		}
	}

	if !s.AllowedToWrite(head) {
		return nil, &PermissionDeniedError{Op: "write", Store: s.storeName(), Field: head}
	}

	writePath(s, segments, value)
	return value, nil
}

// writePath walks to the parent of the final segment, vivifying as it
// goes, then assigns. Nested stores met past the first segment are walked
// directly, under the same authorized access as the read side.
func writePath(current Value, segments []string, value Value) {
	k, rest := segments[0], segments[1:]

	if len(rest) == 0 {
		setIndex(current, k, value)
		return
	}

	child := indexValue(current, k)
	if nested, ok := child.(*Store); ok {
		writePath(nested, rest, value)
		return
	}
	if !isContainer(child) {
		// Auto-vivification: a non-container in the way is replaced by
		// an empty object.
		obj := Object{}
		setIndex(current, k, obj)
		child = obj
	}
	writePath(child, rest, value)
}

// isContainer reports whether v can hold further path segments.
func isContainer(v Value) bool {
	switch v.(type) {
	case *Store, Object, Array:
		return true
	default:
		return false
	}
}

// setIndex assigns one key on a container. Array assignment is in-range
// only; arrays are never grown or vivified by writes.
func setIndex(current Value, key string, value Value) {
	switch c := current.(type) {
	case *Store:
		c.fields[key] = value
	case Object:
		c[key] = value
	case Array:
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < len(c) {
			c[i] = value
		}
	}
}
