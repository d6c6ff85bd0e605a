package store

import (
	"strconv"
	"strings"
)

// Read resolves a colon-delimited path and returns the value found there.
//
// When the first segment names a field holding a nested Store and more
// segments remain, the read is delegated to that store with the rest of
// the path and no permission check happens at this level. Otherwise the
// first segment must pass AllowedToRead; the remaining segments are then
// walked through whatever containers they meet, with no further checks.
//
// A missing field at any depth reads as nil, never an error. A Thunk met
// anywhere along the path is invoked and its result used in its place.
func (s *Store) Read(path string) (Value, error) {
	segments := splitPath(path)
	head, rest := segments[0], segments[1:]

	if len(rest) > 0 {
		if nested, ok := s.fields[head].(*Store); ok {
			return nested.Read(strings.Join(rest, PathSeparator))
		}
	}

	if !s.AllowedToRead(head) {
		return nil, &PermissionDeniedError{Op: "read", Store: s.storeName(), Field: head}
	}

	return readPath(s, segments), nil
}

// readPath walks one segment per step through stores, objects, arrays,
// and thunk results. Nested stores met past the first segment are
// traversed like plain containers: the boundary crossing was already
// authorized, so their fields are walked directly.
func readPath(current Value, segments []string) Value {
	k, rest := segments[0], segments[1:]
	child := indexValue(current, k)

	switch v := child.(type) {
	case *Store:
		if len(rest) == 0 {
			return v
		}
		return readPath(v, rest)
	case Thunk:
		if len(rest) == 0 {
			return force(v())
		}
		return readPath(v(), rest)
	default:
		if len(rest) == 0 {
			return child
		}
		return readPath(child, rest)
	}
}

// force collapses chained thunks so a read never returns a function.
func force(v Value) Value {
	for {
		t, ok := v.(Thunk)
		if !ok {
			return v
		}
		v = t()
	}
}

// indexValue resolves one segment against a container. Anything that is
// not a container, or an absent key, yields nil.
func indexValue(current Value, key string) Value {
	switch c := current.(type) {
	case *Store:
		return c.fields[key]
	case Object:
		return c[key]
	case Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(c) {
			return nil
		}
		return c[i]
	default:
		return nil
	}
}
