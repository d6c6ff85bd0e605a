package store

import (
	"strings"

	"github.com/ThomasAtome/technical-assignment-store/internal/permission"
)

// PathSeparator delimits segments in a store path.
const PathSeparator = ":"

// Store is a dynamic record mapping string keys to Values, with per-field
// permissions resolved against its Definition and DefaultPolicy.
//
// A field whose value is itself a *Store is not owned for permission
// purposes: paths crossing into it are authorized entirely by the nested
// store's own definition and policy.
type Store struct {
	def    *Definition
	policy permission.Permission
	fields map[string]Value
}

func (*Store) value() {}

// New creates an empty Store governed by def and the given default
// policy. def may be nil for a store with no declarations.
func New(def *Definition, defaultPolicy permission.Permission) *Store {
	return &Store{
		def:    def,
		policy: defaultPolicy,
		fields: make(map[string]Value),
	}
}

// Definition returns the definition the store was built from, or nil.
func (s *Store) Definition() *Definition {
	return s.def
}

// DefaultPolicy returns the permission applied to undeclared fields.
func (s *Store) DefaultPolicy() permission.Permission {
	return s.policy
}

// AllowedToRead reports whether field may be read. A declared permission
// always overrides the default policy, regardless of its value.
func (s *Store) AllowedToRead(field string) bool {
	if p, ok := s.def.Lookup(field); ok {
		return p.CanRead()
	}
	return s.policy.CanRead()
}

// AllowedToWrite reports whether field may be written, symmetric with
// AllowedToRead.
func (s *Store) AllowedToWrite(field string) bool {
	if p, ok := s.def.Lookup(field); ok {
		return p.CanWrite()
	}
	return s.policy.CanWrite()
}

// WriteEntries assigns every entry as a top-level field, bypassing
// permission checks and path parsing. This is the bulk-load path: keys
// are taken literally, colons included.
func (s *Store) WriteEntries(entries map[string]Value) {
	for k, v := range entries {
		s.fields[k] = v
	}
}

// Entries returns the fields that both carry an explicit declaration and
// pass AllowedToRead. Undeclared fields are excluded even when the
// default policy would let Read return them; the snapshot is deliberately
// narrower than Read. Values are returned as stored (thunks unforced).
func (s *Store) Entries() map[string]Value {
	out := make(map[string]Value)
	if s.def == nil {
		return out
	}
	for _, field := range s.def.Fields() {
		if !s.AllowedToRead(field) {
			continue
		}
		if v, ok := s.fields[field]; ok {
			out[field] = v
		}
	}
	return out
}

// Field returns the raw value of a top-level field with no permission
// check and no thunk forcing. The second result reports presence.
func (s *Store) Field(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// SetField assigns a top-level field directly, bypassing permission
// checks. Construction-time population uses this; external callers go
// through Write.
func (s *Store) SetField(name string, v Value) {
	s.fields[name] = v
}

// FieldNames returns all field names currently present, sorted.
func (s *Store) FieldNames() []string {
	obj := make(Object, len(s.fields))
	for k, v := range s.fields {
		obj[k] = v
	}
	return obj.SortedKeys()
}

// storeName returns the definition name for error reporting.
func (s *Store) storeName() string {
	if s.def == nil {
		return ""
	}
	return s.def.Name()
}

// splitPath breaks a colon-delimited path into its segments.
func splitPath(path string) []string {
	return strings.Split(path, PathSeparator)
}
