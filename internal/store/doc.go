// Package store implements a hierarchical key-value store with per-field
// read/write permissions and colon-delimited path addressing.
//
// A Store maps string keys to Values: primitives, arrays, objects, nested
// Stores, or lazily-evaluated Thunks. Paths such as "user:profile:name"
// walk through whatever containers they meet.
//
// # Permission model
//
// Each Store is built from a Definition, which carries the permissions
// declared for its fields at definition time. A field without a
// declaration falls back to the store's DefaultPolicy. Read and Write
// check only the first segment of a path; deeper segments within the same
// store are part of the same authorized access.
//
// # Delegation boundary
//
// When the first path segment names a field holding a nested Store and
// more segments remain, the operation is delegated to that store with the
// remaining path. The outer store performs no permission check in that
// case: authorization belongs entirely to the nested store, governed by
// its own definition and default policy.
//
// # Lazy values
//
// A Thunk stored as a value is invoked automatically on read, at any
// nesting depth. If the path continues past the thunk, traversal proceeds
// into its return value.
//
// # Writes
//
// Writing through an absent intermediate field creates an empty Object in
// its place (auto-vivification). The leaf assignment overwrites whatever
// was there, with no merge semantics.
//
// The store is synchronous and single-threaded: no operation blocks, and
// callers sharing a store across goroutines must serialize access
// themselves.
package store
