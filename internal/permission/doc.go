// Package permission defines the access levels a store field can carry.
//
// A field is declared with exactly one of four levels:
//
//   - read-only: readable, not writable
//   - write-only: writable, not readable
//   - read-write: both
//   - none: neither
//
// Declarations are optional. A field without a declaration falls back to
// its store's default policy, which is itself one of the four levels.
//
// Validation is eager: an unrecognized level is rejected at declaration
// time with InvalidPermissionError, never silently defaulted.
package permission
