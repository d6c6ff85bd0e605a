// Package docstore provides SQLite-backed persistence for the storectl
// CLI: named JSON document bodies plus an append-only log of the
// operations applied to them.
//
// The in-process permission store itself is purely in-memory; docstore
// only carries document bodies between CLI invocations and records what
// was done to them.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Log reads order by seq ASC, id ASC COLLATE BINARY so a session's trace
// is identical across runs.
package docstore
