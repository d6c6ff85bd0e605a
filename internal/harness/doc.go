// Package harness provides conformance testing for permissioned store
// definitions.
//
// The harness loads CUE store definitions, binds an initial document,
// executes a scenario of read/write/entries steps, and validates the
// resulting trace.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	defs: path/to/defs-dir
//	store: user
//	session: fixed-session-0001
//	document:
//	  name: alice
//	steps:
//	  - op: write
//	    path: profile:displayName
//	    value: Alice
//	  - op: read
//	    path: profile:displayName
//	    expect:
//	      value: Alice
//	  - op: read
//	    path: ssn
//	    expect_error: permission-denied
//	assertions:
//	  - type: trace_count
//	    op: read
//	    count: 2
//	  - type: final_value
//	    path: profile:displayName
//	    expect: Alice
//
// # Assertion Types
//
//   - trace_contains: one step with matching op, path, and outcome exists
//   - trace_order: "op path" pairs appear in the given relative order
//   - trace_count: an op appears exactly N times
//   - final_value: the flattened final document holds the value at a path
//
// # Deterministic Testing
//
// Scenarios carry a fixed session token and execute against a freshly
// bound store, so identical runs produce identical traces for golden
// file comparison.
package harness
