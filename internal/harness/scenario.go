package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance test: a defs directory, an initial
// document, and a sequence of store operations with expected outcomes.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Defs is the directory of CUE store definitions, relative to the
	// scenario file unless absolute.
	Defs string `yaml:"defs"`

	// Store names the root store definition the document binds under.
	Store string `yaml:"store"`

	// Session is the fixed session token recorded in the trace.
	// Defaults to "harness-session" for deterministic golden comparison.
	Session string `yaml:"session,omitempty"`

	// Document is the initial document body. May be empty.
	Document map[string]interface{} `yaml:"document,omitempty"`

	// Steps are executed in order against the bound store.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and document.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one store operation in a scenario.
type Step struct {
	// Op is "read", "write", or "entries".
	Op string `yaml:"op"`

	// Path is the colon-delimited store path (unused by entries).
	Path string `yaml:"path,omitempty"`

	// Value is the value to write (write only).
	Value interface{} `yaml:"value,omitempty"`

	// Expect validates the step result. Nil skips validation.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// ExpectError names the error the step must fail with.
	// Supported: "permission-denied".
	ExpectError string `yaml:"expect_error,omitempty"`
}

// ExpectClause specifies the expected result of a step.
type ExpectClause struct {
	// Value is compared against the step result by canonical JSON.
	Value interface{} `yaml:"value"`
}

// Assertion validates the trace or the final document.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Op is the operation name (trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Path is the operation path (trace_contains, final_value).
	Path string `yaml:"path,omitempty"`

	// Outcome is "ok" or "denied" (trace_contains). Empty matches any.
	Outcome string `yaml:"outcome,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Steps lists "op path" pairs in expected relative order
	// (trace_order).
	Steps []string `yaml:"steps,omitempty"`

	// Expect is the expected value (final_value), compared by canonical
	// JSON against the flattened final document.
	Expect interface{} `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalValue    = "final_value"
)

// Step operation constants.
const (
	OpRead    = "read"
	OpWrite   = "write"
	OpEntries = "entries"
)

// ErrorPermissionDenied is the expect_error name for denied access.
const ErrorPermissionDenied = "permission-denied"

// DefaultSession is the session token used when a scenario omits one.
const DefaultSession = "harness-session"

// LoadScenario reads and parses a scenario YAML file. The defs path is
// resolved relative to the scenario file. Unknown YAML fields are
// rejected, which catches typos like "assertion:" for "assertions:".
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	if scenario.Defs != "" && !filepath.IsAbs(scenario.Defs) {
		scenario.Defs = filepath.Join(filepath.Dir(path), scenario.Defs)
	}
	if scenario.Session == "" {
		scenario.Session = DefaultSession
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks required fields and assertion shapes.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Defs == "" {
		return fmt.Errorf("defs directory is required")
	}
	if info, err := os.Stat(s.Defs); err != nil || !info.IsDir() {
		return fmt.Errorf("defs directory not found: %s", s.Defs)
	}
	if s.Store == "" {
		return fmt.Errorf("store is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		switch step.Op {
		case OpRead, OpWrite:
			if step.Path == "" {
				return fmt.Errorf("steps[%d]: path is required for %s", i, step.Op)
			}
		case OpEntries:
			if step.Path != "" {
				return fmt.Errorf("steps[%d]: entries takes no path", i)
			}
		default:
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Expect != nil && step.ExpectError != "" {
			return fmt.Errorf("steps[%d]: expect and expect_error are mutually exclusive", i)
		}
		if step.ExpectError != "" && step.ExpectError != ErrorPermissionDenied {
			return fmt.Errorf("steps[%d]: unknown expect_error %q", i, step.ExpectError)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Steps) == 0 {
			return fmt.Errorf("assertions[%d]: steps list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalValue:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for final_value", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
