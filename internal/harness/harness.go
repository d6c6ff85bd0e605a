package harness

import (
	"fmt"

	"github.com/ThomasAtome/technical-assignment-store/internal/cli"
	"github.com/ThomasAtome/technical-assignment-store/internal/store"
)

// TraceEvent records one executed step.
type TraceEvent struct {
	// Seq is the 1-based step number.
	Seq int `json:"seq"`

	// Op is the step operation: read, write, or entries.
	Op string `json:"op"`

	// Path is the step path, empty for entries.
	Path string `json:"path,omitempty"`

	// Outcome is "ok" or "denied".
	Outcome string `json:"outcome"`

	// Value is the canonical JSON of the step result when the outcome is
	// ok: the value read, the value written, or the entries snapshot.
	Value string `json:"value,omitempty"`

	// Error is the error message when the outcome is denied.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every step expectation and every assertion held.
	Pass bool

	// Errors collects expectation and assertion failures.
	Errors []error

	// Trace holds one event per executed step.
	Trace []TraceEvent

	// FinalDoc is the flattened document after the last step.
	FinalDoc store.Object

	// SnapshotHash is the domain-separated hash of FinalDoc.
	SnapshotHash string
}

// Run executes a scenario: loads its definitions, binds the initial
// document, applies each step, and checks expectations and assertions.
// Returns an error only for scenario-level failures (bad definitions,
// malformed document); step failures are reported through Result.
func Run(scenario *Scenario) (*Result, error) {
	loadResult, loadErrors := cli.LoadDefinitions(scenario.Defs, cli.LoadModeFailFast)
	if len(loadErrors) > 0 {
		return nil, fmt.Errorf("loading definitions: %w", loadErrors[0])
	}
	defs, err := cli.BuildDefinitions(loadResult.Definitions)
	if err != nil {
		return nil, fmt.Errorf("compiling definitions: %w", err)
	}
	if !defs.Has(scenario.Store) {
		return nil, fmt.Errorf("no store definition named %q in %s", scenario.Store, scenario.Defs)
	}

	docValue, err := valueFromYAML(scenario.Document)
	if err != nil {
		return nil, fmt.Errorf("scenario document: %w", err)
	}
	doc, ok := docValue.(store.Object)
	if !ok {
		doc = store.Object{}
	}

	bound, err := defs.Bind(scenario.Store, doc)
	if err != nil {
		return nil, fmt.Errorf("binding document: %w", err)
	}

	result := &Result{Pass: true}
	for i, step := range scenario.Steps {
		event, stepErr := runStep(bound, i+1, step)
		if stepErr != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, stepErr)
		}
		result.Trace = append(result.Trace, event)
		if err := checkExpectation(i, step, event); err != nil {
			result.Pass = false
			result.Errors = append(result.Errors, err)
		}
	}

	flat, err := cli.Flatten(bound)
	if err != nil {
		return nil, fmt.Errorf("flattening final document: %w", err)
	}
	result.FinalDoc, err = store.ObjectFromJSON([]byte(flat))
	if err != nil {
		return nil, fmt.Errorf("parsing final document: %w", err)
	}
	result.SnapshotHash, err = store.SnapshotHash(result.FinalDoc)
	if err != nil {
		return nil, fmt.Errorf("hashing final document: %w", err)
	}

	for i, assertion := range scenario.Assertions {
		if err := checkAssertion(result, i, &assertion); err != nil {
			result.Pass = false
			result.Errors = append(result.Errors, err)
		}
	}

	return result, nil
}

// runStep applies one step and records its trace event. A permission
// denial is an event outcome, not a run failure; anything else that goes
// wrong aborts the scenario.
func runStep(bound *store.Store, seq int, step Step) (TraceEvent, error) {
	event := TraceEvent{Seq: seq, Op: step.Op, Path: step.Path}

	var v store.Value
	var opErr error
	switch step.Op {
	case OpRead:
		v, opErr = bound.Read(step.Path)
	case OpWrite:
		var val store.Value
		val, opErr = valueFromYAML(step.Value)
		if opErr != nil {
			return event, opErr
		}
		v, opErr = bound.Write(step.Path, val)
	case OpEntries:
		entries := bound.Entries()
		obj := make(store.Object, len(entries))
		for k, ev := range entries {
			obj[k] = ev
		}
		v = obj
	}

	if opErr != nil {
		if !store.IsPermissionDenied(opErr) {
			return event, opErr
		}
		event.Outcome = "denied"
		event.Error = opErr.Error()
		return event, nil
	}

	rendered, err := store.MarshalCanonical(v)
	if err != nil {
		return event, fmt.Errorf("rendering result: %w", err)
	}
	event.Outcome = "ok"
	event.Value = string(rendered)
	return event, nil
}

// checkExpectation validates one step's expect/expect_error clause
// against its trace event.
func checkExpectation(index int, step Step, event TraceEvent) error {
	if step.ExpectError != "" {
		if event.Outcome != "denied" {
			return fmt.Errorf("steps[%d]: expected %s, got outcome %s (value %s)", index, step.ExpectError, event.Outcome, event.Value)
		}
		return nil
	}
	if event.Outcome != "ok" {
		return fmt.Errorf("steps[%d]: unexpected denial: %s", index, event.Error)
	}
	if step.Expect == nil {
		return nil
	}

	want, err := valueFromYAML(step.Expect.Value)
	if err != nil {
		return fmt.Errorf("steps[%d]: expect value: %w", index, err)
	}
	wantJSON, err := store.MarshalCanonical(want)
	if err != nil {
		return fmt.Errorf("steps[%d]: expect value: %w", index, err)
	}
	if string(wantJSON) != event.Value {
		return fmt.Errorf("steps[%d]: expected %s, got %s", index, wantJSON, event.Value)
	}
	return nil
}

// valueFromYAML converts a decoded YAML value into a store Value.
// YAML integers and floats both map to Number.
func valueFromYAML(raw interface{}) (store.Value, error) {
	switch v := raw.(type) {
	case nil:
		return store.Null{}, nil
	case bool:
		return store.Bool(v), nil
	case string:
		return store.String(v), nil
	case int:
		return store.Number(v), nil
	case int64:
		return store.Number(v), nil
	case uint64:
		return store.Number(v), nil
	case float64:
		return store.Number(v), nil
	case []interface{}:
		arr := make(store.Array, len(v))
		for i, elem := range v {
			converted, err := valueFromYAML(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = converted
		}
		return arr, nil
	case map[string]interface{}:
		obj := make(store.Object, len(v))
		for k, elem := range v {
			converted, err := valueFromYAML(elem)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", k, err)
			}
			obj[k] = converted
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported YAML value type %T", raw)
	}
}
