package harness

import (
	"fmt"
	"strings"

	"github.com/ThomasAtome/technical-assignment-store/internal/store"
)

// checkAssertion dispatches one assertion against a completed result.
func checkAssertion(result *Result, index int, a *Assertion) error {
	switch a.Type {
	case AssertTraceContains:
		return assertTraceContains(result, index, a)
	case AssertTraceOrder:
		return assertTraceOrder(result, index, a)
	case AssertTraceCount:
		return assertTraceCount(result, index, a)
	case AssertFinalValue:
		return assertFinalValue(result, index, a)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
}

// assertTraceContains checks that at least one trace event matches the
// assertion's op, path, and outcome. Empty path or outcome matches any.
func assertTraceContains(result *Result, index int, a *Assertion) error {
	for _, event := range result.Trace {
		if event.Op != a.Op {
			continue
		}
		if a.Path != "" && event.Path != a.Path {
			continue
		}
		if a.Outcome != "" && event.Outcome != a.Outcome {
			continue
		}
		return nil
	}
	return fmt.Errorf("assertions[%d]: trace does not contain op=%s path=%s outcome=%s", index, a.Op, a.Path, a.Outcome)
}

// assertTraceOrder checks that the listed "op path" pairs appear in the
// trace in the given relative order, other events permitted between.
func assertTraceOrder(result *Result, index int, a *Assertion) error {
	next := 0
	for _, event := range result.Trace {
		if next >= len(a.Steps) {
			break
		}
		if eventKey(event) == a.Steps[next] {
			next++
		}
	}
	if next < len(a.Steps) {
		return fmt.Errorf("assertions[%d]: trace order not satisfied: missing %q (matched %d of %d)", index, a.Steps[next], next, len(a.Steps))
	}
	return nil
}

// eventKey renders an event as the "op path" form trace_order matches on.
func eventKey(event TraceEvent) string {
	if event.Path == "" {
		return event.Op
	}
	return event.Op + " " + event.Path
}

// assertTraceCount checks that an op appears exactly Count times.
func assertTraceCount(result *Result, index int, a *Assertion) error {
	count := 0
	for _, event := range result.Trace {
		if event.Op == a.Op {
			count++
		}
	}
	if count != a.Count {
		return fmt.Errorf("assertions[%d]: op %s appears %d times, expected %d", index, a.Op, count, a.Count)
	}
	return nil
}

// assertFinalValue walks the flattened final document along the path and
// compares the value found by canonical JSON. The walk is permission-free
// since the document is already flattened.
func assertFinalValue(result *Result, index int, a *Assertion) error {
	var current store.Value = result.FinalDoc
	for _, segment := range strings.Split(a.Path, store.PathSeparator) {
		obj, ok := current.(store.Object)
		if !ok {
			return fmt.Errorf("assertions[%d]: path %q does not resolve in final document", index, a.Path)
		}
		current, ok = obj[segment]
		if !ok {
			return fmt.Errorf("assertions[%d]: path %q not present in final document", index, a.Path)
		}
	}

	want, err := valueFromYAML(a.Expect)
	if err != nil {
		return fmt.Errorf("assertions[%d]: expect value: %w", index, err)
	}
	wantJSON, err := store.MarshalCanonical(want)
	if err != nil {
		return fmt.Errorf("assertions[%d]: expect value: %w", index, err)
	}
	gotJSON, err := store.MarshalCanonical(current)
	if err != nil {
		return fmt.Errorf("assertions[%d]: final value at %q: %w", index, a.Path, err)
	}
	if string(wantJSON) != string(gotJSON) {
		return fmt.Errorf("assertions[%d]: final value at %q is %s, expected %s", index, a.Path, gotJSON, wantJSON)
	}
	return nil
}
