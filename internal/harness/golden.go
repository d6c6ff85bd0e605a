package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/ThomasAtome/technical-assignment-store/internal/store"
)

// snapshotObject renders a completed run as a canonicalizable document:
// the scenario name, its session token, the per-step trace, and the final
// snapshot hash.
func snapshotObject(scenario *Scenario, result *Result) store.Object {
	trace := make(store.Array, len(result.Trace))
	for i, event := range result.Trace {
		obj := store.Object{
			"seq":     store.Number(event.Seq),
			"op":      store.String(event.Op),
			"outcome": store.String(event.Outcome),
		}
		if event.Path != "" {
			obj["path"] = store.String(event.Path)
		}
		if event.Value != "" {
			obj["value"] = store.String(event.Value)
		}
		if event.Error != "" {
			obj["error"] = store.String(event.Error)
		}
		trace[i] = obj
	}

	return store.Object{
		"scenario_name": store.String(scenario.Name),
		"session":       store.String(scenario.Session),
		"trace":         trace,
		"snapshot_hash": store.String(result.SnapshotHash),
	}
}

// RunWithGolden executes a scenario, fails the test on any unmet step
// expectation or assertion, and compares the canonical-JSON trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("running scenario %s: %v", scenario.Name, err)
	}
	for _, failure := range result.Errors {
		t.Errorf("scenario %s: %v", scenario.Name, failure)
	}

	traceJSON, err := store.MarshalCanonical(snapshotObject(scenario, result))
	if err != nil {
		t.Fatalf("rendering trace for %s: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)
}
