package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/bindgen/internal/idl"
)

// Snapshot captures the plan and artifacts of a scenario execution.
type Snapshot struct {
	ScenarioName string
	Plan         *PlanSnapshot
	Artifacts    map[string]string
}

// toCanonicalMap converts a Snapshot to a map[string]any for canonical
// JSON serialization.
func (s *Snapshot) toCanonicalMap() map[string]any {
	out := map[string]any{"scenario_name": s.ScenarioName}
	if s.Plan != nil {
		swaps := make([]any, len(s.Plan.Swaps))
		for i, sw := range s.Plan.Swaps {
			swaps[i] = map[string]any{"func": sw.Func, "service": sw.Service}
		}
		out["plan"] = map[string]any{
			"defs":  anyStrings(s.Plan.Defs),
			"recs":  anyStrings(s.Plan.Recs),
			"swaps": swaps,
		}
	}
	artifacts := map[string]any{}
	for k, v := range s.Artifacts {
		artifacts[k] = v
	}
	out["artifacts"] = artifacts
	return out
}

func anyStrings(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func snapshotOf(name string, result *Result) *Snapshot {
	s := &Snapshot{ScenarioName: name, Plan: result.Plan, Artifacts: map[string]string{}}
	for kind := range artifactKinds {
		if text, ok := result.Artifact(kind); ok {
			s.Artifacts[kind] = text
		}
	}
	return s
}

// RunWithGolden executes a scenario and compares the plan and artifacts
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against its golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

// MarshalSnapshot renders the golden form of a result as canonical JSON.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	return idl.MarshalCanonical(snapshotOf(scenarioName, result).toCanonicalMap())
}
