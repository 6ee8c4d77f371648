package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bindgen/internal/store"
)

// Scenario defines one generation test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Program is the path of the program document. Relative paths are
	// resolved against the scenario file's directory.
	Program string `yaml:"program"`

	// Service overrides the service name derived from Program.
	Service string `yaml:"service,omitempty"`

	// Options are the generation switches.
	Options ScenarioOptions `yaml:"options,omitempty"`

	// ExpectError names the error generation must fail with:
	// "unresolved_reference" or "unsupported_actor_shape".
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions validate the plan and the artifacts.
	Assertions []Assertion `yaml:"assertions"`
}

// ScenarioOptions mirror the generation-relevant configuration keys.
type ScenarioOptions struct {
	RootExports bool `yaml:"root_exports,omitempty"`
}

// Assertion validates one artifact or the plan.
type Assertion struct {
	// Type specifies the assertion type:
	// - "artifact_contains": Check text appears in the artifact
	// - "artifact_absent": Check text does not appear in the artifact
	// - "artifact_order": Check texts appear in order
	// - "artifact_count": Check text appears exactly Count times
	// - "plan": Compare the Definition List and markers
	Type string `yaml:"type"`

	// Artifact is the artifact kind (all artifact_* assertions).
	Artifact string `yaml:"artifact,omitempty"`

	// Text is the expected substring (contains, absent, count).
	Text string `yaml:"text,omitempty"`

	// Texts is the expected order (artifact_order).
	Texts []string `yaml:"texts,omitempty"`

	// Count is the expected number of occurrences (artifact_count).
	Count int `yaml:"count,omitempty"`

	// Defs is the expected Definition List (plan). Nil skips the check.
	Defs []string `yaml:"defs,omitempty"`

	// Recs are the expected markers in sorted order (plan). Nil skips
	// the check.
	Recs []string `yaml:"recs,omitempty"`
}

// Assertion type constants.
const (
	AssertArtifactContains = "artifact_contains"
	AssertArtifactAbsent   = "artifact_absent"
	AssertArtifactOrder    = "artifact_order"
	AssertArtifactCount    = "artifact_count"
	AssertPlan             = "plan"
)

// Expected error names.
const (
	ErrorUnresolvedReference   = "unresolved_reference"
	ErrorUnsupportedActorShape = "unsupported_actor_shape"
)

var artifactKinds = map[string]bool{
	store.KindDeclarationsJS:         true,
	store.KindDeclarationsTypeScript: true,
	store.KindDeclarationsTS:         true,
	store.KindInterfaceTS:            true,
	store.KindServiceTS:              true,
}

// LoadScenario reads and parses a scenario YAML file, resolving the
// program path against the file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Program != "" && !filepath.IsAbs(scenario.Program) {
		scenario.Program = filepath.Join(filepath.Dir(path), scenario.Program)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Program == "" {
		return fmt.Errorf("program is required")
	}
	if _, err := os.Stat(s.Program); os.IsNotExist(err) {
		return fmt.Errorf("program file not found: %s", s.Program)
	}

	switch s.ExpectError {
	case "", ErrorUnresolvedReference, ErrorUnsupportedActorShape:
	default:
		return fmt.Errorf("unknown expect_error %q", s.ExpectError)
	}

	if s.ExpectError == "" && len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required unless expect_error is set")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertArtifactContains, AssertArtifactAbsent, AssertArtifactCount:
		if err := validateArtifact(index, a); err != nil {
			return err
		}
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
		if a.Type == AssertArtifactCount && a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for artifact_count", index)
		}
	case AssertArtifactOrder:
		if err := validateArtifact(index, a); err != nil {
			return err
		}
		if len(a.Texts) < 2 {
			return fmt.Errorf("assertions[%d]: artifact_order needs at least two texts", index)
		}
	case AssertPlan:
		if a.Defs == nil && a.Recs == nil {
			return fmt.Errorf("assertions[%d]: plan needs defs or recs", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func validateArtifact(index int, a *Assertion) error {
	if !artifactKinds[a.Artifact] {
		return fmt.Errorf("assertions[%d]: unknown artifact %q", index, a.Artifact)
	}
	return nil
}
