package harness

import (
	"fmt"
	"reflect"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Artifact string // Artifact kind, empty for plan assertions
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Artifact != "" {
		fmt.Fprintf(&buf, " (%s)", e.Artifact)
	}
	buf.WriteByte('\n')

	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	return buf.String()
}

func assertArtifactContains(text string, a Assertion) error {
	if strings.Contains(text, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Artifact: a.Artifact,
		Expected: fmt.Sprintf("text %q", a.Text),
		Actual:   "not found in artifact",
	}
}

func assertArtifactAbsent(text string, a Assertion) error {
	if !strings.Contains(text, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Artifact: a.Artifact,
		Expected: fmt.Sprintf("no occurrence of %q", a.Text),
		Actual:   fmt.Sprintf("found at offset %d", strings.Index(text, a.Text)),
	}
}

// assertArtifactOrder checks that texts occur in order. Each text is
// searched after the end of the previous match.
func assertArtifactOrder(text string, a Assertion) error {
	offset := 0
	for i, want := range a.Texts {
		idx := strings.Index(text[offset:], want)
		if idx < 0 {
			actual := "missing"
			if strings.Contains(text, want) {
				actual = fmt.Sprintf("appears before %q", a.Texts[i-1])
			}
			return &AssertionError{
				Type:     a.Type,
				Artifact: a.Artifact,
				Expected: fmt.Sprintf("texts in order: %q", a.Texts),
				Actual:   fmt.Sprintf("%q %s", want, actual),
			}
		}
		offset += idx + len(want)
	}
	return nil
}

func assertArtifactCount(text string, a Assertion) error {
	count := strings.Count(text, a.Text)
	if count == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Artifact: a.Artifact,
		Expected: fmt.Sprintf("%q exactly %d times", a.Text, a.Count),
		Actual:   fmt.Sprintf("found %d times", count),
	}
}

func assertPlan(plan *PlanSnapshot, a Assertion) error {
	if plan == nil {
		return &AssertionError{Type: a.Type, Expected: "a plan", Actual: "generation produced none"}
	}
	if a.Defs != nil && !reflect.DeepEqual(a.Defs, plan.Defs) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("defs %v", a.Defs),
			Actual:   fmt.Sprintf("defs %v", plan.Defs),
		}
	}
	if a.Recs != nil && !reflect.DeepEqual(a.Recs, nonNil(plan.Recs)) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("recs %v", a.Recs),
			Actual:   fmt.Sprintf("recs %v", plan.Recs),
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// EvaluateAssertions runs every assertion and returns the failure
// messages in order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		if a.Type == AssertPlan {
			err = assertPlan(result.Plan, a)
		} else {
			text, ok := result.Artifact(a.Artifact)
			if !ok {
				errs = append(errs, fmt.Sprintf("assertions[%d]: artifact %q not available", i, a.Artifact))
				continue
			}
			switch a.Type {
			case AssertArtifactContains:
				err = assertArtifactContains(text, a)
			case AssertArtifactAbsent:
				err = assertArtifactAbsent(text, a)
			case AssertArtifactOrder:
				err = assertArtifactOrder(text, a)
			case AssertArtifactCount:
				err = assertArtifactCount(text, a)
			default:
				err = fmt.Errorf("unknown assertion type %q", a.Type)
			}
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}
