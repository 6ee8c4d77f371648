package harness

import (
	"github.com/roach88/bindgen/internal/analysis"
	"github.com/roach88/bindgen/internal/bindgen"
	"github.com/roach88/bindgen/internal/store"
)

// PlanSnapshot is the analysis outcome of a scenario.
type PlanSnapshot struct {
	Defs  []string        `json:"defs"`
	Recs  []string        `json:"recs"`
	Swaps []analysis.Swap `json:"swaps,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all assertions match.
	Pass bool `json:"pass"`

	// Plan is nil when generation failed as expected.
	Plan *PlanSnapshot `json:"plan,omitempty"`

	// Artifacts holds what the cache returned for the run.
	Artifacts *bindgen.Result `json:"artifacts,omitempty"`

	// Err is the generation error, if any.
	Err error `json:"-"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Artifact returns the artifact of the given kind.
func (r *Result) Artifact(kind string) (string, bool) {
	if r.Artifacts == nil {
		return "", false
	}
	switch kind {
	case store.KindDeclarationsJS:
		return r.Artifacts.DeclarationsJS, true
	case store.KindDeclarationsTypeScript:
		return r.Artifacts.DeclarationsTypeScript, true
	case store.KindDeclarationsTS:
		return r.Artifacts.DeclarationsTS, true
	case store.KindInterfaceTS:
		return r.Artifacts.InterfaceTS, true
	case store.KindServiceTS:
		return r.Artifacts.ServiceTS, true
	}
	return "", false
}
