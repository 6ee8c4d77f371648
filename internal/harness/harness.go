package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/roach88/bindgen/internal/analysis"
	"github.com/roach88/bindgen/internal/bindgen"
	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/loader"
	"github.com/roach88/bindgen/internal/store"
)

// Harness is the test execution engine.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh in-memory cache for isolation.
//
// Execution flow:
// 1. Create fresh in-memory cache
// 2. Load the program document
// 3. Plan and generate, checking any expected error
// 4. Store the artifacts and read them back
// 5. Evaluate assertions against the plan and the cached artifacts
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	prog, err := loader.Load(scenario.Program)
	if err != nil {
		return nil, fmt.Errorf("failed to load program: %w", err)
	}

	service := scenario.Service
	if service == "" {
		service = bindgen.ServiceName(scenario.Program)
	}

	result := NewResult()
	artifacts, plan, genErr := h.generate(prog, service, scenario.Options)
	if genErr != nil {
		result.Err = genErr
		if err := checkExpectedError(scenario.ExpectError, genErr); err != nil {
			result.AddError(err.Error())
		}
		return result, nil
	}
	if scenario.ExpectError != "" {
		result.AddError(fmt.Sprintf("expected %s error, generation succeeded", scenario.ExpectError))
		return result, nil
	}
	result.Plan = plan

	key, err := store.KeyFor(prog, map[string]any{
		"service":      service,
		"root_exports": scenario.Options.RootExports,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute cache key: %w", err)
	}
	if _, err := h.store.Save(ctx, service, key, artifacts); err != nil {
		return nil, fmt.Errorf("failed to store artifacts: %w", err)
	}
	cached, _, ok, err := h.store.Lookup(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifacts: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("stored artifacts not found for %s", scenario.Name)
	}
	if *cached != *artifacts {
		result.AddError("cached artifacts differ from generated ones")
	}
	result.Artifacts = cached

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) generate(prog *idl.Program, service string, opts ScenarioOptions) (*bindgen.Result, *PlanSnapshot, error) {
	res, err := bindgen.Generate(prog, bindgen.Options{
		ServiceName: service,
		RootExports: opts.RootExports,
		Logger:      h.logger,
	})
	if err != nil {
		return nil, nil, err
	}

	var p *analysis.Plan
	if prog.HasActor() {
		p, err = analysis.PlanActor(prog.Env, prog.Actor)
	} else {
		p, err = analysis.PlanAll(prog.Env)
	}
	if err != nil {
		return nil, nil, err
	}
	return res, &PlanSnapshot{Defs: p.Defs, Recs: p.Recs.Sorted(), Swaps: p.Swaps}, nil
}

func checkExpectedError(expected string, err error) error {
	switch expected {
	case "":
		return fmt.Errorf("generation failed: %v", err)
	case ErrorUnresolvedReference:
		if !analysis.IsUnresolvedReference(err) {
			return fmt.Errorf("expected unresolved reference, got: %v", err)
		}
	case ErrorUnsupportedActorShape:
		if !errors.Is(err, analysis.ErrUnsupportedActorShape) {
			return fmt.Errorf("expected unsupported actor shape, got: %v", err)
		}
	}
	return nil
}
