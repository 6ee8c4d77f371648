package analysis

import (
	"github.com/roach88/bindgen/internal/idl"
)

// Plan is the emission plan for one pass: the Definition List, the
// recursion markers after optimization and the swaps applied.
type Plan struct {
	Defs  []string `json:"defs"`
	Recs  Set      `json:"-"`
	Swaps []Swap   `json:"swaps,omitempty"`
}

// IsRec reports whether name needs a forward declaration.
func (p *Plan) IsRec(name string) bool {
	return p.Recs.Has(name)
}

func plan(env *idl.Env, defs []string) (*Plan, error) {
	recs, err := InferRec(env, defs)
	if err != nil {
		return nil, err
	}
	defs, recs, swaps := OptimizeRecs(env, defs, recs)
	return &Plan{Defs: defs, Recs: recs, Swaps: swaps}, nil
}

// PlanActor plans the declarations reachable from an actor.
func PlanActor(env *idl.Env, actor idl.Type) (*Plan, error) {
	defs, err := ChaseActor(env, actor)
	if err != nil {
		return nil, err
	}
	return plan(env, defs)
}

// PlanTypes plans the declarations reachable from a list of types.
func PlanTypes(env *idl.Env, types []idl.Type) (*Plan, error) {
	defs, err := ChaseTypes(env, types)
	if err != nil {
		return nil, err
	}
	return plan(env, defs)
}

// PlanAll plans every declaration in the environment.
func PlanAll(env *idl.Env) (*Plan, error) {
	defs, err := ChaseAll(env)
	if err != nil {
		return nil, err
	}
	return plan(env, defs)
}
