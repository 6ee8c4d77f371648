package analysis

import (
	"github.com/roach88/bindgen/internal/idl"
)

// Swap records one marker move from a Func to the Service exposing it.
type Swap struct {
	Func    string `json:"func"`
	Service string `json:"service"`
}

// OptimizeRecs moves recursion markers off functions that form a
// two-member cycle with a service. A service's method table must hold
// concrete function values, while a function's argument and result
// positions accept a placeholder, so the service becomes the forward
// declaration instead.
//
// For each marked Func F (sorted order), the first Service S in defs
// order that is unmarked, lists Var(F) as a method and is referenced
// directly by F's args or rets is claimed. A service is claimed at most
// once. F is unmarked and S is marked. When S precedes F, S moves to
// just after F; everything between them was chased as a dependency and
// keeps its place ahead of F.
//
// The inputs are not modified.
func OptimizeRecs(env *idl.Env, defs []string, recs Set) ([]string, Set, []Swap) {
	outDefs := make([]string, len(defs))
	copy(outDefs, defs)
	outRecs := recs.Clone()

	claimed := map[string]bool{}
	var swaps []Swap
	for _, rec := range recs.Sorted() {
		t, ok := env.Lookup(rec)
		if !ok {
			continue
		}
		fn, ok := t.(idl.Func)
		if !ok {
			continue
		}
		svc, ok := findServiceInCycle(env, defs, recs, claimed, rec, fn)
		if !ok {
			continue
		}
		claimed[svc] = true
		swaps = append(swaps, Swap{Func: rec, Service: svc})
	}

	for _, s := range swaps {
		outRecs.Remove(s.Func)
		outRecs.Add(s.Service)
		fp, sp := indexOf(outDefs, s.Func), indexOf(outDefs, s.Service)
		if fp > sp {
			outDefs = moveAfter(outDefs, sp, fp)
		}
	}
	return outDefs, outRecs, swaps
}

func findServiceInCycle(env *idl.Env, defs []string, recs Set, claimed map[string]bool, fnName string, fn idl.Func) (string, bool) {
	for _, name := range defs {
		if recs.Has(name) || claimed[name] {
			continue
		}
		t, ok := env.Lookup(name)
		if !ok {
			continue
		}
		svc, ok := t.(idl.Service)
		if !ok || !listsMethod(svc, fnName) {
			continue
		}
		if refersDirectly(fn, name) {
			return name, true
		}
	}
	return "", false
}

func listsMethod(svc idl.Service, fnName string) bool {
	for _, m := range svc.Methods {
		if v, ok := m.Type.(idl.Var); ok && v.Name == fnName {
			return true
		}
	}
	return false
}

func refersDirectly(fn idl.Func, svcName string) bool {
	for _, t := range append(append([]idl.Type{}, fn.Args...), fn.Rets...) {
		if v, ok := t.(idl.Var); ok && v.Name == svcName {
			return true
		}
	}
	return false
}

func indexOf(list []string, name string) int {
	for i, n := range list {
		if n == name {
			return i
		}
	}
	return -1
}

// moveAfter moves list[from] to just after list[to], where from < to.
func moveAfter(list []string, from, to int) []string {
	name := list[from]
	copy(list[from:to], list[from+1:to+1])
	list[to] = name
	return list
}
