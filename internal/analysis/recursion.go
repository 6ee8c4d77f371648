package analysis

import (
	"sort"

	"github.com/roach88/bindgen/internal/idl"
)

// InferRec returns the recursion markers for a Definition List: every
// name referenced before its own definition in defs order. A name that
// refers to itself is always marked.
//
// On a list produced by the chaser, dependencies outside a cycle are
// always defined first, so every marker lies on a cycle.
func InferRec(env *idl.Env, defs []string) (Set, error) {
	defined := make(map[string]bool, len(defs))
	recs := Set{}
	for _, name := range defs {
		t, ok := env.Lookup(name)
		if !ok {
			return nil, &UnresolvedReferenceError{Name: name, Referrer: name}
		}
		walkRefs(t, func(ref string) {
			if !defined[ref] {
				recs.Add(ref)
			}
		})
		defined[name] = true
	}
	return recs, nil
}

// walkRefs calls fn for every Var reachable from t without following
// references.
func walkRefs(t idl.Type, fn func(string)) {
	if v, ok := t.(idl.Var); ok {
		fn(v.Name)
		return
	}
	for _, child := range idl.Children(t) {
		walkRefs(child, fn)
	}
}

// refGraph maps declaration → declarations it refers to directly.
type refGraph map[string][]string

func buildRefGraph(env *idl.Env, defs []string) refGraph {
	inList := make(map[string]bool, len(defs))
	for _, n := range defs {
		inList[n] = true
	}
	graph := make(refGraph, len(defs))
	for _, name := range defs {
		graph[name] = []string{}
		t, ok := env.Lookup(name)
		if !ok {
			continue
		}
		seen := map[string]bool{}
		walkRefs(t, func(ref string) {
			if inList[ref] && !seen[ref] {
				seen[ref] = true
				graph[name] = append(graph[name], ref)
			}
		})
	}
	return graph
}

func hasSelfLoop(node string, graph refGraph) bool {
	for _, neighbor := range graph[node] {
		if neighbor == node {
			return true
		}
	}
	return false
}

// Groups returns the recursion groups of defs: strongly connected
// components of size > 1 plus self-referencing declarations. Members
// are sorted and groups are ordered by their first member.
func Groups(env *idl.Env, defs []string) [][]string {
	graph := buildRefGraph(env, defs)

	var groups [][]string
	for _, scc := range tarjanSCC(graph, defs) {
		if len(scc) > 1 || hasSelfLoop(scc[0], graph) {
			sort.Strings(scc)
			groups = append(groups, scc)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
// Nodes are visited in order, so the result is deterministic.
func tarjanSCC(graph refGraph, order []string) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range order {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}
