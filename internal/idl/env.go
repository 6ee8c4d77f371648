package idl

import "sort"

// Env is an immutable mapping from declaration name to type.
type Env struct {
	defs  map[string]Type
	names []string
}

// NewEnv copies defs into a new environment.
func NewEnv(defs map[string]Type) *Env {
	e := &Env{
		defs:  make(map[string]Type, len(defs)),
		names: make([]string, 0, len(defs)),
	}
	for name, t := range defs {
		e.defs[name] = t
		e.names = append(e.names, name)
	}
	sort.Strings(e.names)
	return e
}

// Names returns the declaration names in sorted order.
func (e *Env) Names() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Len returns the number of declarations.
func (e *Env) Len() int {
	if e == nil {
		return 0
	}
	return len(e.names)
}

// Lookup returns the definition of name.
func (e *Env) Lookup(name string) (Type, bool) {
	if e == nil {
		return nil, false
	}
	t, ok := e.defs[name]
	return t, ok
}

// Trace follows Var references until it reaches a structural type.
// It returns false for an undeclared name or a reference loop made
// only of Vars.
func (e *Env) Trace(t Type) (Type, bool) {
	seen := map[string]bool{}
	for {
		v, ok := t.(Var)
		if !ok {
			return t, true
		}
		if seen[v.Name] {
			return nil, false
		}
		seen[v.Name] = true
		next, ok := e.Lookup(v.Name)
		if !ok {
			return nil, false
		}
		t = next
	}
}

// Program is one generation request: the environment, an optional actor
// and optional documentation.
type Program struct {
	Env   *Env
	Actor Type
	Docs  *Docs
}

// HasActor reports whether the program declares an actor.
func (p *Program) HasActor() bool {
	return p != nil && p.Actor != nil
}
