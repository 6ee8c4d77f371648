package analysis

import (
	"github.com/roach88/bindgen/internal/idl"
)

// ReferrerActor names the actor root in UnresolvedReferenceError.
const ReferrerActor = "actor"

type chaser struct {
	env  *idl.Env
	seen map[string]bool
	defs []string
}

func newChaser(env *idl.Env) *chaser {
	return &chaser{env: env, seen: make(map[string]bool)}
}

// chase appends every declaration reachable from t, each after the
// declarations it depends on. A name is marked seen before its
// definition is walked, so cycles terminate.
func (c *chaser) chase(t idl.Type, referrer string) error {
	v, ok := t.(idl.Var)
	if !ok {
		for _, child := range idl.Children(t) {
			if err := c.chase(child, referrer); err != nil {
				return err
			}
		}
		return nil
	}

	if c.seen[v.Name] {
		return nil
	}
	c.seen[v.Name] = true

	def, ok := c.env.Lookup(v.Name)
	if !ok {
		return &UnresolvedReferenceError{Name: v.Name, Referrer: referrer}
	}
	if err := c.chase(def, v.Name); err != nil {
		return err
	}
	c.defs = append(c.defs, v.Name)
	return nil
}

// ChaseActor returns the Definition List reachable from an actor type.
func ChaseActor(env *idl.Env, actor idl.Type) ([]string, error) {
	c := newChaser(env)
	if err := c.chase(actor, ReferrerActor); err != nil {
		return nil, err
	}
	return c.defs, nil
}

// ChaseTypes returns the Definition List reachable from a list of types,
// such as the actor's constructor arguments.
func ChaseTypes(env *idl.Env, types []idl.Type) ([]string, error) {
	c := newChaser(env)
	for _, t := range types {
		if err := c.chase(t, ReferrerActor); err != nil {
			return nil, err
		}
	}
	return c.defs, nil
}

// ChaseAll returns a Definition List covering every declaration, chased
// in sorted name order.
func ChaseAll(env *idl.Env) ([]string, error) {
	c := newChaser(env)
	for _, name := range env.Names() {
		if err := c.chase(idl.Var{Name: name}, name); err != nil {
			return nil, err
		}
	}
	return c.defs, nil
}
