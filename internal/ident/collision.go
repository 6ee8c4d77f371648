package ident

import "sort"

// Collision is a pair of distinct source identifiers that escape to the
// same output identifier.
type Collision struct {
	Escaped string   `json:"escaped"`
	Sources []string `json:"sources"`
}

// Collisions reports identifiers in ids whose escaped forms coincide,
// e.g. a declaration "new" next to a declaration "new_". Results are
// sorted by escaped name.
func (k Keywords) Collisions(ids []string) []Collision {
	bySource := map[string]map[string]bool{}
	for _, id := range ids {
		esc := k.Escape(id)
		if bySource[esc] == nil {
			bySource[esc] = map[string]bool{}
		}
		bySource[esc][id] = true
	}

	var out []Collision
	for esc, sources := range bySource {
		if len(sources) < 2 {
			continue
		}
		c := Collision{Escaped: esc}
		for s := range sources {
			c.Sources = append(c.Sources, s)
		}
		sort.Strings(c.Sources)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Escaped < out[j].Escaped })
	return out
}
