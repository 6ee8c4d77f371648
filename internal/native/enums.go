package native

import (
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/tsast"
)

// enumRegistry collects enum declarations for tag-only variants. Named
// declarations keep their name; anonymous variants get a generated one
// derived from their labels, suffixed when a taken name would clash.
type enumRegistry struct {
	byKey map[string]string
	decls map[string]*tsast.Enum
	taken map[string]bool
}

func newEnumRegistry(taken map[string]bool) *enumRegistry {
	return &enumRegistry{
		byKey: make(map[string]string),
		decls: make(map[string]*tsast.Enum),
		taken: taken,
	}
}

func enumKey(fs []idl.Field) string {
	labels := make([]string, len(fs))
	for i, f := range fs {
		labels[i] = f.Label.String()
	}
	return strings.Join(labels, "\x00")
}

func enumMembers(fs []idl.Field) []tsast.EnumMember {
	members := make([]tsast.EnumMember, len(fs))
	for i, f := range fs {
		members[i] = tsast.EnumMember{Name: fieldName(f.Label), Value: f.Label.String()}
	}
	return members
}

func (r *enumRegistry) named(name string, fs []idl.Field, pos tsast.Pos) {
	r.decls[name] = &tsast.Enum{Pos: pos, Name: name, Members: enumMembers(fs)}
}

// anonymous returns the enum name for an inline variant, registering it
// on first use.
func (r *enumRegistry) anonymous(fs []idl.Field) string {
	key := enumKey(fs)
	if name, ok := r.byKey[key]; ok {
		return name
	}
	labels := make([]string, len(fs))
	for i, f := range fs {
		labels[i] = f.Label.String()
	}
	base := "Variant_" + sanitizeIdent(strings.Join(labels, "_"))
	name := freeName(base, r.taken)
	r.taken[name] = true
	r.byKey[key] = name
	r.decls[name] = &tsast.Enum{Name: name, Members: enumMembers(fs)}
	return name
}

// freeName returns base, or base with the first numeric suffix not in
// taken.
func freeName(base string, taken map[string]bool) string {
	name := base
	for i := 2; taken[name]; i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	return name
}

func (r *enumRegistry) sorted() []*tsast.Enum {
	names := make([]string, 0, len(r.decls))
	for n := range r.decls {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*tsast.Enum, len(names))
	for i, n := range names {
		out[i] = r.decls[n]
	}
	return out
}
