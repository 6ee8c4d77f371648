package analysis

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindgen/internal/idl"
)

func field(name string, t idl.Type) idl.Field {
	return idl.Field{Label: idl.Named(name), Type: t}
}

func ref(name string) idl.Var {
	return idl.Var{Name: name}
}

func TestPlanAll_NonRecursiveRecord(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"Point": idl.Record{Fields: []idl.Field{field("x", idl.Int32), field("y", idl.Int32)}},
	})

	p, err := PlanAll(env)
	require.NoError(t, err)
	assert.Equal(t, []string{"Point"}, p.Defs)
	assert.Empty(t, p.Recs)
	assert.Empty(t, p.Swaps)
}

func TestPlanAll_SelfRecursiveTuple(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"List": idl.Record{Fields: []idl.Field{
			{Label: idl.ID(0), Type: idl.Int32},
			{Label: idl.ID(1), Type: ref("List")},
		}},
	})

	p, err := PlanAll(env)
	require.NoError(t, err)
	assert.Equal(t, []string{"List"}, p.Defs)
	assert.Equal(t, []string{"List"}, p.Recs.Sorted())
	assert.True(t, p.IsRec("List"))
}

func TestPlanAll_DependenciesFirst(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"A": idl.Vec{Elem: ref("B")},
		"B": idl.Opt{Elem: ref("C")},
		"C": idl.Text,
	})

	p, err := PlanAll(env)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, p.Defs)
	assert.Empty(t, p.Recs)
}

func TestPlanAll_MutualRecursion(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"A": idl.Opt{Elem: ref("B")},
		"B": idl.Record{Fields: []idl.Field{field("next", ref("A"))}},
	})

	p, err := PlanAll(env)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, p.Defs)
	assert.Equal(t, []string{"A"}, p.Recs.Sorted(), "only the forward-referenced name is marked")
	assert.Equal(t, [][]string{{"A", "B"}}, Groups(env, p.Defs))
}

func TestPlanActor_OnlyReachable(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"Point":  idl.Record{Fields: []idl.Field{field("x", idl.Int32)}},
		"Unused": idl.Text,
	})
	actor := idl.Service{Methods: []idl.Method{
		{Name: "get", Type: idl.Func{Rets: []idl.Type{ref("Point")}, Modes: []idl.Mode{idl.ModeQuery}}},
	}}

	p, err := PlanActor(env, actor)
	require.NoError(t, err)
	assert.Equal(t, []string{"Point"}, p.Defs)
}

func TestPlanTypes_InitArgs(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"Init": idl.Record{Fields: []idl.Field{field("owner", idl.Principal)}},
		"Svc":  idl.Service{},
	})
	actor := idl.Class{Args: []idl.Type{ref("Init")}, Service: ref("Svc")}

	require.NoError(t, CheckActor(env, actor))
	p, err := PlanTypes(env, InitArgs(actor))
	require.NoError(t, err)
	assert.Equal(t, []string{"Init"}, p.Defs)
}

func TestOptimizeRecs_FuncServiceSwap(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"F": idl.Func{Args: []idl.Type{ref("S")}},
		"S": idl.Service{Methods: []idl.Method{{Name: "f", Type: ref("F")}}},
	})

	defs, err := ChaseAll(env)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "F"}, defs)

	recs, err := InferRec(env, defs)
	require.NoError(t, err)
	assert.Equal(t, []string{"F"}, recs.Sorted())

	outDefs, outRecs, swaps := OptimizeRecs(env, defs, recs)
	assert.Equal(t, []string{"F", "S"}, outDefs)
	assert.Equal(t, []string{"S"}, outRecs.Sorted())
	assert.Equal(t, []Swap{{Func: "F", Service: "S"}}, swaps)

	// Inputs are untouched.
	assert.Equal(t, []string{"S", "F"}, defs)
	assert.Equal(t, []string{"F"}, recs.Sorted())
}

func TestPlanAll_SwapKeepsDependenciesFirst(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"a": idl.Func{Args: []idl.Type{ref("b"), ref("c")}},
		"b": idl.Service{Methods: []idl.Method{{Name: "m", Type: ref("a")}}},
		"c": idl.Record{Fields: []idl.Field{field("x", idl.Text)}},
	})

	p, err := PlanAll(env)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, p.Defs)
	assert.Equal(t, []string{"b"}, p.Recs.Sorted())
	assert.Equal(t, []Swap{{Func: "a", Service: "b"}}, p.Swaps)

	// Every unmarked reference is defined before its user.
	seen := NewSet()
	for _, name := range p.Defs {
		def, _ := env.Lookup(name)
		var walk func(idl.Type)
		walk = func(ty idl.Type) {
			if v, ok := ty.(idl.Var); ok {
				assert.True(t, p.IsRec(v.Name) || seen.Has(v.Name) || v.Name == name,
					"%s uses %s before it is declared", name, v.Name)
				return
			}
			for _, c := range idl.Children(ty) {
				walk(c)
			}
		}
		walk(def)
		seen.Add(name)
	}
}

func TestOptimizeRecs_Claims(t *testing.T) {
	service := func(methods ...string) idl.Service {
		var s idl.Service
		for _, m := range methods {
			s.Methods = append(s.Methods, idl.Method{Name: "call_" + m, Type: ref(m)})
		}
		return s
	}
	fn := func(args ...string) idl.Func {
		var f idl.Func
		for _, a := range args {
			f.Args = append(f.Args, ref(a))
		}
		return f
	}

	tests := []struct {
		name      string
		env       map[string]idl.Type
		defs      []string
		recs      []string
		wantDefs  []string
		wantRecs  []string
		wantSwaps []Swap
	}{
		{
			name: "service claimed by first function only",
			env: map[string]idl.Type{
				"S":  service("F1", "F2"),
				"F1": fn("S"),
				"F2": fn("S"),
			},
			defs:      []string{"S", "F1", "F2"},
			recs:      []string{"F1", "F2"},
			wantDefs:  []string{"F1", "S", "F2"},
			wantRecs:  []string{"F2", "S"},
			wantSwaps: []Swap{{Func: "F1", Service: "S"}},
		},
		{
			name: "first service in definition order wins",
			env: map[string]idl.Type{
				"T": service("F"),
				"S": service("F"),
				"F": fn("S", "T"),
			},
			defs:      []string{"T", "S", "F"},
			recs:      []string{"F"},
			wantDefs:  []string{"S", "F", "T"},
			wantRecs:  []string{"T"},
			wantSwaps: []Swap{{Func: "F", Service: "T"}},
		},
		{
			name: "marked service is skipped",
			env: map[string]idl.Type{
				"S": service("F"),
				"T": service("F"),
				"F": fn("S", "T"),
			},
			defs:      []string{"S", "T", "F"},
			recs:      []string{"F", "S"},
			wantDefs:  []string{"S", "F", "T"},
			wantRecs:  []string{"S", "T"},
			wantSwaps: []Swap{{Func: "F", Service: "T"}},
		},
		{
			name: "function already ahead of its service",
			env: map[string]idl.Type{
				"S": service("F"),
				"F": fn("S"),
			},
			defs:      []string{"F", "S"},
			recs:      []string{"F"},
			wantDefs:  []string{"F", "S"},
			wantRecs:  []string{"S"},
			wantSwaps: []Swap{{Func: "F", Service: "S"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, recs, swaps := OptimizeRecs(idl.NewEnv(tt.env), tt.defs, NewSet(tt.recs...))
			assert.Equal(t, tt.wantDefs, defs)
			assert.Equal(t, tt.wantRecs, recs.Sorted())
			assert.Equal(t, tt.wantSwaps, swaps)
		})
	}
}

func TestOptimizeRecs_NoSwapWithoutDirectReference(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"F": idl.Func{Args: []idl.Type{idl.Opt{Elem: ref("S")}}},
		"S": idl.Service{Methods: []idl.Method{{Name: "f", Type: ref("F")}}},
	})

	p, err := PlanAll(env)
	require.NoError(t, err)
	assert.Empty(t, p.Swaps)
	assert.Equal(t, []string{"F"}, p.Recs.Sorted())
}

func TestChase_UnresolvedReference(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"A": idl.Vec{Elem: ref("Missing")},
	})

	_, err := PlanAll(env)
	require.Error(t, err)
	assert.True(t, IsUnresolvedReference(err))

	var unresolved *UnresolvedReferenceError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "Missing", unresolved.Name)
	assert.Equal(t, "A", unresolved.Referrer)
}

func TestChaseActor_UnresolvedReferrer(t *testing.T) {
	env := idl.NewEnv(nil)
	actor := idl.Service{Methods: []idl.Method{{Name: "m", Type: ref("Gone")}}}

	_, err := ChaseActor(env, actor)
	var unresolved *UnresolvedReferenceError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, ReferrerActor, unresolved.Referrer)
}

func TestActorService(t *testing.T) {
	svc := idl.Service{Methods: []idl.Method{{Name: "m", Type: idl.Func{}}}}
	env := idl.NewEnv(map[string]idl.Type{
		"S":     svc,
		"Alias": ref("S"),
		"R":     idl.Record{},
	})

	tests := []struct {
		name  string
		actor idl.Type
	}{
		{"service", svc},
		{"reference", ref("S")},
		{"alias chain", ref("Alias")},
		{"class", idl.Class{Args: []idl.Type{idl.Text}, Service: ref("S")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ActorService(env, tt.actor)
			require.NoError(t, err)
			assert.Equal(t, svc, got)
		})
	}
}

func TestActorService_Unsupported(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{"R": idl.Record{}})

	for _, actor := range []idl.Type{ref("R"), idl.Text, idl.Opt{Elem: idl.Service{}}} {
		err := CheckActor(env, actor)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedActorShape), "actor %#v", actor)
	}

	err := CheckActor(env, ref("Nope"))
	assert.True(t, IsUnresolvedReference(err))
}

func TestInitArgs(t *testing.T) {
	assert.Nil(t, InitArgs(idl.Service{}))
	assert.Equal(t, []idl.Type{idl.Nat}, InitArgs(idl.Class{Args: []idl.Type{idl.Nat}, Service: idl.Service{}}))
}

func TestGroups_SelfLoopAndAcyclic(t *testing.T) {
	env := idl.NewEnv(map[string]idl.Type{
		"Tree": idl.Vec{Elem: ref("Tree")},
		"Leaf": idl.Text,
	})
	defs := []string{"Leaf", "Tree"}
	assert.Equal(t, [][]string{{"Tree"}}, Groups(env, defs))
}

func TestSet(t *testing.T) {
	s := NewSet("b", "a")
	assert.True(t, s.Has("a"))
	assert.Equal(t, []string{"a", "b"}, s.Sorted())

	c := s.Clone()
	c.Add("c")
	c.Remove("a")
	assert.Equal(t, []string{"a", "b"}, s.Sorted(), "clone is independent")
	assert.Equal(t, []string{"b", "c"}, c.Sorted())

	var empty Set
	assert.False(t, empty.Has("x"))
}
