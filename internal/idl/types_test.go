package idl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "nat64", KindNat64.String())
	assert.Equal(t, "principal", Principal.String())
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestPrimByName(t *testing.T) {
	p, ok := PrimByName("float32")
	require.True(t, ok)
	assert.Equal(t, Float32, p)

	_, ok = PrimByName("opt")
	assert.False(t, ok, "constructors are not primitives")
	_, ok = PrimByName("string")
	assert.False(t, ok)
}

func TestModeByName(t *testing.T) {
	for _, m := range []Mode{ModeQuery, ModeCompositeQuery, ModeOneway} {
		got, ok := ModeByName(m.String())
		require.True(t, ok)
		assert.Equal(t, m, got)
	}
	_, ok := ModeByName("update")
	assert.False(t, ok)
}

func TestChildren(t *testing.T) {
	fn := Func{Args: []Type{Text}, Rets: []Type{Nat, Bool}}
	assert.Equal(t, []Type{Text, Nat, Bool}, Children(fn))

	svc := Service{Methods: []Method{{Name: "a", Type: Var{Name: "F"}}}}
	assert.Equal(t, []Type{Var{Name: "F"}}, Children(svc))

	cls := Class{Args: []Type{Text}, Service: Var{Name: "S"}}
	assert.Equal(t, []Type{Text, Var{Name: "S"}}, Children(cls))

	assert.Nil(t, Children(Var{Name: "X"}))
	assert.Nil(t, Children(Int))
}

func TestLabel(t *testing.T) {
	n := Named("a")
	name, ok := n.Name()
	assert.True(t, ok)
	assert.Equal(t, "a", name)
	assert.Equal(t, uint32(97), n.Number())
	assert.Equal(t, "a", n.String())

	id := ID(7)
	assert.False(t, id.IsNamed())
	assert.Equal(t, "7", id.String())
}

func TestHashName(t *testing.T) {
	assert.Equal(t, uint32(0), HashName(""))
	assert.Equal(t, uint32(97*223+98), HashName("ab"))
}

func TestIsTuple(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		want   bool
	}{
		{"empty", nil, false},
		{"sequential", []Field{{Label: ID(0), Type: Int}, {Label: ID(1), Type: Text}}, true},
		{"gap", []Field{{Label: ID(0), Type: Int}, {Label: ID(2), Type: Text}}, false},
		{"starts at one", []Field{{Label: ID(1), Type: Int}}, false},
		{"named", []Field{{Label: Named("x"), Type: Int}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTuple(tt.fields))
		})
	}
}

func TestIsEnum(t *testing.T) {
	assert.False(t, IsEnum(nil))
	assert.True(t, IsEnum([]Field{{Label: Named("a"), Type: Null}, {Label: Named("b"), Type: Null}}))
	assert.False(t, IsEnum([]Field{{Label: Named("a"), Type: Null}, {Label: Named("b"), Type: Text}}))
}

func TestEnvNamesSorted(t *testing.T) {
	env := NewEnv(map[string]Type{"b": Int, "a": Text, "c": Bool})
	assert.Equal(t, []string{"a", "b", "c"}, env.Names())
	assert.Equal(t, 3, env.Len())

	var nilEnv *Env
	assert.Nil(t, nilEnv.Names())
	assert.Equal(t, 0, nilEnv.Len())
	_, ok := nilEnv.Lookup("a")
	assert.False(t, ok)
}

func TestEnvTrace(t *testing.T) {
	env := NewEnv(map[string]Type{
		"A":    Var{Name: "B"},
		"B":    Opt{Elem: Nat},
		"Loop": Var{Name: "Loop"},
	})

	got, ok := env.Trace(Var{Name: "A"})
	require.True(t, ok)
	assert.Equal(t, Opt{Elem: Nat}, got)

	_, ok = env.Trace(Var{Name: "Loop"})
	assert.False(t, ok, "alias loop has no structural type")

	_, ok = env.Trace(Var{Name: "Missing"})
	assert.False(t, ok)

	got, ok = env.Trace(Text)
	require.True(t, ok)
	assert.Equal(t, Text, got)
}

func TestDocsNilSafe(t *testing.T) {
	var d *Docs
	assert.Equal(t, DeclDocs{}, d.Decl("X"))
	assert.Equal(t, DeclDocs{}, d.ActorDocs())
	assert.Nil(t, d.Decl("X").Member("y"))

	d = &Docs{Types: map[string]DeclDocs{
		"X": {Lines: []string{"doc"}, Members: map[string][]string{"y": {"field"}}},
	}}
	assert.Equal(t, []string{"field"}, d.Decl("X").Member("y"))
	assert.Equal(t, []string{"doc"}, d.Decl("X").Lines)
}

func TestProgramHasActor(t *testing.T) {
	var p *Program
	assert.False(t, p.HasActor())
	assert.False(t, (&Program{Env: NewEnv(nil)}).HasActor())
	assert.True(t, (&Program{Env: NewEnv(nil), Actor: Service{}}).HasActor())
}
