package javascript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindgen/internal/analysis"
	"github.com/roach88/bindgen/internal/idl"
)

func greeter() *idl.Program {
	return &idl.Program{
		Env: idl.NewEnv(nil),
		Actor: idl.Service{Methods: []idl.Method{
			{Name: "greet", Type: idl.Func{Args: []idl.Type{idl.Text}, Rets: []idl.Type{idl.Text}}},
		}},
	}
}

func TestCompile_PlainRecord(t *testing.T) {
	prog := &idl.Program{Env: idl.NewEnv(map[string]idl.Type{
		"Point": idl.Record{Fields: []idl.Field{
			{Label: idl.Named("x"), Type: idl.Int32},
			{Label: idl.Named("y"), Type: idl.Int32},
		}},
	})}

	out, err := Compile(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, `import { IDL } from '@icp-sdk/core/candid';

const Point = IDL.Record({ 'x' : IDL.Int32, 'y' : IDL.Int32 });
`, out)
	assert.NotContains(t, out, "IDL.Rec()")

	out, err = Compile(prog, Options{RootExports: true})
	require.NoError(t, err)
	assert.Contains(t, out, "\nexport const Point = IDL.Record(")
}

func TestCompile_SelfRecursiveTuple(t *testing.T) {
	prog := &idl.Program{Env: idl.NewEnv(map[string]idl.Type{
		"List": idl.Record{Fields: []idl.Field{
			{Label: idl.ID(0), Type: idl.Int32},
			{Label: idl.ID(1), Type: idl.Var{Name: "List"}},
		}},
	})}

	out, err := Compile(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, `import { IDL } from '@icp-sdk/core/candid';

const List = IDL.Rec();
List.fill(IDL.Tuple(IDL.Int32, List));
`, out)
}

func TestCompile_ActorFactory(t *testing.T) {
	out, err := Compile(greeter(), Options{})
	require.NoError(t, err)
	assert.Equal(t, `import { IDL } from '@icp-sdk/core/candid';

export const idlFactory = ({ IDL }) => {
  return IDL.Service({ 'greet' : IDL.Func([IDL.Text], [IDL.Text], []) });
};
export const init = ({ IDL }) => { return []; };
`, out)
	assert.NotContains(t, out, "idlService")
}

func TestCompile_RootExports(t *testing.T) {
	out, err := Compile(greeter(), Options{RootExports: true})
	require.NoError(t, err)
	assert.Contains(t, out, "export const idlService = IDL.Service(\n  { 'greet' : IDL.Func([IDL.Text], [IDL.Text], []) }\n);\n")
	assert.Contains(t, out, "export const idlInitArgs = [];\n")
	assert.Contains(t, out, "export const idlFactory = ({ IDL }) => {")
}

func TestCompile_FactoryKeepsDefinitionsLocal(t *testing.T) {
	prog := &idl.Program{
		Env: idl.NewEnv(map[string]idl.Type{
			"Id":     idl.Nat,
			"Unused": idl.Text,
		}),
		Actor: idl.Service{Methods: []idl.Method{
			{Name: "get", Type: idl.Func{Rets: []idl.Type{idl.Var{Name: "Id"}}, Modes: []idl.Mode{idl.ModeQuery}}},
		}},
	}

	out, err := Compile(prog, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "  const Id = IDL.Nat;\n")
	assert.Contains(t, out, "'get' : IDL.Func([], [Id], ['query'])")
	assert.NotContains(t, out, "Unused", "only declarations reachable from the actor are emitted")
	assert.NotContains(t, out, "export const Id")
}

func TestCompile_ClassActor(t *testing.T) {
	prog := &idl.Program{
		Env: idl.NewEnv(map[string]idl.Type{
			"Init": idl.Record{Fields: []idl.Field{{Label: idl.Named("owner"), Type: idl.Principal}}},
			"Svc":  idl.Service{Methods: []idl.Method{{Name: "ping", Type: idl.Func{Modes: []idl.Mode{idl.ModeOneway}}}}},
		}),
		Actor: idl.Class{Args: []idl.Type{idl.Var{Name: "Init"}}, Service: idl.Var{Name: "Svc"}},
	}

	out, err := Compile(prog, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "return Svc;")
	assert.Contains(t, out, "const Init = IDL.Record({ 'owner' : IDL.Principal });")
	assert.Contains(t, out, "return [Init];")
	assert.Contains(t, out, "['oneway']")
}

func TestCompile_RecursiveActorUsesGetType(t *testing.T) {
	prog := &idl.Program{
		Env: idl.NewEnv(map[string]idl.Type{
			"S": idl.Service{Methods: []idl.Method{
				{Name: "next", Type: idl.Func{Rets: []idl.Type{idl.Var{Name: "S"}}}},
			}},
		}),
		Actor: idl.Var{Name: "S"},
	}

	out, err := Compile(prog, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "const S = IDL.Rec();")
	assert.Contains(t, out, "S.fill(IDL.Service({ 'next' : IDL.Func([], [S], []) }));")
	assert.Contains(t, out, "return S.getType();")
}

func TestCompile_EscapesKeywordsAndNumericLabels(t *testing.T) {
	prog := &idl.Program{Env: idl.NewEnv(map[string]idl.Type{
		"delete": idl.Variant{Fields: []idl.Field{
			{Label: idl.ID(5), Type: idl.Null},
			{Label: idl.Named("it's"), Type: idl.Text},
		}},
	})}

	out, err := Compile(prog, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "const delete_ = IDL.Variant({ _5_ : IDL.Null, 'it\\'s' : IDL.Text });")
}

func TestCompile_UnresolvedReference(t *testing.T) {
	prog := &idl.Program{Env: idl.NewEnv(map[string]idl.Type{
		"A": idl.Opt{Elem: idl.Var{Name: "B"}},
	})}

	_, err := Compile(prog, Options{})
	require.Error(t, err)
	assert.True(t, analysis.IsUnresolvedReference(err))
}

func TestCompile_FuncServiceCycleKeepsDependenciesFirst(t *testing.T) {
	prog := &idl.Program{Env: idl.NewEnv(map[string]idl.Type{
		"a": idl.Func{Args: []idl.Type{idl.Var{Name: "b"}, idl.Var{Name: "c"}}},
		"b": idl.Service{Methods: []idl.Method{{Name: "m", Type: idl.Var{Name: "a"}}}},
		"c": idl.Record{Fields: []idl.Field{{Label: idl.Named("x"), Type: idl.Text}}},
	})}

	out, err := Compile(prog, Options{})
	require.NoError(t, err)
	assert.Equal(t, `import { IDL } from '@icp-sdk/core/candid';

const b = IDL.Rec();
const c = IDL.Record({ 'x' : IDL.Text });
const a = IDL.Func([b, c], [], []);
b.fill(IDL.Service({ 'm' : a }));
`, out)
}

func TestCompileTypeScript_NoActorHonorsRootExports(t *testing.T) {
	prog := &idl.Program{Env: idl.NewEnv(map[string]idl.Type{"T": idl.Text})}

	out, err := CompileTypeScript(prog, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "\nconst T = IDL.Text;\n")
	assert.NotContains(t, out, "export const T")
}

func TestCompileTypeScript(t *testing.T) {
	out, err := CompileTypeScript(greeter(), Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "import { IDL } from '@icp-sdk/core/candid';\nimport type { Principal } from '@icp-sdk/core/principal';\n")
	assert.NotContains(t, out, "import type { IDL }")
	assert.Contains(t, out, "export interface _SERVICE { 'greet' : ActorMethod<[string], string> }\n")
	assert.Contains(t, out, "export const idlFactory: IDL.InterfaceFactory = ({ IDL }) => {")
	assert.Contains(t, out, "export const init: (args: { IDL: typeof IDL }) => IDL.Type[] = ({ IDL }) => {")
}
