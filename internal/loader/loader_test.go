package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bindgen/internal/idl"
)

func wantHello() *idl.Program {
	return &idl.Program{
		Env: idl.NewEnv(map[string]idl.Type{
			"List": idl.Opt{Elem: idl.Var{Name: "Node"}},
			"Node": idl.Record{Fields: []idl.Field{
				{Label: idl.Named("head"), Type: idl.Nat},
				{Label: idl.Named("tail"), Type: idl.Var{Name: "List"}},
			}},
		}),
		Actor: idl.Service{Methods: []idl.Method{
			{Name: "greet", Type: idl.Func{
				Args:  []idl.Type{idl.Text},
				Rets:  []idl.Type{idl.Text},
				Modes: []idl.Mode{idl.ModeQuery},
			}},
			{Name: "walk", Type: idl.Func{Args: []idl.Type{idl.Var{Name: "List"}}, Rets: []idl.Type{}}},
		}},
		Docs: &idl.Docs{
			Types: map[string]idl.DeclDocs{
				"Node": {Lines: []string{"A list cell."}, Members: map[string][]string{"head": {"The value."}}},
			},
			Actor: idl.DeclDocs{Lines: []string{"The greeter.", "Says hello."}},
		},
	}
}

func TestLoad_Formats(t *testing.T) {
	for _, name := range []string{"hello.did.yaml", "hello.did.cue", "hello.did.json"} {
		t.Run(name, func(t *testing.T) {
			prog, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			want := wantHello()
			assert.Equal(t, want.Env, prog.Env)
			assert.Equal(t, want.Actor, prog.Actor)
			assert.Equal(t, want.Docs, prog.Docs)
		})
	}
}

func TestLoad_FormatsHashEqually(t *testing.T) {
	var hashes []string
	for _, name := range []string{"hello.did.yaml", "hello.did.cue", "hello.did.json"} {
		prog, err := Load(filepath.Join("testdata", name))
		require.NoError(t, err)
		h, err := idl.ProgramHash(prog)
		require.NoError(t, err)
		hashes = append(hashes, h)
	}
	assert.Equal(t, hashes[0], hashes[1])
	assert.Equal(t, hashes[0], hashes[2])
}

func TestParse_TypeForms(t *testing.T) {
	doc := `
types:
  Unit: null
  Pair:
    record: [nat, text]
  Shadow: {ref: nat}
  Color:
    variant: [red, green]
  Result:
    variant:
      - {name: ok, type: nat}
      - {name: err, type: text}
  Sparse:
    record:
      - {id: 7, type: bool}
  Callback: {func: {args: [], modes: [oneway]}}
  Factory:
    class:
      args: [nat]
      service: {service: [{name: get, type: Callback}]}
actor: Factory
`
	prog, err := Parse("forms.yaml", []byte(doc))
	require.NoError(t, err)

	lookup := func(name string) idl.Type {
		t.Helper()
		ty, ok := prog.Env.Lookup(name)
		require.True(t, ok, name)
		return ty
	}

	assert.Equal(t, idl.Null, lookup("Unit"))
	assert.Equal(t, idl.Record{Fields: []idl.Field{
		{Label: idl.ID(0), Type: idl.Nat},
		{Label: idl.ID(1), Type: idl.Text},
	}}, lookup("Pair"))
	assert.Equal(t, idl.Var{Name: "nat"}, lookup("Shadow"))
	assert.Equal(t, idl.Variant{Fields: []idl.Field{
		{Label: idl.Named("red"), Type: idl.Null},
		{Label: idl.Named("green"), Type: idl.Null},
	}}, lookup("Color"))
	assert.Equal(t, idl.Variant{Fields: []idl.Field{
		{Label: idl.Named("ok"), Type: idl.Nat},
		{Label: idl.Named("err"), Type: idl.Text},
	}}, lookup("Result"))
	assert.Equal(t, idl.Record{Fields: []idl.Field{{Label: idl.ID(7), Type: idl.Bool}}}, lookup("Sparse"))
	assert.Equal(t, idl.Func{Args: []idl.Type{}, Modes: []idl.Mode{idl.ModeOneway}}, lookup("Callback"))
	assert.Equal(t, idl.Class{
		Args:    []idl.Type{idl.Nat},
		Service: idl.Service{Methods: []idl.Method{{Name: "get", Type: idl.Var{Name: "Callback"}}}},
	}, lookup("Factory"))
	assert.Equal(t, idl.Var{Name: "Factory"}, prog.Actor)
	assert.Nil(t, prog.Docs)
}

func TestParse_EmptyTypes(t *testing.T) {
	prog, err := Parse("empty.yaml", []byte("types:\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, prog.Env.Len())
	assert.False(t, prog.HasActor())
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name     string
		file     string
		doc      string
		code     string
		line     int
		contains string
	}{
		{name: "extension", file: "a.txt", doc: "types: {}", code: ErrCodeFormat, contains: `".txt"`},
		{name: "yaml syntax", file: "a.yaml", doc: "types: [", code: ErrCodeParse},
		{name: "empty document", file: "a.yaml", doc: "", code: ErrCodeShape},
		{name: "not a mapping", file: "a.yaml", doc: "- a\n- b\n", code: ErrCodeShape, line: 1},
		{name: "top-level key", file: "a.yaml", doc: "types: {}\nextra: 1\n", code: ErrCodeShape, line: 2, contains: `"extra"`},
		{name: "unknown form", file: "a.yaml", doc: "types:\n  A: {bogus: nat}\n", code: ErrCodeTypeForm, line: 2, contains: `"bogus"`},
		{name: "two keys", file: "a.yaml", doc: "types:\n  A: {opt: nat, vec: nat}\n", code: ErrCodeTypeForm, line: 2},
		{name: "sequence type", file: "a.yaml", doc: "types:\n  A: [nat]\n", code: ErrCodeTypeForm, line: 2},
		{name: "duplicate field", file: "a.yaml", doc: "types:\n  A:\n    record:\n      - {name: x, type: nat}\n      - {name: x, type: text}\n", code: ErrCodeDuplicate, line: 5},
		{name: "name and id", file: "a.yaml", doc: "types:\n  A: {record: [{name: x, id: 1}]}\n", code: ErrCodeField, line: 2},
		{name: "bad id", file: "a.yaml", doc: "types:\n  A: {record: [{id: -1}]}\n", code: ErrCodeField},
		{name: "unknown mode", file: "a.yaml", doc: "types:\n  F: {func: {modes: [update]}}\n", code: ErrCodeMode, contains: `"update"`},
		{name: "duplicate method", file: "a.yaml", doc: "actor: {service: [{name: m, type: {func: {}}}, {name: m, type: {func: {}}}]}\n", code: ErrCodeDuplicate},
		{name: "method without type", file: "a.yaml", doc: "actor: {service: [{name: m}]}\n", code: ErrCodeTypeForm},
		{name: "class without service", file: "a.yaml", doc: "actor: {class: {args: []}}\n", code: ErrCodeTypeForm},
		{name: "docs key", file: "a.yaml", doc: "docs:\n  A: {summary: x}\n", code: ErrCodeInvalidDocs, line: 2},
		{name: "declaration name", file: "a.yaml", doc: "types:\n  \"x = 1; fetch('//evil'); const y\": text\n", code: ErrCodeName, line: 2, contains: "not an identifier"},
		{name: "leading digit", file: "a.yaml", doc: "types:\n  1A: text\n", code: ErrCodeName, line: 2},
		{name: "scalar reference", file: "a.yaml", doc: "types:\n  A: {opt: \"B); alert(1\"}\n", code: ErrCodeName, line: 2},
		{name: "ref form", file: "a.yaml", doc: "types:\n  A: {ref: my-type}\n", code: ErrCodeName, line: 2, contains: `"my-type"`},
		{name: "actor reference", file: "a.yaml", doc: "actor: \"S.x\"\n", code: ErrCodeName, line: 1},
		{name: "cue name", file: "a.cue", doc: "types: \"a b\": \"text\"\n", code: ErrCodeName},
		{name: "cue syntax", file: "a.cue", doc: "types: {", code: ErrCodeBuild},
		{name: "cue incomplete", file: "a.cue", doc: "types: A: string\n", code: ErrCodeBuild},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.file, []byte(tc.doc))
			require.Error(t, err)
			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tc.code, le.Code, le.Error())
			if tc.line > 0 {
				assert.Equal(t, tc.line, le.Pos.Line, le.Error())
				assert.Equal(t, tc.file, le.Pos.File)
			}
			if tc.contains != "" {
				assert.Contains(t, le.Message, tc.contains)
			}
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeNotFound, le.Code)
	assert.False(t, le.Pos.IsValid())
	assert.Contains(t, le.Error(), "missing.yaml")
}

func TestLoadError_Format(t *testing.T) {
	err := &LoadError{Code: ErrCodeShape, Message: "boom", Pos: Position{File: "a.yaml", Line: 3, Column: 4}}
	assert.Equal(t, "a.yaml:3:4: E101: boom", err.Error())
	assert.Equal(t, "E101: boom", (&LoadError{Code: ErrCodeShape, Message: "boom"}).Error())
}

func TestSupported(t *testing.T) {
	for _, p := range []string{"a.yaml", "a.YML", "dir/a.cue", "a.json"} {
		assert.True(t, Supported(p), p)
	}
	for _, p := range []string{"a.did", "a", "a.toml"} {
		assert.False(t, Supported(p), p)
	}
}
