package idl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int64", int64(-100), "-100"},
		{"uint32", uint32(4294967295), "4294967295"},
		{"bool", true, "true"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"array", []any{1, "a", false}, `[1,"a",false]`},
		{"no html escaping", "<a&b>", `"<a&b>"`},
		{"control characters", "a\nb\u0001", `"a\nb\u0001"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := map[string]any{
		"zebra": 1,
		"alpha": 2,
		"beta":  map[string]any{"b": 1, "a": 2},
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":{"a":2,"b":1},"zebra":1}`, string(result))
}

func TestMarshalCanonicalUTF16Order(t *testing.T) {
	// U+1F600 encodes as a surrogate pair starting 0xD83D, which sorts
	// before U+FFFD in UTF-16 although it is the larger code point.
	obj := map[string]any{"\uFFFD": 1, "\U0001F600": 2}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":2,\"\uFFFD\":1}", string(result))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	decomposed := "e\u0301"
	result, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(result))
}

func TestMarshalCanonicalRejects(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(1.5)
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"a": []any{nil}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `value for key "a"`)

	_, err = MarshalCanonical(struct{}{})
	assert.Error(t, err)
}

func TestEncodeType(t *testing.T) {
	ty := Record{Fields: []Field{
		{Label: Named("x"), Type: Opt{Elem: Var{Name: "T"}}},
		{Label: ID(1), Type: Vec{Elem: Nat8}},
	}}
	data, err := MarshalCanonical(EncodeType(ty))
	require.NoError(t, err)
	assert.Equal(t,
		`{"record":[{"name":"x","type":{"opt":{"ref":"T"}}},{"id":1,"type":{"vec":"nat8"}}]}`,
		string(data))

	fn := Func{Args: []Type{Text}, Modes: []Mode{ModeQuery}}
	data, err = MarshalCanonical(EncodeType(fn))
	require.NoError(t, err)
	assert.Equal(t, `{"func":{"args":["text"],"modes":["query"],"rets":[]}}`, string(data))
}

func TestProgramHashStable(t *testing.T) {
	build := func() *Program {
		return &Program{
			Env: NewEnv(map[string]Type{
				"B": Record{Fields: []Field{{Label: Named("x"), Type: Int32}}},
				"A": Var{Name: "B"},
			}),
			Actor: Service{Methods: []Method{{Name: "get", Type: Func{Rets: []Type{Var{Name: "A"}}}}}},
			Docs:  &Docs{Types: map[string]DeclDocs{"A": {Lines: []string{"alias"}}}},
		}
	}

	h1, err := ProgramHash(build())
	require.NoError(t, err)
	h2, err := ProgramHash(build())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	changed := build()
	changed.Docs = nil
	h3, err := ProgramHash(changed)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3, "docs are part of the identity")
}

func TestOptionsHashDomainSeparated(t *testing.T) {
	opts := map[string]any{"service": "x"}
	h, err := OptionsHash(opts)
	require.NoError(t, err)

	p, err := ProgramHash(&Program{Env: NewEnv(nil)})
	require.NoError(t, err)
	assert.NotEqual(t, h, p)

	h2, err := OptionsHash(map[string]any{"service": "x"})
	require.NoError(t, err)
	assert.Equal(t, h, h2)
}
