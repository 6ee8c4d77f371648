package native

import (
	"github.com/roach88/bindgen/internal/tsast"
)

const (
	agentModule     = "@icp-sdk/core/agent"
	principalModule = "@icp-sdk/core/principal"
)

func typeSpec(name string) tsast.ImportSpec {
	return tsast.ImportSpec{Name: name, TypeOnly: true}
}

// interfaceImports names only types: the interface file has no runtime
// dependencies.
func interfaceImports(service string, hasActor bool) []tsast.Item {
	items := []tsast.Item{}
	if hasActor {
		items = append(items, &tsast.Import{
			Source:     agentModule,
			Specifiers: []tsast.ImportSpec{typeSpec("HttpAgentOptions"), typeSpec("ActorConfig"), typeSpec("Agent")},
		})
	}
	items = append(items, &tsast.Import{
		Source:     principalModule,
		TypeOnly:   true,
		Specifiers: []tsast.ImportSpec{{Name: "Principal"}},
	})
	if hasActor {
		items = append(items, &tsast.Import{
			Source:     DeclarationsModule(service),
			Specifiers: []tsast.ImportSpec{typeSpec("_SERVICE")},
		})
	}
	return items
}

// wrapperImports adds the constructors the wrapper calls at runtime and
// the declaration types its converters annotate.
func wrapperImports(service string, hasActor bool, wireRefs []string) []tsast.Item {
	items := []tsast.Item{}
	if hasActor {
		items = append(items, &tsast.Import{
			Source: agentModule,
			Specifiers: []tsast.ImportSpec{
				{Name: "Actor"},
				{Name: "HttpAgent"},
				typeSpec("HttpAgentOptions"),
				typeSpec("ActorConfig"),
				typeSpec("Agent"),
				typeSpec("ActorSubclass"),
			},
		})
	}
	items = append(items, &tsast.Import{
		Source:     principalModule,
		TypeOnly:   true,
		Specifiers: []tsast.ImportSpec{{Name: "Principal"}},
	})
	if hasActor {
		specs := []tsast.ImportSpec{{Name: "idlFactory"}, typeSpec("_SERVICE")}
		for _, name := range wireRefs {
			specs = append(specs, tsast.ImportSpec{Name: typeName(name), Alias: wireAlias(name), TypeOnly: true})
		}
		items = append(items, &tsast.Import{Source: DeclarationsModule(service), Specifiers: specs})
	}
	return items
}

// optionUtils declares the Option type used where opt nests a nullable
// type.
func optionUtils() []tsast.Item {
	t := &tsast.Ref{Name: "T"}
	return []tsast.Item{
		&tsast.Export{Decl: &tsast.Interface{
			Name:       "Some",
			TypeParams: []string{"T"},
			Members: []tsast.Member{
				&tsast.PropertySig{Name: "__kind__", Type: tsast.LitType("Some")},
				&tsast.PropertySig{Name: "value", Type: t},
			},
		}},
		&tsast.Export{Decl: &tsast.Interface{
			Name: "None",
			Members: []tsast.Member{
				&tsast.PropertySig{Name: "__kind__", Type: tsast.LitType("None")},
			},
		}},
		&tsast.Export{Decl: &tsast.TypeAlias{
			Name:       "Option",
			TypeParams: []string{"T"},
			Type: &tsast.Union{Types: []tsast.Type{
				&tsast.Ref{Name: "Some", Args: []tsast.Type{t}},
				&tsast.Ref{Name: "None"},
			}},
		}},
	}
}

func createActorOptions() tsast.Item {
	return &tsast.Export{Decl: &tsast.Interface{
		Name: "CreateActorOptions",
		Members: []tsast.Member{
			&tsast.PropertySig{Name: "agent", Optional: true, Type: &tsast.Ref{Name: "Agent"}},
			&tsast.PropertySig{Name: "agentOptions", Optional: true, Type: &tsast.Ref{Name: "HttpAgentOptions"}},
			&tsast.PropertySig{Name: "actorOptions", Optional: true, Type: &tsast.Ref{Name: "ActorConfig"}},
		},
	}}
}

func canisterIDParam() tsast.Param {
	return tsast.Param{Name: "canisterId", Type: tsast.Keyword("string")}
}
