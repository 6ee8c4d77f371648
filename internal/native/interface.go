package native

import (
	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/tsast"
)

// CompileInterface builds the interface file: native types, enums, the
// service interface and a declared createActor signature.
func CompileInterface(prog *idl.Program, opts Options) (*Output, error) {
	b := newBuilder(prog, opts)

	defs, err := b.typeDefinitions()
	if err != nil {
		return nil, err
	}

	var tail []tsast.Item
	if prog.HasActor() {
		iface, err := b.actorInterface(prog.Actor)
		if err != nil {
			return nil, err
		}
		tail = append(tail,
			iface,
			createActorOptions(),
			&tsast.Export{Decl: &tsast.Function{
				Name: "createActor",
				Params: []tsast.Param{
					canisterIDParam(),
					{Name: "options", Optional: true, Type: &tsast.Ref{Name: "CreateActorOptions"}},
				},
				Result: &tsast.Ref{Name: ServiceInterfaceName(opts.ServiceName)},
			}},
		)
	}

	m := &tsast.Module{}
	m.Items = append(m.Items, interfaceImports(opts.ServiceName, prog.HasActor())...)
	m.Items = append(m.Items, optionUtils()...)
	m.Items = append(m.Items, defs...)
	m.Items = append(m.Items, b.enumDeclarations()...)
	m.Items = append(m.Items, tail...)
	return &Output{Module: m, Comments: b.comments}, nil
}
