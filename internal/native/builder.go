package native

import (
	"github.com/roach88/bindgen/internal/analysis"
	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/tsast"
)

// Options control the native pair.
type Options struct {
	// ServiceName is the file stem of the service, e.g. "hello_world".
	ServiceName string
}

// Output is a built syntax tree with its comment table.
type Output struct {
	Module   *tsast.Module
	Comments *tsast.Comments
}

// Render prints the tree.
func (o *Output) Render() string {
	return tsast.Print(o.Module, o.Comments)
}

// builder holds the request-local state of one compilation.
type builder struct {
	env      *idl.Env
	docs     *idl.Docs
	opts     Options
	cursor   *tsast.PosCursor
	comments *tsast.Comments
	enums    *enumRegistry
	ifaces   map[string]string // service declaration -> its interface name
}

func newBuilder(prog *idl.Program, opts Options) *builder {
	taken := map[string]bool{}
	names := prog.Env.Names()
	for _, name := range names {
		taken[typeName(name)] = true
	}
	ifaces := map[string]string{}
	for _, name := range names {
		t, _ := prog.Env.Lookup(name)
		if _, ok := t.(idl.Service); !ok {
			continue
		}
		iface := freeName(typeName(name)+"Interface", taken)
		taken[iface] = true
		ifaces[name] = iface
	}
	return &builder{
		env:      prog.Env,
		docs:     prog.Docs,
		opts:     opts,
		cursor:   tsast.NewPosCursor(),
		comments: tsast.NewComments(),
		enums:    newEnumRegistry(taken),
		ifaces:   ifaces,
	}
}

// typeDefinitions emits one declaration per environment entry in
// Definition List order. Tag-only variants become enums, which are
// collected in the registry and emitted separately.
func (b *builder) typeDefinitions() ([]tsast.Item, error) {
	plan, err := analysis.PlanAll(b.env)
	if err != nil {
		return nil, err
	}

	var items []tsast.Item
	for _, name := range plan.Defs {
		t, _ := b.env.Lookup(name)
		dd := b.docs.Decl(name)
		switch t := t.(type) {
		case idl.Record:
			if idl.IsTuple(t.Fields) {
				items = append(items, b.alias(name, t, dd))
				continue
			}
			items = append(items, &tsast.Export{Decl: &tsast.Interface{
				Pos:     b.attach(dd.Lines),
				Name:    typeName(name),
				Members: b.recordMembers(t.Fields, dd),
			}})
		case idl.Variant:
			if idl.IsEnum(t.Fields) {
				b.enums.named(typeName(name), t.Fields, b.attach(dd.Lines))
				continue
			}
			items = append(items, b.alias(name, t, dd))
		case idl.Service:
			items = append(items,
				b.alias(name, t, dd),
				&tsast.Export{Decl: &tsast.Interface{
					Name:    b.ifaces[name],
					Members: b.methodSigs(t, dd),
				}})
		default:
			items = append(items, b.alias(name, t, dd))
		}
	}
	return items, nil
}

func (b *builder) alias(name string, t idl.Type, dd idl.DeclDocs) tsast.Item {
	return &tsast.Export{Decl: &tsast.TypeAlias{
		Pos:  b.attach(dd.Lines),
		Name: typeName(name),
		Type: b.nativeType(t),
	}}
}

func (b *builder) enumDeclarations() []tsast.Item {
	var items []tsast.Item
	for _, e := range b.enums.sorted() {
		items = append(items, &tsast.Export{Decl: e})
	}
	return items
}

// actorInterface emits the interface of the actor's service.
func (b *builder) actorInterface(actor idl.Type) (tsast.Item, error) {
	name := ServiceInterfaceName(b.opts.ServiceName)
	dd := b.docs.ActorDocs()
	switch a := actor.(type) {
	case idl.Class:
		return b.actorInterface(a.Service)
	case idl.Service:
		return &tsast.Export{Decl: &tsast.Interface{
			Pos:     b.attach(dd.Lines),
			Name:    name,
			Members: b.methodSigs(a, dd),
		}}, nil
	case idl.Var:
		target, err := b.serviceDecl(a.Name)
		if err != nil {
			return nil, err
		}
		return &tsast.Export{Decl: &tsast.Interface{
			Pos:     b.attach(dd.Lines),
			Name:    name,
			Extends: []string{b.ifaces[target]},
		}}, nil
	}
	return nil, analysis.CheckActor(b.env, actor)
}

// serviceDecl follows aliases from name to the declaration holding the
// service definition.
func (b *builder) serviceDecl(name string) (string, error) {
	seen := map[string]bool{}
	for !seen[name] {
		seen[name] = true
		t, ok := b.env.Lookup(name)
		if !ok {
			return "", &analysis.UnresolvedReferenceError{Name: name, Referrer: analysis.ReferrerActor}
		}
		switch t := t.(type) {
		case idl.Service:
			return name, nil
		case idl.Var:
			name = t.Name
		default:
			return "", analysis.CheckActor(b.env, idl.Var{Name: name})
		}
	}
	return "", analysis.CheckActor(b.env, idl.Var{Name: name})
}

// actorMethods returns the service of the actor and the docs of its
// methods.
func (b *builder) actorMethods(actor idl.Type) (idl.Service, idl.DeclDocs, error) {
	svc, err := analysis.ActorService(b.env, actor)
	if err != nil {
		return idl.Service{}, idl.DeclDocs{}, err
	}
	dd := b.docs.ActorDocs()
	if v, ok := unwrapClass(actor).(idl.Var); ok {
		if name, err := b.serviceDecl(v.Name); err == nil {
			dd = b.docs.Decl(name)
		}
	}
	return svc, dd, nil
}

func unwrapClass(t idl.Type) idl.Type {
	if c, ok := t.(idl.Class); ok {
		return unwrapClass(c.Service)
	}
	return t
}
