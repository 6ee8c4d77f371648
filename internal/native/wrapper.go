package native

import (
	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/tsast"
)

const agentConflictWarning = "Detected both agent and agentOptions passed to createActor. Ignoring agentOptions and proceeding with the provided agent."

// CompileWrapper builds the wrapper file: everything in the interface
// file plus a class that converts between native and wire values around
// each actor call, and a concrete createActor.
func CompileWrapper(prog *idl.Program, opts Options) (*Output, error) {
	b := newBuilder(prog, opts)
	conv := newConverter(b)

	defs, err := b.typeDefinitions()
	if err != nil {
		return nil, err
	}

	var service, class, factory []tsast.Item
	if prog.HasActor() {
		iface, err := b.actorInterface(prog.Actor)
		if err != nil {
			return nil, err
		}
		cls, err := wrapperClass(b, conv, prog.Actor)
		if err != nil {
			return nil, err
		}
		service = []tsast.Item{iface}
		class = []tsast.Item{cls}
		factory = []tsast.Item{createActorOptions(), createActorFunc(opts.ServiceName)}
	}

	m := &tsast.Module{}
	m.Items = append(m.Items, wrapperImports(opts.ServiceName, prog.HasActor(), conv.wireImports())...)
	m.Items = append(m.Items, optionUtils()...)
	m.Items = append(m.Items, defs...)
	m.Items = append(m.Items, b.enumDeclarations()...)
	m.Items = append(m.Items, service...)
	m.Items = append(m.Items, class...)
	m.Items = append(m.Items, conv.declarations()...)
	m.Items = append(m.Items, factory...)
	return &Output{Module: m, Comments: b.comments}, nil
}

func wrapperClass(b *builder, conv *converter, actor idl.Type) (tsast.Item, error) {
	svc, dd, err := b.actorMethods(actor)
	if err != nil {
		return nil, err
	}

	var methods []tsast.ClassMethod
	for _, m := range svc.Methods {
		fn, ok := b.funcOf(m.Type)
		if !ok {
			continue
		}
		methods = append(methods, tsast.ClassMethod{
			Pos:    b.attach(dd.Member(m.Name)),
			Name:   methodName(m.Name),
			Async:  true,
			Params: b.params(fn),
			Result: b.resultType(fn),
			Body:   methodBody(conv, m.Name, fn),
		})
	}

	return &tsast.Export{Decl: &tsast.Class{
		Name:       ServiceClassName(b.opts.ServiceName),
		Implements: []string{ServiceInterfaceName(b.opts.ServiceName)},
		Ctor: &tsast.Constructor{Params: []tsast.Param{
			{
				Modifier: "private",
				Name:     "actor",
				Type:     &tsast.Ref{Name: "ActorSubclass", Args: []tsast.Type{&tsast.Ref{Name: "_SERVICE"}}},
			},
			{
				Modifier: "private",
				Name:     "processError",
				Optional: true,
				Type: &tsast.FuncType{
					Params: []tsast.Param{{Name: "error", Type: tsast.Keyword("unknown")}},
					Result: tsast.Keyword("never"),
				},
			},
		}},
		Methods: methods,
	}}, nil
}

// methodBody calls the actor with converted arguments and converts the
// result back. Failures go through processError when one is set.
func methodBody(conv *converter, wire string, fn idl.Func) *tsast.Block {
	this := tsast.Ident("this")
	args := make([]tsast.Expr, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = conv.apply(toCandid, a, tsast.Ident(argName(i)))
	}
	call := &tsast.Await{X: &tsast.Call{
		Fn:   &tsast.MemberExpr{X: &tsast.MemberExpr{X: this, Name: "actor"}, Name: wire},
		Args: args,
	}}

	var body []tsast.Stmt
	if len(fn.Rets) == 0 {
		body = []tsast.Stmt{&tsast.ExprStmt{X: call}, &tsast.Return{}}
	} else {
		body = []tsast.Stmt{
			&tsast.Const{Name: "result", Value: call},
			&tsast.Return{Value: conv.apply(fromCandid, retsType(fn.Rets), tsast.Ident("result"))},
		}
	}

	processError := &tsast.MemberExpr{X: this, Name: "processError"}
	return &tsast.Block{Stmts: []tsast.Stmt{&tsast.Try{
		Body:  &tsast.Block{Stmts: body},
		Param: "e",
		Handler: &tsast.Block{Stmts: []tsast.Stmt{
			&tsast.If{
				Cond: processError,
				Then: &tsast.Block{Stmts: []tsast.Stmt{
					&tsast.ExprStmt{X: &tsast.Call{Fn: processError, Args: []tsast.Expr{tsast.Ident("e")}}},
				}},
			},
			&tsast.Throw{Value: tsast.Ident("e")},
		}},
	}}}
}

// createActorFunc builds an agent unless one is supplied, creates the
// actor and wraps it in the service class.
func createActorFunc(service string) tsast.Item {
	options := tsast.Ident("options")
	opt := func(name string) tsast.Expr { return &tsast.MemberExpr{X: options, Name: name} }

	return &tsast.Export{Decl: &tsast.Function{
		Name: "createActor",
		Params: []tsast.Param{
			canisterIDParam(),
			{Name: "options", Type: &tsast.Ref{Name: "CreateActorOptions"}, Default: &tsast.ObjectLit{}},
		},
		Result: &tsast.Ref{Name: ServiceInterfaceName(service)},
		Body: &tsast.Block{Stmts: []tsast.Stmt{
			&tsast.Const{
				Name: "agent",
				Value: &tsast.Binary{
					Op:   "||",
					Left: opt("agent"),
					Right: &tsast.Call{
						Fn:   &tsast.MemberExpr{X: tsast.Ident("HttpAgent"), Name: "createSync"},
						Args: []tsast.Expr{&tsast.ObjectLit{Props: []tsast.Prop{{Spread: true, Value: opt("agentOptions")}}}},
					},
				},
			},
			&tsast.If{
				Cond: &tsast.Binary{Op: "&&", Left: opt("agent"), Right: opt("agentOptions")},
				Then: &tsast.Block{Stmts: []tsast.Stmt{&tsast.ExprStmt{X: &tsast.Call{
					Fn:   &tsast.MemberExpr{X: tsast.Ident("console"), Name: "warn"},
					Args: []tsast.Expr{tsast.Str(agentConflictWarning)},
				}}}},
			},
			&tsast.Const{
				Name: "actor",
				Value: &tsast.Call{
					Fn:       &tsast.MemberExpr{X: tsast.Ident("Actor"), Name: "createActor"},
					TypeArgs: []tsast.Type{&tsast.Ref{Name: "_SERVICE"}},
					Args: []tsast.Expr{
						tsast.Ident("idlFactory"),
						&tsast.ObjectLit{Props: []tsast.Prop{
							{Key: "agent"},
							{Key: "canisterId"},
							{Spread: true, Value: opt("actorOptions")},
						}},
					},
				},
			},
			&tsast.Return{Value: &tsast.New{Class: tsast.Ident(ServiceClassName(service)), Args: []tsast.Expr{tsast.Ident("actor")}}},
		}},
	}}
}
