// Package javascript emits the runtime interface description: the
// `.did.js` module that builds IDL type values at load time, and its
// annotated `.did.ts` counterpart.
//
// Recursive declarations are forward-declared with IDL.Rec() and filled
// once their definition is available:
//
//	const List = IDL.Rec();
//	List.fill(IDL.Opt(IDL.Tuple(IDL.Int32, List)));
package javascript

import (
	"strconv"

	"github.com/roach88/bindgen/internal/analysis"
	"github.com/roach88/bindgen/internal/ident"
	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/pretty"
)

// Options control the runtime description.
type Options struct {
	// RootExports additionally exports every definition, idlService and
	// idlInitArgs at module level.
	RootExports bool
}

const importIDL = "import { IDL } from '@icp-sdk/core/candid';"

// Compile renders the `.did.js` artifact.
func Compile(prog *idl.Program, opts Options) (string, error) {
	body, err := module(prog, opts, untyped)
	if err != nil {
		return "", err
	}
	return pretty.Concat(pretty.Text(importIDL), pretty.HardLine(), pretty.HardLine(), body).String(), nil
}

// signatures holds the left-hand sides of the exported bindings.
type signatures struct {
	idlService  string
	idlInitArgs string
	idlFactory  string
	init        string
}

var untyped = signatures{
	idlService:  "export const idlService = ",
	idlInitArgs: "export const idlInitArgs = ",
	idlFactory:  "export const idlFactory = ({ IDL }) => ",
	init:        "export const init = ({ IDL }) => ",
}

func module(prog *idl.Program, opts Options, sig signatures) (*pretty.Doc, error) {
	env := prog.Env
	if !prog.HasActor() {
		plan, err := analysis.PlanAll(env)
		if err != nil {
			return nil, err
		}
		return defs(env, plan, opts.RootExports), nil
	}

	if err := analysis.CheckActor(env, prog.Actor); err != nil {
		return nil, err
	}
	initArgs := analysis.InitArgs(prog.Actor)

	var parts []*pretty.Doc
	if opts.RootExports {
		roots := append([]idl.Type{prog.Actor}, initArgs...)
		plan, err := analysis.PlanTypes(env, roots)
		if err != nil {
			return nil, err
		}
		parts = append(parts,
			defs(env, plan, true),
			pretty.Text(sig.idlService).Append(actor(prog.Actor, plan), pretty.Text(";"), pretty.HardLine()),
			pretty.Text(sig.idlInitArgs).Append(args(initArgs), pretty.Text(";"), pretty.HardLine()),
			pretty.HardLine(),
		)
	}

	plan, err := analysis.PlanActor(env, prog.Actor)
	if err != nil {
		return nil, err
	}
	factory := defs(env, plan, false).Append(
		pretty.Kwd("return"), actor(prog.Actor, plan), pretty.Text(";"))
	parts = append(parts,
		pretty.Text(sig.idlFactory).Append(pretty.EncloseSpace("{", factory, "}"), pretty.Text(";"), pretty.HardLine()))

	initPlan, err := analysis.PlanTypes(env, initArgs)
	if err != nil {
		return nil, err
	}
	init := defs(env, initPlan, false).Append(
		pretty.Kwd("return"), args(initArgs), pretty.Text(";"))
	parts = append(parts,
		pretty.Text(sig.init).Append(pretty.EncloseSpace("{", init, "}"), pretty.Text(";"), pretty.HardLine()))

	return pretty.Concat(parts...), nil
}

// defs prints the forward declarations for every marker, then each
// definition in plan order as either a fill or a const.
func defs(env *idl.Env, plan *analysis.Plan, export bool) *pretty.Doc {
	prefix := ""
	if export {
		prefix = "export "
	}

	var lines []*pretty.Doc
	for _, name := range plan.Recs.Sorted() {
		lines = append(lines, pretty.Text(prefix+"const "+id(name)+" = IDL.Rec();"))
	}
	for _, name := range plan.Defs {
		t, _ := env.Lookup(name)
		if plan.IsRec(name) {
			lines = append(lines, pretty.Text(id(name)+".fill").Append(
				pretty.Enclose("(", ty(t), ")"), pretty.Text(";")))
			continue
		}
		lines = append(lines, pretty.Kwd(prefix+"const").Append(
			pretty.Kwd(id(name)), pretty.Kwd("="), ty(t), pretty.Text(";")))
	}
	return pretty.Lines(lines)
}

func actor(t idl.Type, plan *analysis.Plan) *pretty.Doc {
	switch a := t.(type) {
	case idl.Service:
		return ty(a)
	case idl.Var:
		if plan.IsRec(a.Name) {
			return pretty.Text(id(a.Name) + ".getType()")
		}
		return pretty.Text(id(a.Name))
	case idl.Class:
		return actor(a.Service, plan)
	}
	// CheckActor rejects every other shape before printing starts.
	return pretty.Nil()
}

func id(name string) string {
	return ident.JavaScript.Escape(name)
}

func ty(t idl.Type) *pretty.Doc {
	switch t := t.(type) {
	case idl.Prim:
		return pretty.Text(primName(t))
	case idl.Var:
		return pretty.Text(id(t.Name))
	case idl.Opt:
		return pretty.Text("IDL.Opt").Append(pretty.Enclose("(", ty(t.Elem), ")"))
	case idl.Vec:
		return pretty.Text("IDL.Vec").Append(pretty.Enclose("(", ty(t.Elem), ")"))
	case idl.Record:
		if idl.IsTuple(t.Fields) {
			tys := make([]*pretty.Doc, len(t.Fields))
			for i, f := range t.Fields {
				tys[i] = ty(f.Type)
			}
			return pretty.Text("IDL.Tuple").Append(pretty.Enclose("(", pretty.Join(tys, ","), ")"))
		}
		return pretty.Text("IDL.Record").Append(pretty.Enclose("(", fields(t.Fields), ")"))
	case idl.Variant:
		return pretty.Text("IDL.Variant").Append(pretty.Enclose("(", fields(t.Fields), ")"))
	case idl.Func:
		return pretty.Text("IDL.Func").Append(pretty.Enclose("(", pretty.Join([]*pretty.Doc{
			args(t.Args), args(t.Rets), modes(t.Modes),
		}, ","), ")"))
	case idl.Service:
		methods := make([]*pretty.Doc, len(t.Methods))
		for i, m := range t.Methods {
			methods[i] = pretty.Text(pretty.Quote(m.Name) + " ").Append(pretty.Kwd(":"), ty(m.Type))
		}
		return pretty.Text("IDL.Service").Append(
			pretty.Enclose("(", pretty.EncloseSpace("{", pretty.Join(methods, ","), "}"), ")"))
	case idl.Class:
		return ty(t.Service)
	}
	return pretty.Text("IDL.Reserved")
}

func fields(fs []idl.Field) *pretty.Doc {
	docs := make([]*pretty.Doc, len(fs))
	for i, f := range fs {
		docs[i] = label(f.Label).Append(pretty.Kwd(":"), ty(f.Type))
	}
	return pretty.EncloseSpace("{", pretty.Join(docs, ","), "}")
}

func label(l idl.Label) *pretty.Doc {
	if name, ok := l.Name(); ok {
		return pretty.Text(pretty.Quote(name) + " ")
	}
	return pretty.Text("_" + strconv.FormatUint(uint64(l.Number()), 10) + "_ ")
}

func args(ts []idl.Type) *pretty.Doc {
	docs := make([]*pretty.Doc, len(ts))
	for i, t := range ts {
		docs[i] = ty(t)
	}
	return pretty.Enclose("[", pretty.Join(docs, ","), "]")
}

func modes(ms []idl.Mode) *pretty.Doc {
	docs := make([]*pretty.Doc, len(ms))
	for i, m := range ms {
		docs[i] = pretty.Text(pretty.Quote(m.String()))
	}
	return pretty.Enclose("[", pretty.Join(docs, ","), "]")
}

func primName(p idl.Prim) string {
	switch p {
	case idl.Null:
		return "IDL.Null"
	case idl.Bool:
		return "IDL.Bool"
	case idl.Nat:
		return "IDL.Nat"
	case idl.Int:
		return "IDL.Int"
	case idl.Nat8:
		return "IDL.Nat8"
	case idl.Nat16:
		return "IDL.Nat16"
	case idl.Nat32:
		return "IDL.Nat32"
	case idl.Nat64:
		return "IDL.Nat64"
	case idl.Int8:
		return "IDL.Int8"
	case idl.Int16:
		return "IDL.Int16"
	case idl.Int32:
		return "IDL.Int32"
	case idl.Int64:
		return "IDL.Int64"
	case idl.Float32:
		return "IDL.Float32"
	case idl.Float64:
		return "IDL.Float64"
	case idl.Text:
		return "IDL.Text"
	case idl.Reserved:
		return "IDL.Reserved"
	case idl.Empty:
		return "IDL.Empty"
	case idl.Principal:
		return "IDL.Principal"
	}
	return "IDL.Reserved"
}
