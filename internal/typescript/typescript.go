// Package typescript emits the `.did.d.ts` declaration file: static
// TypeScript types mirroring the wire representation of every
// declaration, plus the `_SERVICE` interface of the actor.
package typescript

import (
	"strconv"

	"github.com/roach88/bindgen/internal/analysis"
	"github.com/roach88/bindgen/internal/ident"
	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/pretty"
)

// Options control the declaration file.
type Options struct {
	// RootExports declares idlService and idlInitArgs.
	RootExports bool
}

// ServiceInterface is the name of the actor's method table interface.
const ServiceInterface = "_SERVICE"

// Compile renders the `.did.d.ts` artifact.
func Compile(prog *idl.Program, opts Options) (string, error) {
	decls, err := Declarations(prog)
	if err != nil {
		return "", err
	}
	tail := []*pretty.Doc{}
	if opts.RootExports {
		tail = append(tail,
			pretty.Text("export declare const idlService: IDL.ServiceClass;"),
			pretty.Text("export declare const idlInitArgs: IDL.Type[];"))
	}
	tail = append(tail,
		pretty.Text("export declare const idlFactory: IDL.InterfaceFactory;"),
		pretty.Text("export declare const init: (args: { IDL: typeof IDL }) => IDL.Type[];"))

	doc := pretty.Concat(
		Imports(true),
		pretty.HardLine(),
		decls,
		pretty.Lines(tail),
	)
	return doc.String(), nil
}

// Imports returns the import block. The IDL import is type-only in the
// declaration file and omitted when the caller imports it as a value.
func Imports(withIDL bool) *pretty.Doc {
	lines := []*pretty.Doc{
		pretty.Text("import type { Principal } from '@icp-sdk/core/principal';"),
		pretty.Text("import type { ActorMethod } from '@icp-sdk/core/agent';"),
	}
	if withIDL {
		lines = append(lines, pretty.Text("import type { IDL } from '@icp-sdk/core/candid';"))
	}
	return pretty.Lines(lines)
}

// Declarations returns one exported type per declaration followed by
// the `_SERVICE` interface when the program has an actor.
func Declarations(prog *idl.Program) (*pretty.Doc, error) {
	plan, err := analysis.PlanAll(prog.Env)
	if err != nil {
		return nil, err
	}
	p := &printer{env: prog.Env, docs: prog.Docs}

	defs := make([]*pretty.Doc, 0, len(plan.Defs)+1)
	for _, name := range plan.Defs {
		t, _ := prog.Env.Lookup(name)
		defs = append(defs, p.def(name, t))
	}
	if prog.HasActor() {
		if err := analysis.CheckActor(prog.Env, prog.Actor); err != nil {
			return nil, err
		}
		defs = append(defs, p.actor(prog.Actor))
	}
	return pretty.Lines(defs), nil
}

type printer struct {
	env  *idl.Env
	docs *idl.Docs
}

func (p *printer) def(name string, t idl.Type) *pretty.Doc {
	dd := p.docs.Decl(name)
	id := ident.TypeScript.Escape(name)
	var body *pretty.Doc
	switch t := t.(type) {
	case idl.Record:
		if idl.IsTuple(t.Fields) {
			body = pretty.Kwd("export type").Append(pretty.Text(id), pretty.Text(" = "), p.ty(t), pretty.Text(";"))
		} else {
			body = pretty.Kwd("export interface").Append(pretty.Kwd(id), p.fields(t.Fields, dd))
		}
	case idl.Service:
		body = pretty.Kwd("export interface").Append(pretty.Kwd(id), p.service(t, dd))
	case idl.Func:
		body = pretty.Kwd("export type").Append(pretty.Text(id), pretty.Text(" = "), p.function(t), pretty.Text(";"))
	default:
		body = pretty.Kwd("export type").Append(pretty.Text(id), pretty.Text(" = "), p.ty(t), pretty.Text(";"))
	}
	return DocComment(dd.Lines).Append(body)
}

func (p *printer) actor(actor idl.Type) *pretty.Doc {
	dd := p.docs.ActorDocs()
	var body *pretty.Doc
	switch a := actor.(type) {
	case idl.Service:
		body = pretty.Kwd("export interface").Append(pretty.Kwd(ServiceInterface), p.service(a, dd))
	case idl.Var:
		body = pretty.Kwd("export interface").Append(
			pretty.Kwd(ServiceInterface), pretty.Kwd("extends"), pretty.Kwd(ident.TypeScript.Escape(a.Name)), pretty.Text("{}"))
	case idl.Class:
		return p.actor(a.Service)
	}
	return DocComment(dd.Lines).Append(body)
}

func (p *printer) ty(t idl.Type) *pretty.Doc {
	switch t := t.(type) {
	case idl.Prim:
		return pretty.Text(primName(t))
	case idl.Var:
		return pretty.Text(ident.TypeScript.Escape(t.Name))
	case idl.Opt:
		return pretty.Text("[] | [").Append(p.ty(t.Elem), pretty.Text("]"))
	case idl.Vec:
		if arr, ok := typedArray(t.Elem); ok {
			return pretty.Text(arr)
		}
		return pretty.Text("Array<").Append(p.ty(t.Elem), pretty.Text(">"))
	case idl.Record:
		if idl.IsTuple(t.Fields) {
			return p.tuple(t.Fields)
		}
		return p.fields(t.Fields, idl.DeclDocs{})
	case idl.Variant:
		if len(t.Fields) == 0 {
			return pretty.Text("never")
		}
		cases := make([]*pretty.Doc, len(t.Fields))
		for i, f := range t.Fields {
			cases[i] = pretty.EncloseSpace("{", p.field(f), "}")
		}
		return pretty.Intersperse(cases, pretty.Text(" |").Append(pretty.Line())).Group()
	case idl.Func:
		return pretty.Text("[Principal, string]")
	case idl.Service, idl.Class:
		return pretty.Text("Principal")
	}
	return pretty.Text("any")
}

func (p *printer) tuple(fs []idl.Field) *pretty.Doc {
	tys := make([]*pretty.Doc, len(fs))
	for i, f := range fs {
		tys[i] = p.ty(f.Type)
	}
	return pretty.Enclose("[", pretty.Join(tys, ","), "]")
}

func (p *printer) fields(fs []idl.Field, dd idl.DeclDocs) *pretty.Doc {
	docs := make([]*pretty.Doc, len(fs))
	for i, f := range fs {
		docs[i] = DocComment(dd.Member(f.Label.String())).Append(p.field(f))
	}
	return pretty.EncloseSpace("{", pretty.Join(docs, ","), "}")
}

func (p *printer) field(f idl.Field) *pretty.Doc {
	return Label(f.Label).Append(pretty.Kwd(":"), p.ty(f.Type))
}

func (p *printer) service(s idl.Service, dd idl.DeclDocs) *pretty.Doc {
	methods := make([]*pretty.Doc, len(s.Methods))
	for i, m := range s.Methods {
		var ty *pretty.Doc
		if fn, ok := m.Type.(idl.Func); ok {
			ty = p.function(fn)
		} else {
			ty = p.ty(m.Type)
		}
		methods[i] = DocComment(dd.Member(m.Name)).Append(
			pretty.Text(pretty.Quote(m.Name)+" "), pretty.Kwd(":"), ty)
	}
	return pretty.EncloseSpace("{", pretty.Join(methods, ","), "}")
}

func (p *printer) function(fn idl.Func) *pretty.Doc {
	args := make([]*pretty.Doc, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = p.ty(a)
	}
	var ret *pretty.Doc
	switch len(fn.Rets) {
	case 0:
		ret = pretty.Text("undefined")
	case 1:
		ret = p.ty(fn.Rets[0])
	default:
		rets := make([]*pretty.Doc, len(fn.Rets))
		for i, r := range fn.Rets {
			rets[i] = p.ty(r)
		}
		ret = pretty.Enclose("[", pretty.Join(rets, ","), "]")
	}
	return pretty.Text("ActorMethod<").Append(
		pretty.Enclose("[", pretty.Join(args, ","), "]"), pretty.Text(", "), ret, pretty.Text(">"))
}

func primName(p idl.Prim) string {
	switch p {
	case idl.Null:
		return "null"
	case idl.Bool:
		return "boolean"
	case idl.Nat, idl.Int, idl.Nat64, idl.Int64:
		return "bigint"
	case idl.Nat8, idl.Nat16, idl.Nat32, idl.Int8, idl.Int16, idl.Int32, idl.Float32, idl.Float64:
		return "number"
	case idl.Text:
		return "string"
	case idl.Reserved:
		return "any"
	case idl.Empty:
		return "never"
	case idl.Principal:
		return "Principal"
	}
	return "any"
}

func typedArray(elem idl.Type) (string, bool) {
	p, ok := elem.(idl.Prim)
	if !ok {
		return "", false
	}
	switch p {
	case idl.Nat8:
		return "Uint8Array | number[]", true
	case idl.Nat16:
		return "Uint16Array | number[]", true
	case idl.Nat32:
		return "Uint32Array | number[]", true
	case idl.Nat64:
		return "BigUint64Array | bigint[]", true
	case idl.Int8:
		return "Int8Array | number[]", true
	case idl.Int16:
		return "Int16Array | number[]", true
	case idl.Int32:
		return "Int32Array | number[]", true
	case idl.Int64:
		return "BigInt64Array | bigint[]", true
	case idl.Float32:
		return "Float32Array | number[]", true
	case idl.Float64:
		return "Float64Array | number[]", true
	}
	return "", false
}

// Label renders a field label: quoted text or `_N_` for numeric ids.
func Label(l idl.Label) *pretty.Doc {
	if name, ok := l.Name(); ok {
		return pretty.Text(pretty.Quote(name) + " ")
	}
	return pretty.Text("_" + strconv.FormatUint(uint64(l.Number()), 10) + "_ ")
}

// DocComment renders lines as a JSDoc block followed by a line break,
// or nothing when lines is empty. Every line is escaped.
func DocComment(lines []string) *pretty.Doc {
	if len(lines) == 0 {
		return pretty.Nil()
	}
	out := []*pretty.Doc{pretty.Text("/**")}
	for _, l := range ident.EscapeDocs(lines) {
		if l == "" {
			out = append(out, pretty.Text(" *"))
			continue
		}
		out = append(out, pretty.Text(" * "+l))
	}
	out = append(out, pretty.Text(" */"))
	return pretty.Lines(out)
}
