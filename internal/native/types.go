package native

import (
	"strconv"

	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/tsast"
)

var (
	principalRef = &tsast.Ref{Name: "Principal"}
	funcRefType  = &tsast.Tuple{Elems: []tsast.Type{principalRef, tsast.Keyword("string")}}
)

func primType(p idl.Prim) tsast.Type {
	switch p {
	case idl.Null:
		return tsast.Keyword("null")
	case idl.Bool:
		return tsast.Keyword("boolean")
	case idl.Nat, idl.Int, idl.Nat64, idl.Int64:
		return tsast.Keyword("bigint")
	case idl.Nat8, idl.Nat16, idl.Nat32, idl.Int8, idl.Int16, idl.Int32, idl.Float32, idl.Float64:
		return tsast.Keyword("number")
	case idl.Text:
		return tsast.Keyword("string")
	case idl.Reserved:
		return tsast.Keyword("any")
	case idl.Empty:
		return tsast.Keyword("never")
	case idl.Principal:
		return principalRef
	}
	return tsast.Keyword("unknown")
}

// nullable reports whether the native form of t can itself be null, in
// which case an enclosing opt needs the Option wrapper to stay
// unambiguous.
func (b *builder) nullable(t idl.Type) bool {
	traced, ok := b.env.Trace(t)
	if !ok {
		return false
	}
	switch traced := traced.(type) {
	case idl.Opt:
		return true
	case idl.Prim:
		return traced == idl.Null || traced == idl.Reserved
	}
	return false
}

// nativeType maps an IDL type to its idiomatic TypeScript form.
func (b *builder) nativeType(t idl.Type) tsast.Type {
	switch t := t.(type) {
	case idl.Prim:
		return primType(t)
	case idl.Var:
		return &tsast.Ref{Name: typeName(t.Name)}
	case idl.Opt:
		inner := b.nativeType(t.Elem)
		if b.nullable(t.Elem) {
			return &tsast.Ref{Name: "Option", Args: []tsast.Type{inner}}
		}
		return &tsast.Union{Types: []tsast.Type{inner, tsast.Keyword("null")}}
	case idl.Vec:
		if p, ok := t.Elem.(idl.Prim); ok && p == idl.Nat8 {
			return &tsast.Ref{Name: "Uint8Array"}
		}
		return &tsast.Ref{Name: "Array", Args: []tsast.Type{b.nativeType(t.Elem)}}
	case idl.Record:
		if idl.IsTuple(t.Fields) {
			elems := make([]tsast.Type, len(t.Fields))
			for i, f := range t.Fields {
				elems[i] = b.nativeType(f.Type)
			}
			return &tsast.Tuple{Elems: elems}
		}
		return &tsast.Object{Members: b.recordMembers(t.Fields, idl.DeclDocs{})}
	case idl.Variant:
		if len(t.Fields) == 0 {
			return tsast.Keyword("never")
		}
		if idl.IsEnum(t.Fields) {
			return &tsast.Ref{Name: b.enums.anonymous(t.Fields)}
		}
		return b.taggedUnion(t.Fields)
	case idl.Func:
		return funcRefType
	case idl.Service, idl.Class:
		return principalRef
	}
	return tsast.Keyword("unknown")
}

func (b *builder) recordMembers(fs []idl.Field, dd idl.DeclDocs) []tsast.Member {
	members := make([]tsast.Member, len(fs))
	for i, f := range fs {
		members[i] = &tsast.PropertySig{
			Pos:  b.attach(dd.Member(f.Label.String())),
			Name: fieldName(f.Label),
			Type: b.nativeType(f.Type),
		}
	}
	return members
}

// taggedUnion maps a variant to { __kind__: "a"; a: T } | ...
func (b *builder) taggedUnion(fs []idl.Field) tsast.Type {
	cases := make([]tsast.Type, len(fs))
	for i, f := range fs {
		cases[i] = &tsast.Object{Members: []tsast.Member{
			&tsast.PropertySig{Name: "__kind__", Type: tsast.LitType(f.Label.String())},
			&tsast.PropertySig{Name: fieldName(f.Label), Type: b.nativeType(f.Type)},
		}}
	}
	return &tsast.Union{Types: cases}
}

// funcOf resolves a method type to its function signature.
func (b *builder) funcOf(t idl.Type) (idl.Func, bool) {
	traced, ok := b.env.Trace(t)
	if !ok {
		return idl.Func{}, false
	}
	fn, ok := traced.(idl.Func)
	return fn, ok
}

func argName(i int) string {
	return "arg" + strconv.Itoa(i)
}

func (b *builder) params(fn idl.Func) []tsast.Param {
	params := make([]tsast.Param, len(fn.Args))
	for i, a := range fn.Args {
		params[i] = tsast.Param{Name: argName(i), Type: b.nativeType(a)}
	}
	return params
}

// resultType is the settled value of a method's promise.
func (b *builder) resultType(fn idl.Func) tsast.Type {
	var inner tsast.Type
	switch len(fn.Rets) {
	case 0:
		inner = tsast.Keyword("void")
	case 1:
		inner = b.nativeType(fn.Rets[0])
	default:
		elems := make([]tsast.Type, len(fn.Rets))
		for i, r := range fn.Rets {
			elems[i] = b.nativeType(r)
		}
		inner = &tsast.Tuple{Elems: elems}
	}
	return &tsast.Ref{Name: "Promise", Args: []tsast.Type{inner}}
}

func (b *builder) methodSigs(svc idl.Service, dd idl.DeclDocs) []tsast.Member {
	var members []tsast.Member
	for _, m := range svc.Methods {
		fn, ok := b.funcOf(m.Type)
		if !ok {
			continue
		}
		members = append(members, &tsast.MethodSig{
			Pos:    b.attach(dd.Member(m.Name)),
			Name:   methodName(m.Name),
			Params: b.params(fn),
			Result: b.resultType(fn),
		})
	}
	return members
}

// retsType packs a multi-value result as a tuple record so it converts
// like any other tuple.
func retsType(rets []idl.Type) idl.Type {
	if len(rets) == 1 {
		return rets[0]
	}
	fs := make([]idl.Field, len(rets))
	for i, r := range rets {
		fs[i] = idl.Field{Label: idl.ID(uint32(i)), Type: r}
	}
	return idl.Record{Fields: fs}
}
