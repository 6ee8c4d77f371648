package idl

import (
	"strconv"
)

// Kind identifies the arm of the Type sum.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNat
	KindInt
	KindNat8
	KindNat16
	KindNat32
	KindNat64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindText
	KindReserved
	KindEmpty
	KindPrincipal
	KindOpt
	KindVec
	KindRecord
	KindVariant
	KindFunc
	KindService
	KindVar
	KindClass
)

var kindNames = [...]string{
	KindNull:      "null",
	KindBool:      "bool",
	KindNat:       "nat",
	KindInt:       "int",
	KindNat8:      "nat8",
	KindNat16:     "nat16",
	KindNat32:     "nat32",
	KindNat64:     "nat64",
	KindInt8:      "int8",
	KindInt16:     "int16",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindFloat32:   "float32",
	KindFloat64:   "float64",
	KindText:      "text",
	KindReserved:  "reserved",
	KindEmpty:     "empty",
	KindPrincipal: "principal",
	KindOpt:       "opt",
	KindVec:       "vec",
	KindRecord:    "record",
	KindVariant:   "variant",
	KindFunc:      "func",
	KindService:   "service",
	KindVar:       "var",
	KindClass:     "class",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Type is a node of the IDL type graph.
//
// The set of implementations is closed: Prim, Opt, Vec, Record, Variant,
// Func, Service, Var and Class.
type Type interface {
	Kind() Kind
	isType()
}

// Prim is a primitive type. Its value is the primitive's Kind.
type Prim Kind

// Primitive types.
const (
	Null      = Prim(KindNull)
	Bool      = Prim(KindBool)
	Nat       = Prim(KindNat)
	Int       = Prim(KindInt)
	Nat8      = Prim(KindNat8)
	Nat16     = Prim(KindNat16)
	Nat32     = Prim(KindNat32)
	Nat64     = Prim(KindNat64)
	Int8      = Prim(KindInt8)
	Int16     = Prim(KindInt16)
	Int32     = Prim(KindInt32)
	Int64     = Prim(KindInt64)
	Float32   = Prim(KindFloat32)
	Float64   = Prim(KindFloat64)
	Text      = Prim(KindText)
	Reserved  = Prim(KindReserved)
	Empty     = Prim(KindEmpty)
	Principal = Prim(KindPrincipal)
)

// PrimByName maps primitive keywords to their types.
func PrimByName(name string) (Prim, bool) {
	for k := KindNull; k <= KindPrincipal; k++ {
		if kindNames[k] == name {
			return Prim(k), true
		}
	}
	return 0, false
}

func (p Prim) Kind() Kind     { return Kind(p) }
func (p Prim) String() string { return Kind(p).String() }

// Opt is an optional value.
type Opt struct {
	Elem Type
}

func (Opt) Kind() Kind { return KindOpt }

// Vec is a homogeneous sequence.
type Vec struct {
	Elem Type
}

func (Vec) Kind() Kind { return KindVec }

// Record is a product type. Fields keep their declared order.
type Record struct {
	Fields []Field
}

func (Record) Kind() Kind { return KindRecord }

// Variant is a sum type. Fields keep their declared order.
type Variant struct {
	Fields []Field
}

func (Variant) Kind() Kind { return KindVariant }

// Mode is a function annotation.
type Mode int

const (
	ModeQuery Mode = iota
	ModeCompositeQuery
	ModeOneway
)

func (m Mode) String() string {
	switch m {
	case ModeQuery:
		return "query"
	case ModeCompositeQuery:
		return "composite_query"
	case ModeOneway:
		return "oneway"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ModeByName parses a mode annotation.
func ModeByName(name string) (Mode, bool) {
	for _, m := range []Mode{ModeQuery, ModeCompositeQuery, ModeOneway} {
		if m.String() == name {
			return m, true
		}
	}
	return 0, false
}

// Func is a function reference type.
type Func struct {
	Args  []Type
	Rets  []Type
	Modes []Mode
}

func (Func) Kind() Kind { return KindFunc }

// Method is a named service entry. Type is a Func or a Var naming one.
type Method struct {
	Name string
	Type Type
}

// Service is a method table in declared order.
type Service struct {
	Methods []Method
}

func (Service) Kind() Kind { return KindService }

// Var refers to another declaration in the environment by name.
type Var struct {
	Name string
}

func (Var) Kind() Kind { return KindVar }

// Class wraps a service with its constructor arguments. It only
// appears as an actor.
type Class struct {
	Args    []Type
	Service Type
}

func (Class) Kind() Kind { return KindClass }

func (Prim) isType()    {}
func (Opt) isType()     {}
func (Vec) isType()     {}
func (Record) isType()  {}
func (Variant) isType() {}
func (Func) isType()    {}
func (Service) isType() {}
func (Var) isType()     {}
func (Class) isType()   {}

// Children returns the direct structural children of t in declared
// order. Var has no children; references are followed by callers.
func Children(t Type) []Type {
	switch t := t.(type) {
	case Opt:
		return []Type{t.Elem}
	case Vec:
		return []Type{t.Elem}
	case Record:
		return fieldTypes(t.Fields)
	case Variant:
		return fieldTypes(t.Fields)
	case Func:
		out := make([]Type, 0, len(t.Args)+len(t.Rets))
		out = append(out, t.Args...)
		return append(out, t.Rets...)
	case Service:
		out := make([]Type, 0, len(t.Methods))
		for _, m := range t.Methods {
			out = append(out, m.Type)
		}
		return out
	case Class:
		out := make([]Type, 0, len(t.Args)+1)
		out = append(out, t.Args...)
		return append(out, t.Service)
	default:
		return nil
	}
}

func fieldTypes(fs []Field) []Type {
	out := make([]Type, len(fs))
	for i, f := range fs {
		out[i] = f.Type
	}
	return out
}
