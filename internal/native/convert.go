package native

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/roach88/bindgen/internal/idl"
	"github.com/roach88/bindgen/internal/tsast"
)

type direction string

const (
	toCandid   direction = "to"
	fromCandid direction = "from"
)

// converter generates the functions that translate values between the
// runtime decoder's representation and the native one. Functions are
// de-duplicated by direction and structural key; names carry a counter
// so distinct shapes of the same kind never clash.
type converter struct {
	b       *builder
	names   map[string]string
	funcs   map[string]*tsast.Function
	counter int

	needs map[string]bool

	// wireRefs are declarations referenced by wire-side annotations,
	// imported from the runtime description under a "_" alias.
	wireRefs map[string]bool
}

func newConverter(b *builder) *converter {
	return &converter{
		b:        b,
		names:    make(map[string]string),
		funcs:    make(map[string]*tsast.Function),
		needs:    namedNeeds(b.env),
		wireRefs: make(map[string]bool),
	}
}

// needsConversion reports whether values of t differ between the two
// representations.
func (c *converter) needsConversion(t idl.Type) bool {
	return needsIn(t, c.needs)
}

func needsIn(t idl.Type, named map[string]bool) bool {
	switch t := t.(type) {
	case idl.Opt:
		return true
	case idl.Variant:
		return len(t.Fields) > 0
	case idl.Vec:
		return needsIn(t.Elem, named)
	case idl.Record:
		for _, f := range t.Fields {
			if fieldName(f.Label) != wireFieldName(f.Label) || needsIn(f.Type, named) {
				return true
			}
		}
	case idl.Var:
		return named[t.Name]
	}
	return false
}

// namedNeeds computes, for every declaration, whether it needs
// conversion. References are resolved as a least fixpoint so cycles
// that never reach a convertible shape stay unconverted.
func namedNeeds(env *idl.Env) map[string]bool {
	named := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, name := range env.Names() {
			if named[name] {
				continue
			}
			def, _ := env.Lookup(name)
			if needsIn(def, named) {
				named[name] = true
				changed = true
			}
		}
	}
	return named
}

// apply wraps x in a conversion call when t needs one.
func (c *converter) apply(dir direction, t idl.Type, x tsast.Expr) tsast.Expr {
	if !c.needsConversion(t) {
		return x
	}
	return &tsast.Call{Fn: tsast.Ident(c.function(dir, t)), Args: []tsast.Expr{x}}
}

func typeKey(t idl.Type) string {
	data, err := idl.MarshalCanonical(idl.EncodeType(t))
	if err != nil {
		return fmt.Sprintf("%#v", t)
	}
	return string(data)
}

func shapeName(t idl.Type) string {
	switch t := t.(type) {
	case idl.Var:
		return sanitizeIdent(t.Name)
	case idl.Record:
		if idl.IsTuple(t.Fields) {
			return "tuple"
		}
	case idl.Variant:
		if idl.IsEnum(t.Fields) {
			return "enum"
		}
	}
	return t.Kind().String()
}

// function returns the name of the converter for t, generating it on
// first use. The name is registered before the body is built so
// recursive types terminate.
func (c *converter) function(dir direction, t idl.Type) string {
	key := string(dir) + ":" + typeKey(t)
	if name, ok := c.names[key]; ok {
		return name
	}
	c.counter++
	name := fmt.Sprintf("%s_candid_%s_n%d", dir, shapeName(t), c.counter)
	c.names[key] = name

	value := tsast.Ident("value")
	fn := &tsast.Function{Name: name}
	if dir == toCandid {
		fn.Params = []tsast.Param{{Name: "value", Type: c.b.nativeType(t)}}
		fn.Result = c.wireType(t)
	} else {
		fn.Params = []tsast.Param{{Name: "value", Type: c.wireType(t)}}
		fn.Result = c.b.nativeType(t)
	}
	c.funcs[name] = fn
	fn.Body = &tsast.Block{Stmts: []tsast.Stmt{&tsast.Return{Value: c.body(dir, t, value, "")}}}
	return name
}

// body converts x of type t. enumName is the native enum to use when t
// is a tag-only variant reached through a named declaration.
func (c *converter) body(dir direction, t idl.Type, x tsast.Expr, enumName string) tsast.Expr {
	switch t := t.(type) {
	case idl.Var:
		def, _ := c.b.env.Lookup(t.Name)
		if v, ok := def.(idl.Variant); ok && idl.IsEnum(v.Fields) {
			return c.body(dir, def, x, typeName(t.Name))
		}
		return c.apply(dir, def, x)
	case idl.Opt:
		return c.opt(dir, t, x)
	case idl.Vec:
		return &tsast.Call{
			Fn: &tsast.MemberExpr{X: x, Name: "map"},
			Args: []tsast.Expr{&tsast.Arrow{
				Params: []tsast.Param{{Name: "x"}},
				Body:   c.apply(dir, t.Elem, tsast.Ident("x")),
			}},
		}
	case idl.Record:
		if idl.IsTuple(t.Fields) {
			elems := make([]tsast.Expr, len(t.Fields))
			for i, f := range t.Fields {
				elems[i] = c.apply(dir, f.Type, &tsast.Index{X: x, Index: tsast.Num(strconv.Itoa(i))})
			}
			return &tsast.ArrayLit{Elems: elems}
		}
		props := make([]tsast.Prop, len(t.Fields))
		for i, f := range t.Fields {
			src, dst := wireFieldName(f.Label), fieldName(f.Label)
			if dir == toCandid {
				src, dst = dst, src
			}
			props[i] = tsast.Prop{Key: dst, Value: c.apply(dir, f.Type, &tsast.MemberExpr{X: x, Name: src})}
		}
		return &tsast.ObjectLit{Props: props}
	case idl.Variant:
		if idl.IsEnum(t.Fields) {
			if enumName == "" {
				enumName = c.b.enums.anonymous(t.Fields)
			}
			return c.enum(dir, t.Fields, x, enumName)
		}
		return c.tagged(dir, t.Fields, x)
	}
	return x
}

func (c *converter) opt(dir direction, t idl.Opt, x tsast.Expr) tsast.Expr {
	wrapped := c.b.nullable(t.Elem)
	if dir == fromCandid {
		inner := c.apply(dir, t.Elem, &tsast.Index{X: x, Index: tsast.Num("0")})
		isNone := &tsast.Binary{Op: "===", Left: &tsast.MemberExpr{X: x, Name: "length"}, Right: tsast.Num("0")}
		if wrapped {
			return &tsast.Cond{
				Test: isNone,
				Then: &tsast.ObjectLit{Props: []tsast.Prop{{Key: "__kind__", Value: tsast.Str("None")}}},
				Else: &tsast.ObjectLit{Props: []tsast.Prop{
					{Key: "__kind__", Value: tsast.Str("Some")},
					{Key: "value", Value: inner},
				}},
			}
		}
		return &tsast.Cond{Test: isNone, Then: tsast.Null{}, Else: inner}
	}

	if wrapped {
		return &tsast.Cond{
			Test: &tsast.Binary{Op: "===", Left: &tsast.MemberExpr{X: x, Name: "__kind__"}, Right: tsast.Str("None")},
			Then: &tsast.ArrayLit{},
			Else: &tsast.ArrayLit{Elems: []tsast.Expr{c.apply(dir, t.Elem, &tsast.MemberExpr{X: x, Name: "value"})}},
		}
	}
	return &tsast.Cond{
		Test: &tsast.Binary{Op: "===", Left: x, Right: tsast.Null{}},
		Then: &tsast.ArrayLit{},
		Else: &tsast.ArrayLit{Elems: []tsast.Expr{c.apply(dir, t.Elem, x)}},
	}
}

// chain folds cases into test ? then : ... with the last case as the
// unconditional fallback.
func chain(tests []tsast.Expr, results []tsast.Expr) tsast.Expr {
	out := results[len(results)-1]
	for i := len(results) - 2; i >= 0; i-- {
		out = &tsast.Cond{Test: tests[i], Then: results[i], Else: out}
	}
	return out
}

func (c *converter) enum(dir direction, fs []idl.Field, x tsast.Expr, enumName string) tsast.Expr {
	tests := make([]tsast.Expr, len(fs))
	results := make([]tsast.Expr, len(fs))
	for i, f := range fs {
		member := &tsast.MemberExpr{X: tsast.Ident(enumName), Name: fieldName(f.Label)}
		if dir == fromCandid {
			tests[i] = &tsast.Binary{Op: "in", Left: tsast.Str(wireFieldName(f.Label)), Right: x}
			results[i] = member
			continue
		}
		tests[i] = &tsast.Binary{Op: "===", Left: x, Right: member}
		results[i] = &tsast.ObjectLit{Props: []tsast.Prop{{Key: wireFieldName(f.Label), Value: tsast.Null{}}}}
	}
	return chain(tests, results)
}

func (c *converter) tagged(dir direction, fs []idl.Field, x tsast.Expr) tsast.Expr {
	tests := make([]tsast.Expr, len(fs))
	results := make([]tsast.Expr, len(fs))
	for i, f := range fs {
		wire, native := wireFieldName(f.Label), fieldName(f.Label)
		if dir == fromCandid {
			tests[i] = &tsast.Binary{Op: "in", Left: tsast.Str(wire), Right: x}
			results[i] = &tsast.ObjectLit{Props: []tsast.Prop{
				{Key: "__kind__", Value: tsast.Str(f.Label.String())},
				{Key: native, Value: c.apply(dir, f.Type, &tsast.MemberExpr{X: x, Name: wire})},
			}}
			continue
		}
		tests[i] = &tsast.Binary{
			Op:    "===",
			Left:  &tsast.MemberExpr{X: x, Name: "__kind__"},
			Right: tsast.Str(f.Label.String()),
		}
		results[i] = &tsast.ObjectLit{Props: []tsast.Prop{
			{Key: wire, Value: c.apply(dir, f.Type, &tsast.MemberExpr{X: x, Name: native})},
		}}
	}
	return chain(tests, results)
}

// wireType is the TypeScript type of the runtime decoder's value for t.
// Named declarations refer to the declaration file's types.
func (c *converter) wireType(t idl.Type) tsast.Type {
	switch t := t.(type) {
	case idl.Prim:
		return primType(t)
	case idl.Var:
		c.wireRefs[t.Name] = true
		return &tsast.Ref{Name: wireAlias(t.Name)}
	case idl.Opt:
		return &tsast.Union{Types: []tsast.Type{
			&tsast.Tuple{},
			&tsast.Tuple{Elems: []tsast.Type{c.wireType(t.Elem)}},
		}}
	case idl.Vec:
		if p, ok := t.Elem.(idl.Prim); ok && p == idl.Nat8 {
			return &tsast.Union{Types: []tsast.Type{
				&tsast.Ref{Name: "Uint8Array"},
				&tsast.Ref{Name: "Array", Args: []tsast.Type{tsast.Keyword("number")}},
			}}
		}
		return &tsast.Ref{Name: "Array", Args: []tsast.Type{c.wireType(t.Elem)}}
	case idl.Record:
		if idl.IsTuple(t.Fields) {
			elems := make([]tsast.Type, len(t.Fields))
			for i, f := range t.Fields {
				elems[i] = c.wireType(f.Type)
			}
			return &tsast.Tuple{Elems: elems}
		}
		members := make([]tsast.Member, len(t.Fields))
		for i, f := range t.Fields {
			members[i] = &tsast.PropertySig{Name: wireFieldName(f.Label), Type: c.wireType(f.Type)}
		}
		return &tsast.Object{Members: members}
	case idl.Variant:
		if len(t.Fields) == 0 {
			return tsast.Keyword("never")
		}
		cases := make([]tsast.Type, len(t.Fields))
		for i, f := range t.Fields {
			cases[i] = &tsast.Object{Members: []tsast.Member{
				&tsast.PropertySig{Name: wireFieldName(f.Label), Type: c.wireType(f.Type)},
			}}
		}
		return &tsast.Union{Types: cases}
	case idl.Func:
		return funcRefType
	}
	return principalRef
}

func wireAlias(name string) string {
	return "_" + typeName(name)
}

// declarations returns the generated functions sorted by name.
func (c *converter) declarations() []tsast.Item {
	names := make([]string, 0, len(c.funcs))
	for n := range c.funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	items := make([]tsast.Item, len(names))
	for i, n := range names {
		items[i] = &tsast.Export{Decl: c.funcs[n]}
	}
	return items
}

// wireImports returns the sorted declaration names used by wire types.
func (c *converter) wireImports() []string {
	out := make([]string, 0, len(c.wireRefs))
	for n := range c.wireRefs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
