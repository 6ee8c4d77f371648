package tsast

import (
	"regexp"
	"strings"

	"github.com/roach88/bindgen/internal/ident"
)

const indentUnit = "    "

// Print renders m as TypeScript source. Comments may be nil.
func Print(m *Module, comments *Comments) string {
	p := &printer{comments: comments}
	for _, it := range m.Items {
		p.item(it)
	}
	return p.b.String()
}

type printer struct {
	b        strings.Builder
	depth    int
	comments *Comments
}

func (p *printer) line(s string) {
	if s == "" {
		p.b.WriteByte('\n')
		return
	}
	p.b.WriteString(strings.Repeat(indentUnit, p.depth))
	p.b.WriteString(s)
	p.b.WriteByte('\n')
}

// comment prints the block comment attached to pos, re-indenting its
// continuation lines to the current depth.
func (p *printer) comment(pos Pos) {
	text, ok := p.comments.Get(pos)
	if !ok {
		return
	}
	ind := strings.Repeat(indentUnit, p.depth)
	p.line("/*" + strings.ReplaceAll(text, "\n", "\n"+ind) + "*/")
}

func (p *printer) item(it Item) {
	switch n := it.(type) {
	case *Import:
		p.line(importLine(n))
	case *Export:
		p.decl(n.Decl, "export ")
	case Decl:
		p.decl(n, "")
	}
}

func importLine(n *Import) string {
	specs := make([]string, len(n.Specifiers))
	for i, s := range n.Specifiers {
		spec := s.Name
		if s.Alias != "" {
			spec += " as " + s.Alias
		}
		if s.TypeOnly && !n.TypeOnly {
			spec = "type " + spec
		}
		specs[i] = spec
	}
	kw := "import "
	if n.TypeOnly {
		kw = "import type "
	}
	return kw + "{ " + strings.Join(specs, ", ") + " } from " + quote(n.Source) + ";"
}

func (p *printer) decl(d Decl, prefix string) {
	switch n := d.(type) {
	case *Interface:
		p.comment(n.Pos)
		head := prefix + "interface " + n.Name + typeParams(n.TypeParams)
		if len(n.Extends) > 0 {
			head += " extends " + strings.Join(n.Extends, ", ")
		}
		if len(n.Members) == 0 {
			p.line(head + " {}")
			return
		}
		p.line(head + " {")
		p.members(n.Members)
		p.line("}")
	case *TypeAlias:
		p.comment(n.Pos)
		p.line(prefix + "type " + n.Name + typeParams(n.TypeParams) + " = " + typeString(n.Type) + ";")
	case *Enum:
		p.comment(n.Pos)
		p.line(prefix + "enum " + n.Name + " {")
		p.depth++
		for i, m := range n.Members {
			sep := ","
			if i == len(n.Members)-1 {
				sep = ""
			}
			p.line(propName(m.Name) + " = " + quote(m.Value) + sep)
		}
		p.depth--
		p.line("}")
	case *Function:
		p.comment(n.Pos)
		head := prefix
		if n.Body == nil {
			head += "declare "
		}
		if n.Async {
			head += "async "
		}
		head += "function " + n.Name + "(" + params(n.Params) + ")"
		if n.Result != nil {
			head += ": " + typeString(n.Result)
		}
		if n.Body == nil {
			p.line(head + ";")
			return
		}
		p.block(head, n.Body)
	case *Class:
		p.comment(n.Pos)
		head := prefix + "class " + n.Name
		if len(n.Implements) > 0 {
			head += " implements " + strings.Join(n.Implements, ", ")
		}
		p.line(head + " {")
		p.depth++
		if n.Ctor != nil {
			p.line("constructor(" + params(n.Ctor.Params) + "){}")
		}
		for _, m := range n.Methods {
			p.comment(m.Pos)
			h := ""
			if m.Async {
				h = "async "
			}
			h += propName(m.Name) + "(" + params(m.Params) + ")"
			if m.Result != nil {
				h += ": " + typeString(m.Result)
			}
			p.block(h, m.Body)
		}
		p.depth--
		p.line("}")
	}
}

func (p *printer) members(ms []Member) {
	p.depth++
	for _, m := range ms {
		switch n := m.(type) {
		case *PropertySig:
			p.comment(n.Pos)
			p.line(propertySig(n) + ";")
		case *MethodSig:
			p.comment(n.Pos)
			p.line(methodSig(n) + ";")
		}
	}
	p.depth--
}

func (p *printer) block(head string, b *Block) {
	if b == nil || len(b.Stmts) == 0 {
		p.line(head + " {}")
		return
	}
	p.line(head + " {")
	p.stmts(b.Stmts)
	p.line("}")
}

func (p *printer) stmts(ss []Stmt) {
	p.depth++
	for _, s := range ss {
		p.stmt(s)
	}
	p.depth--
}

func (p *printer) stmt(s Stmt) {
	switch n := s.(type) {
	case *Block:
		p.block("", n)
	case *Return:
		if n.Value == nil {
			p.line("return;")
			return
		}
		p.line("return " + exprString(n.Value) + ";")
	case *Const:
		decl := "const " + n.Name
		if n.Type != nil {
			decl += ": " + typeString(n.Type)
		}
		p.line(decl + " = " + exprString(n.Value) + ";")
	case *ExprStmt:
		p.line(exprString(n.X) + ";")
	case *Throw:
		p.line("throw " + exprString(n.Value) + ";")
	case *If:
		p.line("if (" + exprString(n.Cond) + ") {")
		p.stmts(n.Then.Stmts)
		if n.Else != nil {
			p.line("} else {")
			p.stmts(n.Else.Stmts)
		}
		p.line("}")
	case *Try:
		p.line("try {")
		p.stmts(n.Body.Stmts)
		p.line("} catch (" + n.Param + ") {")
		p.stmts(n.Handler.Stmts)
		p.line("}")
	}
}

func typeParams(tps []string) string {
	if len(tps) == 0 {
		return ""
	}
	return "<" + strings.Join(tps, ", ") + ">"
}

func params(ps []Param) string {
	out := make([]string, len(ps))
	for i, prm := range ps {
		s := prm.Name
		if prm.Modifier != "" {
			s = prm.Modifier + " " + s
		}
		if prm.Optional {
			s += "?"
		}
		if prm.Type != nil {
			s += ": " + typeString(prm.Type)
		}
		if prm.Default != nil {
			s += " = " + exprString(prm.Default)
		}
		out[i] = s
	}
	return strings.Join(out, ", ")
}

func propertySig(n *PropertySig) string {
	s := ""
	if n.Readonly {
		s = "readonly "
	}
	if n.Computed {
		s += "[" + quote(n.Name) + "]"
	} else {
		s += propName(n.Name)
	}
	if n.Optional {
		s += "?"
	}
	return s + ": " + typeString(n.Type)
}

func methodSig(n *MethodSig) string {
	return propName(n.Name) + "(" + params(n.Params) + "): " + typeString(n.Result)
}

func typeString(t Type) string {
	switch n := t.(type) {
	case Keyword:
		return string(n)
	case *Ref:
		if len(n.Args) == 0 {
			return n.Name
		}
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = typeString(a)
		}
		return n.Name + "<" + strings.Join(args, ", ") + ">"
	case *Tuple:
		elems := make([]string, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = typeString(e)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *Union:
		parts := make([]string, len(n.Types))
		for i, u := range n.Types {
			s := typeString(u)
			if _, ok := u.(*FuncType); ok {
				s = "(" + s + ")"
			}
			parts[i] = s
		}
		return strings.Join(parts, " | ")
	case LitType:
		return quote(string(n))
	case *Object:
		if len(n.Members) == 0 {
			return "{}"
		}
		parts := make([]string, len(n.Members))
		for i, m := range n.Members {
			switch mm := m.(type) {
			case *PropertySig:
				parts[i] = propertySig(mm)
			case *MethodSig:
				parts[i] = methodSig(mm)
			}
		}
		return "{ " + strings.Join(parts, "; ") + "; }"
	case *FuncType:
		return "(" + params(n.Params) + ") => " + typeString(n.Result)
	}
	return "unknown"
}

func exprString(e Expr) string {
	switch n := e.(type) {
	case Ident:
		return string(n)
	case Str:
		return quote(string(n))
	case Num:
		return string(n)
	case Null:
		return "null"
	case *MemberExpr:
		x := operand(n.X)
		if !isIdentifier(n.Name) {
			return x + "[" + quote(n.Name) + "]"
		}
		return x + "." + n.Name
	case *Index:
		return operand(n.X) + "[" + exprString(n.Index) + "]"
	case *Call:
		s := operand(n.Fn)
		if len(n.TypeArgs) > 0 {
			args := make([]string, len(n.TypeArgs))
			for i, a := range n.TypeArgs {
				args[i] = typeString(a)
			}
			s += "<" + strings.Join(args, ", ") + ">"
		}
		return s + "(" + exprList(n.Args) + ")"
	case *New:
		return "new " + operand(n.Class) + "(" + exprList(n.Args) + ")"
	case *Arrow:
		body := exprString(n.Body)
		if _, ok := n.Body.(*ObjectLit); ok {
			body = "(" + body + ")"
		}
		return "(" + params(n.Params) + ") => " + body
	case *ObjectLit:
		if len(n.Props) == 0 {
			return "{}"
		}
		props := make([]string, len(n.Props))
		for i, pr := range n.Props {
			switch {
			case pr.Spread:
				props[i] = "..." + operand(pr.Value)
			case pr.Value == nil:
				props[i] = pr.Key
			default:
				props[i] = propName(pr.Key) + ": " + exprString(pr.Value)
			}
		}
		return "{ " + strings.Join(props, ", ") + " }"
	case *ArrayLit:
		return "[" + exprList(n.Elems) + "]"
	case *Cond:
		return operand(n.Test) + " ? " + operand(n.Then) + " : " + exprString(n.Else)
	case *Binary:
		return operand(n.Left) + " " + n.Op + " " + operand(n.Right)
	case *Unary:
		if n.Op == "typeof" || n.Op == "void" {
			return n.Op + " " + operand(n.X)
		}
		return n.Op + operand(n.X)
	case *Await:
		return "await " + operand(n.X)
	case *As:
		return operand(n.X) + " as " + typeString(n.Type)
	}
	return ""
}

// operand parenthesizes compound expressions used as operands.
func operand(e Expr) string {
	switch e.(type) {
	case *Cond, *Binary, *Arrow, *As, *Await:
		return "(" + exprString(e) + ")"
	}
	return exprString(e)
}

func exprList(es []Expr) string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = exprString(e)
	}
	return strings.Join(out, ", ")
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func isIdentifier(s string) bool {
	return identRe.MatchString(s)
}

// propName quotes property keys that are not plain identifiers.
func propName(s string) string {
	if isIdentifier(s) {
		return s
	}
	return quote(s)
}

func quote(s string) string {
	return ident.Quote(s, '"')
}
