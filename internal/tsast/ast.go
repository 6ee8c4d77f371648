// Package tsast is a small TypeScript syntax tree and printer, covering
// the declarations, types, statements and expressions the native
// binding backend produces.
//
// Nodes that may carry a documentation comment have a Pos field. A
// non-zero Pos is a key into a Comments side table; the tree itself
// never stores comment text.
package tsast

// Module is a source file.
type Module struct {
	Items []Item
}

// Item is a top-level module item.
type Item interface {
	item()
}

// Decl is a declaration that may be exported.
type Decl interface {
	Item
	decl()
}

// Import is `import { a, type b } from "src";`.
type Import struct {
	Specifiers []ImportSpec
	Source     string
	TypeOnly   bool // `import type { ... }`
}

// ImportSpec names one imported symbol.
type ImportSpec struct {
	Name     string
	Alias    string
	TypeOnly bool
}

// Export is `export <decl>`.
type Export struct {
	Decl Decl
}

// Interface is `interface Name<T> extends A, B { members }`.
type Interface struct {
	Pos        Pos
	Name       string
	TypeParams []string
	Extends    []string
	Members    []Member
}

// TypeAlias is `type Name<T> = Type;`.
type TypeAlias struct {
	Pos        Pos
	Name       string
	TypeParams []string
	Type       Type
}

// Enum is a string-valued enum.
type Enum struct {
	Pos     Pos
	Name    string
	Members []EnumMember
}

// EnumMember is `Name = "Value"`.
type EnumMember struct {
	Name  string
	Value string
}

// Function is a function declaration. A nil Body makes it `declare`d.
type Function struct {
	Pos    Pos
	Name   string
	Async  bool
	Params []Param
	Result Type
	Body   *Block
}

// Class is a class declaration.
type Class struct {
	Pos        Pos
	Name       string
	Implements []string
	Ctor       *Constructor
	Methods    []ClassMethod
}

// Constructor is a parameter-property constructor with an empty body.
type Constructor struct {
	Params []Param
}

// ClassMethod is a method with a body.
type ClassMethod struct {
	Pos    Pos
	Name   string
	Async  bool
	Params []Param
	Result Type
	Body   *Block
}

// Param is a function or constructor parameter.
type Param struct {
	Modifier string // "private", "public" or ""
	Name     string
	Optional bool
	Type     Type
	Default  Expr
}

func (*Import) item()    {}
func (*Export) item()    {}
func (*Interface) item() {}
func (*TypeAlias) item() {}
func (*Enum) item()      {}
func (*Function) item()  {}
func (*Class) item()     {}

func (*Interface) decl() {}
func (*TypeAlias) decl() {}
func (*Enum) decl()      {}
func (*Function) decl()  {}
func (*Class) decl()     {}

// Member is an interface or object type member.
type Member interface {
	member()
}

// PropertySig is `name?: Type;`. Computed prints the key as ["name"].
type PropertySig struct {
	Pos      Pos
	Name     string
	Optional bool
	Readonly bool
	Computed bool
	Type     Type
}

// MethodSig is `name(params): Result;`.
type MethodSig struct {
	Pos    Pos
	Name   string
	Params []Param
	Result Type
}

func (*PropertySig) member() {}
func (*MethodSig) member()   {}

// Type is a type expression.
type Type interface {
	tsType()
}

// Keyword is a built-in type such as string or bigint.
type Keyword string

// Ref is a named type with optional type arguments.
type Ref struct {
	Name string
	Args []Type
}

// Tuple is `[A, B]`.
type Tuple struct {
	Elems []Type
}

// Union is `A | B`.
type Union struct {
	Types []Type
}

// LitType is a string literal type.
type LitType string

// Object is an object type literal.
type Object struct {
	Members []Member
}

// FuncType is `(params) => Result`.
type FuncType struct {
	Params []Param
	Result Type
}

func (Keyword) tsType()   {}
func (*Ref) tsType()      {}
func (*Tuple) tsType()    {}
func (*Union) tsType()    {}
func (LitType) tsType()   {}
func (*Object) tsType()   {}
func (*FuncType) tsType() {}

// Stmt is a statement.
type Stmt interface {
	stmt()
}

// Block is `{ stmts }`.
type Block struct {
	Stmts []Stmt
}

// Return is `return value;`. A nil Value prints `return;`.
type Return struct {
	Value Expr
}

// Const is `const name: Type = value;`.
type Const struct {
	Name  string
	Type  Type
	Value Expr
}

// ExprStmt is an expression statement.
type ExprStmt struct {
	X Expr
}

// If is `if (cond) then else`.
type If struct {
	Cond Expr
	Then *Block
	Else *Block
}

// Try is `try body catch (param) handler`.
type Try struct {
	Body    *Block
	Param   string
	Handler *Block
}

// Throw is `throw value;`.
type Throw struct {
	Value Expr
}

func (*Block) stmt()    {}
func (*Return) stmt()   {}
func (*Const) stmt()    {}
func (*ExprStmt) stmt() {}
func (*If) stmt()       {}
func (*Try) stmt()      {}
func (*Throw) stmt()    {}

// Expr is an expression.
type Expr interface {
	expr()
}

// Ident is an identifier.
type Ident string

// Str is a string literal.
type Str string

// Num is a numeric literal in source form.
type Num string

// Null is the null literal.
type Null struct{}

// MemberExpr is `x.name`.
type MemberExpr struct {
	X    Expr
	Name string
}

// Index is `x[index]`.
type Index struct {
	X     Expr
	Index Expr
}

// Call is `fn<TypeArgs>(args)`.
type Call struct {
	Fn       Expr
	TypeArgs []Type
	Args     []Expr
}

// New is `new Class(args)`.
type New struct {
	Class Expr
	Args  []Expr
}

// Arrow is `(params) => body`.
type Arrow struct {
	Params []Param
	Body   Expr
}

// ObjectLit is `{ key: value, ...spread }`.
type ObjectLit struct {
	Props []Prop
}

// Prop is one object literal entry. Spread ignores Key; a nil Value
// prints the shorthand form.
type Prop struct {
	Key    string
	Value  Expr
	Spread bool
}

// ArrayLit is `[a, b]`.
type ArrayLit struct {
	Elems []Expr
}

// Cond is `test ? then : else`.
type Cond struct {
	Test Expr
	Then Expr
	Else Expr
}

// Binary is `left op right`.
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
}

// Unary is a prefix operator.
type Unary struct {
	Op string
	X  Expr
}

// Await is `await x`.
type Await struct {
	X Expr
}

// As is `x as Type`.
type As struct {
	X    Expr
	Type Type
}

func (Ident) expr()       {}
func (Str) expr()         {}
func (Num) expr()         {}
func (Null) expr()        {}
func (*MemberExpr) expr() {}
func (*Index) expr()      {}
func (*Call) expr()       {}
func (*New) expr()        {}
func (*Arrow) expr()      {}
func (*ObjectLit) expr()  {}
func (*ArrayLit) expr()   {}
func (*Cond) expr()       {}
func (*Binary) expr()     {}
func (*Unary) expr()      {}
func (*Await) expr()      {}
func (*As) expr()         {}
