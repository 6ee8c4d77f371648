package tsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintImports(t *testing.T) {
	m := &Module{Items: []Item{
		&Import{Source: "@icp-sdk/core/agent", Specifiers: []ImportSpec{
			{Name: "Actor"},
			{Name: "Agent", TypeOnly: true},
			{Name: "Point", Alias: "_Point", TypeOnly: true},
		}},
		&Import{Source: "@icp-sdk/core/principal", TypeOnly: true, Specifiers: []ImportSpec{{Name: "Principal", TypeOnly: true}}},
	}}

	want := `import { Actor, type Agent, type Point as _Point } from "@icp-sdk/core/agent";
import type { Principal } from "@icp-sdk/core/principal";
`
	assert.Equal(t, want, Print(m, nil))
}

func TestPrintInterfaceWithComments(t *testing.T) {
	cursor := NewPosCursor()
	comments := NewComments()
	declPos := comments.Attach(cursor, "*\n * A point.\n ")
	fieldPos := comments.Attach(cursor, "*\n * Horizontal.\n ")
	require.Equal(t, Pos(1), declPos)
	require.Equal(t, Pos(2), fieldPos)

	m := &Module{Items: []Item{&Export{Decl: &Interface{
		Pos:  declPos,
		Name: "Point",
		Members: []Member{
			&PropertySig{Pos: fieldPos, Name: "x", Type: Keyword("number")},
			&PropertySig{Name: "my-field", Optional: true, Type: &Union{Types: []Type{&Ref{Name: "Foo"}, Keyword("null")}}},
			&PropertySig{Name: "VAR", Readonly: true, Computed: true, Type: Keyword("string")},
		},
	}}}}

	want := `/**
 * A point.
 */
export interface Point {
    /**
     * Horizontal.
     */
    x: number;
    "my-field"?: Foo | null;
    readonly ["VAR"]: string;
}
`
	assert.Equal(t, want, Print(m, comments))
}

func TestPrintEmptyInterfaceExtends(t *testing.T) {
	m := &Module{Items: []Item{&Export{Decl: &Interface{Name: "svcInterface", Extends: []string{"SInterface"}}}}}
	assert.Equal(t, "export interface svcInterface extends SInterface {}\n", Print(m, nil))
}

func TestPrintTypeAliasAndEnum(t *testing.T) {
	m := &Module{Items: []Item{
		&Export{Decl: &TypeAlias{
			Name:       "Option",
			TypeParams: []string{"T"},
			Type: &Union{Types: []Type{
				&Ref{Name: "Some", Args: []Type{&Ref{Name: "T"}}},
				&Ref{Name: "None"},
			}},
		}},
		&Export{Decl: &Enum{Name: "Color", Members: []EnumMember{
			{Name: "red", Value: "red"},
			{Name: "dark-blue", Value: "dark-blue"},
		}}},
		&TypeAlias{Name: "Pair", Type: &Tuple{Elems: []Type{Keyword("bigint"), &Tuple{}}}},
	}}

	want := `export type Option<T> = Some<T> | None;
export enum Color {
    red = "red",
    "dark-blue" = "dark-blue"
}
type Pair = [bigint, []];
`
	assert.Equal(t, want, Print(m, nil))
}

func TestPrintDeclaredFunction(t *testing.T) {
	m := &Module{Items: []Item{&Export{Decl: &Function{
		Name: "createActor",
		Params: []Param{
			{Name: "canisterId", Type: Keyword("string")},
			{Name: "options", Optional: true, Type: &Ref{Name: "CreateActorOptions"}},
		},
		Result: &Ref{Name: "helloInterface"},
	}}}}

	assert.Equal(t,
		"export declare function createActor(canisterId: string, options?: CreateActorOptions): helloInterface;\n",
		Print(m, nil))
}

func TestPrintClass(t *testing.T) {
	m := &Module{Items: []Item{&Export{Decl: &Class{
		Name:       "Hello",
		Implements: []string{"helloInterface"},
		Ctor: &Constructor{Params: []Param{
			{Modifier: "private", Name: "actor", Type: &Ref{Name: "ActorSubclass", Args: []Type{&Ref{Name: "_SERVICE"}}}},
			{Modifier: "private", Name: "processError", Optional: true, Type: &FuncType{
				Params: []Param{{Name: "error", Type: Keyword("unknown")}},
				Result: Keyword("never"),
			}},
		}},
		Methods: []ClassMethod{{
			Name:   "greet",
			Async:  true,
			Params: []Param{{Name: "arg0", Type: Keyword("string")}},
			Result: &Ref{Name: "Promise", Args: []Type{Keyword("string")}},
			Body: &Block{Stmts: []Stmt{&Try{
				Body: &Block{Stmts: []Stmt{
					&Const{Name: "result", Value: &Await{X: &Call{
						Fn:   &MemberExpr{X: &MemberExpr{X: Ident("this"), Name: "actor"}, Name: "greet"},
						Args: []Expr{Ident("arg0")},
					}}},
					&Return{Value: Ident("result")},
				}},
				Param: "e",
				Handler: &Block{Stmts: []Stmt{
					&If{Cond: &MemberExpr{X: Ident("this"), Name: "processError"}, Then: &Block{Stmts: []Stmt{
						&ExprStmt{X: &Call{Fn: &MemberExpr{X: Ident("this"), Name: "processError"}, Args: []Expr{Ident("e")}}},
					}}},
					&Throw{Value: Ident("e")},
				}},
			}}},
		}},
	}}}}

	want := `export class Hello implements helloInterface {
    constructor(private actor: ActorSubclass<_SERVICE>, private processError?: (error: unknown) => never){}
    async greet(arg0: string): Promise<string> {
        try {
            const result = await this.actor.greet(arg0);
            return result;
        } catch (e) {
            if (this.processError) {
                this.processError(e);
            }
            throw e;
        }
    }
}
`
	assert.Equal(t, want, Print(m, nil))
}

func TestPrintExpressions(t *testing.T) {
	value := Ident("value")
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			"conditional parenthesizes binary test",
			&Cond{
				Test: &Binary{Op: "===", Left: &MemberExpr{X: value, Name: "length"}, Right: Num("0")},
				Then: Null{},
				Else: &Index{X: value, Index: Num("0")},
			},
			"(value.length === 0) ? null : value[0]",
		},
		{
			"arrow returning object literal",
			&Arrow{Params: []Param{{Name: "x"}}, Body: &ObjectLit{Props: []Prop{{Key: "a", Value: Ident("x")}}}},
			"(x) => ({ a: x })",
		},
		{
			"non-identifier member",
			&MemberExpr{X: value, Name: "my-field"},
			`value["my-field"]`,
		},
		{
			"shorthand and spread",
			&ObjectLit{Props: []Prop{{Key: "agent"}, {Spread: true, Value: &MemberExpr{X: Ident("options"), Name: "actorOptions"}}}},
			"{ agent, ...options.actorOptions }",
		},
		{
			"generic call",
			&Call{Fn: &MemberExpr{X: Ident("Actor"), Name: "createActor"}, TypeArgs: []Type{&Ref{Name: "_SERVICE"}}, Args: []Expr{Ident("idlFactory")}},
			"Actor.createActor<_SERVICE>(idlFactory)",
		},
		{
			"new with string literal",
			&New{Class: Ident("Error"), Args: []Expr{Str(`say "hi"`)}},
			`new Error("say \"hi\"")`,
		},
		{
			"typeof and negation",
			&Binary{Op: "&&", Left: &Unary{Op: "typeof", X: value}, Right: &Unary{Op: "!", X: value}},
			"typeof value && !value",
		},
		{
			"cast",
			&Call{Fn: Ident("f"), Args: []Expr{&As{X: value, Type: Keyword("any")}}},
			"f(value as any)",
		},
		{
			"string literal uses javascript escapes",
			Str("\a\x00\U0001F600"),
			`"\u0007\u0000` + "\U0001F600" + `"`,
		},
		{"empty array", &ArrayLit{}, "[]"},
		{"empty object", &ObjectLit{}, "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exprString(tt.expr))
		})
	}
}

func TestTypeStrings(t *testing.T) {
	assert.Equal(t, "((error: unknown) => never) | undefined", typeString(&Union{Types: []Type{
		&FuncType{Params: []Param{{Name: "error", Type: Keyword("unknown")}}, Result: Keyword("never")},
		Keyword("undefined"),
	}}))
	assert.Equal(t, `{ __kind__: "Some"; value: T; }`, typeString(&Object{Members: []Member{
		&PropertySig{Name: "__kind__", Type: LitType("Some")},
		&PropertySig{Name: "value", Type: &Ref{Name: "T"}},
	}}))
	assert.Equal(t, "{}", typeString(&Object{}))
}

func TestComments(t *testing.T) {
	c := NewComments()
	cursor := NewPosCursor()
	p1 := c.Attach(cursor, "a")
	p2 := c.Attach(cursor, "b")
	assert.NotEqual(t, p1, p2)
	assert.Equal(t, 2, c.Len())

	text, ok := c.Get(p2)
	require.True(t, ok)
	assert.Equal(t, "b", text)

	_, ok = c.Get(0)
	assert.False(t, ok)

	var none *Comments
	_, ok = none.Get(p1)
	assert.False(t, ok)
	assert.Equal(t, 0, none.Len())
}
