// Package ident sanitizes identifiers and documentation text embedded in
// generated source.
package ident

import (
	"sort"
	"strings"
)

// EscapeSuffix is appended to identifiers that collide with a reserved word.
const EscapeSuffix = "_"

// Keywords is an immutable reserved-word table for one target dialect.
type Keywords struct {
	name  string
	words map[string]struct{}
}

// NewKeywords builds a table from words.
func NewKeywords(name string, words ...string) Keywords {
	k := Keywords{name: name, words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		k.words[w] = struct{}{}
	}
	return k
}

// Name returns the dialect name.
func (k Keywords) Name() string { return k.name }

// IsReserved reports whether id is a reserved word.
func (k Keywords) IsReserved(id string) bool {
	_, ok := k.words[id]
	return ok
}

// Escape appends EscapeSuffix iff id is reserved.
func (k Keywords) Escape(id string) string {
	if k.IsReserved(id) {
		return id + EscapeSuffix
	}
	return id
}

// Words returns the table contents, sorted.
func (k Keywords) Words() []string {
	out := make([]string, 0, len(k.words))
	for w := range k.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

var javaScriptWords = strings.Fields(`
	abstract arguments await boolean break byte case catch char class
	const continue debugger default delete do double else enum eval
	export extends false final finally float for function goto if
	implements import in instanceof int interface let long native new
	null package private protected public return short static super
	switch synchronized this throw throws transient true try typeof var
	void volatile while with yield
`)

var typeScriptExtra = strings.Fields(`
	any as asserts async bigint declare from get infer is keyof module
	namespace never number object of readonly require set string symbol
	type undefined unique unknown
`)

// JavaScript is the reserved-word table of the runtime-description dialect.
var JavaScript = NewKeywords("javascript", javaScriptWords...)

// TypeScript is the reserved-word table of the native dialect.
var TypeScript = NewKeywords("typescript", append(append([]string{}, javaScriptWords...), typeScriptExtra...)...)
