package pretty

import "github.com/roach88/bindgen/internal/ident"

// Indent is the nesting step used by the combinators below.
const Indent = 2

// Kwd returns s followed by a space.
func Kwd(s string) *Doc {
	return Text(s + " ")
}

// Enclose wraps d in left/right, breaking after left and before right
// when it does not fit.
func Enclose(left string, d *Doc, right string) *Doc {
	if d.IsNil() {
		return Text(left + right)
	}
	return Concat(Text(left), SoftLine(), d).Nest(Indent).Append(SoftLine(), Text(right)).Group()
}

// EncloseSpace is Enclose with a space inside the delimiters when flat.
func EncloseSpace(left string, d *Doc, right string) *Doc {
	if d.IsNil() {
		return Text(left + right)
	}
	return Concat(Text(left), Line(), d).Nest(Indent).Append(Line(), Text(right)).Group()
}

// Join separates docs with sep followed by a line.
func Join(docs []*Doc, sep string) *Doc {
	return Intersperse(docs, Text(sep).Append(Line()))
}

// Lines terminates every doc with a hard line break.
func Lines(docs []*Doc) *Doc {
	out := make([]*Doc, 0, 2*len(docs))
	for _, d := range docs {
		out = append(out, d, HardLine())
	}
	return Concat(out...)
}

// Quote returns s as a single-quoted string literal.
func Quote(s string) string {
	return ident.Quote(s, '\'')
}
