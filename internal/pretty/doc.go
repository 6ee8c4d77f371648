// Package pretty is a width-aware document layout engine in the style
// of Wadler's "prettier printer".
//
// A Doc is built from text, line breaks, nesting and groups. Render lays
// a document out at a column budget: each group is printed flat (line
// breaks become spaces or nothing) when it fits on the remaining line,
// and broken otherwise. Column widths are measured in terminal cells.
package pretty

type kind int

const (
	kindNil kind = iota
	kindText
	kindLine
	kindHardLine
	kindConcat
	kindNest
	kindGroup
	kindAlt
)

// Doc is an immutable layout document.
type Doc struct {
	kind   kind
	text   string // text, or the flat rendering of a line
	docs   []*Doc
	indent int
}

var nilDoc = &Doc{kind: kindNil}

// Nil returns the empty document.
func Nil() *Doc { return nilDoc }

// Text returns a literal. s must not contain newlines.
func Text(s string) *Doc {
	if s == "" {
		return nilDoc
	}
	return &Doc{kind: kindText, text: s}
}

// Line breaks, or renders as a single space when flat.
func Line() *Doc { return &Doc{kind: kindLine, text: " "} }

// SoftLine breaks, or renders as nothing when flat.
func SoftLine() *Doc { return &Doc{kind: kindLine} }

// HardLine always breaks and forces enclosing groups to break.
func HardLine() *Doc { return &Doc{kind: kindHardLine} }

// Concat joins documents.
func Concat(docs ...*Doc) *Doc {
	out := make([]*Doc, 0, len(docs))
	for _, d := range docs {
		if d != nil && d.kind != kindNil {
			out = append(out, d)
		}
	}
	switch len(out) {
	case 0:
		return nilDoc
	case 1:
		return out[0]
	}
	return &Doc{kind: kindConcat, docs: out}
}

// FlatAlt renders broken in break mode and flat in flat mode.
func FlatAlt(broken, flat *Doc) *Doc {
	return &Doc{kind: kindAlt, docs: []*Doc{broken, flat}}
}

// Append returns d followed by docs.
func (d *Doc) Append(docs ...*Doc) *Doc {
	return Concat(append([]*Doc{d}, docs...)...)
}

// Nest increases the indentation of lines broken inside d.
func (d *Doc) Nest(n int) *Doc {
	return &Doc{kind: kindNest, docs: []*Doc{d}, indent: n}
}

// Group lets the renderer print d flat when it fits.
func (d *Doc) Group() *Doc {
	return &Doc{kind: kindGroup, docs: []*Doc{d}}
}

// IsNil reports whether d renders to nothing.
func (d *Doc) IsNil() bool {
	return d == nil || d.kind == kindNil
}

// Intersperse places sep between consecutive documents.
func Intersperse(docs []*Doc, sep *Doc) *Doc {
	out := make([]*Doc, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return Concat(out...)
}
