package native

import (
	"strings"

	"github.com/roach88/bindgen/internal/ident"
	"github.com/roach88/bindgen/internal/tsast"
)

// makeComment formats doc lines as the body of a JSDoc block:
// "*\n * line\n ". The printer adds the outer delimiters.
func makeComment(lines []string) string {
	var b strings.Builder
	b.WriteString("*\n")
	for _, l := range lines {
		l = ident.EscapeDoc(l)
		if l == "" {
			b.WriteString(" *\n")
			continue
		}
		b.WriteString(" * " + l + "\n")
	}
	b.WriteString(" ")
	return b.String()
}

// attach stores a comment for lines and returns its position, or zero
// when there is nothing to attach.
func (b *builder) attach(lines []string) tsast.Pos {
	if len(lines) == 0 {
		return 0
	}
	return b.comments.Attach(b.cursor, makeComment(lines))
}
