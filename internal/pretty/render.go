package pretty

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// LineWidth is the default column budget.
const LineWidth = 80

type cmd struct {
	indent int
	flat   bool
	doc    *Doc
}

// Render lays d out within width columns. Lines carry no trailing
// whitespace.
func (d *Doc) Render(width int) string {
	var b strings.Builder
	col := 0
	pendingIndent := -1

	stack := []cmd{{doc: d}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch c.doc.kind {
		case kindNil:
		case kindText:
			if pendingIndent >= 0 {
				b.WriteString(strings.Repeat(" ", pendingIndent))
				pendingIndent = -1
			}
			b.WriteString(c.doc.text)
			col += runewidth.StringWidth(c.doc.text)
		case kindLine:
			if c.flat {
				if c.doc.text != "" {
					if pendingIndent >= 0 {
						b.WriteString(strings.Repeat(" ", pendingIndent))
						pendingIndent = -1
					}
					b.WriteString(c.doc.text)
					col += runewidth.StringWidth(c.doc.text)
				}
				continue
			}
			b.WriteByte('\n')
			col, pendingIndent = c.indent, c.indent
		case kindHardLine:
			b.WriteByte('\n')
			col, pendingIndent = c.indent, c.indent
		case kindConcat:
			for i := len(c.doc.docs) - 1; i >= 0; i-- {
				stack = append(stack, cmd{indent: c.indent, flat: c.flat, doc: c.doc.docs[i]})
			}
		case kindNest:
			stack = append(stack, cmd{indent: c.indent + c.doc.indent, flat: c.flat, doc: c.doc.docs[0]})
		case kindGroup:
			next := cmd{indent: c.indent, flat: true, doc: c.doc.docs[0]}
			if !c.flat && !fits(width-col, next, stack) {
				next.flat = false
			}
			stack = append(stack, next)
		case kindAlt:
			if c.flat {
				stack = append(stack, cmd{indent: c.indent, flat: true, doc: c.doc.docs[1]})
			} else {
				stack = append(stack, cmd{indent: c.indent, doc: c.doc.docs[0]})
			}
		}
	}
	return b.String()
}

// fits reports whether next, followed by the pending rest up to the
// first break, fits in rem columns.
func fits(rem int, next cmd, rest []cmd) bool {
	stack := []cmd{next}
	restIdx := len(rest) - 1
	for rem >= 0 {
		if len(stack) == 0 {
			if restIdx < 0 {
				return true
			}
			stack = append(stack, rest[restIdx])
			restIdx--
			continue
		}
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch c.doc.kind {
		case kindText:
			rem -= runewidth.StringWidth(c.doc.text)
		case kindLine:
			if !c.flat {
				return true
			}
			rem -= runewidth.StringWidth(c.doc.text)
		case kindHardLine:
			return !c.flat
		case kindConcat:
			for i := len(c.doc.docs) - 1; i >= 0; i-- {
				stack = append(stack, cmd{indent: c.indent, flat: c.flat, doc: c.doc.docs[i]})
			}
		case kindNest:
			stack = append(stack, cmd{indent: c.indent + c.doc.indent, flat: c.flat, doc: c.doc.docs[0]})
		case kindGroup:
			stack = append(stack, cmd{indent: c.indent, flat: c.flat, doc: c.doc.docs[0]})
		case kindAlt:
			if c.flat {
				stack = append(stack, cmd{indent: c.indent, flat: true, doc: c.doc.docs[1]})
			} else {
				stack = append(stack, cmd{indent: c.indent, doc: c.doc.docs[0]})
			}
		}
	}
	return false
}

// String renders d at LineWidth.
func (d *Doc) String() string {
	return d.Render(LineWidth)
}
