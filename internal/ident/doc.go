package ident

import "strings"

// EscapeDoc neutralizes block-comment terminators in a documentation
// line so it cannot close the comment it is embedded in.
func EscapeDoc(line string) string {
	return strings.ReplaceAll(line, "*/", `*\/`)
}

// EscapeDocs applies EscapeDoc to every line.
func EscapeDocs(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = EscapeDoc(l)
	}
	return out
}
