package loader

import (
	"strconv"

	"cuelang.org/go/cue"
	"gopkg.in/yaml.v3"
)

type nodeKind int

const (
	scalarNode nodeKind = iota
	mappingNode
	sequenceNode
	nullNode
)

func (k nodeKind) String() string {
	switch k {
	case scalarNode:
		return "scalar"
	case mappingNode:
		return "mapping"
	case sequenceNode:
		return "sequence"
	default:
		return "null"
	}
}

// node is the format-independent view of a document value.
type node interface {
	kind() nodeKind
	scalar() string
	fields() ([]entry, error)
	items() ([]node, error)
	pos() Position
}

type entry struct {
	key   string
	value node
}

func lookup(n node, key string) (node, bool, error) {
	fs, err := n.fields()
	if err != nil {
		return nil, false, err
	}
	for _, e := range fs {
		if e.key == key {
			return e.value, true, nil
		}
	}
	return nil, false, nil
}

// yamlNode adapts a yaml.v3 node, following aliases.
type yamlNode struct {
	n    *yaml.Node
	file string
}

func newYAMLNode(n *yaml.Node, file string) yamlNode {
	for n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return yamlNode{n: n, file: file}
}

func (y yamlNode) kind() nodeKind {
	switch y.n.Kind {
	case yaml.MappingNode:
		return mappingNode
	case yaml.SequenceNode:
		return sequenceNode
	case yaml.ScalarNode:
		if y.n.Tag == "!!null" {
			return nullNode
		}
		return scalarNode
	}
	return nullNode
}

func (y yamlNode) scalar() string { return y.n.Value }

func (y yamlNode) fields() ([]entry, error) {
	if y.n.Kind != yaml.MappingNode {
		return nil, errorf(ErrCodeShape, y.pos(), "expected mapping, got %s", y.kind())
	}
	out := make([]entry, 0, len(y.n.Content)/2)
	for i := 0; i+1 < len(y.n.Content); i += 2 {
		out = append(out, entry{key: y.n.Content[i].Value, value: newYAMLNode(y.n.Content[i+1], y.file)})
	}
	return out, nil
}

func (y yamlNode) items() ([]node, error) {
	if y.n.Kind != yaml.SequenceNode {
		return nil, errorf(ErrCodeShape, y.pos(), "expected sequence, got %s", y.kind())
	}
	out := make([]node, len(y.n.Content))
	for i, c := range y.n.Content {
		out[i] = newYAMLNode(c, y.file)
	}
	return out, nil
}

func (y yamlNode) pos() Position {
	return Position{File: y.file, Line: y.n.Line, Column: y.n.Column}
}

// cueNode adapts an evaluated CUE value.
type cueNode struct {
	v cue.Value
}

func (c cueNode) kind() nodeKind {
	switch c.v.IncompleteKind() {
	case cue.StructKind:
		return mappingNode
	case cue.ListKind:
		return sequenceNode
	case cue.NullKind:
		return nullNode
	}
	return scalarNode
}

func (c cueNode) scalar() string {
	switch c.v.IncompleteKind() {
	case cue.StringKind:
		s, _ := c.v.String()
		return s
	case cue.IntKind:
		n, _ := c.v.Int64()
		return strconv.FormatInt(n, 10)
	case cue.BoolKind:
		b, _ := c.v.Bool()
		return strconv.FormatBool(b)
	}
	return ""
}

func (c cueNode) fields() ([]entry, error) {
	if c.kind() != mappingNode {
		return nil, errorf(ErrCodeShape, c.pos(), "expected struct, got %s", c.kind())
	}
	iter, err := c.v.Fields()
	if err != nil {
		return nil, errorf(ErrCodeBuild, c.pos(), "iterating struct: %v", err)
	}
	var out []entry
	for iter.Next() {
		out = append(out, entry{key: iter.Label(), value: cueNode{v: iter.Value()}})
	}
	return out, nil
}

func (c cueNode) items() ([]node, error) {
	if c.kind() != sequenceNode {
		return nil, errorf(ErrCodeShape, c.pos(), "expected list, got %s", c.kind())
	}
	iter, err := c.v.List()
	if err != nil {
		return nil, errorf(ErrCodeBuild, c.pos(), "iterating list: %v", err)
	}
	var out []node
	for iter.Next() {
		out = append(out, cueNode{v: iter.Value()})
	}
	return out, nil
}

func (c cueNode) pos() Position {
	p := c.v.Pos()
	if !p.IsValid() {
		return Position{}
	}
	return Position{File: p.Filename(), Line: p.Line(), Column: p.Column()}
}
