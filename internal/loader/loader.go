package loader

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/bindgen/internal/idl"
)

// Extensions lists the accepted input file extensions.
var Extensions = []string{".yaml", ".yml", ".cue", ".json"}

// Supported reports whether path has an accepted extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads and decodes the document at path.
func Load(path string) (*idl.Program, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: "input file not found: " + path}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return Parse(path, data)
}

// Parse decodes data, choosing the format from filename's extension.
func Parse(filename string, data []byte) (*idl.Program, error) {
	root, err := parseRoot(filename, data)
	if err != nil {
		return nil, err
	}
	return decodeProgram(root)
}

func parseRoot(filename string, data []byte) (node, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &LoadError{Code: ErrCodeParse, Message: err.Error(), Pos: Position{File: filename}}
		}
		if len(doc.Content) == 0 {
			return nil, &LoadError{Code: ErrCodeShape, Message: "empty document", Pos: Position{File: filename}}
		}
		return newYAMLNode(&doc, filename), nil
	case ".cue", ".json":
		ctx := cuecontext.New()
		v := ctx.CompileBytes(data, cue.Filename(filename))
		if err := v.Err(); err != nil {
			return nil, &LoadError{Code: ErrCodeBuild, Message: err.Error(), Pos: Position{File: filename}}
		}
		if err := v.Validate(cue.Concrete(true)); err != nil {
			return nil, &LoadError{Code: ErrCodeBuild, Message: err.Error(), Pos: Position{File: filename}}
		}
		return cueNode{v: v}, nil
	default:
		return nil, &LoadError{
			Code:    ErrCodeFormat,
			Message: "unsupported input extension " + strconv.Quote(filepath.Ext(filename)),
			Pos:     Position{File: filename},
		}
	}
}

func decodeProgram(root node) (*idl.Program, error) {
	if root.kind() != mappingNode {
		return nil, errorf(ErrCodeShape, root.pos(), "document must be a mapping, got %s", root.kind())
	}
	entries, err := root.fields()
	if err != nil {
		return nil, err
	}

	defs := map[string]idl.Type{}
	prog := &idl.Program{}
	var docs *idl.Docs
	ensureDocs := func() *idl.Docs {
		if docs == nil {
			docs = &idl.Docs{Types: map[string]idl.DeclDocs{}}
		}
		return docs
	}

	for _, e := range entries {
		switch e.key {
		case "types":
			if e.value.kind() == nullNode {
				continue
			}
			tfs, err := e.value.fields()
			if err != nil {
				return nil, err
			}
			for _, tf := range tfs {
				if !isName(tf.key) {
					return nil, errorf(ErrCodeName, tf.value.pos(), "declaration name %q is not an identifier", tf.key)
				}
				t, err := decodeType(tf.value)
				if err != nil {
					return nil, err
				}
				defs[tf.key] = t
			}
		case "actor":
			if e.value.kind() == nullNode {
				continue
			}
			t, err := decodeType(e.value)
			if err != nil {
				return nil, err
			}
			prog.Actor = t
		case "docs":
			if e.value.kind() == nullNode {
				continue
			}
			dfs, err := e.value.fields()
			if err != nil {
				return nil, err
			}
			for _, df := range dfs {
				dd, err := decodeDeclDocs(df.value)
				if err != nil {
					return nil, err
				}
				ensureDocs().Types[df.key] = dd
			}
		case "actor_docs":
			dd, err := decodeDeclDocs(e.value)
			if err != nil {
				return nil, err
			}
			ensureDocs().Actor = dd
		default:
			return nil, errorf(ErrCodeShape, e.value.pos(), "unknown top-level key %q", e.key)
		}
	}

	prog.Env = idl.NewEnv(defs)
	prog.Docs = docs
	return prog, nil
}

var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// isName reports whether s can be emitted verbatim as a declaration
// name in every backend.
func isName(s string) bool {
	return nameRe.MatchString(s)
}

// decodeType reads one type expression.
func decodeType(n node) (idl.Type, error) {
	switch n.kind() {
	case nullNode:
		return idl.Null, nil
	case scalarNode:
		s := n.scalar()
		if p, ok := idl.PrimByName(s); ok {
			return p, nil
		}
		if s == "" {
			return nil, errorf(ErrCodeTypeForm, n.pos(), "empty type name")
		}
		if !isName(s) {
			return nil, errorf(ErrCodeName, n.pos(), "reference %q is not an identifier", s)
		}
		return idl.Var{Name: s}, nil
	case sequenceNode:
		return nil, errorf(ErrCodeTypeForm, n.pos(), "a type cannot be a sequence")
	}

	fs, err := n.fields()
	if err != nil {
		return nil, err
	}
	if len(fs) != 1 {
		return nil, errorf(ErrCodeTypeForm, n.pos(), "a type form has exactly one key, got %d", len(fs))
	}
	form, body := fs[0].key, fs[0].value

	switch form {
	case "ref":
		if body.kind() != scalarNode || body.scalar() == "" {
			return nil, errorf(ErrCodeTypeForm, body.pos(), "ref takes a declaration name")
		}
		if !isName(body.scalar()) {
			return nil, errorf(ErrCodeName, body.pos(), "reference %q is not an identifier", body.scalar())
		}
		return idl.Var{Name: body.scalar()}, nil
	case "opt":
		elem, err := decodeType(body)
		if err != nil {
			return nil, err
		}
		return idl.Opt{Elem: elem}, nil
	case "vec":
		elem, err := decodeType(body)
		if err != nil {
			return nil, err
		}
		return idl.Vec{Elem: elem}, nil
	case "record":
		fields, err := decodeFields(body, false)
		if err != nil {
			return nil, err
		}
		return idl.Record{Fields: fields}, nil
	case "variant":
		fields, err := decodeFields(body, true)
		if err != nil {
			return nil, err
		}
		return idl.Variant{Fields: fields}, nil
	case "func":
		return decodeFunc(body)
	case "service":
		return decodeService(body)
	case "class":
		return decodeClass(body)
	}
	return nil, errorf(ErrCodeTypeForm, n.pos(), "unknown type form %q", form)
}

func decodeTypes(n node) ([]idl.Type, error) {
	if n.kind() == nullNode {
		return nil, nil
	}
	items, err := n.items()
	if err != nil {
		return nil, err
	}
	out := make([]idl.Type, len(items))
	for i, it := range items {
		if out[i], err = decodeType(it); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// decodeFields reads a record or variant body. Fields without an
// explicit label are numbered by position; variant cases may be bare
// labels meaning a null payload.
func decodeFields(n node, variant bool) ([]idl.Field, error) {
	if n.kind() == nullNode {
		return nil, nil
	}
	items, err := n.items()
	if err != nil {
		return nil, err
	}
	out := make([]idl.Field, 0, len(items))
	seen := map[uint32]bool{}
	for i, it := range items {
		f, err := decodeField(it, uint32(i), variant)
		if err != nil {
			return nil, err
		}
		if seen[f.Label.Number()] {
			return nil, errorf(ErrCodeDuplicate, it.pos(), "duplicate field %s", f.Label)
		}
		seen[f.Label.Number()] = true
		out = append(out, f)
	}
	return out, nil
}

func decodeField(n node, index uint32, variant bool) (idl.Field, error) {
	if n.kind() == scalarNode {
		if !variant {
			t, err := decodeType(n)
			if err != nil {
				return idl.Field{}, err
			}
			return idl.Field{Label: idl.ID(index), Type: t}, nil
		}
		return idl.Field{Label: idl.Named(n.scalar()), Type: idl.Null}, nil
	}
	if n.kind() != mappingNode {
		return idl.Field{}, errorf(ErrCodeField, n.pos(), "field must be a mapping or a name")
	}

	var (
		label    idl.Label
		hasLabel bool
		typ      idl.Type = idl.Null
	)
	fs, err := n.fields()
	if err != nil {
		return idl.Field{}, err
	}
	for _, e := range fs {
		switch e.key {
		case "name":
			if hasLabel {
				return idl.Field{}, errorf(ErrCodeField, e.value.pos(), "field has both name and id")
			}
			label, hasLabel = idl.Named(e.value.scalar()), true
		case "id":
			if hasLabel {
				return idl.Field{}, errorf(ErrCodeField, e.value.pos(), "field has both name and id")
			}
			id, err := strconv.ParseUint(e.value.scalar(), 10, 32)
			if err != nil {
				return idl.Field{}, errorf(ErrCodeField, e.value.pos(), "field id %q is not a 32-bit unsigned integer", e.value.scalar())
			}
			label, hasLabel = idl.ID(uint32(id)), true
		case "type":
			if typ, err = decodeType(e.value); err != nil {
				return idl.Field{}, err
			}
		default:
			return idl.Field{}, errorf(ErrCodeField, e.value.pos(), "unknown field key %q", e.key)
		}
	}
	if !hasLabel {
		label = idl.ID(index)
	}
	return idl.Field{Label: label, Type: typ}, nil
}

func decodeFunc(n node) (idl.Type, error) {
	var fn idl.Func
	if n.kind() == nullNode {
		return fn, nil
	}
	fs, err := n.fields()
	if err != nil {
		return nil, err
	}
	for _, e := range fs {
		switch e.key {
		case "args":
			if fn.Args, err = decodeTypes(e.value); err != nil {
				return nil, err
			}
		case "rets":
			if fn.Rets, err = decodeTypes(e.value); err != nil {
				return nil, err
			}
		case "modes":
			if e.value.kind() == nullNode {
				continue
			}
			items, err := e.value.items()
			if err != nil {
				return nil, err
			}
			for _, it := range items {
				m, ok := idl.ModeByName(it.scalar())
				if !ok {
					return nil, errorf(ErrCodeMode, it.pos(), "unknown function mode %q", it.scalar())
				}
				fn.Modes = append(fn.Modes, m)
			}
		default:
			return nil, errorf(ErrCodeTypeForm, e.value.pos(), "unknown func key %q", e.key)
		}
	}
	return fn, nil
}

func decodeService(n node) (idl.Type, error) {
	var svc idl.Service
	if n.kind() == nullNode {
		return svc, nil
	}
	items, err := n.items()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, it := range items {
		name, ok, err := lookup(it, "name")
		if err != nil {
			return nil, err
		}
		if !ok || name.scalar() == "" {
			return nil, errorf(ErrCodeTypeForm, it.pos(), "service method needs a name")
		}
		body, ok, err := lookup(it, "type")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errorf(ErrCodeTypeForm, it.pos(), "method %q needs a type", name.scalar())
		}
		t, err := decodeType(body)
		if err != nil {
			return nil, err
		}
		if seen[name.scalar()] {
			return nil, errorf(ErrCodeDuplicate, it.pos(), "duplicate method %q", name.scalar())
		}
		seen[name.scalar()] = true
		svc.Methods = append(svc.Methods, idl.Method{Name: name.scalar(), Type: t})
	}
	return svc, nil
}

func decodeClass(n node) (idl.Type, error) {
	var c idl.Class
	fs, err := n.fields()
	if err != nil {
		return nil, err
	}
	for _, e := range fs {
		switch e.key {
		case "args":
			if c.Args, err = decodeTypes(e.value); err != nil {
				return nil, err
			}
		case "service":
			if c.Service, err = decodeType(e.value); err != nil {
				return nil, err
			}
		default:
			return nil, errorf(ErrCodeTypeForm, e.value.pos(), "unknown class key %q", e.key)
		}
	}
	if c.Service == nil {
		return nil, errorf(ErrCodeTypeForm, n.pos(), "class needs a service")
	}
	return c, nil
}

func decodeDeclDocs(n node) (idl.DeclDocs, error) {
	var dd idl.DeclDocs
	if n.kind() == nullNode {
		return dd, nil
	}
	if n.kind() == scalarNode {
		dd.Lines = splitLines(n.scalar())
		return dd, nil
	}
	fs, err := n.fields()
	if err != nil {
		return dd, err
	}
	for _, e := range fs {
		switch e.key {
		case "lines":
			if dd.Lines, err = decodeLines(e.value); err != nil {
				return dd, err
			}
		case "members":
			mfs, err := e.value.fields()
			if err != nil {
				return dd, err
			}
			dd.Members = make(map[string][]string, len(mfs))
			for _, m := range mfs {
				if dd.Members[m.key], err = decodeLines(m.value); err != nil {
					return dd, err
				}
			}
		default:
			return dd, errorf(ErrCodeInvalidDocs, e.value.pos(), "unknown docs key %q", e.key)
		}
	}
	return dd, nil
}

// decodeLines accepts a list of lines or one multi-line string.
func decodeLines(n node) ([]string, error) {
	switch n.kind() {
	case nullNode:
		return nil, nil
	case scalarNode:
		return splitLines(n.scalar()), nil
	case sequenceNode:
		items, err := n.items()
		if err != nil {
			return nil, err
		}
		out := make([]string, len(items))
		for i, it := range items {
			if it.kind() != scalarNode {
				return nil, errorf(ErrCodeInvalidDocs, it.pos(), "doc line must be text")
			}
			out[i] = it.scalar()
		}
		return out, nil
	}
	return nil, errorf(ErrCodeInvalidDocs, n.pos(), "docs must be text or a list of lines")
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
