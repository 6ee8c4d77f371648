package idl

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON for hashing.
//
// Accepted values are string, bool, int, int64, uint32, []any and
// map[string]any. Differences from encoding/json:
//  1. Object keys sorted by UTF-16 code units
//  2. No HTML escaping
//  3. Strings are NFC normalized
//  4. Floats and null are rejected
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		writeCanonicalString(buf, val)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case int:
		buf.WriteString(strconv.Itoa(val))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case uint32:
		buf.WriteString(strconv.FormatUint(uint64(val), 10))
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		buf.WriteByte('{')
		for i, k := range sortedKeysUTF16(val) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonicalString(buf, k)
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("value for key %q: %w", k, err)
			}
		}
		buf.WriteByte('}')
	case float32, float64:
		return fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
	return nil
}

// writeCanonicalString escapes only quote, backslash and control
// characters, per RFC 8785.
func writeCanonicalString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range norm.NFC.String(s) {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

func sortedKeysUTF16(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessUTF16(keys[i], keys[j])
	})
	return keys
}

func lessUTF16(a, b string) bool {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}

// EncodeType converts t into the generic tree accepted by
// MarshalCanonical. The shape mirrors the document format read by the
// loader.
func EncodeType(t Type) any {
	switch t := t.(type) {
	case Prim:
		return t.String()
	case Var:
		return map[string]any{"ref": t.Name}
	case Opt:
		return map[string]any{"opt": EncodeType(t.Elem)}
	case Vec:
		return map[string]any{"vec": EncodeType(t.Elem)}
	case Record:
		return map[string]any{"record": encodeFields(t.Fields)}
	case Variant:
		return map[string]any{"variant": encodeFields(t.Fields)}
	case Func:
		modes := make([]any, len(t.Modes))
		for i, m := range t.Modes {
			modes[i] = m.String()
		}
		return map[string]any{"func": map[string]any{
			"args":  encodeTypes(t.Args),
			"rets":  encodeTypes(t.Rets),
			"modes": modes,
		}}
	case Service:
		methods := make([]any, len(t.Methods))
		for i, m := range t.Methods {
			methods[i] = map[string]any{"name": m.Name, "type": EncodeType(m.Type)}
		}
		return map[string]any{"service": methods}
	case Class:
		return map[string]any{"class": map[string]any{
			"args":    encodeTypes(t.Args),
			"service": EncodeType(t.Service),
		}}
	default:
		return fmt.Sprintf("unknown(%T)", t)
	}
}

func encodeTypes(ts []Type) []any {
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = EncodeType(t)
	}
	return out
}

func encodeFields(fs []Field) []any {
	out := make([]any, len(fs))
	for i, f := range fs {
		entry := map[string]any{"type": EncodeType(f.Type)}
		if name, ok := f.Label.Name(); ok {
			entry["name"] = name
		} else {
			entry["id"] = f.Label.Number()
		}
		out[i] = entry
	}
	return out
}

// EncodeProgram converts p into the generic tree accepted by
// MarshalCanonical.
func EncodeProgram(p *Program) map[string]any {
	types := map[string]any{}
	for _, name := range p.Env.Names() {
		t, _ := p.Env.Lookup(name)
		types[name] = EncodeType(t)
	}
	out := map[string]any{
		"schema": SchemaVersion,
		"types":  types,
	}
	if p.Actor != nil {
		out["actor"] = EncodeType(p.Actor)
	}
	if p.Docs != nil {
		out["docs"] = encodeDocs(p.Docs)
	}
	return out
}

func encodeDocs(d *Docs) map[string]any {
	types := map[string]any{}
	for name, dd := range d.Types {
		types[name] = encodeDeclDocs(dd)
	}
	return map[string]any{
		"types": types,
		"actor": encodeDeclDocs(d.Actor),
	}
}

func encodeDeclDocs(dd DeclDocs) map[string]any {
	members := map[string]any{}
	for name, lines := range dd.Members {
		members[name] = encodeLines(lines)
	}
	return map[string]any{
		"lines":   encodeLines(dd.Lines),
		"members": members,
	}
}

func encodeLines(lines []string) []any {
	out := make([]any, len(lines))
	for i, l := range lines {
		out[i] = l
	}
	return out
}
