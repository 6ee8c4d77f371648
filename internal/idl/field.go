package idl

import "strconv"

// Label is a record or variant field tag: either a textual name or a
// numeric id.
type Label struct {
	name  string
	id    uint32
	named bool
}

// Named returns a textual label.
func Named(name string) Label {
	return Label{name: name, id: HashName(name), named: true}
}

// ID returns a numeric label.
func ID(n uint32) Label {
	return Label{id: n}
}

// Name returns the label text and whether the label is textual.
func (l Label) Name() (string, bool) {
	return l.name, l.named
}

// Number returns the numeric tag. For a named label this is the name's hash.
func (l Label) Number() uint32 {
	return l.id
}

// IsNamed reports whether the label carries a textual name.
func (l Label) IsNamed() bool {
	return l.named
}

// String returns the name, or the decimal id for numeric labels.
func (l Label) String() string {
	if l.named {
		return l.name
	}
	return strconv.FormatUint(uint64(l.id), 10)
}

// HashName computes the 32-bit field hash used on the wire for named labels.
func HashName(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*223 + uint32(name[i])
	}
	return h
}

// Field is one labeled member of a Record or Variant.
type Field struct {
	Label Label
	Type  Type
}

// IsTuple reports whether fields, in declared order, are numbered
// exactly 0..n-1. An empty field list is never a tuple.
func IsTuple(fields []Field) bool {
	if len(fields) == 0 {
		return false
	}
	for i, f := range fields {
		if f.Label.named || f.Label.id != uint32(i) {
			return false
		}
	}
	return true
}

// IsEnum reports whether every variant case carries null, which lets
// native backends model the variant as an enum.
func IsEnum(fields []Field) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if p, ok := f.Type.(Prim); !ok || p != Null {
			return false
		}
	}
	return true
}
