package options

import "strconv"

type kind int

const (
	kindScalar kind = iota
	kindBool
	kindSet
)

// Value is a scalar string, a boolean or a nested Set.
type Value struct {
	kind   kind
	scalar string
	b      bool
	set    Set
}

// String returns a scalar value rendered verbatim.
func String(s string) Value { return Value{kind: kindScalar, scalar: s} }

// Bool returns a boolean value rendered as true/false.
func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// Nested returns a value holding a nested option set.
func Nested(s Set) Value { return Value{kind: kindSet, set: s} }

// IsNested reports whether v holds a nested set.
func (v Value) IsNested() bool { return v.kind == kindSet }

// Set returns the nested set, or nil for scalar values.
func (v Value) Set() Set {
	if v.kind != kindSet {
		return nil
	}
	return v.set
}

// String returns the canonical string form used by Encode.
func (v Value) String() string {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindSet:
		return Encode(v.set, 0)
	default:
		return v.scalar
	}
}
