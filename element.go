package reckon

import "strconv"

// ElementKind identifies the scalar type held by an Element
type ElementKind uint8

const (
	// KindInt indicates an Element holding an int64
	KindInt ElementKind = iota
	// KindFloat indicates an Element holding a float64
	KindFloat
	// KindString indicates an Element holding a string
	KindString
)

// An Element is a single scalar value extracted from a Batch. Elements are
// compact, comparable values suitable for use as map keys, and carry a total
// natural ordering: numeric Elements order by value, string Elements order
// lexicographically, and numeric Elements order before string Elements. All
// Elements flattened from a single Column share a kind, so the cross-kind
// ordering only matters when heterogeneous Columns are analyzed together.
type Element struct {
	kind ElementKind
	i    int64
	f    float64
	s    string
}

// IntElement produces an Element holding an int64
func IntElement(v int64) Element {
	return Element{kind: KindInt, i: v}
}

// FloatElement produces an Element holding a float64
func FloatElement(v float64) Element {
	return Element{kind: KindFloat, f: v}
}

// StringElement produces an Element holding a string
func StringElement(v string) Element {
	return Element{kind: KindString, s: v}
}

// Kind returns the scalar type held by this Element
func (e Element) Kind() ElementKind {
	return e.kind
}

// Int returns the int64 held by this Element, or 0 if it is not a KindInt Element
func (e Element) Int() int64 {
	return e.i
}

// Float returns the numeric value held by this Element, converting ints, or 0 for strings
func (e Element) Float() float64 {
	if e.kind == KindInt {
		return float64(e.i)
	}
	return e.f
}

// String returns the artifact representation of this Element. Integers render
// in base 10, floats in shortest-round-trip form, strings as themselves.
func (e Element) String() string {
	switch e.kind {
	case KindInt:
		return strconv.FormatInt(e.i, 10)
	case KindFloat:
		return strconv.FormatFloat(e.f, 'g', -1, 64)
	default:
		return e.s
	}
}

// Less returns true iff this Element orders strictly before o under the
// natural ordering. Numeric Elements compare by value (exactly, when both are
// ints), numerics order before strings, strings compare lexicographically,
// and kind breaks exact numeric ties so the ordering is total.
func (e Element) Less(o Element) bool {
	numeric := e.kind != KindString
	oNumeric := o.kind != KindString
	if numeric != oNumeric {
		return numeric
	}
	if !numeric {
		return e.s < o.s
	}
	if e.kind == KindInt && o.kind == KindInt {
		return e.i < o.i
	}
	ev, ov := e.Float(), o.Float()
	if ev != ov {
		return ev < ov
	}
	return e.kind < o.kind
}

// Valid returns false for Elements which must never appear in a line-oriented
// artifact: those whose representation is empty or contains a line separator.
func (e Element) Valid() bool {
	if e.kind != KindString {
		return true
	}
	if len(e.s) == 0 {
		return false
	}
	for i := 0; i < len(e.s); i++ {
		if e.s[i] == '\n' || e.s[i] == '\r' {
			return false
		}
	}
	return true
}
