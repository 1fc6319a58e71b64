package gviz

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the scalar type held by a Value.
type Kind uint8

const (
	KindBlank Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a single spreadsheet cell: a string, a number, a bool or blank.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Blank is the zero Value.
var Blank = Value{}

func String(s string) Value  { return Value{kind: KindString, str: s} }
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }

// FromAny converts a decoded JSON scalar into a Value. Anything that is not a
// string, number or bool is blank.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Blank
	case string:
		return String(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case bool:
		return Bool(t)
	default:
		return Blank
	}
}

func (v Value) Kind() Kind { return v.kind }

// IsBlank reports whether the cell is missing, null or whitespace only.
func (v Value) IsBlank() bool {
	switch v.kind {
	case KindBlank:
		return true
	case KindString:
		return strings.TrimSpace(v.str) == ""
	default:
		return false
	}
}

// IsNull reports whether the cell carried no value at all.
func (v Value) IsNull() bool { return v.kind == KindBlank }

// Number returns the numeric content and whether the cell was a number.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// String renders the cell the way a spreadsheet viewer would: integers
// without a fractional part, blank as "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return ""
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Raw returns the underlying Go scalar, nil for blank.
func (v Value) Raw() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}
