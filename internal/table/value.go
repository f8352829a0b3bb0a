package table

import (
	"strconv"
	"strings"
)

type kind uint8

const (
	kindNull kind = iota
	kindString
	kindNumber
)

// Value is a single cell: a string, a number, or null.
// Columns are schema-on-read, so a Value carries its own type.
type Value struct {
	kind kind
	str  string
	num  float64
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: kindString, str: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: kindNumber, num: f}
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == kindNull
}

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool {
	return v.kind == kindNumber
}

// Text returns the string form of the value. Null renders as "".
func (v Value) Text() string {
	switch v.kind {
	case kindString:
		return v.str
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Float returns the numeric form of the value. String values are parsed
// best-effort. Returns (0, false) for null and unparseable strings.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case kindNumber:
		return v.num, true
	case kindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case kindString:
		return v.str == o.str
	case kindNumber:
		return v.num == o.num
	default:
		return true
	}
}

// key returns a canonical encoding used for exact-duplicate detection.
func (v Value) key() string {
	switch v.kind {
	case kindString:
		return "s:" + v.str
	case kindNumber:
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return "~"
	}
}
