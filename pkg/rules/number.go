package rules

import (
	"math"
	"strconv"
)

// NumberKind records which representation a Number carries.
type NumberKind uint8

const (
	NumberInt NumberKind = iota + 1
	NumberFloat
)

func (k NumberKind) String() string {
	switch k {
	case NumberInt:
		return "integer"
	case NumberFloat:
		return "float"
	default:
		return "none"
	}
}

// Number is a numeric bound holding either an int64 or a float64, never both.
// The zero value carries no number.
type Number struct {
	kind NumberKind
	i    int64
	f    float64
}

// Int wraps an integer bound.
func Int(v int64) Number {
	return Number{kind: NumberInt, i: v}
}

// Float wraps a floating point bound.
func Float(v float64) Number {
	return Number{kind: NumberFloat, f: v}
}

// IntFromFloat converts f to an integer bound. It fails for fractions, NaN,
// infinities and values outside the int64 range.
func IntFromFloat(f float64) (Number, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= 1<<63 {
		return Number{}, false
	}
	return Int(int64(f)), true
}

// Kind reports the representation.
func (n Number) Kind() NumberKind { return n.kind }

// IsZero reports whether the number is unset.
func (n Number) IsZero() bool { return n.kind == 0 }

// IsInt reports whether the number is an integer.
func (n Number) IsInt() bool { return n.kind == NumberInt }

// Int64 returns the integer value. Float numbers are truncated.
func (n Number) Int64() int64 {
	if n.kind == NumberFloat {
		return int64(n.f)
	}
	return n.i
}

// Float64 returns the value as float64.
func (n Number) Float64() float64 {
	if n.kind == NumberInt {
		return float64(n.i)
	}
	return n.f
}

// Compare returns -1, 0 or 1 comparing n with other. Integers are compared
// exactly; as soon as one side is a float both are compared as floats.
func (n Number) Compare(other Number) int {
	if n.kind == NumberInt && other.kind == NumberInt {
		switch {
		case n.i < other.i:
			return -1
		case n.i > other.i:
			return 1
		default:
			return 0
		}
	}
	a, b := n.Float64(), other.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether both numbers have the same kind and value.
func (n Number) Equal(other Number) bool {
	return n.kind == other.kind && n.i == other.i && n.f == other.f
}

func (n Number) String() string {
	switch n.kind {
	case NumberInt:
		return strconv.FormatInt(n.i, 10)
	case NumberFloat:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON encodes the number as a JSON number, or null when unset.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.kind == 0 {
		return []byte("null"), nil
	}
	return []byte(n.String()), nil
}
