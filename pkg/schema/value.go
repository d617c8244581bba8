package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-webforms/pkg/rules"
)

// ValueKind is the declared kind of a field's value. It decides which rules a
// field may carry.
type ValueKind uint8

const (
	KindText ValueKind = iota + 1
	KindInteger
	KindFloat
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Numeric reports whether the kind holds numbers.
func (k ValueKind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

// ParseValueKind resolves the textual kinds used in schema files. A few
// common aliases are accepted (string, int, number ...).
func ParseValueKind(raw string) (ValueKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "text", "string", "str":
		return KindText, true
	case "integer", "int", "int64":
		return KindInteger, true
	case "float", "number", "float64", "double":
		return KindFloat, true
	default:
		return 0, false
	}
}

// Value is a field value handed to the validator. The zero value is absent.
type Value struct {
	kind ValueKind
	text string
	i    int64
	f    float64
}

// Absent returns the unset value.
func Absent() Value { return Value{} }

// Text wraps a string value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Int wraps an integer value.
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float wraps a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// ZeroValue returns the present zero value of kind ("" or 0).
func ZeroValue(kind ValueKind) Value {
	switch kind {
	case KindInteger:
		return Int(0)
	case KindFloat:
		return Float(0)
	default:
		return Text("")
	}
}

// Kind returns the value kind; zero for absent values.
func (v Value) Kind() ValueKind { return v.kind }

// Present reports whether the value was supplied.
func (v Value) Present() bool { return v.kind != 0 }

// Empty reports whether the value is absent or an empty string. Optional
// fields treat empty values as not supplied.
func (v Value) Empty() bool {
	return v.kind == 0 || (v.kind == KindText && v.text == "")
}

// TextValue returns the string for text values and the formatted number
// otherwise.
func (v Value) TextValue() string {
	if v.kind == KindText {
		return v.text
	}
	return v.String()
}

// Number converts numeric values into a rules.Number.
func (v Value) Number() (rules.Number, bool) {
	switch v.kind {
	case KindInteger:
		return rules.Int(v.i), true
	case KindFloat:
		return rules.Float(v.f), true
	default:
		return rules.Number{}, false
	}
}

// Equal reports exact equality of kind and content.
func (v Value) Equal(other Value) bool {
	return v.kind == other.kind && v.text == other.text && v.i == other.i && v.f == other.f
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return ""
	}
}

// Interface returns the Go value (string, int64, float64 or nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	default:
		return nil
	}
}

// MarshalJSON encodes the underlying Go value.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// ParseValue converts textual input (form posts, prompts) into a value of
// kind. Blank numeric input is treated as absent.
func ParseValue(kind ValueKind, raw string) (Value, error) {
	switch kind {
	case KindInteger:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Absent(), nil
		}
		i, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("schema: parse integer %q: %w", raw, err)
		}
		return Int(i), nil
	case KindFloat:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Absent(), nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Value{}, fmt.Errorf("schema: parse float %q: %w", raw, err)
		}
		return Float(f), nil
	default:
		return Text(raw), nil
	}
}

// ValueFrom converts decoded JSON/YAML data into a value of kind.
func ValueFrom(kind ValueKind, raw any) (Value, error) {
	if raw == nil {
		return Absent(), nil
	}
	switch typed := raw.(type) {
	case string:
		return ParseValue(kind, typed)
	case json.Number:
		return ParseValue(kind, typed.String())
	case bool:
		if kind == KindText {
			return Text(strconv.FormatBool(typed)), nil
		}
		return Value{}, fmt.Errorf("schema: cannot use bool as %s", kind)
	}

	var f float64
	switch typed := raw.(type) {
	case int:
		f = float64(typed)
		if kind == KindInteger {
			return Int(int64(typed)), nil
		}
	case int64:
		f = float64(typed)
		if kind == KindInteger {
			return Int(typed), nil
		}
	case int32:
		f = float64(typed)
		if kind == KindInteger {
			return Int(int64(typed)), nil
		}
	case uint64:
		f = float64(typed)
		if kind == KindInteger {
			if typed > math.MaxInt64 {
				return Value{}, fmt.Errorf("schema: %d overflows int64", typed)
			}
			return Int(int64(typed)), nil
		}
	case float32:
		f = float64(typed)
	case float64:
		f = typed
	default:
		return Value{}, fmt.Errorf("schema: unsupported value type %T", raw)
	}

	switch kind {
	case KindInteger:
		n, ok := rules.IntFromFloat(f)
		if !ok {
			return Value{}, fmt.Errorf("schema: %v is not an integer in the int64 range", f)
		}
		return Int(n.Int64()), nil
	case KindFloat:
		return Float(f), nil
	default:
		return Text(strconv.FormatFloat(f, 'g', -1, 64)), nil
	}
}
