package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-webforms/pkg/regex"
)

// Kind identifies a rule variant. The string values are the identifiers used
// by schema files, struct tags and message tables.
type Kind string

const (
	KindMinLength  Kind = "min_length"
	KindMaxLength  Kind = "max_length"
	KindMinValue   Kind = "min_value"
	KindMaxValue   Kind = "max_value"
	KindPattern    Kind = "pattern"
	KindEmail      Kind = "email"
	KindPhone      Kind = "phone"
	KindFieldMatch Kind = "field_match"
)

// Kinds lists every rule kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindMinLength, KindMaxLength, KindMinValue, KindMaxValue,
		KindPattern, KindEmail, KindPhone, KindFieldMatch,
	}
}

// ParseKind resolves a textual rule kind. Hyphens and case are ignored so
// `min-length` and `MinLength` both resolve.
func ParseKind(raw string) (Kind, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	for _, kind := range Kinds() {
		if string(kind) == key || strings.ReplaceAll(string(kind), "_", "") == key {
			return kind, true
		}
	}
	return "", false
}

// Textual reports whether the kind constrains text values.
func (k Kind) Textual() bool {
	switch k {
	case KindMinLength, KindMaxLength, KindPattern, KindEmail, KindPhone:
		return true
	default:
		return false
	}
}

// Numeric reports whether the kind constrains numeric values.
func (k Kind) Numeric() bool {
	return k == KindMinValue || k == KindMaxValue
}

// Rule is an immutable description of one constraint. Construct rules with
// the package functions; the zero value is not a valid rule.
type Rule struct {
	kind   Kind
	length uint64
	bound  Number
	ref    string
}

// MinLength requires at least n characters.
func MinLength(n uint64) Rule { return Rule{kind: KindMinLength, length: n} }

// MaxLength allows at most n characters.
func MaxLength(n uint64) Rule { return Rule{kind: KindMaxLength, length: n} }

// MinValue requires value >= bound.
func MinValue(bound Number) Rule { return Rule{kind: KindMinValue, bound: bound} }

// MaxValue requires value <= bound.
func MaxValue(bound Number) Rule { return Rule{kind: KindMaxValue, bound: bound} }

func MinInt(v int64) Rule     { return MinValue(Int(v)) }
func MaxInt(v int64) Rule     { return MaxValue(Int(v)) }
func MinFloat(v float64) Rule { return MinValue(Float(v)) }
func MaxFloat(v float64) Rule { return MaxValue(Float(v)) }

// Pattern requires the whole value to match the registry pattern id.
func Pattern(id string) Rule { return Rule{kind: KindPattern, ref: id} }

// Email requires the canonical email pattern.
func Email() Rule { return Rule{kind: KindEmail, ref: regex.EmailID} }

// Phone requires the canonical US phone pattern.
func Phone() Rule { return Rule{kind: KindPhone, ref: regex.PhoneID} }

// FieldMatch requires the value to equal the sibling field target.
func FieldMatch(target string) Rule { return Rule{kind: KindFieldMatch, ref: target} }

// Kind returns the rule variant.
func (r Rule) Kind() Kind { return r.kind }

// Length returns the MinLength/MaxLength limit.
func (r Rule) Length() uint64 { return r.length }

// Bound returns the MinValue/MaxValue limit.
func (r Rule) Bound() Number { return r.bound }

// RegexID returns the registry id used by Pattern, Email and Phone rules.
func (r Rule) RegexID() string {
	switch r.kind {
	case KindPattern, KindEmail, KindPhone:
		return r.ref
	default:
		return ""
	}
}

// Target returns the sibling field a FieldMatch rule compares against.
func (r Rule) Target() string {
	if r.kind == KindFieldMatch {
		return r.ref
	}
	return ""
}

// Equal reports structural equality.
func (r Rule) Equal(other Rule) bool {
	return r.kind == other.kind && r.length == other.length && r.bound.Equal(other.bound) && r.ref == other.ref
}

func (r Rule) String() string {
	switch r.kind {
	case KindMinLength, KindMaxLength:
		return fmt.Sprintf("%s(%s)", r.kind, strconv.FormatUint(r.length, 10))
	case KindMinValue, KindMaxValue:
		return fmt.Sprintf("%s(%s)", r.kind, r.bound)
	case KindPattern, KindFieldMatch:
		return fmt.Sprintf("%s(%s)", r.kind, r.ref)
	default:
		return string(r.kind)
	}
}
