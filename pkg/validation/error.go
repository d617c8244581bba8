package validation

import (
	"fmt"

	"github.com/goliatone/go-webforms/pkg/rules"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindTooShort       Kind = "too_short"
	KindTooLong        Kind = "too_long"
	KindTooSmall       Kind = "too_small"
	KindTooLarge       Kind = "too_large"
	KindInvalidPattern Kind = "invalid_pattern"
	KindInvalidEmail   Kind = "invalid_email"
	KindInvalidPhone   Kind = "invalid_phone"
	KindFieldMismatch  Kind = "field_mismatch"
	// KindInvalidValue reports a value that cannot be read as the field's
	// declared kind (for example "abc" for an integer field).
	KindInvalidValue Kind = "invalid_value"
)

// Error is one failed rule. Validation failures are data, not Go errors in
// the control-flow sense, but Error implements error so it composes with
// errors.Join and friends.
type Error struct {
	Kind    Kind         `json:"kind"`
	Field   string       `json:"field"`
	Rule    rules.Kind   `json:"rule,omitempty"`
	Length  uint64       `json:"length,omitempty"`
	Bound   rules.Number `json:"bound,omitzero"`
	Regex   string       `json:"regex,omitempty"`
	Target  string       `json:"target,omitempty"`
	Message string       `json:"message"`
}

// TooShort reports a value shorter than min characters.
func TooShort(field string, min uint64) Error {
	return Error{Kind: KindTooShort, Field: field, Rule: rules.KindMinLength, Length: min}
}

// TooLong reports a value longer than max characters.
func TooLong(field string, max uint64) Error {
	return Error{Kind: KindTooLong, Field: field, Rule: rules.KindMaxLength, Length: max}
}

// TooSmall reports a value below min.
func TooSmall(field string, min rules.Number) Error {
	return Error{Kind: KindTooSmall, Field: field, Rule: rules.KindMinValue, Bound: min}
}

// TooLarge reports a value above max.
func TooLarge(field string, max rules.Number) Error {
	return Error{Kind: KindTooLarge, Field: field, Rule: rules.KindMaxValue, Bound: max}
}

// InvalidPattern reports a value not matching the pattern registered as id.
func InvalidPattern(field, id string) Error {
	return Error{Kind: KindInvalidPattern, Field: field, Rule: rules.KindPattern, Regex: id}
}

// InvalidEmail reports a malformed email address.
func InvalidEmail(field string) Error {
	return Error{Kind: KindInvalidEmail, Field: field, Rule: rules.KindEmail}
}

// InvalidPhone reports a malformed phone number.
func InvalidPhone(field string) Error {
	return Error{Kind: KindInvalidPhone, Field: field, Rule: rules.KindPhone}
}

// FieldMismatch reports a value that differs from the target field's value.
func FieldMismatch(field, target string) Error {
	return Error{Kind: KindFieldMismatch, Field: field, Rule: rules.KindFieldMatch, Target: target}
}

// InvalidValue reports a value of the wrong kind.
func InvalidValue(field string) Error {
	return Error{Kind: KindInvalidValue, Field: field}
}

func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindTooShort:
		return fmt.Sprintf("%s: too short (min %d)", e.Field, e.Length)
	case KindTooLong:
		return fmt.Sprintf("%s: too long (max %d)", e.Field, e.Length)
	case KindTooSmall:
		return fmt.Sprintf("%s: too small (min %s)", e.Field, e.Bound)
	case KindTooLarge:
		return fmt.Sprintf("%s: too large (max %s)", e.Field, e.Bound)
	case KindFieldMismatch:
		return fmt.Sprintf("%s: does not match %s", e.Field, e.Target)
	default:
		return fmt.Sprintf("%s: %s", e.Field, e.Kind)
	}
}
