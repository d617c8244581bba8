package schema

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-webforms/pkg/attrs"
	"github.com/goliatone/go-webforms/pkg/regex"
	"github.com/goliatone/go-webforms/pkg/rules"
)

// ConstraintAttributes derives the HTML constraint attributes implied by the
// field's rules (minlength, maxlength, min, max, pattern, type). Pattern
// sources are resolved through reg; unknown ids are skipped.
func ConstraintAttributes(field Field, reg *regex.Registry) []attrs.Attribute {
	var out []attrs.Attribute
	for _, rule := range field.rules {
		switch rule.Kind() {
		case rules.KindMinLength:
			out = append(out, attrs.Pair("minlength", strconv.FormatUint(rule.Length(), 10)))
		case rules.KindMaxLength:
			out = append(out, attrs.Pair("maxlength", strconv.FormatUint(rule.Length(), 10)))
		case rules.KindMinValue:
			out = append(out, attrs.Pair("min", rule.Bound().String()))
		case rules.KindMaxValue:
			out = append(out, attrs.Pair("max", rule.Bound().String()))
		case rules.KindPattern:
			if reg == nil {
				continue
			}
			if source, ok := reg.Pattern(rule.RegexID()); ok {
				out = append(out, attrs.Pair("pattern", htmlPattern(source)))
			}
		case rules.KindEmail:
			out = append(out, attrs.Pair("type", "email"))
		case rules.KindPhone:
			out = append(out, attrs.Pair("type", "tel"))
		}
	}
	return out
}

// htmlPattern strips explicit anchors; browsers anchor the pattern attribute
// themselves.
func htmlPattern(source string) string {
	source = strings.TrimPrefix(source, "^")
	if strings.HasSuffix(source, "$") && !strings.HasSuffix(source, `\$`) {
		source = strings.TrimSuffix(source, "$")
	}
	return source
}
