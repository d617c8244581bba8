package rules_test

import (
	"testing"

	"github.com/goliatone/go-webforms/pkg/regex"
	"github.com/goliatone/go-webforms/pkg/rules"
)

func TestParseKind(t *testing.T) {
	cases := map[string]rules.Kind{
		"min_length":  rules.KindMinLength,
		"min-length":  rules.KindMinLength,
		"MinLength":   rules.KindMinLength,
		" email ":     rules.KindEmail,
		"field_match": rules.KindFieldMatch,
		"fieldmatch":  rules.KindFieldMatch,
	}
	for raw, want := range cases {
		got, ok := rules.ParseKind(raw)
		if !ok || got != want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", raw, got, ok, want)
		}
	}
	if _, ok := rules.ParseKind("between"); ok {
		t.Fatalf("unknown kind should not resolve")
	}
}

func TestRuleAccessors(t *testing.T) {
	if got := rules.Email().RegexID(); got != regex.EmailID {
		t.Fatalf("email regex id = %q", got)
	}
	if got := rules.Phone().RegexID(); got != regex.PhoneID {
		t.Fatalf("phone regex id = %q", got)
	}
	if got := rules.FieldMatch("password").Target(); got != "password" {
		t.Fatalf("target = %q", got)
	}
	if got := rules.FieldMatch("password").RegexID(); got != "" {
		t.Fatalf("field match must not expose a regex id, got %q", got)
	}
	if got := rules.MinLength(3).String(); got != "min_length(3)" {
		t.Fatalf("String() = %q", got)
	}
	if !rules.MinInt(18).Equal(rules.MinValue(rules.Int(18))) {
		t.Fatalf("sugar constructor mismatch")
	}
	if rules.MinInt(18).Equal(rules.MinFloat(18)) {
		t.Fatalf("int and float bounds must differ")
	}
}

func TestNumberCompare(t *testing.T) {
	cases := []struct {
		a, b rules.Number
		want int
	}{
		{rules.Int(1), rules.Int(2), -1},
		{rules.Int(2), rules.Int(2), 0},
		{rules.Int(3), rules.Int(2), 1},
		{rules.Float(2.5), rules.Int(2), 1},
		{rules.Int(2), rules.Float(2.0), 0},
		{rules.Float(-0.5), rules.Float(0.25), -1},
	}
	for _, tc := range cases {
		if got := tc.a.Compare(tc.b); got != tc.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
