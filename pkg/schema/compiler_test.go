package schema_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-webforms/pkg/attrs"
	"github.com/goliatone/go-webforms/pkg/regex"
	"github.com/goliatone/go-webforms/pkg/rules"
	"github.com/goliatone/go-webforms/pkg/schema"
)

func TestFieldBuilder_SeedsNameAndKeepsOrder(t *testing.T) {
	field := schema.Input("username").
		Class("input-text").
		Class("wide").
		Required().
		Finish()

	want := []attrs.Attribute{
		attrs.Pair("name", "username"),
		attrs.Pair("class", "input-text wide"),
		attrs.Single("required"),
	}
	if diff := cmp.Diff(want, field.Attributes()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if field.Tag() != "input" || field.Name() != "username" || field.Kind() != schema.KindText {
		t.Fatalf("unexpected field header: %s %s %s", field.Tag(), field.Name(), field.Kind())
	}
}

func TestFieldBuilder_OptionalRemovesRequired(t *testing.T) {
	field := schema.Input("nickname").Required().Optional().Finish()
	if field.Required() {
		t.Fatalf("optional field must not carry the required attribute")
	}
	if !field.Optional() {
		t.Fatalf("optional flag not set")
	}

	again := schema.Input("nickname").Optional().Required().Finish()
	if !again.Required() || again.Optional() {
		t.Fatalf("required after optional should win")
	}
}

func TestFieldBuilder_ReplaceAndType(t *testing.T) {
	field := schema.Input("email").
		Class("a").
		Replace().
		Class("b").
		Append().
		Type("text").
		Type("email").
		Finish()

	if got, _ := field.Attr("class"); got != "b" {
		t.Fatalf("class = %q, want %q", got, "b")
	}
	if got, _ := field.Attr("type"); got != "email" {
		t.Fatalf("type = %q, want %q", got, "email")
	}
}

func TestFieldBuilder_FinishIsIndependent(t *testing.T) {
	b := schema.Input("city").Class("a")
	field := b.Finish()
	b.Class("b")

	if got, _ := field.Attr("class"); got != "a" {
		t.Fatalf("finished field mutated by builder: %q", got)
	}
	field.Attrs().Insert(attrs.Pair("class", "c"))
	if got, _ := field.Attr("class"); got != "a" {
		t.Fatalf("finished field mutated through Attrs(): %q", got)
	}
}

func TestCompile_AppliesDefaultsWithoutOverriding(t *testing.T) {
	s, err := schema.New("profile").
		Field(
			schema.Input("name"),
			schema.Input("age").Kind(schema.KindInteger).Rule(rules.MinInt(18)),
			schema.Input("secret").Type("password"),
			schema.Textarea("bio"),
		).
		Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	cases := map[string]string{"name": "text", "age": "number", "secret": "password"}
	for name, want := range cases {
		field, ok := s.Field(name)
		if !ok {
			t.Fatalf("field %q missing", name)
		}
		if got, _ := field.Attr("type"); got != want {
			t.Errorf("%s type = %q, want %q", name, got, want)
		}
	}
	bio, _ := s.Field("bio")
	if _, ok := bio.Attr("type"); ok {
		t.Fatalf("kind defaults must only apply to input tags")
	}
}

func TestCompile_CustomDefaultsAndConstraints(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	s, err := schema.New("signup",
		schema.WithoutDefaults(),
		schema.WithDefaults(schema.Defaults{"textarea": {"rows": "4"}}),
		schema.WithConstraintAttributes(),
		schema.WithLogger(logger),
	).
		Regex("slug", "^[a-z-]+$").
		Field(
			schema.Input("handle").MinLength(3).MaxLength(10).Rule(rules.Pattern("slug")),
			schema.Input("email").Email(),
			schema.Input("score").Kind(schema.KindFloat).Rule(rules.MinFloat(0.5), rules.MaxFloat(9.5)),
			schema.Textarea("notes"),
		).
		Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	handle, _ := s.Field("handle")
	want := []attrs.Attribute{
		attrs.Pair("name", "handle"),
		attrs.Pair("minlength", "3"),
		attrs.Pair("maxlength", "10"),
		attrs.Pair("pattern", "[a-z-]+"),
	}
	if diff := cmp.Diff(want, handle.Attributes()); diff != "" {
		t.Fatalf("handle attributes mismatch (-want +got):\n%s", diff)
	}

	email, _ := s.Field("email")
	if got, _ := email.Attr("type"); got != "email" {
		t.Fatalf("email type = %q", got)
	}
	score, _ := s.Field("score")
	if got, _ := score.Attr("min"); got != "0.5" {
		t.Fatalf("score min = %q", got)
	}
	notes, _ := s.Field("notes")
	if got, _ := notes.Attr("rows"); got != "4" {
		t.Fatalf("notes rows = %q", got)
	}
	if !strings.Contains(buf.String(), "applied attribute") {
		t.Fatalf("expected debug log output, got %q", buf.String())
	}
}

func TestCompile_RegistersCanonicalAndInlinePatterns(t *testing.T) {
	s, err := schema.New("contact").
		Field(
			schema.Input("email").Email(),
			schema.Input("phone").Phone(),
			schema.Input("zip").Match(`\d{5}`),
		).
		Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	want := []string{regex.EmailID, regex.PhoneID, "zip_pattern_1"}
	got := s.Registry().IDs()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("registry ids mismatch (-want +got):\n%s", diff)
	}
	if !s.Registry().Match("zip_pattern_1", "12345") {
		t.Fatalf("inline pattern should match")
	}
}

func TestCompile_PatternIDsIgnoreSurroundingSpace(t *testing.T) {
	s, err := schema.New("x").
		Regex(" handle ", "[a-z]+").
		Field(schema.Input("user").Rule(rules.Pattern(" handle"))).
		Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	user, _ := s.Field("user")
	if !s.Registry().Match(user.Rules()[0].RegexID(), "abc") {
		t.Fatalf("rule id should resolve after trimming")
	}
}

func TestCompile_ReportsEveryError(t *testing.T) {
	_, err := schema.New("broken").
		Regex("dup", "a+").
		Regex("dup", "b+").
		Regex("bad", "(").
		Field(
			schema.Input("username").Rule(rules.Pattern("missing")),
			schema.Input("confirm").Matches("password"),
			schema.Input("age").Kind(schema.KindInteger).MinLength(2),
			schema.Input("count").Kind(schema.KindInteger).Rule(rules.MinFloat(1.5)),
			schema.Input("title").Rule(rules.MaxInt(3)),
			schema.Input("title"),
			schema.NewField("input", ""),
		).
		Message(rules.KindEmail, "{{ field ").
		Compile()
	if err == nil {
		t.Fatalf("expected compile error")
	}

	for _, target := range []error{
		regex.ErrDuplicateID,
		regex.ErrInvalidPattern,
		schema.ErrUnknownRegex,
		schema.ErrUnknownField,
		schema.ErrRuleKindMismatch,
		schema.ErrNumberKindMismatch,
		schema.ErrDuplicateField,
		schema.ErrMissingName,
	} {
		if !errors.Is(err, target) {
			t.Errorf("expected %v in %v", target, err)
		}
	}

	compileErrs := schema.CompileErrors(err)
	if len(compileErrs) != 10 {
		t.Fatalf("expected 10 compile errors, got %d: %v", len(compileErrs), err)
	}
	for _, ce := range compileErrs {
		if ce.Schema != "broken" {
			t.Fatalf("compile error missing schema name: %v", ce)
		}
	}
}

func TestCompile_FieldMatchRequiresSameKind(t *testing.T) {
	_, err := schema.New("mixed").
		Field(
			schema.Input("pin").Kind(schema.KindInteger),
			schema.Input("pin_text").Matches("pin"),
		).
		Compile()
	if !errors.Is(err, schema.ErrRuleKindMismatch) {
		t.Fatalf("expected ErrRuleKindMismatch, got %v", err)
	}
}

func TestSchema_FieldsAreCopies(t *testing.T) {
	s, err := schema.New("x").Field(schema.Input("a"), schema.Input("b")).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	fields := s.Fields()
	fields[0] = schema.Input("z").Finish()

	if got := s.Fields()[0].Name(); got != "a" {
		t.Fatalf("schema fields mutated: %q", got)
	}
	if _, ok := s.Field("z"); ok {
		t.Fatalf("unexpected field z")
	}
	if s.Len() != 2 || s.Name() != "x" {
		t.Fatalf("unexpected schema header %q/%d", s.Name(), s.Len())
	}
}
