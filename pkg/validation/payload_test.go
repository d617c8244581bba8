package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-webforms/pkg/schema"
	"github.com/goliatone/go-webforms/pkg/validation"
)

func TestMapErrorPayload(t *testing.T) {
	s := mustCompile(t, schema.New("signup").Field(
		schema.Input("name"),
		schema.Input("email"),
		schema.Input("tags"),
	))

	payload := map[string][]string{
		"/body/name":                 {"Name is required", " Name is required "},
		"body.email":                 {"Email invalid"},
		"$.data.tags[0]":             {"Tags must be unique"},
		"non_field_errors":           {"Form level error"},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"":                           {"Unscoped form error"},
		"name":                       {"   "},
	}

	mapped := validation.MapErrorPayload(s, payload)

	wantFields := map[string][]string{
		"name":  {"Name is required"},
		"email": {"Email invalid"},
		"tags":  {"Tags must be unique"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	// Form messages follow the sorted order of their paths.
	wantForm := []string{"Unscoped form error", "Form level error", "Should fall back to form errors"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_StableOrder(t *testing.T) {
	s := mustCompile(t, schema.New("signup").Field(schema.Input("email")))
	payload := map[string][]string{
		"form":             {"first"},
		"__all__":          {"second"},
		"/body/missing":    {"third"},
		"non_field_errors": {"fourth"},
		"/body/email":      {"taken", "blocked"},
		"email":            {"blocked", "reserved"},
	}

	first := validation.MapErrorPayload(s, payload)
	for i := 0; i < 50; i++ {
		if diff := cmp.Diff(first, validation.MapErrorPayload(s, payload)); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
	want := validation.ErrorMapping{
		Fields: map[string][]string{"email": {"taken", "blocked", "reserved"}},
		Form:   []string{"third", "second", "first", "fourth"},
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_LongestLeadingPath(t *testing.T) {
	s := mustCompile(t, schema.New("checkout").Field(
		schema.Input("address"),
		schema.Input("name"),
		schema.Input("billing.zip"),
		schema.Input("user[email]"),
	))

	mapped := validation.MapErrorPayload(s, map[string][]string{
		"/address/name":        {"bad street"},
		"/body/billing/zip":    {"bad zip"},
		"user[email]":          {"bad email"},
		"/shipping/name":       {"unknown parent"},
		"$.data.items[2].name": {"unknown item"},
	})

	wantFields := map[string][]string{
		"address":     {"bad street"},
		"billing.zip": {"bad zip"},
		"user[email]": {"bad email"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"unknown item", "unknown parent"}, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorMapping_MergeReport(t *testing.T) {
	s := mustCompile(t, schema.New("signup").Field(
		schema.Input("email").Email(),
	))
	report := validation.New(s).Validate(schema.Values{"email": schema.Text("bad")})

	mapped := validation.MapErrorPayload(s, map[string][]string{"email": {"Already taken"}}).Merge(report)
	want := map[string][]string{
		"email": {"email must be a valid email address", "Already taken"},
	}
	if diff := cmp.Diff(want, mapped.Fields); diff != "" {
		t.Fatalf("merged fields mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := validation.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
