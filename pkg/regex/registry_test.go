package regex_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-webforms/pkg/regex"
)

func TestBuilderRegister_Idempotent(t *testing.T) {
	b := regex.NewBuilder()
	for i := 0; i < 3; i++ {
		if err := b.RegisterEmail(); err != nil {
			t.Fatalf("register email (%d): %v", i, err)
		}
	}
	if err := b.Register("slug", `[a-z-]+`); err != nil {
		t.Fatalf("register slug: %v", err)
	}
	if err := b.Register("slug", `[a-z-]+`); err != nil {
		t.Fatalf("re-register identical slug: %v", err)
	}

	reg := b.Freeze()
	if diff := cmp.Diff([]string{regex.EmailID, "slug"}, reg.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderRegister_ConflictingPattern(t *testing.T) {
	b := regex.NewBuilder()
	if err := b.Register("code", `[0-9]+`); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := b.Register("code", `[a-z]+`)
	if !errors.Is(err, regex.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestBuilderRegister_InvalidPattern(t *testing.T) {
	err := regex.NewBuilder().Register("broken", `([a-z]`)
	if !errors.Is(err, regex.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	if err := regex.NewBuilder().Register("  ", `x`); !errors.Is(err, regex.ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
}

func TestRegistryMatch_WholeInput(t *testing.T) {
	b := regex.NewBuilder()
	if err := b.Register("digits", `[0-9]+`); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := b.RegisterEmail(); err != nil {
		t.Fatalf("register email: %v", err)
	}
	if err := b.RegisterPhone(); err != nil {
		t.Fatalf("register phone: %v", err)
	}
	reg := b.Freeze()

	cases := []struct {
		id    string
		value string
		want  bool
	}{
		{"digits", "12345", true},
		{"digits", "abc123def", false},
		{regex.EmailID, "mike@test.com", true},
		{regex.EmailID, "mike@test", false},
		{regex.PhoneID, "(555) 123-4567", true},
		{regex.PhoneID, "+1 555.123.4567", true},
		{regex.PhoneID, "555-1234", false},
		{"unknown", "anything", false},
	}
	for _, tc := range cases {
		if got := reg.Match(tc.id, tc.value); got != tc.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tc.id, tc.value, got, tc.want)
		}
	}
}

func TestFreeze_Snapshot(t *testing.T) {
	b := regex.NewBuilder()
	if err := b.Register("a", `a`); err != nil {
		t.Fatalf("register: %v", err)
	}
	reg := b.Freeze()
	if err := b.Register("b", `b`); err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("frozen registry changed after later registration: %v", reg.IDs())
	}
	if src, ok := reg.Pattern("a"); !ok || src != "a" {
		t.Fatalf("Pattern(a) = %q, %v", src, ok)
	}
}

func TestRegistry_TrimsIDs(t *testing.T) {
	b := regex.NewBuilder()
	if err := b.Register(" zip ", `\d{5}`); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !b.Has("zip") || !b.Has("  zip") {
		t.Fatalf("Has should ignore surrounding spaces")
	}

	reg := b.Freeze()
	if src, ok := reg.Pattern(" zip "); !ok || src != `\d{5}` {
		t.Fatalf("Pattern() = %q, %v", src, ok)
	}
	if !reg.Match("zip ", "12345") || reg.Match("zip", "1234") {
		t.Fatalf("Match should resolve trimmed ids")
	}
	if diff := cmp.Diff([]string{"zip"}, reg.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}
