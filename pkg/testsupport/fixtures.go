package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-webforms/pkg/schema"
	"github.com/goliatone/go-webforms/pkg/schemafile"
)

// MustLoadSchema loads the schema document at path and returns the form
// called name.
func MustLoadSchema(t *testing.T, path, name string) *schema.Schema {
	t.Helper()

	s, err := LoadSchema(path, name)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return s
}

// LoadSchema returns the form called name from the document at path, for
// callers managing setup outside of *testing.T.
func LoadSchema(path, name string) (*schema.Schema, error) {
	if path == "" {
		return nil, errors.New("testsupport: schema path is required")
	}
	set, err := schemafile.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load schema: %w", err)
	}
	s, ok := set.Schema(name)
	if !ok {
		return nil, fmt.Errorf("testsupport: form %q not found in %s", name, path)
	}
	return s, nil
}

// MustLoadValues reads a JSON, YAML or TOML value fixture and converts it
// into a record for s. Unknown keys are ignored.
func MustLoadValues(t *testing.T, path string, s *schema.Schema) schema.Values {
	t.Helper()

	values, err := schemafile.LoadValues(path, s)
	if err != nil {
		t.Fatalf("load values: %v", err)
	}
	return values
}

// WriteGolden writes data as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
