package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-webforms/pkg/prompt"
	"github.com/goliatone/go-webforms/pkg/render"
	"github.com/goliatone/go-webforms/pkg/testsupport"
)

var loginForm = filepath.Join("..", "..", "pkg", "schemafile", "testdata", "forms", "login.yaml")

type scripted struct {
	answers []string
}

func (s *scripted) next() (string, error) {
	if len(s.answers) == 0 {
		return "", errors.New("no answer scripted")
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func (s *scripted) Input(context.Context, prompt.InputConfig) (string, error)       { return s.next() }
func (s *scripted) Password(context.Context, prompt.InputConfig) (string, error)    { return s.next() }
func (s *scripted) TextArea(context.Context, prompt.TextAreaConfig) (string, error) { return s.next() }
func (s *scripted) Info(context.Context, string) error                              { return nil }

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	if a.stderr == nil {
		a.stderr = &bytes.Buffer{}
	}
	cmd := a.rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.ExecuteContext(testsupport.Context())
	return out.String(), err
}

func TestRender_WithOverride(t *testing.T) {
	out, err := run(t, &app{}, "render", loginForm, "--override", "username:class=wide", "--override", "confirm:placeholder=Again")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := "<input name='username' autofocus required minlength='3' maxlength='16' pattern='[a-z0-9_]+' type='text' class='wide'>"
	if lines[0] != want {
		t.Fatalf("username = %q\nwant       %q", lines[0], want)
	}
	if !strings.HasSuffix(lines[2], "placeholder='Again'>") {
		t.Fatalf("confirm override missing: %q", lines[2])
	}

	login := testsupport.MustLoadSchema(t, loginForm, "login")
	if lines[1] != render.Field(login.Fields()[1], nil) {
		t.Fatalf("password line should be untouched: %q", lines[1])
	}
}

func TestRender_WrapperHiddenAndSubmit(t *testing.T) {
	out, err := run(t, &app{}, "render", loginForm, "--form", "login", "--wrap", "login", "--hidden", "_csrf=tok", "--submit")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "<form name='login' method='post'>" || lines[len(lines)-1] != "</form>" {
		t.Fatalf("wrapper missing:\n%s", out)
	}
	if lines[1] != "<input name='_csrf' type='hidden' value='tok'>" {
		t.Fatalf("hidden field = %q", lines[1])
	}
}

func TestRender_InvalidOverride(t *testing.T) {
	if _, err := run(t, &app{}, "render", loginForm, "--override", "username"); err == nil {
		t.Fatalf("expected error for malformed override")
	}
}

func TestValidate_JSONReport(t *testing.T) {
	values := filepath.Join(t.TempDir(), "values.json")
	if err := os.WriteFile(values, []byte(`{"username": "al", "password": "longenough", "confirm": "longenough"}`), 0o644); err != nil {
		t.Fatalf("write values: %v", err)
	}

	out, err := run(t, &app{}, "validate", loginForm, "--values", values, "--json")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	var report struct {
		Schema string `json:"schema"`
		Errors []struct {
			Kind    string `json:"kind"`
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Schema != "login" || len(report.Errors) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Errors[0].Kind != "too_short" || report.Errors[0].Message != "username is too short" {
		t.Fatalf("unexpected error: %+v", report.Errors[0])
	}
}

func TestValidate_TextReport(t *testing.T) {
	values := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(values, []byte("username: alice\npassword: longenough\nconfirm: longenough\n"), 0o644); err != nil {
		t.Fatalf("write values: %v", err)
	}
	out, err := run(t, &app{}, "validate", loginForm, "--values", values)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "ok" {
		t.Fatalf("output = %q", out)
	}
}

func TestForms(t *testing.T) {
	dir := filepath.Join("..", "..", "pkg", "openapi", "testdata", "users.yaml")
	out, err := run(t, &app{}, "forms", dir, "--openapi")
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	if diff := cmp.Diff("createUser\npost:/notes\n", out); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}
}

func TestPrompt_ScriptedDriver(t *testing.T) {
	a := &app{driver: &scripted{answers: []string{"alice", "longenough", "longenough"}}}
	out, err := run(t, a, "prompt", loginForm)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode values: %v", err)
	}
	want := map[string]string{"username": "alice", "password": "longenough", "confirm": "longenough"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "WEBFORMS_LOG_LEVEL=debug\nWEBFORMS_CONSTRAINTS=true\nWEBFORMS_DEFAULTS=defaults.toml\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := loadConfig(envFile, []string{"WEBFORMS_LOG_LEVEL=error", "UNRELATED=1"})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := config{
		LogLevel:    "error",
		LogFormat:   "console",
		Defaults:    "defaults.toml",
		Constraints: true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	cfg, err = loadConfig(filepath.Join(t.TempDir(), "absent.env"), nil)
	if err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.Constraints {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	if _, err := loadConfig("", []string{"WEBFORMS_CONSTRAINTS=maybe"}); err == nil {
		t.Fatalf("expected parse error for invalid bool")
	}
}
