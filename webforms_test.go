package webforms_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	webforms "github.com/goliatone/go-webforms"
	"github.com/goliatone/go-webforms/pkg/render"
	"github.com/goliatone/go-webforms/pkg/schema"
)

type login struct {
	Username string `validate:"min_length=3" html:"required"`
	Password string `validate:"min_length=8" html_input_type:"password"`
}

func TestFromStruct_ValidateAndRender(t *testing.T) {
	s, err := webforms.FromStruct(login{})
	if err != nil {
		t.Fatalf("from struct: %v", err)
	}

	report, err := webforms.ValidateStruct(s, login{Username: "al", Password: "longenough"})
	if err != nil {
		t.Fatalf("validate struct: %v", err)
	}
	if report.Valid() || len(report.Errors) != 1 {
		t.Fatalf("expected one error, got %v", report.Errors)
	}

	html := webforms.RenderHTML(s,
		render.WithWrapper(schema.FormField("login").Attr("method", "post").Finish()),
		render.WithSubmit(schema.SubmitField().Finish()),
	)
	want := strings.Join([]string{
		"<form name='login' method='post'>",
		"<input name='username' required type='text'>",
		"<input name='password' type='password'>",
		"<input name='submit' type='submit' value='Submit'>",
		"</form>",
	}, "\n")
	if html != want {
		t.Fatalf("html mismatch:\n%s\nwant:\n%s", html, want)
	}
}

func TestLoadFile(t *testing.T) {
	set, err := webforms.LoadFile(filepath.Join("pkg", "schemafile", "testdata", "forms", "contact.json"))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	s, ok := set.Schema("contact")
	if !ok {
		t.Fatalf("contact form missing")
	}
	report := webforms.Validate(s, webforms.Values{"email": schema.Text("nope")})
	if report.Valid() {
		t.Fatalf("expected invalid email")
	}
}

func TestFromOpenAPI(t *testing.T) {
	raw := []byte(`{
		"openapi": "3.0.3",
		"info": {"title": "x", "version": "1"},
		"paths": {"/subscribe": {"post": {
			"operationId": "subscribe",
			"requestBody": {"content": {"application/json": {"schema": {
				"type": "object",
				"required": ["email"],
				"properties": {"email": {"type": "string", "format": "email"}}
			}}}},
			"responses": {"204": {"description": "ok"}}
		}}}
	}`)
	s, err := webforms.FromOpenAPI(context.Background(), raw, "subscribe")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}
	if got := webforms.RenderHTML(s); got != "<input name='email' type='email' required>" {
		t.Fatalf("render = %q", got)
	}
}
