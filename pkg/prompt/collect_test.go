package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-webforms/pkg/prompt"
	"github.com/goliatone/go-webforms/pkg/schema"
	"github.com/goliatone/go-webforms/pkg/validation"
)

// stubDriver replays scripted answers, asking again while the validator
// rejects them.
type stubDriver struct {
	answers  []string
	pos      int
	rejected []string
	prompts  []string
	info     []string
}

func (s *stubDriver) next(message string, validate func(string) error) (string, error) {
	s.prompts = append(s.prompts, message)
	for s.pos < len(s.answers) {
		answer := s.answers[s.pos]
		s.pos++
		if validate != nil {
			if err := validate(answer); err != nil {
				s.rejected = append(s.rejected, answer)
				continue
			}
		}
		return answer, nil
	}
	return "", errors.New("no answer scripted")
}

func (s *stubDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	return s.next(cfg.Message, cfg.Validator)
}

func (s *stubDriver) Password(_ context.Context, cfg prompt.InputConfig) (string, error) {
	return s.next("password:"+cfg.Message, cfg.Validator)
}

func (s *stubDriver) TextArea(_ context.Context, cfg prompt.TextAreaConfig) (string, error) {
	return s.next("textarea:"+cfg.Message, cfg.Validator)
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.info = append(s.info, msg)
	return nil
}

func signupSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New("signup").Field(
		schema.Input("username").MinLength(3),
		schema.Input("age").Kind(schema.KindInteger),
		schema.Input("password").Type("password").MinLength(8),
		schema.Input("confirm").Type("password").Matches("password"),
		schema.Textarea("bio").Optional().MaxLength(20),
		schema.SubmitField(),
	).Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return s
}

func TestCollect_RepromptsUntilValid(t *testing.T) {
	driver := &stubDriver{answers: []string{
		"al", "alice",
		"abc", "42",
		"short", "longenough",
		"longenough",
		"",
	}}
	values, report, err := prompt.Collect(context.Background(), driver, validation.New(signupSchema(t)))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if !report.Valid() {
		t.Fatalf("expected valid report, got %v", report.Errors)
	}
	if diff := cmp.Diff([]string{"al", "abc", "short"}, driver.rejected); diff != "" {
		t.Fatalf("rejected answers mismatch (-want +got):\n%s", diff)
	}
	wantPrompts := []string{"username", "age", "password:password", "password:confirm", "textarea:bio (optional)"}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	if !values["age"].Equal(schema.Int(42)) {
		t.Fatalf("age = %v", values["age"])
	}
	if _, ok := values["submit"]; ok {
		t.Fatalf("submit should not be prompted")
	}
}

func TestCollect_ReportsFieldMismatch(t *testing.T) {
	driver := &stubDriver{answers: []string{"alice", "42", "longenough", "different", "hi"}}
	_, report, err := prompt.Collect(context.Background(), driver, validation.New(signupSchema(t)))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if report.Valid() {
		t.Fatalf("expected field mismatch")
	}
	if got := report.Errors[0].Kind; got != validation.KindFieldMismatch {
		t.Fatalf("kind = %s", got)
	}
	if len(driver.info) != 1 {
		t.Fatalf("expected one info message, got %v", driver.info)
	}
}

func TestCollect_PropagatesDriverErrors(t *testing.T) {
	driver := &stubDriver{}
	if _, _, err := prompt.Collect(context.Background(), driver, validation.New(signupSchema(t))); err == nil {
		t.Fatalf("expected error when the driver runs out of answers")
	}
}
