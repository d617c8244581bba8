// Package prompt collects form values interactively.
//
// Each answer is parsed for the field's value kind and validated in
// isolation, so the user is asked again until the field passes. Rules that
// need the whole record (field matches) are checked once every field has an
// answer.
package prompt

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-webforms/pkg/schema"
	"github.com/goliatone/go-webforms/pkg/validation"
)

// Collect prompts for every interactive field of the validator's schema and
// returns the collected record with the final report.
func Collect(ctx context.Context, driver Driver, v *validation.Validator) (schema.Values, validation.Report, error) {
	s := v.Schema()
	values := make(schema.Values, s.Len())

	for _, field := range s.Fields() {
		if !interactive(field) {
			continue
		}
		value, err := ask(ctx, driver, v, field)
		if err != nil {
			return nil, validation.Report{}, err
		}
		values[field.Name()] = value
	}

	report := v.Validate(values)
	if !report.Valid() {
		for _, err := range report.Errors {
			if infoErr := driver.Info(ctx, err.Error()); infoErr != nil {
				return values, report, infoErr
			}
		}
	}
	return values, report, nil
}

func ask(ctx context.Context, driver Driver, v *validation.Validator, field schema.Field) (schema.Value, error) {
	check := func(raw string) error {
		value, err := schema.ParseValue(field.Kind(), raw)
		if err != nil {
			return err
		}
		errs, err := v.Value(field.Name(), value)
		if err != nil {
			return err
		}
		if len(errs) == 0 {
			return nil
		}
		msgs := make([]error, len(errs))
		for i := range errs {
			msgs[i] = errs[i]
		}
		return errors.Join(msgs...)
	}

	message := label(field)
	def, _ := field.Attr("value")

	var (
		raw string
		err error
	)
	switch {
	case field.Tag() == "textarea":
		raw, err = driver.TextArea(ctx, TextAreaConfig{Message: message, Default: def, Validator: check})
	case inputType(field) == "password":
		raw, err = driver.Password(ctx, InputConfig{Message: message, Validator: check})
	default:
		raw, err = driver.Input(ctx, InputConfig{Message: message, Default: def, Validator: check})
	}
	if err != nil {
		return schema.Value{}, err
	}
	return schema.ParseValue(field.Kind(), raw)
}

func interactive(field schema.Field) bool {
	if field.Tag() != "input" && field.Tag() != "textarea" {
		return false
	}
	switch inputType(field) {
	case "submit", "hidden", "button", "reset":
		return false
	}
	return field.Name() != ""
}

func inputType(field schema.Field) string {
	t, _ := field.Attr("type")
	return strings.ToLower(t)
}

func label(field schema.Field) string {
	if placeholder, ok := field.Attr("placeholder"); ok && placeholder != "" {
		return placeholder
	}
	if field.Optional() {
		return field.Name() + " (optional)"
	}
	return field.Name()
}
