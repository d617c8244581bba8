package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-webforms/pkg/attrs"
	"github.com/goliatone/go-webforms/pkg/openapi"
	"github.com/goliatone/go-webforms/pkg/prompt"
	"github.com/goliatone/go-webforms/pkg/render"
	"github.com/goliatone/go-webforms/pkg/schema"
	"github.com/goliatone/go-webforms/pkg/schemafile"
	"github.com/goliatone/go-webforms/pkg/validation"
)

func (a *app) formsCmd() *cobra.Command {
	var isOpenAPI bool
	cmd := &cobra.Command{
		Use:   "forms <file>",
		Short: "List the forms declared in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.formNames(cmd.Context(), args[0], isOpenAPI)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&isOpenAPI, "openapi", false, "List OpenAPI operations that declare a request body")
	return cmd
}

func (a *app) formNames(ctx context.Context, path string, isOpenAPI bool) ([]string, error) {
	if isOpenAPI {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("webforms: read %s: %w", path, err)
		}
		return openapi.Operations(ctx, raw, openapi.WithLogger(a.log))
	}
	set, err := schemafile.LoadFile(path, schemafile.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	return set.Names(), nil
}

func (a *app) renderCmd() *cobra.Command {
	var (
		src       source
		overrides []string
		hidden    []string
		wrap      string
		method    string
		submit    bool
		sanitize  bool
	)
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a form as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd.Context(), args[0], src)
			if err != nil {
				return err
			}
			sets, err := parseOverrides(overrides)
			if err != nil {
				return err
			}

			opts := []render.FormOption{render.WithOverrides(sets)}
			if wrap != "" {
				wrapper := schema.FormField(wrap)
				if method != "" {
					wrapper.Attr("method", method)
				}
				opts = append(opts, render.WithWrapper(wrapper.Finish()))
			}
			if submit {
				opts = append(opts, render.WithSubmit(schema.SubmitField().Finish()))
			}
			for _, raw := range hidden {
				name, value, ok := strings.Cut(raw, "=")
				if !ok || name == "" {
					return fmt.Errorf("webforms: invalid --hidden %q, want name=value", raw)
				}
				opts = append(opts, render.WithHidden(render.Hidden(name, value)))
			}
			if sanitize || a.cfg.Sanitize {
				opts = append(opts, render.WithSanitize())
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Schema(s, opts...))
			return err
		},
	}
	src.register(cmd)
	cmd.Flags().StringArrayVar(&overrides, "override", nil, "Override an attribute: field:key=value or field:flag (repeatable)")
	cmd.Flags().StringArrayVar(&hidden, "hidden", nil, "Add a hidden input: name=value (repeatable)")
	cmd.Flags().StringVar(&wrap, "wrap", "", "Wrap the fields in a <form> with this name")
	cmd.Flags().StringVar(&method, "method", "post", "Method of the wrapping form")
	cmd.Flags().BoolVar(&submit, "submit", false, "Append the default submit button")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Sanitize the rendered markup")
	return cmd
}

// parseOverrides turns field:key=value and field:flag entries into per-field
// attribute sets. Later entries for the same attribute win.
func parseOverrides(raw []string) (map[string]*attrs.Set, error) {
	out := make(map[string]*attrs.Set)
	for _, entry := range raw {
		field, attr, ok := strings.Cut(entry, ":")
		field, attr = strings.TrimSpace(field), strings.TrimSpace(attr)
		if !ok || field == "" || attr == "" {
			return nil, fmt.Errorf("webforms: invalid --override %q, want field:key=value", entry)
		}
		set, exists := out[field]
		if !exists {
			set = attrs.NewSet().Replace()
			out[field] = set
		}
		if key, value, pair := strings.Cut(attr, "="); pair {
			set.Insert(attrs.Pair(strings.TrimSpace(key), value))
		} else {
			set.Insert(attrs.Single(attr))
		}
	}
	return out, nil
}

func (a *app) validateCmd() *cobra.Command {
	var (
		src        source
		valuesPath string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a values document against a form",
		Long:  "Validate a JSON, YAML or TOML values document. Exits with status 1 when any rule fails.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd.Context(), args[0], src)
			if err != nil {
				return err
			}
			values, err := schemafile.LoadValues(valuesPath, s)
			if err != nil {
				return err
			}
			report := validation.New(s).Validate(values)
			if err := writeReport(cmd.OutOrStdout(), report, asJSON); err != nil {
				return err
			}
			if !report.Valid() {
				return errInvalid
			}
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&valuesPath, "values", "", "Values document (.json, .yaml or .toml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func writeReport(w io.Writer, report validation.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	if report.Valid() {
		_, err := fmt.Fprintln(w, "ok")
		return err
	}
	messages := report.Messages()
	fields := make([]string, 0, len(messages))
	for field := range messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, msg := range messages[field] {
			if _, err := fmt.Fprintf(w, "%s: %s\n", field, msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *app) promptCmd() *cobra.Command {
	var src source
	cmd := &cobra.Command{
		Use:   "prompt <file>",
		Short: "Fill a form interactively and print the values as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd.Context(), args[0], src)
			if err != nil {
				return err
			}
			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.ErrOrStderr())
			}
			values, report, err := prompt.Collect(cmd.Context(), driver, validation.New(s))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(values); err != nil {
				return err
			}
			if !report.Valid() {
				return errInvalid
			}
			return nil
		},
	}
	src.register(cmd)
	return cmd
}
