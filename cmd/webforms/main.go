// Command webforms renders, validates and interactively fills forms declared
// in schema files or OpenAPI documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-webforms/pkg/openapi"
	"github.com/goliatone/go-webforms/pkg/prompt"
	"github.com/goliatone/go-webforms/pkg/schema"
	"github.com/goliatone/go-webforms/pkg/schemafile"
)

var version = "dev"

// errInvalid makes the process exit with status 1 after a failed validation.
var errInvalid = errors.New("webforms: values are not valid")

type app struct {
	envFile string
	environ []string
	stderr  io.Writer
	driver  prompt.Driver

	cfg config
	log zerolog.Logger
}

func main() {
	a := &app{environ: os.Environ(), stderr: os.Stderr}
	if err := fang.Execute(context.Background(), a.rootCmd()); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webforms",
		Short: "Render and validate declarative web forms",
		Long: `webforms compiles form schemas from JSON, YAML or TOML documents (or from
OpenAPI request bodies with --openapi) and renders or validates them.

Environment:
  WEBFORMS_LOG_LEVEL    trace|debug|info|warn|error (default warn)
  WEBFORMS_LOG_FORMAT   console|json (default console)
  WEBFORMS_DEFAULTS     path to a defaults document
  WEBFORMS_CONSTRAINTS  add HTML constraint attributes derived from rules
  WEBFORMS_SANITIZE     sanitize rendered markup`,
		Example: `  webforms forms forms/login.yaml
  webforms render forms/login.yaml --form login --override username:class=wide
  webforms validate forms/login.yaml --form login --values values.json --json
  webforms render api.yaml --openapi --form createUser`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.envFile, a.environ)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = cfg.logger(a.stderr)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Read configuration from this dotenv file when present")

	cmd.AddCommand(a.formsCmd())
	cmd.AddCommand(a.renderCmd())
	cmd.AddCommand(a.validateCmd())
	cmd.AddCommand(a.promptCmd())
	return cmd
}

// source selects a form inside a schema document or an OpenAPI document.
type source struct {
	form    string
	openapi bool
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.form, "form", "", "Form name, or operation id with --openapi (optional when the file declares one form)")
	cmd.Flags().BoolVar(&s.openapi, "openapi", false, "Treat the file as an OpenAPI document")
}

func (a *app) load(ctx context.Context, path string, src source) (*schema.Schema, error) {
	defaults, err := a.cfg.defaults()
	if err != nil {
		return nil, err
	}

	if src.openapi {
		if src.form == "" {
			return nil, errors.New("webforms: --form (operation id) is required with --openapi")
		}
		opts := append([]schema.Option{schema.WithDefaults(defaults)}, a.cfg.compilerOptions()...)
		c, err := openapi.FromFile(ctx, path, src.form,
			openapi.WithLogger(a.log),
			openapi.WithCompilerOptions(opts...),
		)
		if err != nil {
			return nil, err
		}
		return c.Compile()
	}

	set, err := schemafile.LoadFile(path,
		schemafile.WithLogger(a.log),
		schemafile.WithDefaults(defaults),
		schemafile.WithCompilerOptions(a.cfg.compilerOptions()...),
	)
	if err != nil {
		return nil, err
	}
	name := src.form
	if name == "" {
		names := set.Names()
		if len(names) != 1 {
			return nil, fmt.Errorf("webforms: %s declares %d forms, pick one with --form", path, len(names))
		}
		name = names[0]
	}
	s, ok := set.Schema(name)
	if !ok {
		return nil, fmt.Errorf("webforms: form %q not found in %s", name, path)
	}
	a.log.Debug().Str("form", name).Str("source", path).Msg("loaded form")
	return s, nil
}
