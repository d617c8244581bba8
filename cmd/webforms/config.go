package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-webforms/pkg/schema"
	"github.com/goliatone/go-webforms/pkg/schemafile"
)

// config is read from the environment, optionally seeded from a .env file.
type config struct {
	LogLevel    string `env:"WEBFORMS_LOG_LEVEL" envDefault:"warn"`
	LogFormat   string `env:"WEBFORMS_LOG_FORMAT" envDefault:"console"`
	Defaults    string `env:"WEBFORMS_DEFAULTS"`
	Constraints bool   `env:"WEBFORMS_CONSTRAINTS" envDefault:"false"`
	Sanitize    bool   `env:"WEBFORMS_SANITIZE" envDefault:"false"`
}

// loadConfig merges envFile (when it exists) with environ, in os.Environ
// form. Entries in environ win over the file.
func loadConfig(envFile string, environ []string) (config, error) {
	vars := make(map[string]string)
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config{}, fmt.Errorf("webforms: load %s: %w", envFile, err)
		}
		maps.Copy(vars, fileVars)
	}
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			vars[key] = value
		}
	}

	var cfg config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return config{}, fmt.Errorf("webforms: parse environment: %w", err)
	}
	return cfg, nil
}

func (c config) logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	if c.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func (c config) defaults() (schema.Defaults, error) {
	if c.Defaults == "" {
		return nil, nil
	}
	return schemafile.LoadDefaults(c.Defaults)
}

func (c config) compilerOptions() []schema.Option {
	if c.Constraints {
		return []schema.Option{schema.WithConstraintAttributes()}
	}
	return nil
}
