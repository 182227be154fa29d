// Package config loads the .elsense.yaml settings file.
package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/elsense/pkg/tokenizer"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no path is given
const DefaultFileName = ".elsense.yaml"

// 📦 Config file structure
type Config struct {
	// 🎯 Tokenizer settings
	ExpressionPrefixes []string `yaml:"expression_prefixes,omitempty"` // Openers of an embedded expression, e.g. "#{"
	SkipWhitespace     bool     `yaml:"skip_whitespace,omitempty"`     // Drop whitespace tokens from output

	// 📝 Logging
	LogLevel string `yaml:"log_level,omitempty"` // zerolog level name
	Color    *bool  `yaml:"color,omitempty"`     // Colorize console logs, defaults to true
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// 📝 Load config from file. A missing file at the default location is not an error.
func Load(fs afero.Fs, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML with strict mode, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Strict mode
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing config file: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) setDefaults() {
	if len(cfg.ExpressionPrefixes) == 0 {
		cfg.ExpressionPrefixes = append([]string(nil), tokenizer.DefaultPrefixes...)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = zerolog.InfoLevel.String()
	}
	if cfg.Color == nil {
		on := true
		cfg.Color = &on
	}
}

// 🔍 Validate config
func (cfg *Config) Validate() error {
	var errs error

	for i, p := range cfg.ExpressionPrefixes {
		if strings.TrimSpace(p) == "" {
			errs = multierr.Append(errs, errors.Errorf("expression prefix %d: must not be blank", i))
		}
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		errs = multierr.Append(errs, errors.Errorf("log level %q: %w", cfg.LogLevel, err))
	}

	return errs
}

// Level returns the parsed log level
func (cfg *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Descriptions returns the recognizer set for the configured prefixes
func (cfg *Config) Descriptions() []tokenizer.TokenDescription {
	return tokenizer.DefaultDescriptions(cfg.ExpressionPrefixes...)
}

// TokenizerOptions bundles the tokenizer settings
func (cfg *Config) TokenizerOptions() tokenizer.Options {
	return tokenizer.Options{
		Descriptions:   cfg.Descriptions(),
		SkipWhitespace: cfg.SkipWhitespace,
	}
}

type contextKey struct{}

// WithContext stores cfg in ctx
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the config stored in ctx, or the defaults
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok && cfg != nil {
		return cfg
	}
	return Default()
}
