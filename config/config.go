// SPDX-License-Identifier: MIT

// Package config loads driver settings from layered sources with koanf.
//
// Precedence, lowest first:
//
//	built-in defaults
//	TOML file (optional)
//	environment, DYNLATH_ prefix; "_" separates nesting (DYNLATH_LOG_LEVEL -> log.level)
//	command-line flags registered by Flags
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/dynlath/batch"
	"github.com/katalvlaran/dynlath/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DYNLATH_"

// ErrInvalid reports a configuration that fails Validate.
var ErrInvalid = errors.New("config: invalid")

// Config is the resolved configuration.
type Config struct {
	Policy    string  `koanf:"policy"`
	Verify    bool    `koanf:"verify"`
	Tolerance float64 `koanf:"tolerance"`
	Log       Log     `koanf:"log"`
	Metrics   Metrics `koanf:"metrics"`
}

// Log configures the logger.
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Metrics configures the prometheus collectors.
type Metrics struct {
	Namespace string `koanf:"namespace"`
}

func defaults() map[string]any {
	return map[string]any{
		"policy":            batch.PolicyRepair.String(),
		"verify":            false,
		"tolerance":         batch.DefaultTolerance,
		"log.level":         "info",
		"log.format":        string(logging.FormatCompact),
		"metrics.namespace": "dynlath",
	}
}

// Flags returns a flag set carrying every configuration key with its
// default. Only flags set on the command line override other sources.
func Flags() *pflag.FlagSet {
	d := defaults()
	fs := pflag.NewFlagSet("dynlath", pflag.ContinueOnError)
	fs.String("policy", d["policy"].(string), "reaction to inconsistent metric state: repair|abort")
	fs.Bool("verify", false, "verify every forest after each batch")
	fs.Float64("tolerance", batch.DefaultTolerance, "relative tolerance for verification")
	fs.String("log.level", d["log.level"].(string), "log level: debug|info|warn|error")
	fs.String("log.format", d["log.format"].(string), "log format: compact|json")
	fs.String("metrics.namespace", d["metrics.namespace"].(string), "prometheus namespace")

	return fs
}

// Load resolves the configuration. An empty path skips the file layer; a nil
// fs skips the flag layer.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}
	if fs != nil {
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return nil, fmt.Errorf("config: flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	var errs []error
	if _, err := batch.ParsePolicy(c.Policy); err != nil {
		errs = append(errs, err)
	}
	if c.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("tolerance %g is negative", c.Tolerance))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch logging.Format(c.Log.Format) {
	case logging.FormatCompact, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", logging.ErrUnknownFormat, c.Log.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// Logger builds the logger described by c, writing to out.
func (c *Config) Logger(out io.Writer) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  c.Log.Level,
		Format: logging.Format(c.Log.Format),
		Out:    out,
	})
}

// DriverOptions translates c into batch driver options. log is passed
// through with WithLogger.
func (c *Config) DriverOptions(log *slog.Logger) ([]batch.Option, error) {
	p, err := batch.ParsePolicy(c.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	opts := []batch.Option{
		batch.WithLogger(log),
		batch.WithPolicy(p),
		batch.WithNamespace(c.Metrics.Namespace),
	}
	if c.Verify {
		opts = append(opts, batch.WithVerify(c.Tolerance))
	}

	return opts, nil
}
