// SPDX-License-Identifier: MIT

// Package logging builds the *slog.Logger handed to the driver and the
// metrics: a compact console format for humans or JSON for collectors.
//
// Nothing in this module logs through a global logger; components take a
// logger option and default to discarding.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrUnknownLevel and ErrUnknownFormat report unparsable option strings.
var (
	ErrUnknownLevel  = errors.New("logging: unknown level")
	ErrUnknownFormat = errors.New("logging: unknown format")
)

// Format selects the handler.
type Format string

const (
	FormatCompact Format = "compact"
	FormatJSON    Format = "json"
)

// Options configures New.
type Options struct {
	Level  string    // debug | info | warn | error; empty means info
	Format Format    // compact | json; empty means compact
	Out    io.Writer // nil means os.Stderr
}

// New returns a logger for opts.
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: level}

	switch opts.Format {
	case "", FormatCompact:
		return slog.New(NewCompactHandler(out, hopts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(out, hopts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger { return slog.New(slog.DiscardHandler) }
