// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Policy selects the reaction to metric.ErrInconsistentState.
type Policy uint8

const (
	// PolicyRepair recomputes the reported roots and continues.
	PolicyRepair Policy = iota

	// PolicyAbort fails the batch.
	PolicyAbort
)

func (p Policy) String() string {
	switch p {
	case PolicyRepair:
		return "repair"
	case PolicyAbort:
		return "abort"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "repair":
		return PolicyRepair, nil
	case "abort":
		return PolicyAbort, nil
	default:
		return 0, fmt.Errorf("%w: unknown policy %q", ErrOption, s)
	}
}

// Option configures a Driver.
type Option func(*options)

type options struct {
	log       *slog.Logger
	tracer    trace.Tracer
	reg       prometheus.Registerer
	namespace string
	policy    Policy
	verify    bool
	tol       float64
}

// DefaultTolerance is the relative tolerance of post-batch verification.
const DefaultTolerance = 1e-9

const tracerName = "github.com/katalvlaran/dynlath/batch"

func defaultOptions() options {
	return options{
		log:       slog.New(slog.DiscardHandler),
		tracer:    otel.Tracer(tracerName),
		namespace: "dynlath",
		policy:    PolicyRepair,
		tol:       DefaultTolerance,
	}
}

// WithLogger sets the driver logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithTracer sets the tracer. The default comes from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithRegisterer registers the driver's collectors with r. Without it the
// collectors are kept unregistered.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.reg = r }
}

// WithNamespace sets the prometheus namespace of the collectors.
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithPolicy sets the reaction to inconsistent metric state.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithVerify enables post-batch verification of every metric that exposes
// its shortest-path forest, with relative tolerance tol (<= 0 means
// DefaultTolerance).
func WithVerify(tol float64) Option {
	return func(o *options) {
		o.verify = true
		if tol > 0 {
			o.tol = tol
		} else {
			o.tol = DefaultTolerance
		}
	}
}
