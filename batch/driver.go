// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/diff"
	"github.com/katalvlaran/dynlath/metric"
	"github.com/katalvlaran/dynlath/spt"
)

// Sentinel errors for the driver.
var (
	ErrNilStore        = errors.New("batch: nil store")
	ErrNoMetrics       = errors.New("batch: no metrics")
	ErrDuplicateMetric = errors.New("batch: duplicate metric name")
	ErrNotInitialized  = errors.New("batch: driver not initialized")
	ErrOption          = errors.New("batch: invalid option")
	ErrVerification    = errors.New("batch: verification failed")
)

// forestMetric is implemented by metrics that expose their shortest-path
// forest for verification.
type forestMetric interface {
	Forest() *spt.Forest
}

// Driver owns a store and the metrics that follow it.
type Driver struct {
	store   core.Store
	metrics []metric.Metric
	opts    options
	col     *collector
	ready   bool
}

// New returns a driver over store. Metric names must be unique.
func New(store core.Store, metrics []metric.Metric, opts ...Option) (*Driver, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if len(metrics) == 0 {
		return nil, ErrNoMetrics
	}
	seen := make(map[string]struct{}, len(metrics))
	for _, m := range metrics {
		if _, dup := seen[m.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMetric, m.Name())
		}
		seen[m.Name()] = struct{}{}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Driver{
		store:   store,
		metrics: metrics,
		opts:    o,
		col:     newCollector(o.reg, o.namespace),
	}, nil
}

// Store returns the driven store.
func (d *Driver) Store() core.Store { return d.store }

// Metrics returns the driven metrics in registration order.
func (d *Driver) Metrics() []metric.Metric { return d.metrics }

// Init initializes every metric against the current store.
func (d *Driver) Init(ctx context.Context) error {
	_, span := d.opts.tracer.Start(ctx, "batch.Init", trace.WithAttributes(
		attribute.Int("graph.nodes", d.store.NodeCount()),
		attribute.Int("graph.edges", d.store.EdgeCount()),
	))
	defer span.End()

	for _, m := range d.metrics {
		start := time.Now()
		if err := m.Init(d.store); err != nil {
			err = fmt.Errorf("batch: init %s: %w", m.Name(), err)
			fail(span, err)
			return err
		}
		d.opts.log.Info("metric initialized",
			slog.String("metric", m.Name()),
			slog.String("application", m.Application().String()),
			slog.Duration("elapsed", time.Since(start)))
	}
	d.col.nodes.Set(float64(d.store.NodeCount()))
	d.col.edges.Set(float64(d.store.EdgeCount()))
	d.ready = true

	return nil
}

// Apply runs b against the store and every metric. On error no Result is
// returned; store mutations already performed are kept.
func (d *Driver) Apply(ctx context.Context, b *diff.Batch) (*Result, error) {
	if !d.ready {
		return nil, ErrNotInitialized
	}
	if b == nil {
		return nil, fmt.Errorf("%w: nil batch", diff.ErrInvalidUpdate)
	}

	start := time.Now()
	res := newResult(b)
	ctx, span := d.opts.tracer.Start(ctx, "batch.Apply", trace.WithAttributes(
		attribute.String("batch.run_id", res.RunID.String()),
		attribute.Int64("batch.from", b.From()),
		attribute.Int64("batch.to", b.To()),
		attribute.Int("batch.updates", b.Len()),
	))
	defer span.End()

	r := &run{
		d:   d,
		res: res,
		log: d.opts.log.With(slog.String("run", res.RunID.String())),
	}
	if err := r.apply(ctx, b); err != nil {
		fail(span, err)
		r.log.Error("batch failed", slog.String("batch", b.String()), slog.Any("error", err))
		return nil, err
	}

	res.Timings.Total = time.Since(start)
	d.col.observe(res, d.store.NodeCount(), d.store.EdgeCount())
	span.SetAttributes(
		attribute.Int("batch.applied", res.Applied.Total()),
		attribute.Int("batch.skipped", res.Skipped.Total()),
	)
	r.log.Info("batch applied",
		slog.Int64("from", res.From),
		slog.Int64("to", res.To),
		slog.Int("applied", res.Applied.Total()),
		slog.Int("skipped", res.Skipped.Total()),
		slog.Duration("elapsed", res.Timings.Total))

	return res, nil
}

// run is the state of one Apply call.
type run struct {
	d   *Driver
	res *Result
	log *slog.Logger
}

func (r *run) apply(ctx context.Context, b *diff.Batch) error {
	for _, m := range r.d.metrics {
		if !m.IsAppliedBeforeBatch() {
			continue
		}
		if err := r.hook(m, func() error { return m.ApplyBeforeBatch(b) }); err != nil {
			return err
		}
	}
	if err := r.edits(ctx, b); err != nil {
		return err
	}
	for _, m := range r.d.metrics {
		if !m.IsAppliedAfterBatch() {
			continue
		}
		if err := r.hook(m, func() error { return m.ApplyAfterBatch(b) }); err != nil {
			return err
		}
	}
	if err := r.finalize(ctx); err != nil {
		return err
	}
	if r.d.opts.verify {
		if err := r.verify(ctx); err != nil {
			return err
		}
	}
	for _, m := range r.d.metrics {
		r.res.Values[m.Name()] = m.Values()
	}

	return nil
}

func (r *run) edits(ctx context.Context, b *diff.Batch) error {
	_, span := r.d.opts.tracer.Start(ctx, "batch.edits")
	defer span.End()
	start := time.Now()
	defer func() { r.res.Timings.Edits = time.Since(start) }()

	for u := range b.Ordered() {
		if err := r.edit(span, u); err != nil {
			fail(span, err)
			return err
		}
	}

	return nil
}

// edit applies one update between the edit hooks. A store rejection skips
// the update and its after-edit hooks.
func (r *run) edit(span trace.Span, u diff.Update) error {
	k := u.Kind()
	r.res.Requested[k]++
	for _, m := range r.d.metrics {
		if !m.IsAppliedBeforeEdit() {
			continue
		}
		if err := r.hook(m, func() error { return m.ApplyBeforeEdit(u) }); err != nil {
			return err
		}
	}

	if err := u.Apply(r.d.store); err != nil {
		if !errors.Is(err, core.ErrStructuralConflict) {
			return fmt.Errorf("batch: %s: %w", u, err)
		}
		r.res.Skipped[k]++
		r.d.col.edit(k, outcomeSkipped)
		span.AddEvent("update skipped", trace.WithAttributes(
			attribute.String("update", u.String()),
			attribute.String("reason", err.Error()),
		))
		r.log.Debug("update skipped", slog.String("update", u.String()), slog.Any("error", err))
		return nil
	}
	r.res.Applied[k]++
	r.d.col.edit(k, outcomeApplied)

	for _, m := range r.d.metrics {
		if !m.IsAppliedAfterEdit() {
			continue
		}
		if err := r.hook(m, func() error { return m.ApplyAfterEdit(u) }); err != nil {
			return err
		}
	}

	return nil
}

// hook runs fn on behalf of m, charges the time to m and resolves its error.
func (r *run) hook(m metric.Metric, fn func() error) error {
	start := time.Now()
	defer func() { r.res.Timings.Metrics[m.Name()] += time.Since(start) }()

	return r.handle(m, fn())
}

// handle maps a hook error to the driver's reaction. Only a nil return lets
// the batch continue.
func (r *run) handle(m metric.Metric, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, metric.ErrUnsupportedEdit), errors.Is(err, spt.ErrPathCountOverflow):
		return fmt.Errorf("batch: %s: %w", m.Name(), err)
	case errors.Is(err, metric.ErrInconsistentState):
		if r.d.opts.policy == PolicyAbort {
			return fmt.Errorf("batch: %s: %w", m.Name(), err)
		}
		var ise *metric.InconsistentStateError
		var roots []core.NodeID
		if errors.As(err, &ise) {
			roots = ise.Roots
		}
		r.log.Warn("repairing metric", slog.String("metric", m.Name()), slog.Any("error", err))
		return r.repair(m, roots)
	default:
		r.log.Error("metric hook failed", slog.String("metric", m.Name()), slog.Any("error", err))
		return nil
	}
}

// repair rebuilds the given roots of m, or all of m when it cannot repair
// selectively or no roots are known.
func (r *run) repair(m metric.Metric, roots []core.NodeID) error {
	rep, ok := m.(metric.Repairer)
	if ok && len(roots) > 0 {
		if err := rep.Repair(roots...); err != nil {
			return fmt.Errorf("batch: repair %s: %w", m.Name(), err)
		}
		r.res.Repairs[m.Name()] += len(roots)
		r.d.col.repaired(m.Name(), len(roots))
		return nil
	}
	if err := m.Compute(); err != nil {
		return fmt.Errorf("batch: recompute %s: %w", m.Name(), err)
	}
	n := r.d.store.NodeCount()
	r.res.Repairs[m.Name()] += n
	r.d.col.repaired(m.Name(), n)

	return nil
}

// finalize recomputes Recomputation metrics and cleans up AfterUpdate ones.
func (r *run) finalize(ctx context.Context) error {
	_, span := r.d.opts.tracer.Start(ctx, "batch.finalize")
	defer span.End()

	for _, m := range r.d.metrics {
		start := time.Now()
		switch m.Application() {
		case metric.Recomputation:
			if err := m.Compute(); err != nil {
				err = fmt.Errorf("batch: compute %s: %w", m.Name(), err)
				fail(span, err)
				return err
			}
		default:
			m.Cleanup()
		}
		r.res.Timings.Metrics[m.Name()] += time.Since(start)
	}

	return nil
}

// verify checks every forest-backed metric against the store. Under
// PolicyRepair a failing metric is repaired once and checked again.
func (r *run) verify(ctx context.Context) error {
	_, span := r.d.opts.tracer.Start(ctx, "batch.verify")
	defer span.End()

	for _, m := range r.d.metrics {
		fm, ok := m.(forestMetric)
		if !ok {
			continue
		}
		err := spt.Verify(r.d.store, fm.Forest(), r.d.opts.tol)
		if err != nil && r.d.opts.policy == PolicyRepair {
			var v *spt.Violation
			var roots []core.NodeID
			if errors.As(err, &v) && v.Root != spt.NoRoot {
				roots = []core.NodeID{v.Root}
			}
			r.log.Warn("verification failed, repairing", slog.String("metric", m.Name()), slog.Any("error", err))
			if rerr := r.repair(m, roots); rerr != nil {
				fail(span, rerr)
				return rerr
			}
			err = spt.Verify(r.d.store, fm.Forest(), r.d.opts.tol)
		}
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", ErrVerification, m.Name(), err)
			fail(span, err)
			return err
		}
	}

	return nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
