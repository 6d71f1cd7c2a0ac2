// SPDX-License-Identifier: MIT

package betweenness

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/dynlath/brandes"
	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/diff"
	"github.com/katalvlaran/dynlath/metric"
	"github.com/katalvlaran/dynlath/spt"
)

// Metric names reported in results and logs.
const (
	NameIncremental = "BCDyn"
	NameRecomputing = "BCRecomp"
)

// Option configures a metric.
type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
}

func newOptions(name string, opts []Option) options {
	o := options{name: name, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger; nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithName overrides the metric name.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// Stats counts how edits were handled, per (edit, root) pair.
type Stats struct {
	MergeOfComponents int
	AdjacentLevel     int
	NonAdjacentLevel  int
	ManyToMany        int
	OneToMany         int
	Unaffected        int
	NodesAdded        int
	NodesRemoved      int
	RootsRecomputed   int
}

// Incremental is the AfterUpdate betweenness metric.
//
// It is not safe for concurrent use; the driver serializes all calls.
type Incremental struct {
	name string
	log  *slog.Logger

	store  core.Reader // bound graph
	reader core.Reader // store, or a ghost view during node removal
	forest *spt.Forest
	engine *brandes.Engine

	// scratch reused across patches
	marks   spt.Marks
	sets    spt.Marks
	fwd     spt.Levels
	bwd     spt.Levels
	moved   []core.NodeID
	queue   []core.NodeID
	buf     []core.NodeID
	hits    []int
	touched []core.NodeID

	// node removal snapshot taken in ApplyBeforeEdit
	pending   core.NodeID
	pendingOK bool
	links     []core.NodeID

	cur   diff.Update
	stats Stats
}

var (
	_ metric.Metric   = (*Incremental)(nil)
	_ metric.Repairer = (*Incremental)(nil)
)

// NewIncremental returns an uninitialized incremental metric.
func NewIncremental(opts ...Option) *Incremental {
	o := newOptions(NameIncremental, opts)

	return &Incremental{
		name:   o.name,
		log:    o.logger.With(slog.String("metric", o.name)),
		engine: brandes.New(),
	}
}

// Name returns the metric name.
func (m *Incremental) Name() string { return m.name }

// Application returns metric.AfterUpdate.
func (m *Incremental) Application() metric.ApplicationType { return metric.AfterUpdate }

// Init binds the metric to g and runs a full recomputation.
func (m *Incremental) Init(g core.Reader) error {
	if g == nil {
		return fmt.Errorf("%s: %w: nil graph", m.name, metric.ErrNotInitialized)
	}
	m.store, m.reader = g, g
	if err := m.Compute(); err != nil {
		return err
	}
	m.log.Debug("initialized", slog.Int("nodes", g.NodeCount()), slog.Int("edges", g.EdgeCount()))

	return nil
}

func (m *Incremental) IsAppliedBeforeBatch() bool { return false }
func (m *Incremental) IsAppliedAfterBatch() bool  { return false }
func (m *Incremental) IsAppliedBeforeEdit() bool  { return true }
func (m *Incremental) IsAppliedAfterEdit() bool   { return true }

// ApplyBeforeBatch rejects whole-batch application: edits must arrive one at a time.
func (m *Incremental) ApplyBeforeBatch(b *diff.Batch) error {
	return fmt.Errorf("%s: %w: batch-level hook on an incremental metric (%s)", m.name, metric.ErrUnsupportedEdit, b)
}

// ApplyAfterBatch rejects whole-batch application: edits must arrive one at a time.
func (m *Incremental) ApplyAfterBatch(b *diff.Batch) error {
	return fmt.Errorf("%s: %w: batch-level hook on an incremental metric (%s)", m.name, metric.ErrUnsupportedEdit, b)
}

// ApplyBeforeEdit snapshots the neighbors of a node about to be removed.
// Other edits need no preparation.
func (m *Incremental) ApplyBeforeEdit(u diff.Update) error {
	if m.forest == nil {
		return fmt.Errorf("%s: %w", m.name, metric.ErrNotInitialized)
	}
	m.pendingOK = false
	if u.Kind() != diff.NodeRemoval || !m.store.HasNode(u.Node()) {
		return nil
	}
	m.pending, m.pendingOK = u.Node(), true
	m.links = m.links[:0]
	for n := range m.store.Neighbors(u.Node()) {
		m.links = append(m.links, n)
	}

	return nil
}

// ApplyAfterEdit patches the forest for an edit the store has just applied.
func (m *Incremental) ApplyAfterEdit(u diff.Update) error {
	if m.forest == nil {
		return fmt.Errorf("%s: %w", m.name, metric.ErrNotInitialized)
	}
	m.cur = u

	return u.Accept(handler{m})
}

// Compute discards the forest and recomputes it from scratch.
func (m *Incremental) Compute() error {
	if m.store == nil {
		return fmt.Errorf("%s: %w", m.name, metric.ErrNotInitialized)
	}
	f := spt.NewForest(core.Bound(m.store))
	if err := m.engine.All(m.store, f); err != nil {
		return fmt.Errorf("%s: %w", m.name, err)
	}
	m.forest = f
	m.stats.RootsRecomputed += f.RootCount()
	m.grow()

	return nil
}

// Repair recomputes the given roots. When the forest no longer tracks the
// same nodes as the graph, every root is recomputed instead.
func (m *Incremental) Repair(roots ...core.NodeID) error {
	if m.forest == nil {
		return fmt.Errorf("%s: %w", m.name, metric.ErrNotInitialized)
	}
	m.reader = m.store
	if !m.tracksGraph() {
		m.log.Warn("node set drifted, recomputing every root")
		return m.Compute()
	}
	for _, r := range roots {
		if !m.forest.Live(r) {
			continue
		}
		if err := m.engine.Root(m.store, m.forest, r); err != nil {
			return fmt.Errorf("%s: repair root %d: %w", m.name, r, err)
		}
		m.stats.RootsRecomputed++
	}
	m.log.Info("repaired roots", slog.Int("count", len(roots)))

	return nil
}

// Cleanup drops the per-batch scratch contents, keeping capacity.
func (m *Incremental) Cleanup() {
	m.fwd.Reset()
	m.bwd.Reset()
	m.pendingOK = false
	m.links = m.links[:0]
	m.reader = m.store
	m.log.Debug("cleanup", slog.Any("stats", m.stats))
}

// Values returns the centrality of every live node.
func (m *Incremental) Values() map[core.NodeID]float64 {
	if m.forest == nil {
		return nil
	}

	return m.forest.Scores()
}

// Forest exposes the maintained forest for verification. It must be treated
// as read-only.
func (m *Incremental) Forest() *spt.Forest { return m.forest }

// Stats returns the handling counters accumulated since construction.
func (m *Incremental) Stats() Stats { return m.stats }

// tracksGraph reports whether the live roots are exactly the graph's nodes.
func (m *Incremental) tracksGraph() bool {
	if m.forest.RootCount() != m.store.NodeCount() {
		return false
	}
	for n := range m.store.Nodes() {
		if !m.forest.Live(n) {
			return false
		}
	}

	return true
}

// grow sizes the scratch arenas to the forest bound.
func (m *Incremental) grow() {
	b := m.forest.Bound()
	m.marks.Grow(b)
	m.sets.Grow(b)
	for len(m.hits) < b {
		m.hits = append(m.hits, 0)
	}
}

// allRoots lists every live root, for errors that invalidate the whole forest.
func (m *Incremental) allRoots() []core.NodeID {
	out := make([]core.NodeID, 0, m.forest.RootCount())
	for r := range m.forest.Roots() {
		out = append(out, r)
	}

	return out
}

// inconsistent builds the error for one root of the current edit.
func (m *Incremental) inconsistent(root core.NodeID, format string, args ...any) *metric.InconsistentStateError {
	return metric.NewInconsistentState(m.name, m.cur, root, format, args...)
}
