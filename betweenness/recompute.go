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

// Recomputing is the Recomputation betweenness metric: it ignores edits and
// reruns Brandes' algorithm over the whole graph in Compute.
type Recomputing struct {
	name   string
	log    *slog.Logger
	store  core.Reader
	engine *brandes.Engine
	forest *spt.Forest
}

var _ metric.Metric = (*Recomputing)(nil)

// NewRecomputing returns an uninitialized recomputing metric.
func NewRecomputing(opts ...Option) *Recomputing {
	o := newOptions(NameRecomputing, opts)

	return &Recomputing{
		name:   o.name,
		log:    o.logger.With(slog.String("metric", o.name)),
		engine: brandes.New(),
	}
}

func (m *Recomputing) Name() string                        { return m.name }
func (m *Recomputing) Application() metric.ApplicationType { return metric.Recomputation }

// Init binds the metric to g and computes the initial values.
func (m *Recomputing) Init(g core.Reader) error {
	if g == nil {
		return fmt.Errorf("%s: %w: nil graph", m.name, metric.ErrNotInitialized)
	}
	m.store = g

	return m.Compute()
}

func (m *Recomputing) IsAppliedBeforeBatch() bool { return false }
func (m *Recomputing) IsAppliedAfterBatch() bool  { return false }
func (m *Recomputing) IsAppliedBeforeEdit() bool  { return false }
func (m *Recomputing) IsAppliedAfterEdit() bool   { return false }

func (m *Recomputing) ApplyBeforeBatch(*diff.Batch) error { return nil }
func (m *Recomputing) ApplyAfterBatch(*diff.Batch) error  { return nil }
func (m *Recomputing) ApplyBeforeEdit(diff.Update) error  { return nil }
func (m *Recomputing) ApplyAfterEdit(diff.Update) error   { return nil }

// Compute rebuilds the forest from the bound graph.
func (m *Recomputing) Compute() error {
	if m.store == nil {
		return fmt.Errorf("%s: %w", m.name, metric.ErrNotInitialized)
	}
	f := spt.NewForest(core.Bound(m.store))
	if err := m.engine.All(m.store, f); err != nil {
		return fmt.Errorf("%s: %w", m.name, err)
	}
	m.forest = f
	m.log.Debug("recomputed", slog.Int("roots", f.RootCount()))

	return nil
}

// Cleanup is a no-op: the metric keeps no per-batch scratch.
func (m *Recomputing) Cleanup() {}

// Values returns the centrality of every node as of the last Compute.
func (m *Recomputing) Values() map[core.NodeID]float64 {
	if m.forest == nil {
		return nil
	}

	return m.forest.Scores()
}

// Forest exposes the forest of the last Compute. It must be treated as
// read-only.
func (m *Recomputing) Forest() *spt.Forest { return m.forest }
