// SPDX-License-Identifier: MIT

package betweenness

import (
	"log/slog"

	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/metric"
	"github.com/katalvlaran/dynlath/spt"
)

// addNode gives a new isolated node its own tree. No other tree changes:
// the node is unreachable from every other root.
func (m *Incremental) addNode(id core.NodeID) error {
	if m.forest.Live(id) {
		return m.wholeForest("node %d already has a tree", id)
	}
	m.forest.Grow(int(id) + 1)
	m.forest.AddRoot(id)
	m.grow()
	m.stats.NodesAdded++

	return nil
}

// removeNode replays the removal of id as one edge removal per former link,
// over a view that still holds the links not yet cut, then discards the
// node's tree and row.
func (m *Incremental) removeNode(id core.NodeID) error {
	switch {
	case !m.forest.Live(id):
		return m.untracked(id)
	case !m.pendingOK || m.pending != id:
		return m.wholeForest("no neighbor snapshot for node %d", id)
	}
	m.pendingOK = false

	ghost := newGhostView(m.store, id, m.links)
	m.reader = ghost
	defer func() { m.reader = m.store }()

	var merged *metric.InconsistentStateError
	for _, n := range m.links {
		ghost.cut(n)
		e, err := m.eachRoot(id, func(t *spt.Tree) error {
			return m.cutEdge(t, id, n)
		})
		if err != nil {
			return err
		}
		merged = merge(merged, e)
	}

	m.forest.DropNode(id)
	m.stats.NodesRemoved++
	m.log.Debug("node removed", slog.Int("node", int(id)), slog.Int("links", len(m.links)))

	return m.report(merged)
}
