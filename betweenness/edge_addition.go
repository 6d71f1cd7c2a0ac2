// SPDX-License-Identifier: MIT

package betweenness

import (
	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/spt"
)

// addEdge patches every tree after e was inserted.
func (m *Incremental) addEdge(e core.Edge) error {
	if e.U == e.V {
		return m.selfLoop(e)
	}
	if !m.forest.Live(e.U) || !m.forest.Live(e.V) {
		return m.untracked(e.U, e.V)
	}

	merged, err := m.eachRoot(spt.NoRoot, func(t *spt.Tree) error {
		return m.insertEdge(t, e.U, e.V)
	})
	if err != nil {
		return err
	}

	return m.report(merged)
}

// insertEdge patches t for a new edge u-v.
//
// With d(u) <= d(v) after ordering the endpoints:
//
//	d(u) = Inf or d(u) = d(v)  no shortest path can use the edge
//	d(v) = d(u)+1              u joins the parents of v; distances hold
//	d(v) = Inf                 v's component merges into the root's
//	d(v) > d(u)+1              v and everything it reaches may come closer
func (m *Incremental) insertEdge(t *spt.Tree, u, v core.NodeID) error {
	if t.Dist(u) > t.Dist(v) {
		u, v = v, u
	}
	du, dv := t.Dist(u), t.Dist(v)
	if du == spt.Infinity || du == dv {
		m.stats.Unaffected++
		return nil
	}

	m.begin()
	switch {
	case dv == du+1:
		m.stats.AdjacentLevel++
		return m.propagate(t, v)
	case dv == spt.Infinity:
		m.stats.MergeOfComponents++
	default:
		m.stats.NonAdjacentLevel++
	}
	m.lower(t, v, du+1)

	return m.propagate(t)
}

// lower sets d(v) = d and relaxes outward breadth first. Every node whose
// distance drops is relocated.
func (m *Incremental) lower(t *spt.Tree, v core.NodeID, d int) {
	t.SetDist(v, d)
	m.relocate(v)
	m.queue = append(m.queue[:0], v)
	for head := 0; head < len(m.queue); head++ {
		x := m.queue[head]
		next := t.Dist(x) + 1
		for y := range m.reader.Neighbors(x) {
			if t.Dist(y) > next {
				t.SetDist(y, next)
				m.relocate(y)
				m.queue = append(m.queue, y)
			}
		}
	}
}
