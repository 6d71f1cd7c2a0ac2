// SPDX-License-Identifier: MIT

package betweenness

import (
	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/spt"
)

// removeEdge patches every tree after e was deleted.
func (m *Incremental) removeEdge(e core.Edge) error {
	if e.U == e.V {
		return m.selfLoop(e)
	}
	if !m.forest.Live(e.U) || !m.forest.Live(e.V) {
		return m.untracked(e.U, e.V)
	}

	merged, err := m.eachRoot(spt.NoRoot, func(t *spt.Tree) error {
		return m.cutEdge(t, e.U, e.V)
	})
	if err != nil {
		return err
	}

	return m.report(merged)
}

// cutEdge patches t for the removed edge u-v. The reader no longer holds
// the edge; t still describes the graph with it.
//
// With d(u) <= d(v) after ordering the endpoints:
//
//	d(u) = Inf or d(u) = d(v)  no shortest path used the edge
//	|parents(v)| > 1           v keeps its distance through another parent
//	|parents(v)| = 1           v and every node whose shortest paths all ran
//	                           through v lose their distance
func (m *Incremental) cutEdge(t *spt.Tree, u, v core.NodeID) error {
	if t.Dist(u) > t.Dist(v) {
		u, v = v, u
	}
	du, dv := t.Dist(u), t.Dist(v)
	switch {
	case du == spt.Infinity || du == dv:
		m.stats.Unaffected++
		return nil
	case dv == spt.Infinity:
		return m.inconsistent(t.Root(), "node %d reachable at %d but neighbor %d unreachable", u, du, v)
	case dv != du+1:
		return m.inconsistent(t.Root(), "neighbors %d and %d at distances %d and %d", u, v, du, dv)
	case !t.HasParent(v, u):
		return m.inconsistent(t.Root(), "node %d missing from parents of %d", u, v)
	}

	m.begin()
	if len(t.Parents(v)) > 1 {
		m.stats.ManyToMany++
		return m.propagate(t, v)
	}

	m.stats.OneToMany++
	m.collectOrphans(t, v)
	m.relevel(t)

	return m.propagate(t)
}

// collectOrphans relocates v and every node all of whose parents are
// relocated, walking the old tree in ascending level order.
func (m *Incremental) collectOrphans(t *spt.Tree, v core.NodeID) {
	m.touched = m.touched[:0]
	m.relocate(v)
	m.fwd.Push(t.Dist(v), v)
	for {
		x, d, ok := m.fwd.PopMin()
		if !ok {
			break
		}
		for y := range m.reader.Neighbors(x) {
			if t.Dist(y) != d+1 || !t.HasParent(y, x) {
				continue
			}
			if m.hits[y] == 0 {
				m.touched = append(m.touched, y)
			}
			m.hits[y]++
			if m.hits[y] == len(t.Parents(y)) {
				m.relocate(y)
				m.fwd.Push(d+1, y)
			}
		}
	}
	for _, y := range m.touched {
		m.hits[y] = 0
	}
}

// relevel assigns final distances to the relocated nodes. Each starts from
// its best neighbor outside the set, then a unit-weight bucketed search
// runs inside the set. Nodes it cannot reach stay unreachable.
func (m *Incremental) relevel(t *spt.Tree) {
	for _, s := range m.moved {
		t.SetDist(s, spt.Infinity)
	}
	for _, s := range m.moved {
		best := spt.Infinity
		for y := range m.reader.Neighbors(s) {
			if m.marks.Has(y, spt.Relocated) || !t.Reachable(y) {
				continue
			}
			best = min(best, t.Dist(y)+1)
		}
		if best != spt.Infinity {
			t.SetDist(s, best)
			m.fwd.Push(best, s)
		}
	}

	m.sets.Next()
	for {
		x, d, ok := m.fwd.PopMin()
		if !ok {
			return
		}
		if d != t.Dist(x) || !m.sets.Set(x, spt.ForwardVisited) {
			continue
		}
		for y := range m.reader.Neighbors(x) {
			if m.marks.Has(y, spt.Relocated) && d+1 < t.Dist(y) {
				t.SetDist(y, d+1)
				m.fwd.Push(d+1, y)
			}
		}
	}
}
