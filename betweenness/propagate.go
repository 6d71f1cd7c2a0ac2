// SPDX-License-Identifier: MIT

package betweenness

import (
	"fmt"

	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/spt"
)

// begin opens a new patch epoch. Every mark from earlier patches reads as
// Untouched afterwards.
func (m *Incremental) begin() {
	m.marks.Next()
	m.fwd.Reset()
	m.bwd.Reset()
	m.moved = m.moved[:0]
}

// relocate records that the distance of n changed in the current patch.
func (m *Incremental) relocate(n core.NodeID) {
	if m.marks.Set(n, spt.Relocated) {
		m.moved = append(m.moved, n)
	}
}

func (m *Incremental) pushForward(t *spt.Tree, n core.NodeID) {
	if n == t.Root() || !t.Reachable(n) {
		return
	}
	if m.marks.Set(n, spt.ForwardVisited) {
		m.fwd.Push(t.Dist(n), n)
	}
}

func (m *Incremental) pushBackward(t *spt.Tree, n core.NodeID) {
	if !t.Reachable(n) {
		return
	}
	if m.marks.Set(n, spt.BackwardVisited) {
		m.bwd.Push(t.Dist(n), n)
	}
}

// propagate repairs parents, path counts, dependencies and scores of t once
// every distance is final. Relocated nodes, their neighbors and seeds start
// the forward pass.
func (m *Incremental) propagate(t *spt.Tree, seeds ...core.NodeID) error {
	for _, n := range seeds {
		m.pushForward(t, n)
	}
	for _, n := range m.moved {
		if t.Reachable(n) {
			m.pushForward(t, n)
		} else {
			m.detach(t, n)
		}
		for w := range m.reader.Neighbors(n) {
			m.pushForward(t, w)
		}
	}
	if err := m.forward(t); err != nil {
		return err
	}
	m.backward(t)

	return nil
}

// detach drops the state of a node that lost every path from the root.
func (m *Incremental) detach(t *spt.Tree, n core.NodeID) {
	for _, p := range t.Parents(n) {
		m.pushBackward(t, p)
	}
	t.ClearParents(n)
	t.SetSigma(n, 0)
	if d := t.Delta(n); d != 0 {
		m.forest.AddScore(n, -d)
		t.SetDelta(n, 0)
	}
}

// forward recomputes parents and path counts in ascending level order.
// A node whose distance, path count or parent set changed queues its
// children for the same treatment and itself, old parents and new parents
// for the dependency pass. A path count beyond int64 stops the pass with
// spt.ErrPathCountOverflow and leaves t unusable.
func (m *Incremental) forward(t *spt.Tree) error {
	for {
		x, d, ok := m.fwd.PopMin()
		if !ok {
			return nil
		}

		m.buf = m.buf[:0]
		var sigma int64
		fits := true
		for y := range m.reader.Neighbors(x) {
			if t.Dist(y) == d-1 {
				m.buf = append(m.buf, y)
				if fits {
					sigma, fits = spt.AddPaths(sigma, t.Sigma(y))
				}
			}
		}
		if !fits {
			m.fwd.Reset()
			return fmt.Errorf("%s: %w: root %d node %d", m.name, spt.ErrPathCountOverflow, t.Root(), x)
		}
		if !m.marks.Has(x, spt.Relocated) && sigma == t.Sigma(x) && m.sameParents(t.Parents(x), m.buf) {
			continue
		}

		for _, p := range t.Parents(x) {
			m.pushBackward(t, p)
		}
		for _, p := range m.buf {
			m.pushBackward(t, p)
		}
		m.pushBackward(t, x)

		t.SetSigma(x, sigma)
		m.buf = t.SwapParents(x, m.buf)

		for w := range m.reader.Neighbors(x) {
			if t.Dist(w) == d+1 {
				m.pushForward(t, w)
			}
		}
	}
}

// backward recomputes dependencies in descending level order and moves the
// difference into the raw scores. A changed dependency queues the parents.
func (m *Incremental) backward(t *spt.Tree) {
	root := t.Root()
	for {
		x, d, ok := m.bwd.PopMax()
		if !ok {
			return
		}

		sx := float64(t.Sigma(x))
		delta := 0.0
		for w := range m.reader.Neighbors(x) {
			if t.Dist(w) == d+1 {
				delta += sx * ((1 + t.Delta(w)) / float64(t.Sigma(w)))
			}
		}

		old := t.Delta(x)
		if delta == old {
			continue
		}
		t.SetDelta(x, delta)
		if x != root {
			m.forest.AddScore(x, delta-old)
		}
		for _, p := range t.Parents(x) {
			m.pushBackward(t, p)
		}
	}
}

// sameParents reports whether old and cur hold the same nodes. Both are
// duplicate free.
func (m *Incremental) sameParents(old, cur []core.NodeID) bool {
	if len(old) != len(cur) {
		return false
	}
	m.sets.Next()
	for _, p := range old {
		m.sets.Set(p, spt.ForwardVisited)
	}
	for _, p := range cur {
		if !m.sets.Has(p, spt.ForwardVisited) {
			return false
		}
	}

	return true
}
