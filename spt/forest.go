// SPDX-License-Identifier: MIT

package spt

import (
	"iter"
	"slices"

	"github.com/katalvlaran/dynlath/core"
)

// Forest is the set of per-root trees of one metric instance together with
// the raw score accumulator.
//
// Only live roots own a tree. Every tree's arenas share the forest's bound.
type Forest struct {
	bound int
	trees []*Tree
	raw   []float64
}

// NewForest returns an empty forest sized for identities below bound.
func NewForest(bound int) *Forest {
	f := &Forest{}
	f.Grow(bound)

	return f
}

// Bound returns the arena length shared by every tree.
func (f *Forest) Bound() int { return f.bound }

// Grow extends every arena to bound entries. Shrinking is a no-op.
func (f *Forest) Grow(bound int) {
	if bound <= f.bound {
		return
	}
	for len(f.trees) < bound {
		f.trees = append(f.trees, nil)
		f.raw = append(f.raw, 0)
	}
	for _, t := range f.trees {
		if t != nil {
			t.Grow(bound)
		}
	}
	f.bound = bound
}

// AddRoot registers root as live and returns its fresh tree, in which only
// the root itself is reachable. The forest grows when needed.
func (f *Forest) AddRoot(root core.NodeID) *Tree {
	f.Grow(int(root) + 1)
	t := NewTree(root, f.bound)
	f.trees[root] = t

	return t
}

// Tree returns the tree of root, or nil when root is not live.
func (f *Forest) Tree(root core.NodeID) *Tree {
	if root < 0 || int(root) >= len(f.trees) {
		return nil
	}

	return f.trees[root]
}

// Live reports whether n owns a tree.
func (f *Forest) Live(n core.NodeID) bool { return f.Tree(n) != nil }

// Roots yields every live root in ascending order.
func (f *Forest) Roots() iter.Seq[core.NodeID] {
	return func(yield func(core.NodeID) bool) {
		for i, t := range f.trees {
			if t != nil && !yield(core.NodeID(i)) {
				return
			}
		}
	}
}

// RootCount returns the number of live roots.
func (f *Forest) RootCount() int {
	n := 0
	for _, t := range f.trees {
		if t != nil {
			n++
		}
	}

	return n
}

// RawScore returns the sum of dependencies of n over every other live root.
func (f *Forest) RawScore(n core.NodeID) float64 { return f.raw[n] }

// AddScore adds d to the raw score of n.
func (f *Forest) AddScore(n core.NodeID, d float64) { f.raw[n] += d }

// Score returns the betweenness centrality of n (raw/2).
func (f *Forest) Score(n core.NodeID) float64 { return f.raw[n] / 2 }

// Scores returns the centrality of every live node.
func (f *Forest) Scores() map[core.NodeID]float64 {
	out := make(map[core.NodeID]float64, len(f.trees))
	for n := range f.Roots() {
		out[n] = f.Score(n)
	}

	return out
}

// Retract subtracts the dependencies recorded in root's tree from every
// other node's score. It is the inverse of the accumulation a full
// recomputation performs for that root.
func (f *Forest) Retract(root core.NodeID) {
	t := f.Tree(root)
	if t == nil {
		return
	}
	for i, d := range t.delta {
		if core.NodeID(i) != root && d != 0 {
			f.raw[i] -= d
		}
	}
}

// Contribute adds the dependencies recorded in root's tree to every other
// node's score.
func (f *Forest) Contribute(root core.NodeID) {
	t := f.Tree(root)
	if t == nil {
		return
	}
	for i, d := range t.delta {
		if core.NodeID(i) != root && d != 0 {
			f.raw[i] += d
		}
	}
}

// DropNode discards n: its own tree's contributions are retracted, the tree
// is released, its row is cleared in every remaining tree and its score is
// zeroed.
//
// The caller must already have detached n (no remaining tree reaches it), so
// clearing the row does not change any other score.
func (f *Forest) DropNode(n core.NodeID) {
	if !f.Live(n) {
		return
	}
	f.Retract(n)
	f.trees[n] = nil
	for _, t := range f.trees {
		if t != nil {
			t.Clear(n)
		}
	}
	f.raw[n] = 0
}

// Clone returns a deep copy of f.
func (f *Forest) Clone() *Forest {
	c := &Forest{
		bound: f.bound,
		trees: make([]*Tree, len(f.trees)),
		raw:   slices.Clone(f.raw),
	}
	for i, t := range f.trees {
		if t != nil {
			c.trees[i] = t.Clone()
		}
	}

	return c
}
