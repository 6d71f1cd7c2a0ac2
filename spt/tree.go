// SPDX-License-Identifier: MIT

package spt

import (
	"errors"
	"math"
	"slices"

	"github.com/katalvlaran/dynlath/core"
)

// Infinity is the distance of a node unreachable from the root.
// Callers must test Reachable before doing arithmetic on a distance.
const Infinity = math.MaxInt

// ErrPathCountOverflow indicates a shortest-path count beyond int64. The
// affected tree holds no valid state afterwards.
var ErrPathCountOverflow = errors.New("spt: shortest-path count overflows int64")

// AddPaths returns a+b for two non-negative path counts, or false when the
// sum does not fit in an int64.
func AddPaths(a, b int64) (int64, bool) {
	if a > math.MaxInt64-b {
		return 0, false
	}

	return a + b, true
}

// Tree is the shortest-path state of one root.
//
// Slices are indexed by core.NodeID and have length Len(). Parent slices
// returned by Parents are owned by the tree and must not be retained across
// mutations.
type Tree struct {
	root    core.NodeID
	dist    []int
	parents [][]core.NodeID
	sigma   []int64
	delta   []float64
}

// NewTree returns a tree of the given arena length in which only root is
// reachable (dist 0, sigma 1).
func NewTree(root core.NodeID, bound int) *Tree {
	t := &Tree{root: root}
	t.Grow(bound)
	t.Reset()

	return t
}

// Root returns the root identity.
func (t *Tree) Root() core.NodeID { return t.root }

// Len returns the arena length.
func (t *Tree) Len() int { return len(t.dist) }

// Grow extends the arenas to bound entries. New rows are unreachable.
func (t *Tree) Grow(bound int) {
	for len(t.dist) < bound {
		t.dist = append(t.dist, Infinity)
		t.parents = append(t.parents, nil)
		t.sigma = append(t.sigma, 0)
		t.delta = append(t.delta, 0)
	}
}

// Reset makes every node unreachable except the root. Parent slices keep
// their capacity.
func (t *Tree) Reset() {
	for i := range t.dist {
		t.dist[i] = Infinity
		t.parents[i] = t.parents[i][:0]
		t.sigma[i] = 0
		t.delta[i] = 0
	}
	if int(t.root) < len(t.dist) {
		t.dist[t.root] = 0
		t.sigma[t.root] = 1
	}
}

// Clear makes n unreachable and zeroes its dependency.
func (t *Tree) Clear(n core.NodeID) {
	t.dist[n] = Infinity
	t.parents[n] = t.parents[n][:0]
	t.sigma[n] = 0
	t.delta[n] = 0
}

// Dist returns the distance of n (Infinity when unreachable or out of range).
func (t *Tree) Dist(n core.NodeID) int {
	if int(n) >= len(t.dist) || n < 0 {
		return Infinity
	}

	return t.dist[n]
}

// Reachable reports whether n has a finite distance.
func (t *Tree) Reachable(n core.NodeID) bool { return t.Dist(n) != Infinity }

// Parents returns the parent set of n.
func (t *Tree) Parents(n core.NodeID) []core.NodeID { return t.parents[n] }

// HasParent reports whether p is a parent of n.
func (t *Tree) HasParent(n, p core.NodeID) bool { return slices.Contains(t.parents[n], p) }

// Sigma returns the number of shortest paths from the root to n.
func (t *Tree) Sigma(n core.NodeID) int64 { return t.sigma[n] }

// Delta returns the dependency of the root on n.
func (t *Tree) Delta(n core.NodeID) float64 { return t.delta[n] }

// SetDist sets the distance of n.
func (t *Tree) SetDist(n core.NodeID, d int) { t.dist[n] = d }

// SetSigma sets the path count of n.
func (t *Tree) SetSigma(n core.NodeID, s int64) { t.sigma[n] = s }

// SetDelta sets the dependency of n.
func (t *Tree) SetDelta(n core.NodeID, d float64) { t.delta[n] = d }

// AddParent appends p to the parent set of n.
func (t *Tree) AddParent(n, p core.NodeID) { t.parents[n] = append(t.parents[n], p) }

// ClearParents empties the parent set of n, keeping its capacity.
func (t *Tree) ClearParents(n core.NodeID) { t.parents[n] = t.parents[n][:0] }

// SwapParents replaces the parent set of n with ps and returns the previous
// slice so the caller can reuse it as scratch.
func (t *Tree) SwapParents(n core.NodeID, ps []core.NodeID) []core.NodeID {
	old := t.parents[n]
	t.parents[n] = ps

	return old
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		root:    t.root,
		dist:    slices.Clone(t.dist),
		parents: make([][]core.NodeID, len(t.parents)),
		sigma:   slices.Clone(t.sigma),
		delta:   slices.Clone(t.delta),
	}
	for i, ps := range t.parents {
		c.parents[i] = slices.Clone(ps)
	}

	return c
}
