// SPDX-License-Identifier: MIT

package spt

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/dynlath/bfs"
	"github.com/katalvlaran/dynlath/core"
)

// Sentinel errors for forest checks.
var (
	// ErrInvariant indicates a forest that disagrees with its graph.
	ErrInvariant = errors.New("spt: invariant violated")

	// ErrMismatch indicates two forests that disagree with each other.
	ErrMismatch = errors.New("spt: forests differ")
)

// NoRoot marks a Violation that is not attributable to a single tree.
const NoRoot core.NodeID = -1

// Violation describes the first invariant Verify found broken.
// Root is the tree to rebuild, or NoRoot for forest-level problems.
type Violation struct {
	Root core.NodeID
	Node core.NodeID
	What string
}

func (v *Violation) Error() string {
	if v.Root == NoRoot {
		return fmt.Sprintf("%v: node %d: %s", ErrInvariant, v.Node, v.What)
	}

	return fmt.Sprintf("%v: root %d node %d: %s", ErrInvariant, v.Root, v.Node, v.What)
}

func (v *Violation) Unwrap() error { return ErrInvariant }

// ApproxEqual reports whether a and b agree within tol, relative to their
// magnitude once it exceeds one.
func ApproxEqual(a, b, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))

	return math.Abs(a-b) <= tol*scale
}

// Verify re-derives every tree of f from g and reports the first mismatch
// as a *Violation.
//
// Checked, per live root r and node n of g:
//   - live roots are exactly the nodes of g;
//   - dist_r(n) equals the plain BFS distance;
//   - parents_r(n) is exactly the set of neighbors at dist_r(n)-1;
//   - sigma_r(n) counts the shortest r-n paths (1 at the root, 0 when unreachable);
//   - delta_r(n) follows the dependency recurrence over children, within tol;
//   - raw(n) is the sum of delta_r(n) over roots r != n, within tol.
//
// Complexity: O(V·(V+E)).
func Verify(g core.Reader, f *Forest, tol float64) error {
	for n := range g.Nodes() {
		if !f.Live(n) {
			return &Violation{Root: NoRoot, Node: n, What: "node has no tree"}
		}
	}
	for r := range f.Roots() {
		if !g.HasNode(r) {
			return &Violation{Root: NoRoot, Node: r, What: "tree for a node not in the graph"}
		}
	}

	raw := make(map[core.NodeID]float64, g.NodeCount())
	for r := range f.Roots() {
		if err := verifyTree(g, f.Tree(r), tol); err != nil {
			return err
		}
		t := f.Tree(r)
		for n := range g.Nodes() {
			if n != r {
				raw[n] += t.Delta(n)
			}
		}
	}
	for n := range g.Nodes() {
		if !ApproxEqual(f.RawScore(n), raw[n], tol) {
			return &Violation{Root: NoRoot, Node: n,
				What: fmt.Sprintf("score %g, want %g", f.RawScore(n), raw[n])}
		}
	}

	return nil
}

func verifyTree(g core.Reader, t *Tree, tol float64) error {
	r := t.Root()
	ref, err := bfs.BFS(g, r)
	if err != nil {
		return fmt.Errorf("%w: root %d: %w", ErrInvariant, r, err)
	}
	dist := func(n core.NodeID) int {
		if d, ok := ref.Depth[n]; ok {
			return d
		}
		return Infinity
	}
	fail := func(n core.NodeID, format string, args ...any) error {
		return &Violation{Root: r, Node: n, What: fmt.Sprintf(format, args...)}
	}

	for n := range g.Nodes() {
		want := dist(n)
		if t.Dist(n) != want {
			return fail(n, "dist %d, want %d", t.Dist(n), want)
		}
		if want == Infinity {
			if t.Sigma(n) != 0 || len(t.Parents(n)) != 0 || t.Delta(n) != 0 {
				return fail(n, "unreachable node carries state")
			}
			continue
		}

		var parents []core.NodeID
		delta := 0.0
		for w := range g.Neighbors(n) {
			switch dist(w) {
			case want - 1:
				parents = append(parents, w)
			case want + 1:
				delta += float64(t.Sigma(n)) / float64(t.Sigma(w)) * (1 + t.Delta(w))
			}
		}
		if !sameSet(parents, t.Parents(n)) {
			return fail(n, "parents %v, want %v", t.Parents(n), parents)
		}
		if sigma := ref.Paths[n]; t.Sigma(n) != sigma {
			return fail(n, "sigma %d, want %d", t.Sigma(n), sigma)
		}
		if !ApproxEqual(t.Delta(n), delta, tol) {
			return fail(n, "delta %g, want %g", t.Delta(n), delta)
		}
	}

	return nil
}

// Compare checks that a and b describe the same forest: same live roots,
// identical distances, path counts and parent sets, and dependencies and
// raw scores within tol. It returns an error wrapping ErrMismatch.
func Compare(a, b *Forest, tol float64) error {
	if !slices.Equal(slices.Collect(a.Roots()), slices.Collect(b.Roots())) {
		return fmt.Errorf("%w: live roots differ", ErrMismatch)
	}
	for r := range a.Roots() {
		ta, tb := a.Tree(r), b.Tree(r)
		for n := range a.Roots() {
			switch {
			case ta.Dist(n) != tb.Dist(n):
				return fmt.Errorf("%w: root %d node %d: dist %d vs %d", ErrMismatch, r, n, ta.Dist(n), tb.Dist(n))
			case ta.Sigma(n) != tb.Sigma(n):
				return fmt.Errorf("%w: root %d node %d: sigma %d vs %d", ErrMismatch, r, n, ta.Sigma(n), tb.Sigma(n))
			case !sameSet(ta.Parents(n), tb.Parents(n)):
				return fmt.Errorf("%w: root %d node %d: parents %v vs %v", ErrMismatch, r, n, ta.Parents(n), tb.Parents(n))
			case !ApproxEqual(ta.Delta(n), tb.Delta(n), tol):
				return fmt.Errorf("%w: root %d node %d: delta %g vs %g", ErrMismatch, r, n, ta.Delta(n), tb.Delta(n))
			}
		}
	}
	for n := range a.Roots() {
		if !ApproxEqual(a.RawScore(n), b.RawScore(n), tol) {
			return fmt.Errorf("%w: node %d: score %g vs %g", ErrMismatch, n, a.RawScore(n), b.RawScore(n))
		}
	}

	return nil
}

func sameSet(a, b []core.NodeID) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)

	return slices.Equal(x, y)
}
