// SPDX-License-Identifier: MIT

// Package brandes implements full recomputation of the shortest-path forest
// and betweenness centrality with Brandes' algorithm, one root at a time.
//
// It initializes incremental metrics, repairs single roots after an
// inconsistency, and serves as the ground truth in tests.
//
// Complexity (V = nodes, E = edges)
//
//   - Root: O(V + E) time, O(V) scratch reused across calls.
//   - All / Compute: O(V·(V+E)).
package brandes

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/spt"
)

// Sentinel errors for recomputation.
var (
	// ErrRootNotFound indicates a root that is not a node of the graph.
	ErrRootNotFound = errors.New("brandes: root not found")

	// ErrOutOfBounds indicates a node identity beyond the forest's arenas.
	ErrOutOfBounds = errors.New("brandes: node outside forest bound")
)

// Engine holds the scratch reused by successive single-root runs.
// An Engine is not safe for concurrent use.
type Engine struct {
	queue []core.NodeID
	stack []core.NodeID
}

// New returns an Engine with empty scratch.
func New() *Engine { return &Engine{} }

// Root rebuilds the tree of root from scratch and replaces its contribution
// to every score.
//
// Implementation:
//   - Stage 0: Retract the tree's previous dependencies and reset it.
//   - Stage 1: BFS from root, assigning distances and recording visit order.
//   - Stage 2: In visit order, for every edge (v,w) with dist(w) = dist(v)+1,
//     add v to parents(w) and sigma(v) to sigma(w).
//     A count beyond int64 aborts with spt.ErrPathCountOverflow; the tree
//     must then be rebuilt before use.
//   - Stage 3: In reverse visit order, push each node's dependency to its
//     parents and add it to the node's score unless it is the root.
func (e *Engine) Root(g core.Reader, f *spt.Forest, root core.NodeID) error {
	if !g.HasNode(root) {
		return fmt.Errorf("%w: %d", ErrRootNotFound, root)
	}
	t := f.Tree(root)
	if t == nil {
		t = f.AddRoot(root)
	} else {
		f.Retract(root)
		t.Reset()
	}

	// Stage 1: distances and visit order.
	e.queue = append(e.queue[:0], root)
	e.stack = e.stack[:0]
	for head := 0; head < len(e.queue); head++ {
		v := e.queue[head]
		e.stack = append(e.stack, v)
		for w := range g.Neighbors(v) {
			if int(w) >= t.Len() {
				return fmt.Errorf("%w: node %d, bound %d", ErrOutOfBounds, w, t.Len())
			}
			if !t.Reachable(w) {
				t.SetDist(w, t.Dist(v)+1)
				e.queue = append(e.queue, w)
			}
		}
	}

	// Stage 2: parents and path counts.
	for _, v := range e.stack {
		next := t.Dist(v) + 1
		for w := range g.Neighbors(v) {
			if t.Dist(w) == next {
				t.AddParent(w, v)
				sigma, ok := spt.AddPaths(t.Sigma(w), t.Sigma(v))
				if !ok {
					return fmt.Errorf("%w: root %d node %d", spt.ErrPathCountOverflow, root, w)
				}
				t.SetSigma(w, sigma)
			}
		}
	}

	// Stage 3: dependency accumulation in reverse BFS order.
	for i := len(e.stack) - 1; i >= 0; i-- {
		w := e.stack[i]
		coeff := (1 + t.Delta(w)) / float64(t.Sigma(w))
		for _, p := range t.Parents(w) {
			t.SetDelta(p, t.Delta(p)+float64(t.Sigma(p))*coeff)
		}
		if w != root {
			f.AddScore(w, t.Delta(w))
		}
	}

	return nil
}

// All rebuilds the tree of every node of g, registering missing roots.
func (e *Engine) All(g core.Reader, f *spt.Forest) error {
	f.Grow(core.Bound(g))
	for n := range g.Nodes() {
		if err := e.Root(g, f, n); err != nil {
			return err
		}
	}

	return nil
}

// Compute builds a fresh forest for g.
func Compute(g core.Reader) (*spt.Forest, error) {
	f := spt.NewForest(core.Bound(g))
	if err := New().All(g, f); err != nil {
		return nil, err
	}

	return f, nil
}

// Scores returns the betweenness centrality of every node of g.
func Scores(g core.Reader) (map[core.NodeID]float64, error) {
	f, err := Compute(g)
	if err != nil {
		return nil, err
	}

	return f.Scores(), nil
}
