// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Weight/Edges/EdgeCount.
// Determinism:
//   - Edges() returns edges sorted by (lo, hi) endpoint pair.
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package core

import (
	"cmp"
	"fmt"
	"slices"
)

// AddEdge links e.U and e.V.
//
// Steps:
//  1. Reject loops (ErrLoopNotAllowed) and non-zero weights on an
//     unweighted graph (ErrBadWeight).
//  2. Under the write lock, require both endpoints (ErrNodeNotFound) and
//     reject duplicates (ErrEdgeExists).
//  3. Register the edge and insert each endpoint into the other's sorted list.
//
// Endpoints are never auto-created: node additions are explicit edits.
//
// Complexity: O(degree) for the sorted inserts.
func (g *Graph) AddEdge(e Edge) error {
	if e.U == e.V {
		return fmt.Errorf("%w: %s", ErrLoopNotAllowed, e)
	}
	if !g.weighted && e.Weight != 0 {
		return fmt.Errorf("%w: %s weight=%g", ErrBadWeight, e, e.Weight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adjacency[e.U]; !ok {
		return fmt.Errorf("%w: %d (edge %s)", ErrNodeNotFound, e.U, e)
	}
	if _, ok := g.adjacency[e.V]; !ok {
		return fmt.Errorf("%w: %d (edge %s)", ErrNodeNotFound, e.V, e)
	}
	k := keyOf(e.U, e.V)
	if _, dup := g.edges[k]; dup {
		return fmt.Errorf("%w: %s", ErrEdgeExists, e)
	}

	g.edges[k] = e.Weight
	g.adjacency[e.U] = insertSorted(g.adjacency[e.U], e.V)
	g.adjacency[e.V] = insertSorted(g.adjacency[e.V], e.U)

	return nil
}

// RemoveEdge unlinks a and b (ErrEdgeNotFound if they are not adjacent).
//
// Complexity: O(degree) for the sorted deletions.
func (g *Graph) RemoveEdge(a, b NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := keyOf(a, b)
	if _, ok := g.edges[k]; !ok {
		return fmt.Errorf("%w: %d-%d", ErrEdgeNotFound, a, b)
	}
	delete(g.edges, k)
	g.adjacency[a] = removeSorted(g.adjacency[a], b)
	g.adjacency[b] = removeSorted(g.adjacency[b], a)

	return nil
}

// HasEdge reports whether a and b are adjacent.
// Complexity: O(1).
func (g *Graph) HasEdge(a, b NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.edges[keyOf(a, b)]

	return ok
}

// Weight returns the weight of edge a-b (ErrEdgeNotFound if absent).
func (g *Graph) Weight(a, b NodeID) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	w, ok := g.edges[keyOf(a, b)]
	if !ok {
		return 0, fmt.Errorf("%w: %d-%d", ErrEdgeNotFound, a, b)
	}

	return w, nil
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// Edges returns every edge with U < V, sorted by (U, V).
// Complexity: O(E log E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	out := make([]Edge, 0, len(g.edges))
	for k, w := range g.edges {
		out = append(out, Edge{U: k.lo, V: k.hi, Weight: w})
	}
	g.mu.RUnlock()

	slices.SortFunc(out, func(x, y Edge) int {
		if c := cmp.Compare(x.U, y.U); c != 0 {
			return c
		}

		return cmp.Compare(x.V, y.V)
	})

	return out
}
