// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: Cloning graph instances.
// Concurrency:
//   - Read lock on the source; the result is a fresh, independent graph.

package core

import "slices"

// Clone returns a deep copy of g with identical configuration, nodes and edges.
//
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := &Graph{
		weighted:  g.weighted,
		capacity:  g.capacity,
		adjacency: make(map[NodeID][]NodeID, len(g.adjacency)),
		edges:     make(map[edgeKey]float64, len(g.edges)),
	}
	for id, nbrs := range g.adjacency {
		out.adjacency[id] = slices.Clone(nbrs)
	}
	for k, w := range g.edges {
		out.edges[k] = w
	}

	return out
}

// CloneFrom copies any Reader into a new Graph. Weights are dropped, so the
// result is unweighted unless opts say otherwise.
//
// Complexity: O(V + E log d).
func CloneFrom(r Reader, opts ...GraphOption) *Graph {
	out := NewGraph(append([]GraphOption{WithCapacity(r.NodeCount())}, opts...)...)
	for id := range r.Nodes() {
		out.adjacency[id] = nil
	}
	for id := range r.Nodes() {
		for n := range r.Neighbors(id) {
			if id < n {
				out.edges[keyOf(id, n)] = 0
				out.adjacency[id] = insertSorted(out.adjacency[id], n)
				out.adjacency[n] = insertSorted(out.adjacency[n], id)
			}
		}
	}

	return out
}
