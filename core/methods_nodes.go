// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node lifecycle & queries.
//
// Determinism:
//   - Nodes() yields IDs in ascending order.
//   - Neighbors() yields IDs in ascending order (lists are kept sorted).
//
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.
//   - Enumerations yield a snapshot, so the lock is not held while the
//     consumer runs.

package core

import (
	"fmt"
	"iter"
	"slices"
)

// AddNode inserts an isolated node.
//
// Implementation:
//   - Stage 1: Validate id >= 0 (ErrInvalidNode).
//   - Stage 2: Under the write lock, reject duplicates (ErrNodeExists) and
//     register an empty neighbor list.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode(id NodeID) error {
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.adjacency[id]; exists {
		return fmt.Errorf("%w: %d", ErrNodeExists, id)
	}
	g.adjacency[id] = nil

	return nil
}

// RemoveNode deletes id and all incident edges.
//
// Implementation:
//   - Stage 1: Under the write lock, look up id (ErrNodeNotFound).
//   - Stage 2: For each neighbor, drop the mirror entry and the catalog edge.
//   - Stage 3: Drop the node itself.
//
// Complexity: O(sum of neighbor degrees) for the sorted-list deletions.
func (g *Graph) RemoveNode(id NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	nbrs, exists := g.adjacency[id]
	if !exists {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	for _, n := range nbrs {
		g.adjacency[n] = removeSorted(g.adjacency[n], id)
		delete(g.edges, keyOf(id, n))
	}
	delete(g.adjacency, id)

	return nil
}

// HasNode reports whether id is live.
// Complexity: O(1).
func (g *Graph) HasNode(id NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.adjacency[id]

	return ok
}

// Nodes yields every live node in ascending order.
// Complexity: O(V log V) for the snapshot sort.
func (g *Graph) Nodes() iter.Seq[NodeID] {
	g.mu.RLock()
	ids := make([]NodeID, 0, len(g.adjacency))
	for id := range g.adjacency {
		ids = append(ids, id)
	}
	g.mu.RUnlock()
	slices.Sort(ids)

	return slices.Values(ids)
}

// Neighbors yields the neighbors of id in ascending order.
// Unknown id yields nothing.
// Complexity: O(degree).
func (g *Graph) Neighbors(id NodeID) iter.Seq[NodeID] {
	g.mu.RLock()
	nbrs := slices.Clone(g.adjacency[id])
	g.mu.RUnlock()

	return slices.Values(nbrs)
}

// Degree returns the number of neighbors of id (0 if id is unknown).
// Complexity: O(1).
func (g *Graph) Degree(id NodeID) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency[id])
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency)
}

// insertSorted adds v to the ascending list s, keeping it sorted.
func insertSorted(s []NodeID, v NodeID) []NodeID {
	i, found := slices.BinarySearch(s, v)
	if found {
		return s
	}

	return slices.Insert(s, i, v)
}

// removeSorted deletes v from the ascending list s if present.
func removeSorted(s []NodeID, v NodeID) []NodeID {
	i, found := slices.BinarySearch(s, v)
	if !found {
		return s
	}

	return slices.Delete(s, i, i+1)
}
