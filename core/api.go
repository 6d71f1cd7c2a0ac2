// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Storage capability interfaces consumed by the engines, plus small
//       helpers built only on top of Reader.
// Policy:
//   - Algorithms accept Reader; only the batch driver holds a Store.
//   - Helpers here never mutate and never assume a backing representation.

package core

import "iter"

// Reader is the read-only graph capability.
//
// Implementations must answer HasEdge in O(1) and enumerate Neighbors in
// O(degree). Enumeration order must be deterministic.
type Reader interface {
	// Nodes yields every live node.
	Nodes() iter.Seq[NodeID]

	// Neighbors yields the nodes adjacent to id. Unknown id yields nothing.
	Neighbors(id NodeID) iter.Seq[NodeID]

	// HasNode reports whether id is live.
	HasNode(id NodeID) bool

	// HasEdge reports whether a and b are adjacent.
	HasEdge(a, b NodeID) bool

	// Degree returns the number of neighbors of id (0 for unknown id).
	Degree(id NodeID) int

	// NodeCount returns the number of live nodes.
	NodeCount() int

	// EdgeCount returns the number of edges.
	EdgeCount() int
}

// Store is a Reader that also supports structural mutation.
//
// Every failure must wrap ErrStructuralConflict.
type Store interface {
	Reader

	// AddNode inserts an isolated node.
	AddNode(id NodeID) error

	// RemoveNode deletes id and every incident edge.
	RemoveNode(id NodeID) error

	// AddEdge links e.U and e.V. Both endpoints must exist.
	AddEdge(e Edge) error

	// RemoveEdge unlinks a and b.
	RemoveEdge(a, b NodeID) error
}

// Bound returns one past the largest live node identity, i.e. the arena
// length needed to index every node of r. An empty reader yields 0.
//
// Complexity: O(V).
func Bound(r Reader) int {
	bound := 0
	for id := range r.Nodes() {
		if int(id) >= bound {
			bound = int(id) + 1
		}
	}

	return bound
}

// NeighborSlice collects Neighbors(id) into a fresh slice.
//
// Complexity: O(degree).
func NeighborSlice(r Reader, id NodeID) []NodeID {
	out := make([]NodeID, 0, r.Degree(id))
	for n := range r.Neighbors(id) {
		out = append(out, n)
	}

	return out
}
