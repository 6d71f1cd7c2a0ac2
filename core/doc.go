// SPDX-License-Identifier: MIT

// Package core defines the graph storage capability consumed by the
// centrality engines, and Graph, its thread-safe in-memory implementation.
//
// Node identity:
//
//	Nodes are identified by a non-negative NodeID. Identities are used as
//	dense arena indices by the shortest-path forest, so callers should keep
//	them compact (0..N-1 plus a small amount of churn).
//
// Capability split:
//
//	Reader  - read-only queries: Nodes, Neighbors, HasNode, HasEdge, Degree,
//	          NodeCount, EdgeCount. Algorithms depend only on Reader.
//	Store   - Reader plus structural mutation: AddNode, RemoveNode, AddEdge,
//	          RemoveEdge. Only the batch driver mutates a Store.
//
// Guarantees of Graph:
//
//   - HasEdge is O(1) (hash lookup on the unordered endpoint pair).
//   - Neighbors is O(degree) and yields IDs in ascending order.
//   - Nodes yields IDs in ascending order.
//   - Every failed mutation returns an error wrapping ErrStructuralConflict,
//     so a caller can skip the edit with a single errors.Is check.
//
// Concurrency:
//
//	Graph guards its catalogs with one sync.RWMutex. Enumerations yield a
//	snapshot taken under the read lock, so the consumer may call back into
//	the graph while ranging.
//
// Quick example:
//
//	g := core.NewGraph()
//	_ = g.AddNode(0)
//	_ = g.AddNode(1)
//	_ = g.AddEdge(core.Edge{U: 0, V: 1})
//	for n := range g.Neighbors(0) {
//		fmt.Println(n) // 1
//	}
package core
