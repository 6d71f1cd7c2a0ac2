// SPDX-License-Identifier: MIT

// Package bfs is a plain breadth-first search over a core.Reader.
//
// A traversal yields hop distances, one parent per node, the visit order and
// the number of shortest paths from the source. It recomputes from scratch
// and serves as the independent reference that shortest-path forests are
// verified against.
//
// Neighbors are expanded in the order core.Reader yields them, so results
// are reproducible.
//
// Complexity: O(V + E) time, O(V) memory.
//
//	res, err := bfs.BFS(g, 0, bfs.WithMaxDepth(3))
//	if err != nil {
//		// ErrGraphNil, ErrStartNodeNotFound, ErrOptionViolation, ctx or visit errors
//	}
//	fmt.Println(res.Depth, res.Paths)
package bfs
