// SPDX-License-Identifier: MIT

// Package spt holds the shortest-path forest behind betweenness centrality:
// one Tree per root, each covering every node through arena slices indexed
// by core.NodeID, plus the per-node raw score accumulator.
//
// Per-root state:
//
//	dist[n]    - BFS distance from the root, Infinity when unreachable.
//	parents[n] - neighbors of n at dist[n]-1 (every shortest-path predecessor).
//	sigma[n]   - number of shortest root->n paths; sigma[root] = 1.
//	delta[n]   - Brandes dependency of the root on n.
//
// Scores:
//
//	raw[n] = sum over live roots r != n of delta_r(n).
//
// Every unordered pair {s, t} contributes to raw twice (once from each
// endpoint's tree), so the reported centrality is raw/2.
//
// Scratch:
//
//	Marks  - epoch-stamped visitation tags (Untouched, ForwardVisited,
//	         BackwardVisited, Relocated) so a patch never clears arenas.
//	Levels - reusable bucket queue keyed by BFS level.
//
// Verify re-derives every invariant from the graph; Compare checks two
// forests for agreement. Both are intended for tests and for the driver's
// optional post-batch verification.
package spt
