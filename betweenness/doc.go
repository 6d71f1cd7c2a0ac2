// SPDX-License-Identifier: MIT

// Package betweenness maintains betweenness centrality of an undirected,
// unweighted graph while it evolves edit by edit.
//
// Two metrics implement metric.Metric:
//
//	Incremental (BCDyn, AfterUpdate)    - patches the shortest-path forest in
//	                                      ApplyAfterEdit, touching only the
//	                                      region each edit can affect.
//	Recomputing (BCRecomp, Recomputation) - ignores edits and reruns Brandes'
//	                                      algorithm in Compute.
//
// Patch scheme (per edit, per root):
//
//  1. Distance pass. Case specific: breadth-first relaxation after an
//     insertion that shortens paths; after a removal that cuts the only
//     shortest paths of a subtree, the subtree is re-leveled from its
//     boundary with a bucketed unit-weight search. Nodes whose distance
//     changed are tagged spt.Relocated.
//  2. Forward pass, ascending levels. Relocated nodes, their neighbors and
//     case seeds recompute parents and path counts; any change cascades to
//     the next level's children. A path count beyond int64 stops the patch
//     with spt.ErrPathCountOverflow.
//  3. Backward pass, descending levels. Every node whose parents, path
//     count or children changed recomputes its dependency from its
//     children; the difference goes into its score and changes cascade to
//     its parents.
//
// In an unweighted graph the parents of n are exactly its neighbors at
// dist(n)-1 and its children are its neighbors at dist(n)+1, which is what
// makes both passes local.
//
// Edits must reach the metric one at a time through the lifecycle hooks,
// after the store has applied them. Node removal additionally needs
// ApplyBeforeEdit to snapshot the node's neighbors.
package betweenness
