// SPDX-License-Identifier: MIT

// Package gonumstore adapts gonum's simple.WeightedUndirectedGraph to the
// core.Store capability, so the centrality engines can run on a gonum graph
// and gonum's own algorithms can run on the same data.
//
// Unweighted stores keep every edge at weight 1 on the gonum side; Edge
// weights supplied by callers must then be zero, mirroring core.Graph.
package gonumstore

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/dynlath/core"
)

// unitWeight is the gonum-side weight of an edge in an unweighted store.
const unitWeight = 1

// Option configures a Store.
type Option func(*Store)

// WithWeighted allows non-zero edge weights.
func WithWeighted() Option { return func(s *Store) { s.weighted = true } }

// Store is a core.Store backed by a gonum weighted undirected graph.
// It is not safe for concurrent mutation.
type Store struct {
	g        *simple.WeightedUndirectedGraph
	weighted bool
}

var _ core.Store = (*Store)(nil)

// New returns an empty store. Absent edges have infinite weight on the gonum side.
func New(opts ...Option) *Store {
	s := &Store{g: simple.NewWeightedUndirectedGraph(0, math.Inf(1))}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Graph exposes the backing gonum graph for read-only use by gonum algorithms.
func (s *Store) Graph() *simple.WeightedUndirectedGraph { return s.g }

// Nodes yields every node in ascending order.
func (s *Store) Nodes() iter.Seq[core.NodeID] { return sortedIDs(s.g.Nodes()) }

// Neighbors yields the neighbors of id in ascending order.
func (s *Store) Neighbors(id core.NodeID) iter.Seq[core.NodeID] {
	return sortedIDs(s.g.From(int64(id)))
}

// HasNode reports whether id is present.
func (s *Store) HasNode(id core.NodeID) bool { return s.g.Node(int64(id)) != nil }

// HasEdge reports whether a and b are adjacent.
func (s *Store) HasEdge(a, b core.NodeID) bool { return s.g.HasEdgeBetween(int64(a), int64(b)) }

// Degree returns the number of neighbors of id.
func (s *Store) Degree(id core.NodeID) int { return s.g.From(int64(id)).Len() }

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return s.g.Nodes().Len() }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return s.g.Edges().Len() }

// AddNode inserts an isolated node.
func (s *Store) AddNode(id core.NodeID) error {
	if id < 0 {
		return fmt.Errorf("%w: %d", core.ErrInvalidNode, id)
	}
	if s.HasNode(id) {
		return fmt.Errorf("%w: %d", core.ErrNodeExists, id)
	}
	s.g.AddNode(simple.Node(id))

	return nil
}

// RemoveNode deletes id and its incident edges.
func (s *Store) RemoveNode(id core.NodeID) error {
	if !s.HasNode(id) {
		return fmt.Errorf("%w: %d", core.ErrNodeNotFound, id)
	}
	s.g.RemoveNode(int64(id))

	return nil
}

// AddEdge links e.U and e.V. Endpoints are never auto-created.
func (s *Store) AddEdge(e core.Edge) error {
	switch {
	case e.U == e.V:
		return fmt.Errorf("%w: %s", core.ErrLoopNotAllowed, e)
	case !s.weighted && e.Weight != 0:
		return fmt.Errorf("%w: %s weight=%g", core.ErrBadWeight, e, e.Weight)
	case !s.HasNode(e.U):
		return fmt.Errorf("%w: %d (edge %s)", core.ErrNodeNotFound, e.U, e)
	case !s.HasNode(e.V):
		return fmt.Errorf("%w: %d (edge %s)", core.ErrNodeNotFound, e.V, e)
	case s.HasEdge(e.U, e.V):
		return fmt.Errorf("%w: %s", core.ErrEdgeExists, e)
	}
	w := e.Weight
	if !s.weighted {
		w = unitWeight
	}
	s.g.SetWeightedEdge(s.g.NewWeightedEdge(simple.Node(e.U), simple.Node(e.V), w))

	return nil
}

// RemoveEdge unlinks a and b.
func (s *Store) RemoveEdge(a, b core.NodeID) error {
	if !s.HasEdge(a, b) {
		return fmt.Errorf("%w: %d-%d", core.ErrEdgeNotFound, a, b)
	}
	s.g.RemoveEdge(int64(a), int64(b))

	return nil
}

func sortedIDs(it graph.Nodes) iter.Seq[core.NodeID] {
	ids := make([]core.NodeID, 0, max(it.Len(), 0))
	for it.Next() {
		ids = append(ids, core.NodeID(it.Node().ID()))
	}
	slices.Sort(ids)

	return slices.Values(ids)
}
