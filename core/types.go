// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: NodeID, Edge, sentinel errors, GraphOption and the Graph struct.
//
// Errors:
//
//	ErrStructuralConflict - umbrella for every rejected structural edit.
//	ErrInvalidNode        - negative node identity.
//	ErrNodeNotFound       - referenced node does not exist.
//	ErrNodeExists         - node already exists.
//	ErrEdgeNotFound       - referenced edge does not exist.
//	ErrEdgeExists         - edge already exists (no multi-edges).
//	ErrLoopNotAllowed     - self-loop.
//	ErrBadWeight          - non-zero weight on an unweighted graph.

package core

import (
	"errors"
	"fmt"
	"sync"
)

// ErrStructuralConflict is wrapped by every error a Store mutation returns.
// The batch driver recovers from it by skipping the edit.
var ErrStructuralConflict = errors.New("core: structural conflict")

// Sentinel errors for core graph operations.
var (
	// ErrInvalidNode indicates a negative node identity.
	ErrInvalidNode = fmt.Errorf("%w: invalid node id", ErrStructuralConflict)

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = fmt.Errorf("%w: node not found", ErrStructuralConflict)

	// ErrNodeExists indicates AddNode on a node that is already present.
	ErrNodeExists = fmt.Errorf("%w: node already exists", ErrStructuralConflict)

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = fmt.Errorf("%w: edge not found", ErrStructuralConflict)

	// ErrEdgeExists indicates AddEdge on an endpoint pair that is already linked.
	ErrEdgeExists = fmt.Errorf("%w: edge already exists", ErrStructuralConflict)

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = fmt.Errorf("%w: self-loop not allowed", ErrStructuralConflict)

	// ErrBadWeight indicates a non-zero weight provided to an unweighted graph.
	ErrBadWeight = fmt.Errorf("%w: bad weight for unweighted graph", ErrStructuralConflict)
)

// NodeID identifies a node. Valid identities are non-negative.
type NodeID int

// Edge is an undirected connection between U and V.
//
// Weight is carried for storage only; the centrality engines treat every
// edge as unit length.
type Edge struct {
	U, V   NodeID
	Weight float64
}

// Key returns the endpoints ordered so that lo <= hi.
func (e Edge) Key() (lo, hi NodeID) {
	if e.U <= e.V {
		return e.U, e.V
	}

	return e.V, e.U
}

// String renders the edge as "U-V".
func (e Edge) String() string { return fmt.Sprintf("%d-%d", e.U, e.V) }

// edgeKey is the canonical (lo, hi) pair used by the edge catalog.
type edgeKey struct{ lo, hi NodeID }

func keyOf(a, b NodeID) edgeKey {
	if a <= b {
		return edgeKey{a, b}
	}

	return edgeKey{b, a}
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithWeighted allows non-zero edge weights in the Graph.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// WithCapacity pre-sizes the node catalog for n nodes. Non-positive n is ignored.
func WithCapacity(n int) GraphOption {
	return func(g *Graph) {
		if n > 0 {
			g.capacity = n
		}
	}
}

// Graph is the in-memory undirected simple graph.
//
// adjacency keeps every neighbor list sorted ascending so enumeration is
// deterministic; edges maps the canonical endpoint pair to its weight.
type Graph struct {
	mu sync.RWMutex // guards adjacency and edges

	weighted bool
	capacity int

	adjacency map[NodeID][]NodeID
	edges     map[edgeKey]float64
}

// NewGraph creates an empty Graph. By default it is unweighted.
// Complexity: O(1) plus the requested capacity.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	g.adjacency = make(map[NodeID][]NodeID, g.capacity)
	g.edges = make(map[edgeKey]float64, g.capacity)

	return g
}

// Weighted reports whether the graph accepts non-zero weights.
func (g *Graph) Weighted() bool { return g.weighted }
