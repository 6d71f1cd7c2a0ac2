// SPDX-License-Identifier: MIT

// Package diff describes one edit step of an evolving graph: typed updates
// (node/edge × addition/removal) grouped into an immutable Batch tagged with
// source and target logical timestamps.
//
// An Update is a closed tagged union. Consumers dispatch on it through
// Accept and a Visitor, which has one method per kind, so adding a kind is a
// compile error for every consumer rather than a silent fallthrough.
package diff

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dynlath/core"
)

// Sentinel errors for diff construction and dispatch.
var (
	// ErrInvalidUpdate is returned for the zero Update or an unknown kind.
	ErrInvalidUpdate = errors.New("diff: invalid update")

	// ErrTimestampOrder is returned when a batch's target precedes its source.
	ErrTimestampOrder = errors.New("diff: target timestamp precedes source")
)

// Kind enumerates the four structural edits.
type Kind uint8

const (
	// KindInvalid is the zero value; it never describes a real edit.
	KindInvalid Kind = iota
	NodeAddition
	NodeRemoval
	EdgeAddition
	EdgeRemoval
)

// Kinds lists the valid kinds in batch application order.
var Kinds = [...]Kind{NodeRemoval, EdgeRemoval, NodeAddition, EdgeAddition}

func (k Kind) String() string {
	switch k {
	case NodeAddition:
		return "node_addition"
	case NodeRemoval:
		return "node_removal"
	case EdgeAddition:
		return "edge_addition"
	case EdgeRemoval:
		return "edge_removal"
	default:
		return "invalid"
	}
}

// Valid reports whether k is one of the four edit kinds.
func (k Kind) Valid() bool { return k >= NodeAddition && k <= EdgeRemoval }

// Update is one immutable structural edit.
type Update struct {
	kind Kind
	node core.NodeID
	edge core.Edge
}

// AddNode describes the insertion of an isolated node.
func AddNode(id core.NodeID) Update { return Update{kind: NodeAddition, node: id} }

// RemoveNode describes the deletion of a node and its incident edges.
func RemoveNode(id core.NodeID) Update { return Update{kind: NodeRemoval, node: id} }

// AddEdge describes the insertion of e.
func AddEdge(e core.Edge) Update { return Update{kind: EdgeAddition, edge: e} }

// RemoveEdge describes the deletion of edge u-v.
func RemoveEdge(u, v core.NodeID) Update {
	return Update{kind: EdgeRemoval, edge: core.Edge{U: u, V: v}}
}

// Kind returns the edit kind.
func (u Update) Kind() Kind { return u.kind }

// Node returns the node of a node edit (zero for edge edits).
func (u Update) Node() core.NodeID { return u.node }

// Edge returns the edge of an edge edit (zero for node edits).
func (u Update) Edge() core.Edge { return u.edge }

func (u Update) String() string {
	switch u.kind {
	case NodeAddition, NodeRemoval:
		return fmt.Sprintf("%s(%d)", u.kind, u.node)
	case EdgeAddition, EdgeRemoval:
		return fmt.Sprintf("%s(%s)", u.kind, u.edge)
	default:
		return "invalid"
	}
}

// Visitor handles each edit kind. Every method must be implemented.
type Visitor interface {
	OnNodeAddition(id core.NodeID) error
	OnNodeRemoval(id core.NodeID) error
	OnEdgeAddition(e core.Edge) error
	OnEdgeRemoval(e core.Edge) error
}

// Accept dispatches u to the matching Visitor method.
// The zero Update returns ErrInvalidUpdate without calling v.
func (u Update) Accept(v Visitor) error {
	switch u.kind {
	case NodeAddition:
		return v.OnNodeAddition(u.node)
	case NodeRemoval:
		return v.OnNodeRemoval(u.node)
	case EdgeAddition:
		return v.OnEdgeAddition(u.edge)
	case EdgeRemoval:
		return v.OnEdgeRemoval(u.edge)
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidUpdate, u.kind)
	}
}

// Apply performs u on store through the Store capability.
// Failures wrap core.ErrStructuralConflict.
func (u Update) Apply(store core.Store) error {
	switch u.kind {
	case NodeAddition:
		return store.AddNode(u.node)
	case NodeRemoval:
		return store.RemoveNode(u.node)
	case EdgeAddition:
		return store.AddEdge(u.edge)
	case EdgeRemoval:
		return store.RemoveEdge(u.edge.U, u.edge.V)
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidUpdate, u.kind)
	}
}
