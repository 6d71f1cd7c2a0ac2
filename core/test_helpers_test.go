// SPDX-License-Identifier: MIT
// Package core_test contains test helpers for dynlath/core.
//
// Purpose:
//   - Provide small, deterministic fixtures for core.Graph.
//   - Keep node identities and sizes as named constants (no magic numbers in bodies).

package core_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynlath/core"
)

// Common node IDs used across core tests.
const (
	NodeA core.NodeID = iota
	NodeB
	NodeC
	NodeD
	NodeE
)

// Sizes used by benchmarks and bulk tests.
const (
	NBulkNodes = 256
)

// newPath RETURNS the path A-B-C-D on an unweighted graph.
func newPath(t testing.TB) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range []core.NodeID{NodeA, NodeB, NodeC, NodeD} {
		require.NoError(t, g.AddNode(id))
	}
	require.NoError(t, g.AddEdge(core.Edge{U: NodeA, V: NodeB}))
	require.NoError(t, g.AddEdge(core.Edge{U: NodeB, V: NodeC}))
	require.NoError(t, g.AddEdge(core.Edge{U: NodeC, V: NodeD}))

	return g
}

// neighborsOf drains Neighbors(id) into a slice.
func neighborsOf(r core.Reader, id core.NodeID) []core.NodeID {
	return slices.Collect(r.Neighbors(id))
}

// nodesOf drains Nodes() into a slice.
func nodesOf(r core.Reader) []core.NodeID {
	return slices.Collect(r.Nodes())
}
