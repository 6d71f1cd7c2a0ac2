// SPDX-License-Identifier: MIT
package gonumstore_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/network"

	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/gonumstore"
)

// TestStore_Contract mirrors the core.Graph contract on the gonum backend.
func TestStore_Contract(t *testing.T) {
	s := gonumstore.New()

	require.ErrorIs(t, s.AddNode(-3), core.ErrInvalidNode)
	for i := core.NodeID(0); i < 4; i++ {
		require.NoError(t, s.AddNode(i))
	}
	require.ErrorIs(t, s.AddNode(2), core.ErrNodeExists)

	require.NoError(t, s.AddEdge(core.Edge{U: 2, V: 0}))
	require.NoError(t, s.AddEdge(core.Edge{U: 0, V: 1}))
	require.NoError(t, s.AddEdge(core.Edge{U: 2, V: 3}))

	require.ErrorIs(t, s.AddEdge(core.Edge{U: 1, V: 1}), core.ErrLoopNotAllowed)
	require.ErrorIs(t, s.AddEdge(core.Edge{U: 1, V: 9}), core.ErrNodeNotFound)
	require.ErrorIs(t, s.AddEdge(core.Edge{U: 0, V: 2}), core.ErrEdgeExists)
	require.ErrorIs(t, s.AddEdge(core.Edge{U: 1, V: 3, Weight: 4}), core.ErrBadWeight)

	require.Equal(t, []core.NodeID{0, 1, 2, 3}, slices.Collect(s.Nodes()))
	require.Equal(t, []core.NodeID{1, 2}, slices.Collect(s.Neighbors(0)))
	require.Equal(t, 2, s.Degree(2))
	require.Equal(t, 3, s.EdgeCount())
	require.True(t, s.HasEdge(3, 2))

	require.NoError(t, s.RemoveEdge(0, 2))
	require.ErrorIs(t, s.RemoveEdge(0, 2), core.ErrEdgeNotFound)
	require.NoError(t, s.RemoveNode(2))
	require.ErrorIs(t, s.RemoveNode(2), core.ErrStructuralConflict)
	require.Equal(t, 3, s.NodeCount())
	require.Equal(t, 1, s.EdgeCount())
	require.Empty(t, slices.Collect(s.Neighbors(3)))
}

// TestStore_Weighted verifies weights pass through to gonum.
func TestStore_Weighted(t *testing.T) {
	s := gonumstore.New(gonumstore.WithWeighted())
	require.NoError(t, s.AddNode(0))
	require.NoError(t, s.AddNode(1))
	require.NoError(t, s.AddEdge(core.Edge{U: 0, V: 1, Weight: 3.5}))

	w, ok := s.Graph().Weight(0, 1)
	require.True(t, ok)
	require.Equal(t, 3.5, w)
}

// TestStore_GonumAlgorithms runs a gonum algorithm on the backing graph.
func TestStore_GonumAlgorithms(t *testing.T) {
	s := gonumstore.New()
	for i := core.NodeID(0); i < 4; i++ {
		require.NoError(t, s.AddNode(i))
	}
	for i := core.NodeID(0); i < 3; i++ {
		require.NoError(t, s.AddEdge(core.Edge{U: i, V: i + 1}))
	}

	// gonum counts every ordered pair, so inner nodes of a 4-path score 4.
	bc := network.Betweenness(s.Graph())
	require.InDelta(t, 4.0, bc[1], 1e-12)
	require.InDelta(t, 4.0, bc[2], 1e-12)
	require.Zero(t, bc[0])
}
