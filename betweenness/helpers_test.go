// SPDX-License-Identifier: MIT
package betweenness_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynlath/brandes"
	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/diff"
	"github.com/katalvlaran/dynlath/metric"
	"github.com/katalvlaran/dynlath/spt"
)

const tol = 1e-9

// apply runs u through the edit lifecycle: before hook, store mutation,
// after hook. It returns the after-hook error.
func apply(t testing.TB, g core.Store, m metric.Metric, u diff.Update) error {
	t.Helper()
	if m.IsAppliedBeforeEdit() {
		require.NoError(t, m.ApplyBeforeEdit(u))
	}
	require.NoError(t, u.Apply(g), "store rejected %s", u)
	if !m.IsAppliedAfterEdit() {
		return nil
	}

	return m.ApplyAfterEdit(u)
}

// requireMatchesRecompute checks f against a fresh Brandes run over g and
// against the graph invariants.
func requireMatchesRecompute(t testing.TB, g core.Reader, f *spt.Forest, msgAndArgs ...any) {
	t.Helper()
	want, err := brandes.Compute(g)
	require.NoError(t, err)
	require.NoError(t, spt.Compare(want, f, tol), msgAndArgs...)
	require.NoError(t, spt.Verify(g, f, tol), msgAndArgs...)
}

// randomEdit draws a valid edit for g. next is the identity a new node gets.
func randomEdit(rng *rand.Rand, g core.Reader, next core.NodeID) diff.Update {
	nodes := slices.Collect(g.Nodes())
	for {
		switch p := rng.Float64(); {
		case p < 0.35 && len(nodes) >= 2:
			a, b := nodes[rng.Intn(len(nodes))], nodes[rng.Intn(len(nodes))]
			if a != b && !g.HasEdge(a, b) {
				return diff.AddEdge(core.Edge{U: a, V: b})
			}
		case p < 0.75 && g.EdgeCount() > 0:
			a := nodes[rng.Intn(len(nodes))]
			if nbrs := core.NeighborSlice(g, a); len(nbrs) > 0 {
				return diff.RemoveEdge(a, nbrs[rng.Intn(len(nbrs))])
			}
		case p < 0.87:
			return diff.AddNode(next)
		case len(nodes) > 2:
			return diff.RemoveNode(nodes[rng.Intn(len(nodes))])
		}
	}
}
