// SPDX-License-Identifier: MIT
package betweenness_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynlath/betweenness"
	"github.com/katalvlaran/dynlath/builder"
	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/diff"
)

// sparse returns a seeded random graph and one of its edges.
func sparse(b *testing.B) (*core.Graph, core.Edge) {
	b.Helper()
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(7)}, builder.RandomSparse(200, 0.03))
	require.NoError(b, err)
	for n := range g.Nodes() {
		if nbrs := core.NeighborSlice(g, n); len(nbrs) > 0 {
			return g, core.Edge{U: n, V: nbrs[0]}
		}
	}
	b.Fatal("graph has no edges")

	return nil, core.Edge{}
}

func BenchmarkIncremental_EdgeToggle(b *testing.B) {
	g, e := sparse(b)
	m := betweenness.NewIncremental()
	require.NoError(b, m.Init(g))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.NoError(b, apply(b, g, m, diff.RemoveEdge(e.U, e.V)))
		require.NoError(b, apply(b, g, m, diff.AddEdge(e)))
	}
}

func BenchmarkRecomputing_EdgeToggle(b *testing.B) {
	g, e := sparse(b)
	m := betweenness.NewRecomputing()
	require.NoError(b, m.Init(g))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		require.NoError(b, g.RemoveEdge(e.U, e.V))
		require.NoError(b, m.Compute())
		require.NoError(b, g.AddEdge(e))
		require.NoError(b, m.Compute())
	}
}
