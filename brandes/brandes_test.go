// SPDX-License-Identifier: MIT
package brandes_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/network"

	"github.com/katalvlaran/dynlath/brandes"
	"github.com/katalvlaran/dynlath/builder"
	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/gonumstore"
	"github.com/katalvlaran/dynlath/spt"
)

const tol = 1e-9

// TestScores_Path checks the 4-path A-B-C-D: A=0, B=2, C=2, D=0.
func TestScores_Path(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Path(4))
	require.NoError(t, err)

	scores, err := brandes.Scores(g)
	require.NoError(t, err)
	require.Equal(t, map[core.NodeID]float64{0: 0, 1: 2, 2: 2, 3: 0}, scores)
}

// TestScores_Star checks hub = k(k-1)/2 and leaves = 0.
func TestScores_Star(t *testing.T) {
	for _, k := range []int{2, 3, 7} {
		g, err := builder.BuildGraph(nil, nil, builder.Star(k+1))
		require.NoError(t, err)

		scores, err := brandes.Scores(g)
		require.NoError(t, err)
		require.InDelta(t, float64(k*(k-1)/2), scores[0], tol)
		for leaf := 1; leaf <= k; leaf++ {
			require.Zero(t, scores[core.NodeID(leaf)])
		}
	}
}

// TestScores_CompleteAndCycle checks symmetric topologies.
func TestScores_CompleteAndCycle(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Complete(5))
	require.NoError(t, err)
	scores, err := brandes.Scores(g)
	require.NoError(t, err)
	for _, s := range scores {
		require.Zero(t, s)
	}

	// C_4: each node is the midpoint of one opposite pair, split over two paths.
	g, err = builder.BuildGraph(nil, nil, builder.Cycle(4))
	require.NoError(t, err)
	scores, err = brandes.Scores(g)
	require.NoError(t, err)
	for _, s := range scores {
		require.InDelta(t, 0.5, s, tol)
	}
}

// TestScores_AgreeWithGonum checks random graphs against gonum's Brandes (halved).
func TestScores_AgreeWithGonum(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		s := gonumstore.New()
		require.NoError(t, builder.Build(s, []builder.BuilderOption{builder.WithSeed(seed)},
			builder.RandomSparse(30, 0.12)))

		got, err := brandes.Scores(s)
		require.NoError(t, err)
		want := network.Betweenness(s.Graph())
		for n := range s.Nodes() {
			require.InDelta(t, want[int64(n)]/2, got[n], 1e-7, "seed %d node %d", seed, n)
		}
	}
}

// TestCompute_Verifies checks the full forest satisfies every invariant.
func TestCompute_Verifies(t *testing.T) {
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(7)},
		builder.RandomSparse(25, 0.15), builder.Path(3))
	require.NoError(t, err)
	require.NoError(t, g.AddNode(40))

	f, err := brandes.Compute(g)
	require.NoError(t, err)
	require.NoError(t, spt.Verify(g, f, tol))
	require.False(t, f.Tree(0).Reachable(40))
	require.Equal(t, int64(0), f.Tree(0).Sigma(40))
}

// TestEngine_RootRepairs checks that rerunning one root fixes a corrupted tree.
func TestEngine_RootRepairs(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Grid(3, 3))
	require.NoError(t, err)
	f, err := brandes.Compute(g)
	require.NoError(t, err)
	want := f.Clone()

	f.Tree(4).SetSigma(8, 99)
	f.AddScore(1, 3)
	var v *spt.Violation
	require.ErrorAs(t, spt.Verify(g, f, tol), &v)
	require.Equal(t, core.NodeID(4), v.Root)

	f.AddScore(1, -3)
	require.NoError(t, brandes.New().Root(g, f, 4))
	require.NoError(t, spt.Compare(want, f, tol))
}

// TestEngine_Errors checks the guard rails.
func TestEngine_Errors(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Path(3))
	require.NoError(t, err)

	f := spt.NewForest(1)
	require.ErrorIs(t, brandes.New().Root(g, f, 9), brandes.ErrRootNotFound)
	require.ErrorIs(t, brandes.New().Root(g, f, 0), brandes.ErrOutOfBounds)
}

// TestCompute_PathCountOverflow checks that path counts beyond int64 fail
// instead of wrapping into wrong scores.
func TestCompute_PathCountOverflow(t *testing.T) {
	t.Run("GridAtLimit", func(t *testing.T) {
		// corner to corner of a 34x34 grid: C(66,33) paths, just below 2^63
		g, err := builder.BuildGraph(nil, nil, builder.Grid(34, 34))
		require.NoError(t, err)
		f, err := brandes.Compute(g)
		require.NoError(t, err)
		require.Equal(t, int64(7219428434016265740), f.Tree(0).Sigma(1155))
	})

	t.Run("GridBeyond", func(t *testing.T) {
		// C(70,35) ≈ 1.1e20 paths between opposite corners
		g, err := builder.BuildGraph(nil, nil, builder.Grid(36, 36))
		require.NoError(t, err)
		_, err = brandes.Scores(g)
		require.ErrorIs(t, err, spt.ErrPathCountOverflow)
	})

	t.Run("Diamonds", func(t *testing.T) {
		g, err := builder.BuildGraph(nil, nil, builder.DiamondChain(62))
		require.NoError(t, err)
		f, err := brandes.Compute(g)
		require.NoError(t, err)
		require.Equal(t, int64(1)<<62, f.Tree(0).Sigma(186))

		g, err = builder.BuildGraph(nil, nil, builder.DiamondChain(63))
		require.NoError(t, err)
		f = spt.NewForest(core.Bound(g))
		require.ErrorIs(t, brandes.New().Root(g, f, 0), spt.ErrPathCountOverflow)
	})
}
