// SPDX-License-Identifier: MIT
package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynlath/bfs"
	"github.com/katalvlaran/dynlath/builder"
	"github.com/katalvlaran/dynlath/core"
)

// cycle4 builds the undirected cycle 0-1-2-3-0.
func cycle4(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i := core.NodeID(0); i < 4; i++ {
		require.NoError(t, g.AddNode(i))
	}
	for i := core.NodeID(0); i < 4; i++ {
		require.NoError(t, g.AddEdge(core.Edge{U: i, V: (i + 1) % 4}))
	}

	return g
}

func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, 0)
	require.ErrorIs(t, err, bfs.ErrGraphNil)

	g := core.NewGraph()
	_, err = bfs.BFS(g, 0)
	require.ErrorIs(t, err, bfs.ErrStartNodeNotFound)

	require.NoError(t, g.AddNode(0))
	_, err = bfs.BFS(g, 0, bfs.WithMaxDepth(-1))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)
}

func TestBFS_Cycle(t *testing.T) {
	res, err := bfs.BFS(cycle4(t), 0)
	require.NoError(t, err)

	require.Equal(t, []core.NodeID{0, 1, 3, 2}, res.Order)
	require.Equal(t, map[core.NodeID]int{0: 0, 1: 1, 2: 2, 3: 1}, res.Depth)
	require.Equal(t, map[core.NodeID]int64{0: 1, 1: 1, 2: 2, 3: 1}, res.Paths)
	require.Equal(t, [][]core.NodeID{{0}, {1, 3}, {2}}, res.Levels())

	path, err := res.PathTo(2)
	require.NoError(t, err)
	require.Equal(t, []core.NodeID{0, 1, 2}, path)
}

// TestBFS_Grid counts the lattice paths across a 3x3 grid: C(4,2) = 6.
func TestBFS_Grid(t *testing.T) {
	g := core.NewGraph()
	id := func(r, c int) core.NodeID { return core.NodeID(r*3 + c) }
	for n := core.NodeID(0); n < 9; n++ {
		require.NoError(t, g.AddNode(n))
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if c < 2 {
				require.NoError(t, g.AddEdge(core.Edge{U: id(r, c), V: id(r, c+1)}))
			}
			if r < 2 {
				require.NoError(t, g.AddEdge(core.Edge{U: id(r, c), V: id(r+1, c)}))
			}
		}
	}

	res, err := bfs.BFS(g, id(0, 0))
	require.NoError(t, err)
	require.Equal(t, 4, res.Depth[id(2, 2)])
	require.Equal(t, int64(6), res.Paths[id(2, 2)])
	require.Equal(t, int64(3), res.Paths[id(1, 2)])
}

func TestBFS_Unreachable(t *testing.T) {
	g := cycle4(t)
	require.NoError(t, g.AddNode(7))

	d, err := bfs.Distances(g, 0)
	require.NoError(t, err)
	require.NotContains(t, d, core.NodeID(7))

	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)
	require.Zero(t, res.Paths[7])
	_, err = res.PathTo(7)
	require.Error(t, err)
}

func TestBFS_Options(t *testing.T) {
	g := cycle4(t)

	res, err := bfs.BFS(g, 0, bfs.WithMaxDepth(1))
	require.NoError(t, err)
	require.Len(t, res.Order, 3)

	res, err = bfs.BFS(g, 0, bfs.WithSkip(func(from, to core.NodeID) bool {
		return from == 0 && to == 3
	}))
	require.NoError(t, err)
	require.Equal(t, 3, res.Depth[3])
	require.Equal(t, int64(1), res.Paths[3])

	stop := errors.New("stop")
	_, err = bfs.BFS(g, 0, bfs.WithVisit(func(id core.NodeID, _ int) error {
		if id == 1 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(g, 0, bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

// TestBFS_PathCountOverflow checks that counts past int64 fail rather than wrap.
func TestBFS_PathCountOverflow(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.DiamondChain(62))
	require.NoError(t, err)
	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1)<<62, res.Paths[186])

	g, err = builder.BuildGraph(nil, nil, builder.DiamondChain(63))
	require.NoError(t, err)
	_, err = bfs.BFS(g, 0)
	require.ErrorIs(t, err, bfs.ErrPathCountOverflow)
}
