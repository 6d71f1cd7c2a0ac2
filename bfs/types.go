// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/dynlath/core"
)

// Sentinel errors.
var (
	// ErrGraphNil is returned for a nil reader.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrStartNodeNotFound is returned when the source is not in the graph.
	ErrStartNodeNotFound = errors.New("bfs: start node not found")

	// ErrOptionViolation wraps every rejected Option.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrPathCountOverflow is returned when a path count exceeds int64.
	ErrPathCountOverflow = errors.New("bfs: path count overflows int64")
)

// Option customizes a traversal. Invalid values are reported by BFS, not
// by the Option itself.
type Option func(*options)

type options struct {
	ctx      context.Context
	visit    func(id core.NodeID, depth int) error
	skip     func(from, to core.NodeID) bool
	maxDepth int
	err      error
}

func defaultOptions() options {
	return options{ctx: context.Background()}
}

// WithContext makes the traversal stop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithVisit calls fn for every dequeued node. A non-nil error aborts the
// traversal and is returned wrapped.
func WithVisit(fn func(id core.NodeID, depth int) error) Option {
	return func(o *options) { o.visit = fn }
}

// WithSkip hides the edges for which fn reports true.
func WithSkip(fn func(from, to core.NodeID) bool) Option {
	return func(o *options) { o.skip = fn }
}

// WithMaxDepth bounds the search to d levels; zero means no bound.
func WithMaxDepth(d int) Option {
	return func(o *options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: max depth %d is negative", ErrOptionViolation, d)
			return
		}
		o.maxDepth = d
	}
}

// Result is a breadth-first shortest-path tree.
//
// Depth and Paths hold exactly the reached nodes; Paths counts the shortest
// paths from Source. Parent holds the first predecessor each node was
// discovered from; the source has none.
type Result struct {
	Source core.NodeID
	Order  []core.NodeID
	Depth  map[core.NodeID]int
	Parent map[core.NodeID]core.NodeID
	Paths  map[core.NodeID]int64
}

// PathTo returns one shortest path from Source to dest.
func (r *Result) PathTo(dest core.NodeID) ([]core.NodeID, error) {
	d, ok := r.Depth[dest]
	if !ok {
		return nil, fmt.Errorf("bfs: %d unreachable from %d", dest, r.Source)
	}
	path := make([]core.NodeID, d+1)
	for i, cur := d, dest; i >= 0; i-- {
		path[i] = cur
		cur = r.Parent[cur]
	}

	return path, nil
}

// Levels groups the reached nodes by depth, each level in visit order.
func (r *Result) Levels() [][]core.NodeID {
	var out [][]core.NodeID
	for _, n := range r.Order {
		d := r.Depth[n]
		if d == len(out) {
			out = append(out, nil)
		}
		out[d] = append(out[d], n)
	}

	return out
}
