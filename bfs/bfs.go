// SPDX-License-Identifier: MIT

package bfs

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dynlath/core"
)

type entry struct {
	id    core.NodeID
	depth int
}

// walker is the mutable state of one traversal.
type walker struct {
	g     core.Reader
	opts  options
	queue []entry
	res   *Result
}

// BFS walks g from start in breadth-first order.
//
// It fails with ErrGraphNil, ErrStartNodeNotFound, ErrOptionViolation,
// ErrPathCountOverflow, the context error, or a wrapped visit error.
func BFS(g core.Reader, start core.NodeID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %d", ErrStartNodeNotFound, start)
	}

	n := g.NodeCount()
	w := &walker{
		g:     g,
		opts:  o,
		queue: make([]entry, 0, n),
		res: &Result{
			Source: start,
			Order:  make([]core.NodeID, 0, n),
			Depth:  make(map[core.NodeID]int, n),
			Parent: make(map[core.NodeID]core.NodeID, n),
			Paths:  make(map[core.NodeID]int64, n),
		},
	}
	w.res.Depth[start] = 0
	w.res.Paths[start] = 1
	w.queue = append(w.queue, entry{id: start})

	if err := w.loop(); err != nil {
		return nil, err
	}

	return w.res, nil
}

// Distances returns the hop distance from start to every reachable node.
func Distances(g core.Reader, start core.NodeID) (map[core.NodeID]int, error) {
	res, err := BFS(g, start)
	if err != nil {
		return nil, err
	}

	return res.Depth, nil
}

func (w *walker) loop() error {
	for head := 0; head < len(w.queue); head++ {
		if err := w.opts.ctx.Err(); err != nil {
			return err
		}
		e := w.queue[head]
		w.res.Order = append(w.res.Order, e.id)
		if w.opts.visit != nil {
			if err := w.opts.visit(e.id, e.depth); err != nil {
				return fmt.Errorf("bfs: visit %d: %w", e.id, err)
			}
		}
		if err := w.expand(e); err != nil {
			return err
		}
	}

	return nil
}

// expand discovers the unseen neighbors of e and adds e's path count to
// every neighbor one level down.
func (w *walker) expand(e entry) error {
	next := e.depth + 1
	if w.opts.maxDepth > 0 && next > w.opts.maxDepth {
		return nil
	}
	for nbr := range w.g.Neighbors(e.id) {
		if w.opts.skip != nil && w.opts.skip(e.id, nbr) {
			continue
		}
		d, seen := w.res.Depth[nbr]
		if !seen {
			d = next
			w.res.Depth[nbr] = d
			w.res.Parent[nbr] = e.id
			w.queue = append(w.queue, entry{id: nbr, depth: d})
		}
		if d != next {
			continue
		}
		have, add := w.res.Paths[nbr], w.res.Paths[e.id]
		if have > math.MaxInt64-add {
			return fmt.Errorf("%w: %d from %d", ErrPathCountOverflow, nbr, w.res.Source)
		}
		w.res.Paths[nbr] = have + add
	}

	return nil
}
