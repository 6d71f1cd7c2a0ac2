// SPDX-License-Identifier: MIT

package betweenness

import (
	"iter"

	"github.com/katalvlaran/dynlath/core"
)

// ghostView is the store with a just-removed node put back together with
// the links that have not been cut yet. Node removal replays as a sequence
// of edge removals over it. Enumeration stays ascending, with the ghost node
// merged into place.
type ghostView struct {
	core.Reader
	node  core.NodeID
	links map[core.NodeID]struct{}
	order []core.NodeID
}

var _ core.Reader = (*ghostView)(nil)

func newGhostView(store core.Reader, node core.NodeID, links []core.NodeID) *ghostView {
	g := &ghostView{
		Reader: store,
		node:   node,
		links:  make(map[core.NodeID]struct{}, len(links)),
		order:  links,
	}
	for _, n := range links {
		g.links[n] = struct{}{}
	}

	return g
}

// cut drops the link between the ghost node and n.
func (g *ghostView) cut(n core.NodeID) { delete(g.links, n) }

func (g *ghostView) linked(n core.NodeID) bool {
	_, ok := g.links[n]
	return ok
}

func (g *ghostView) Nodes() iter.Seq[core.NodeID] { return withGhost(g.Reader.Nodes(), g.node) }

func (g *ghostView) Neighbors(id core.NodeID) iter.Seq[core.NodeID] {
	if id == g.node {
		return func(yield func(core.NodeID) bool) {
			for _, n := range g.order {
				if g.linked(n) && !yield(n) {
					return
				}
			}
		}
	}

	if !g.linked(id) {
		return g.Reader.Neighbors(id)
	}

	return withGhost(g.Reader.Neighbors(id), g.node)
}

// withGhost yields the ascending seq with n, absent from seq, in its place.
func withGhost(seq iter.Seq[core.NodeID], n core.NodeID) iter.Seq[core.NodeID] {
	return func(yield func(core.NodeID) bool) {
		pending := true
		for x := range seq {
			if pending && n < x {
				pending = false
				if !yield(n) {
					return
				}
			}
			if !yield(x) {
				return
			}
		}
		if pending {
			yield(n)
		}
	}
}

func (g *ghostView) HasNode(id core.NodeID) bool {
	return id == g.node || g.Reader.HasNode(id)
}

func (g *ghostView) HasEdge(a, b core.NodeID) bool {
	switch {
	case a == g.node:
		return g.linked(b)
	case b == g.node:
		return g.linked(a)
	default:
		return g.Reader.HasEdge(a, b)
	}
}

func (g *ghostView) Degree(id core.NodeID) int {
	if id == g.node {
		return len(g.links)
	}
	d := g.Reader.Degree(id)
	if g.linked(id) {
		d++
	}

	return d
}

func (g *ghostView) NodeCount() int { return g.Reader.NodeCount() + 1 }

func (g *ghostView) EdgeCount() int { return g.Reader.EdgeCount() + len(g.links) }
