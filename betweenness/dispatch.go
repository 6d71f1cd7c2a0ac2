// SPDX-License-Identifier: MIT

package betweenness

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/diff"
	"github.com/katalvlaran/dynlath/metric"
	"github.com/katalvlaran/dynlath/spt"
)

// handler routes each edit kind of diff.Update to its patch.
type handler struct{ m *Incremental }

var _ diff.Visitor = handler{}

func (h handler) OnNodeAddition(id core.NodeID) error { return h.m.addNode(id) }
func (h handler) OnNodeRemoval(id core.NodeID) error  { return h.m.removeNode(id) }
func (h handler) OnEdgeAddition(e core.Edge) error    { return h.m.addEdge(e) }
func (h handler) OnEdgeRemoval(e core.Edge) error     { return h.m.removeEdge(e) }

// eachRoot patches every live tree except skip and merges the per-root
// inconsistencies. Any other error stops the walk and is returned as is.
func (m *Incremental) eachRoot(skip core.NodeID, fn func(t *spt.Tree) error) (*metric.InconsistentStateError, error) {
	var merged *metric.InconsistentStateError
	for r := range m.forest.Roots() {
		if r == skip {
			continue
		}
		err := fn(m.forest.Tree(r))
		var ise *metric.InconsistentStateError
		switch {
		case err == nil:
		case errors.As(err, &ise):
			merged = merge(merged, ise)
		default:
			return merged, err
		}
	}

	return merged, nil
}

func merge(into, e *metric.InconsistentStateError) *metric.InconsistentStateError {
	switch {
	case e == nil:
		return into
	case into == nil:
		return e
	default:
		into.Merge(e)
		return into
	}
}

// report logs e and converts it to an error, keeping nil untyped.
func (m *Incremental) report(e *metric.InconsistentStateError) error {
	if e == nil {
		return nil
	}
	m.log.Warn("inconsistent trees",
		slog.String("update", m.cur.String()),
		slog.Any("roots", e.Roots),
		slog.String("reason", e.Reason))

	return e
}

// untracked reports an edit touching nodes the forest does not know.
func (m *Incremental) untracked(ids ...core.NodeID) error {
	return m.wholeForest("nodes %v not tracked", ids)
}

// wholeForest reports a problem no single tree is to blame for, so every
// root is listed.
func (m *Incremental) wholeForest(format string, args ...any) error {
	e := &metric.InconsistentStateError{
		Metric: m.name,
		Roots:  m.allRoots(),
		Update: m.cur,
		Reason: fmt.Sprintf(format, args...),
	}

	return m.report(e)
}

// selfLoop rejects an edit that no shortest path can use.
func (m *Incremental) selfLoop(e core.Edge) error {
	return fmt.Errorf("%s: %w: self-loop %s", m.name, metric.ErrUnsupportedEdit, e)
}
