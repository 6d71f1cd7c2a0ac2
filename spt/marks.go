// SPDX-License-Identifier: MIT

package spt

import "github.com/katalvlaran/dynlath/core"

// Visit is a set of per-node tags valid for one epoch.
type Visit uint8

const (
	// Untouched is the state of every node whose mark is from an older epoch.
	Untouched Visit = 0

	// ForwardVisited tags a node queued for the path-count pass.
	ForwardVisited Visit = 1 << (iota - 1)

	// BackwardVisited tags a node queued for the dependency pass.
	BackwardVisited

	// Relocated tags a node whose distance changed during the patch.
	Relocated
)

// Mark is the tag set of one node together with the epoch it belongs to.
type Mark struct {
	Epoch uint64
	State Visit
}

// Marks stamps nodes during one patch without clearing between patches.
// Advancing the epoch makes every existing mark read as Untouched.
type Marks struct {
	epoch uint64
	marks []Mark
}

// Grow extends the mark arena to bound entries.
func (m *Marks) Grow(bound int) {
	for len(m.marks) < bound {
		m.marks = append(m.marks, Mark{})
	}
}

// Next starts a new epoch and returns it.
func (m *Marks) Next() uint64 {
	m.epoch++

	return m.epoch
}

// Epoch returns the current epoch.
func (m *Marks) Epoch() uint64 { return m.epoch }

// State returns the tags of n in the current epoch.
func (m *Marks) State(n core.NodeID) Visit {
	mk := m.marks[n]
	if mk.Epoch != m.epoch {
		return Untouched
	}

	return mk.State
}

// Has reports whether n carries every tag in s in the current epoch.
func (m *Marks) Has(n core.NodeID, s Visit) bool { return m.State(n)&s == s }

// Set adds the tags s to n and reports whether any of them was new.
func (m *Marks) Set(n core.NodeID, s Visit) bool {
	cur := m.State(n)
	if cur&s == s {
		return false
	}
	m.marks[n] = Mark{Epoch: m.epoch, State: cur | s}

	return true
}

// Unset removes the tags s from n.
func (m *Marks) Unset(n core.NodeID, s Visit) {
	cur := m.State(n)
	m.marks[n] = Mark{Epoch: m.epoch, State: cur &^ s}
}
