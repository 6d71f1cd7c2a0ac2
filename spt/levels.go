// SPDX-License-Identifier: MIT

package spt

import "github.com/katalvlaran/dynlath/core"

// Levels is a bucket queue keyed by non-negative BFS level.
//
// Nodes within one level come out in LIFO order; callers must not depend on
// intra-level order. Buckets keep their capacity across drains.
type Levels struct {
	buckets [][]core.NodeID
	lo, hi  int
	n       int
}

// Len returns the number of queued entries.
func (l *Levels) Len() int { return l.n }

// Push queues n at level.
func (l *Levels) Push(level int, n core.NodeID) {
	for len(l.buckets) <= level {
		l.buckets = append(l.buckets, nil)
	}
	l.buckets[level] = append(l.buckets[level], n)
	if l.n == 0 {
		l.lo, l.hi = level, level
	} else {
		l.lo = min(l.lo, level)
		l.hi = max(l.hi, level)
	}
	l.n++
}

// PopMin removes an entry from the lowest non-empty level.
func (l *Levels) PopMin() (core.NodeID, int, bool) {
	if l.n == 0 {
		return 0, 0, false
	}
	for len(l.buckets[l.lo]) == 0 {
		l.lo++
	}

	return l.pop(l.lo), l.lo, true
}

// PopMax removes an entry from the highest non-empty level.
func (l *Levels) PopMax() (core.NodeID, int, bool) {
	if l.n == 0 {
		return 0, 0, false
	}
	for len(l.buckets[l.hi]) == 0 {
		l.hi--
	}

	return l.pop(l.hi), l.hi, true
}

func (l *Levels) pop(level int) core.NodeID {
	b := l.buckets[level]
	n := b[len(b)-1]
	l.buckets[level] = b[:len(b)-1]
	l.n--

	return n
}

// Reset drops every entry.
func (l *Levels) Reset() {
	for i := range l.buckets {
		l.buckets[i] = l.buckets[i][:0]
	}
	l.n, l.lo, l.hi = 0, 0, 0
}
