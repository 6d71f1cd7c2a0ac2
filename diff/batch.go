// SPDX-License-Identifier: MIT

package diff

import (
	"fmt"
	"iter"
	"slices"
)

// Batch is one atomic set of edits applied between two logical timestamps.
// A Batch is immutable once constructed.
type Batch struct {
	from, to int64
	updates  []Update
}

// New validates and freezes a batch.
//
// Returns ErrTimestampOrder when to < from and ErrInvalidUpdate when any
// update has an invalid kind. The updates slice is copied.
func New(from, to int64, updates ...Update) (*Batch, error) {
	if to < from {
		return nil, fmt.Errorf("%w: from=%d to=%d", ErrTimestampOrder, from, to)
	}
	for i, u := range updates {
		if !u.kind.Valid() {
			return nil, fmt.Errorf("%w: index %d", ErrInvalidUpdate, i)
		}
	}

	return &Batch{from: from, to: to, updates: slices.Clone(updates)}, nil
}

// From returns the source timestamp.
func (b *Batch) From() int64 { return b.from }

// To returns the target timestamp.
func (b *Batch) To() int64 { return b.to }

// Len returns the number of updates.
func (b *Batch) Len() int { return len(b.updates) }

// Updates yields the updates in the order they were given.
func (b *Batch) Updates() iter.Seq[Update] { return slices.Values(b.updates) }

// Of yields the updates of one kind, in the order they were given.
func (b *Batch) Of(k Kind) iter.Seq[Update] {
	return func(yield func(Update) bool) {
		for _, u := range b.updates {
			if u.kind == k && !yield(u) {
				return
			}
		}
	}
}

// Count returns the number of updates of kind k.
func (b *Batch) Count(k Kind) int {
	n := 0
	for _, u := range b.updates {
		if u.kind == k {
			n++
		}
	}

	return n
}

// Ordered yields the updates in application order:
// node removals, edge removals, node additions, edge additions.
// Within each group the given order is kept.
//
// Removing a node removes its incident edges first, so a later explicit
// removal of one of those edges finds nothing and is skipped by the driver.
// Additions run after every removal, so an edit never re-adds an edge whose
// endpoint is removed later in the same batch.
func (b *Batch) Ordered() iter.Seq[Update] {
	return func(yield func(Update) bool) {
		for _, k := range Kinds {
			for u := range b.Of(k) {
				if !yield(u) {
					return
				}
			}
		}
	}
}

func (b *Batch) String() string {
	return fmt.Sprintf("batch[%d->%d] +n=%d -n=%d +e=%d -e=%d",
		b.from, b.to,
		b.Count(NodeAddition), b.Count(NodeRemoval),
		b.Count(EdgeAddition), b.Count(EdgeRemoval))
}
