// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/diff"
)

// Counts holds one counter per update kind.
type Counts map[diff.Kind]int

// Total sums every kind.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}

	return n
}

// Timings records where a batch spent its time. Metrics accumulates the
// hooks, Compute and Cleanup of each metric by name; Edits covers the whole
// edit phase including hooks.
type Timings struct {
	Edits   time.Duration
	Metrics map[string]time.Duration
	Total   time.Duration
}

// Result describes one applied batch.
type Result struct {
	RunID    uuid.UUID
	From, To int64

	Requested Counts
	Applied   Counts
	Skipped   Counts

	// Repairs counts recomputed roots per metric.
	Repairs map[string]int

	// Values holds each metric's values after the batch.
	Values map[string]map[core.NodeID]float64

	Timings Timings
}

func newResult(b *diff.Batch) *Result {
	return &Result{
		RunID:     uuid.New(),
		From:      b.From(),
		To:        b.To(),
		Requested: Counts{},
		Applied:   Counts{},
		Skipped:   Counts{},
		Repairs:   map[string]int{},
		Values:    map[string]map[core.NodeID]float64{},
		Timings:   Timings{Metrics: map[string]time.Duration{}},
	}
}

func (r *Result) String() string {
	return fmt.Sprintf("run %s [%d->%d] applied %d/%d skipped %d in %s",
		r.RunID, r.From, r.To, r.Applied.Total(), r.Requested.Total(), r.Skipped.Total(), r.Timings.Total)
}
