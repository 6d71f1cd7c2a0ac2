// SPDX-License-Identifier: MIT

// Package batch drives a graph store and its metrics through a sequence of
// diff batches.
//
// Per batch, Driver.Apply runs:
//
//	before-batch hooks
//	for each update in diff.Batch.Ordered():
//	    before-edit hooks, store mutation, after-edit hooks
//	after-batch hooks
//	Compute (Recomputation metrics) or Cleanup (AfterUpdate metrics)
//	optional forest verification
//
// Error handling follows the metric error kinds:
//
//	core.ErrStructuralConflict  the update is counted as skipped
//	metric.ErrUnsupportedEdit   the batch is aborted
//	metric.ErrInconsistentState repaired or aborted per Policy
//	anything else               logged; the batch continues
//
// A Driver is single-threaded. The context passed to Init and Apply carries
// trace spans; it is not checked for cancellation.
package batch
