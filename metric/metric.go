// SPDX-License-Identifier: MIT

// Package metric defines the lifecycle contract every graph metric follows
// while a batch driver evolves the graph, together with the error kinds a
// metric may report.
//
// Lifecycle per batch:
//
//	ApplyBeforeBatch                       (if IsAppliedBeforeBatch)
//	for each edit:
//	    ApplyBeforeEdit                    (if IsAppliedBeforeEdit)
//	    <store mutation>
//	    ApplyAfterEdit                     (if IsAppliedAfterEdit and the mutation succeeded)
//	ApplyAfterBatch                        (if IsAppliedAfterBatch)
//	Compute (Recomputation) or Cleanup (AfterUpdate)
//
// Error kinds, each needing a different response from the caller:
//
//	core.ErrStructuralConflict - the store rejected an edit: skip it.
//	ErrInconsistentState       - a tree is invalid: recompute the reported roots.
//	ErrUnsupportedEdit         - the metric cannot follow this edit: abort the batch.
//	spt.ErrPathCountOverflow   - path counts left int64: abort the batch.
package metric

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/diff"
)

// Sentinel errors for metric hooks.
var (
	// ErrInconsistentState indicates a forest invariant violation observed
	// while patching. The affected roots must be recomputed.
	ErrInconsistentState = errors.New("metric: inconsistent state")

	// ErrUnsupportedEdit indicates an edit or call sequence the metric
	// cannot patch. It is fatal for the batch.
	ErrUnsupportedEdit = errors.New("metric: unsupported edit")

	// ErrNotInitialized indicates a hook called before Init.
	ErrNotInitialized = errors.New("metric: not initialized")
)

// ApplicationType declares how a metric keeps its values current.
type ApplicationType uint8

const (
	// AfterUpdate metrics patch their state inside the edit hooks.
	AfterUpdate ApplicationType = iota + 1

	// Recomputation metrics ignore edits and recompute in Compute.
	Recomputation
)

func (a ApplicationType) String() string {
	switch a {
	case AfterUpdate:
		return "after_update"
	case Recomputation:
		return "recomputation"
	default:
		return "unknown"
	}
}

// ParseApplicationType is the inverse of ApplicationType.String.
func ParseApplicationType(s string) (ApplicationType, error) {
	switch s {
	case "after_update":
		return AfterUpdate, nil
	case "recomputation":
		return Recomputation, nil
	default:
		return 0, fmt.Errorf("metric: unknown application type %q", s)
	}
}

// Metric is the lifecycle every metric implements.
//
// Hooks are called only when the matching IsApplied* flag is true. A hook
// error is reported by the driver and never rolls back the store.
type Metric interface {
	// Name identifies the metric in results and logs.
	Name() string

	// Application declares AfterUpdate or Recomputation behavior.
	Application() ApplicationType

	// Init binds the metric to g and computes its initial values.
	Init(g core.Reader) error

	IsAppliedBeforeBatch() bool
	IsAppliedAfterBatch() bool
	IsAppliedBeforeEdit() bool
	IsAppliedAfterEdit() bool

	ApplyBeforeBatch(b *diff.Batch) error
	ApplyAfterBatch(b *diff.Batch) error
	ApplyBeforeEdit(u diff.Update) error
	ApplyAfterEdit(u diff.Update) error

	// Compute recomputes the values from scratch.
	Compute() error

	// Cleanup releases per-batch scratch.
	Cleanup()

	// Values returns the current value of every live node.
	Values() map[core.NodeID]float64
}

// Repairer is implemented by metrics that can rebuild individual roots after
// an ErrInconsistentState.
type Repairer interface {
	Repair(roots ...core.NodeID) error
}

// InconsistentStateError reports which roots of which metric became invalid
// while applying Update.
type InconsistentStateError struct {
	Metric string
	Roots  []core.NodeID
	Update diff.Update
	Reason string
}

// NewInconsistentState builds an InconsistentStateError for a single root.
func NewInconsistentState(metric string, u diff.Update, root core.NodeID, format string, args ...any) *InconsistentStateError {
	return &InconsistentStateError{
		Metric: metric,
		Roots:  []core.NodeID{root},
		Update: u,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("%v: %s: %s: roots %v: %s", ErrInconsistentState, e.Metric, e.Update, e.Roots, e.Reason)
}

func (e *InconsistentStateError) Unwrap() error { return ErrInconsistentState }

// Merge folds other into e, keeping the roots sorted and unique.
func (e *InconsistentStateError) Merge(other *InconsistentStateError) {
	e.Roots = append(e.Roots, other.Roots...)
	slices.Sort(e.Roots)
	e.Roots = slices.Compact(e.Roots)
	if other.Reason != "" && e.Reason != other.Reason {
		e.Reason += "; " + other.Reason
	}
}
