// SPDX-License-Identifier: MIT
package metric_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/diff"
	"github.com/katalvlaran/dynlath/metric"
)

func TestApplicationType_RoundTrip(t *testing.T) {
	for _, a := range []metric.ApplicationType{metric.AfterUpdate, metric.Recomputation} {
		got, err := metric.ParseApplicationType(a.String())
		require.NoError(t, err)
		require.Equal(t, a, got)
	}
	_, err := metric.ParseApplicationType("sometimes")
	require.Error(t, err)
	require.Equal(t, "unknown", metric.ApplicationType(0).String())
}

func TestInconsistentStateError(t *testing.T) {
	u := diff.RemoveEdge(1, 2)
	e := metric.NewInconsistentState("BCDyn", u, 3, "parent %d missing", 1)
	e.Merge(metric.NewInconsistentState("BCDyn", u, 0, "parent %d missing", 1))
	e.Merge(metric.NewInconsistentState("BCDyn", u, 3, "sigma"))

	var err error = fmt.Errorf("apply: %w", e)
	require.ErrorIs(t, err, metric.ErrInconsistentState)
	require.False(t, errors.Is(err, metric.ErrUnsupportedEdit))

	var got *metric.InconsistentStateError
	require.ErrorAs(t, err, &got)
	require.Equal(t, []core.NodeID{0, 3}, got.Roots)
	require.Equal(t, "parent 1 missing; sigma", got.Reason)
	require.Contains(t, err.Error(), "edge_removal(1-2)")
}
