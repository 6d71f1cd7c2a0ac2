// SPDX-License-Identifier: MIT
package batch_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/dynlath/batch"
	"github.com/katalvlaran/dynlath/betweenness"
	"github.com/katalvlaran/dynlath/brandes"
	"github.com/katalvlaran/dynlath/builder"
	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/diff"
	"github.com/katalvlaran/dynlath/metric"
	"github.com/katalvlaran/dynlath/spt"
)

// fakeMetric records its lifecycle calls and fails ApplyAfterEdit with err.
type fakeMetric struct {
	name     string
	err      error
	repaired []core.NodeID
	computes int
	cleanups int
	edits    []diff.Update
}

func (f *fakeMetric) Name() string                        { return f.name }
func (f *fakeMetric) Application() metric.ApplicationType { return metric.AfterUpdate }
func (f *fakeMetric) Init(core.Reader) error              { return nil }
func (f *fakeMetric) IsAppliedBeforeBatch() bool          { return false }
func (f *fakeMetric) IsAppliedAfterBatch() bool           { return false }
func (f *fakeMetric) IsAppliedBeforeEdit() bool           { return false }
func (f *fakeMetric) IsAppliedAfterEdit() bool            { return true }
func (f *fakeMetric) ApplyBeforeBatch(*diff.Batch) error  { return nil }
func (f *fakeMetric) ApplyAfterBatch(*diff.Batch) error   { return nil }
func (f *fakeMetric) ApplyBeforeEdit(diff.Update) error   { return nil }
func (f *fakeMetric) Cleanup()                            { f.cleanups++ }
func (f *fakeMetric) Values() map[core.NodeID]float64     { return map[core.NodeID]float64{} }

func (f *fakeMetric) Compute() error {
	f.computes++
	return nil
}

func (f *fakeMetric) ApplyAfterEdit(u diff.Update) error {
	f.edits = append(f.edits, u)
	return f.err
}

func (f *fakeMetric) Repair(roots ...core.NodeID) error {
	f.repaired = append(f.repaired, roots...)
	return nil
}

func mustBatch(t testing.TB, from, to int64, updates ...diff.Update) *diff.Batch {
	t.Helper()
	b, err := diff.New(from, to, updates...)
	require.NoError(t, err)

	return b
}

func newDriver(t testing.TB, g core.Store, ms []metric.Metric, opts ...batch.Option) *batch.Driver {
	t.Helper()
	d, err := batch.New(g, ms, opts...)
	require.NoError(t, err)
	require.NoError(t, d.Init(context.Background()))

	return d
}

func TestDriver_BothModesAgree(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Path(4))
	require.NoError(t, err)
	inc, rec := betweenness.NewIncremental(), betweenness.NewRecomputing()
	d := newDriver(t, g, []metric.Metric{inc, rec}, batch.WithVerify(0))

	b := mustBatch(t, 0, 1,
		diff.AddEdge(core.Edge{U: 3, V: 9}), // listed before its node addition
		diff.AddNode(9),
		diff.RemoveEdge(1, 2),
		diff.AddEdge(core.Edge{U: 0, V: 3}),
		diff.AddEdge(core.Edge{U: 0, V: 1}), // duplicate: skipped
		diff.RemoveNode(7),                  // unknown: skipped
	)
	res, err := d.Apply(context.Background(), b)
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, res.RunID)
	require.Equal(t, int64(0), res.From)
	require.Equal(t, int64(1), res.To)
	require.Equal(t, 6, res.Requested.Total())
	require.Equal(t, 4, res.Applied.Total())
	require.Equal(t, batch.Counts{diff.EdgeAddition: 1, diff.NodeRemoval: 1}, res.Skipped)
	require.True(t, g.HasEdge(3, 9))

	want, err := brandes.Scores(g)
	require.NoError(t, err)
	approx := cmpopts.EquateApprox(0, 1e-9)
	require.Empty(t, cmp.Diff(want, res.Values[betweenness.NameIncremental], approx))
	require.Empty(t, cmp.Diff(want, res.Values[betweenness.NameRecomputing], approx))
	require.Contains(t, res.Timings.Metrics, betweenness.NameIncremental)
	require.Contains(t, res.String(), res.RunID.String())
	require.Empty(t, res.Repairs)
}

// TestDriver_NodeRemovalOrder submits a batch out of order. Applied in
// submission order, AddNode(2) would conflict with the live node and
// RemoveNode(2) would drop the new edges to 2. In canonical order the
// removal runs first, the explicit removal of its edge 2-3 is skipped, and
// identity 2 is reused by the addition.
func TestDriver_NodeRemovalOrder(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Cycle(6))
	require.NoError(t, err)
	inc, rec := betweenness.NewIncremental(), betweenness.NewRecomputing()
	d := newDriver(t, g, []metric.Metric{inc, rec},
		batch.WithPolicy(batch.PolicyAbort), batch.WithVerify(1e-9))

	res, err := d.Apply(context.Background(), mustBatch(t, 0, 1,
		diff.AddEdge(core.Edge{U: 2, V: 0}),
		diff.AddNode(2),
		diff.RemoveEdge(2, 3),
		diff.AddEdge(core.Edge{U: 2, V: 4}),
		diff.RemoveNode(2),
		diff.RemoveEdge(4, 5),
	))
	require.NoError(t, err)

	require.Equal(t, batch.Counts{diff.EdgeRemoval: 1}, res.Skipped)
	require.Equal(t, batch.Counts{
		diff.NodeRemoval:  1,
		diff.EdgeRemoval:  1,
		diff.NodeAddition: 1,
		diff.EdgeAddition: 2,
	}, res.Applied)
	require.Empty(t, res.Repairs)

	require.True(t, g.HasEdge(0, 2))
	require.True(t, g.HasEdge(2, 4))
	require.False(t, g.HasEdge(1, 2))
	require.False(t, g.HasEdge(2, 3))
	require.False(t, g.HasEdge(4, 5))
	require.Equal(t, 1, inc.Stats().NodesRemoved)
	require.Equal(t, 1, inc.Stats().NodesAdded)

	want, err := brandes.Scores(g)
	require.NoError(t, err)
	approx := cmpopts.EquateApprox(0, 1e-9)
	require.Empty(t, cmp.Diff(want, res.Values[betweenness.NameIncremental], approx))
	require.Empty(t, cmp.Diff(want, res.Values[betweenness.NameRecomputing], approx))
}

// TestDriver_PathCountOverflowAborts checks that an edit pushing path counts
// past int64 fails the batch instead of triggering a repair.
func TestDriver_PathCountOverflowAborts(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.DiamondChain(63))
	require.NoError(t, err)
	require.NoError(t, g.RemoveEdge(188, 189)) // open the last diamond: 2^62 end-to-end paths
	d := newDriver(t, g, []metric.Metric{betweenness.NewIncremental()})

	res, err := d.Apply(context.Background(), mustBatch(t, 0, 1,
		diff.AddEdge(core.Edge{U: 188, V: 189})))
	require.ErrorIs(t, err, spt.ErrPathCountOverflow)
	require.Nil(t, res)
}

func TestDriver_Tracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	g, err := builder.BuildGraph(nil, nil, builder.Star(4))
	require.NoError(t, err)
	d := newDriver(t, g, []metric.Metric{betweenness.NewIncremental()}, batch.WithTracer(tp.Tracer("test")))

	_, err = d.Apply(context.Background(), mustBatch(t, 1, 2,
		diff.RemoveEdge(0, 1),
		diff.RemoveEdge(2, 3), // not an edge
	))
	require.NoError(t, err)

	names := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range sr.Ended() {
		names[s.Name()] = s
	}
	for _, n := range []string{"batch.Init", "batch.Apply", "batch.edits", "batch.finalize"} {
		require.Contains(t, names, n)
	}
	require.NotContains(t, names, "batch.verify")

	edits := names["batch.edits"]
	require.Equal(t, names["batch.Apply"].SpanContext().SpanID(), edits.Parent().SpanID())
	require.Len(t, edits.Events(), 1)
	require.Equal(t, "update skipped", edits.Events()[0].Name)
}

func TestDriver_Prometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	g, err := builder.BuildGraph(nil, nil, builder.Path(3))
	require.NoError(t, err)
	d := newDriver(t, g, []metric.Metric{betweenness.NewIncremental()},
		batch.WithRegisterer(reg), batch.WithNamespace("t"))

	_, err = d.Apply(context.Background(), mustBatch(t, 0, 1,
		diff.AddNode(3),
		diff.AddEdge(core.Edge{U: 2, V: 3}),
		diff.AddEdge(core.Edge{U: 1, V: 2}),
	))
	require.NoError(t, err)

	const want = `
# HELP t_batches_total Number of batches applied.
# TYPE t_batches_total counter
t_batches_total 1
# HELP t_edits_total Number of updates by kind and outcome.
# TYPE t_edits_total counter
t_edits_total{kind="edge_addition",outcome="applied"} 1
t_edits_total{kind="edge_addition",outcome="skipped"} 1
t_edits_total{kind="node_addition",outcome="applied"} 1
# HELP t_graph_nodes Live nodes after the last batch.
# TYPE t_graph_nodes gauge
t_graph_nodes 4
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want),
		"t_batches_total", "t_edits_total", "t_graph_nodes"))
	n, err := testutil.GatherAndCount(reg, "t_batch_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestDriver_InconsistentPolicy(t *testing.T) {
	u := diff.AddNode(5)
	ise := metric.NewInconsistentState("fake", u, 1, "broken")
	ise.Merge(metric.NewInconsistentState("fake", u, 4, "broken"))

	t.Run("Repair", func(t *testing.T) {
		f := &fakeMetric{name: "fake", err: ise}
		d := newDriver(t, core.NewGraph(), []metric.Metric{f})
		res, err := d.Apply(context.Background(), mustBatch(t, 0, 1, u))
		require.NoError(t, err)
		require.Equal(t, []core.NodeID{1, 4}, f.repaired)
		require.Equal(t, map[string]int{"fake": 2}, res.Repairs)
		require.Equal(t, 1, f.cleanups)
	})

	t.Run("Abort", func(t *testing.T) {
		f := &fakeMetric{name: "fake", err: ise}
		d := newDriver(t, core.NewGraph(), []metric.Metric{f}, batch.WithPolicy(batch.PolicyAbort))
		res, err := d.Apply(context.Background(), mustBatch(t, 0, 1, u))
		require.ErrorIs(t, err, metric.ErrInconsistentState)
		require.Nil(t, res)
		require.Empty(t, f.repaired)
		require.Zero(t, f.cleanups)
	})
}

func TestDriver_HookErrors(t *testing.T) {
	t.Run("UnsupportedAborts", func(t *testing.T) {
		f := &fakeMetric{name: "fake", err: metric.ErrUnsupportedEdit}
		d := newDriver(t, core.NewGraph(), []metric.Metric{f})
		_, err := d.Apply(context.Background(), mustBatch(t, 0, 1, diff.AddNode(1), diff.AddNode(2)))
		require.ErrorIs(t, err, metric.ErrUnsupportedEdit)
		require.Len(t, f.edits, 1)
	})

	t.Run("OtherErrorsContinue", func(t *testing.T) {
		f := &fakeMetric{name: "fake", err: errors.New("flaky")}
		d := newDriver(t, core.NewGraph(), []metric.Metric{f})
		res, err := d.Apply(context.Background(), mustBatch(t, 0, 1, diff.AddNode(1), diff.AddNode(2)))
		require.NoError(t, err)
		require.Len(t, f.edits, 2)
		require.Equal(t, 2, res.Applied[diff.NodeAddition])
	})
}

func TestDriver_VerifyRepairsCorruption(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Cycle(5))
	require.NoError(t, err)

	inc := betweenness.NewIncremental()
	d := newDriver(t, g, []metric.Metric{inc}, batch.WithVerify(1e-9))
	inc.Forest().AddScore(2, 3)

	res, err := d.Apply(context.Background(), mustBatch(t, 0, 1, diff.RemoveEdge(0, 1)))
	require.NoError(t, err)
	require.Equal(t, 5, res.Repairs[betweenness.NameIncremental])

	inc = betweenness.NewIncremental()
	d = newDriver(t, g, []metric.Metric{inc}, batch.WithVerify(0), batch.WithPolicy(batch.PolicyAbort))
	inc.Forest().AddScore(2, 3)
	_, err = d.Apply(context.Background(), mustBatch(t, 1, 2))
	require.ErrorIs(t, err, batch.ErrVerification)
}

func TestDriver_Construction(t *testing.T) {
	_, err := batch.New(nil, []metric.Metric{&fakeMetric{name: "a"}})
	require.ErrorIs(t, err, batch.ErrNilStore)
	_, err = batch.New(core.NewGraph(), nil)
	require.ErrorIs(t, err, batch.ErrNoMetrics)
	_, err = batch.New(core.NewGraph(), []metric.Metric{&fakeMetric{name: "a"}, &fakeMetric{name: "a"}})
	require.ErrorIs(t, err, batch.ErrDuplicateMetric)

	d, err := batch.New(core.NewGraph(), []metric.Metric{&fakeMetric{name: "a"}})
	require.NoError(t, err)
	_, err = d.Apply(context.Background(), mustBatch(t, 0, 1))
	require.ErrorIs(t, err, batch.ErrNotInitialized)
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []batch.Policy{batch.PolicyRepair, batch.PolicyAbort} {
		got, err := batch.ParsePolicy(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	_, err := batch.ParsePolicy("retry")
	require.ErrorIs(t, err, batch.ErrOption)
}
