// SPDX-License-Identifier: MIT

// Package dynlath keeps betweenness centrality current while an undirected,
// unweighted graph evolves in batches of edits.
//
// Instead of rerunning Brandes after every change, the incremental metric
// keeps one shortest-path tree per node and patches only the part of each
// tree an edit can reach. A recomputing metric with the same surface serves
// as a baseline and as a fallback.
//
// Layout:
//
//	core/        graph storage contract and the in-memory Graph
//	gonumstore/  the same contract over gonum's simple.UndirectedGraph
//	diff/        updates, batches and their canonical order
//	bfs/         reference breadth-first search with path counts
//	spt/         per-root shortest-path trees, the forest and its checker
//	brandes/     from-scratch Brandes over a core.Reader
//	metric/      the lifecycle every metric follows inside a batch
//	betweenness/ the incremental and the recomputing metric
//	batch/       the driver: ordering, hooks, repair, tracing and Prometheus
//	config/      koanf-backed settings and driver wiring
//	logging/     slog construction and the compact console handler
//	builder/     deterministic graph topologies for tests and benchmarks
//
// Scores follow the undirected convention: each unordered pair (s, t) counts
// once, so a node's score equals gonum's network.Betweenness halved.
//
// Quick start:
//
//	g, _ := builder.BuildGraph(nil, nil, builder.Path(4))
//	d, _ := batch.New(g, []metric.Metric{betweenness.NewIncremental()})
//	_ = d.Init(ctx)
//	b, _ := diff.New(0, 1, diff.AddEdge(core.Edge{U: 0, V: 3}))
//	res, _ := d.Apply(ctx, b)
//	fmt.Println(res.Values[betweenness.NameIncremental])
package dynlath
