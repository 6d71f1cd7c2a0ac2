// SPDX-License-Identifier: MIT

package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/dynlath/diff"
)

// Edit outcomes used as the "outcome" label.
const (
	outcomeApplied = "applied"
	outcomeSkipped = "skipped"
)

// collector holds the driver's prometheus instruments.
type collector struct {
	batches  prometheus.Counter
	edits    *prometheus.CounterVec
	repairs  *prometheus.CounterVec
	duration prometheus.Histogram
	metric   *prometheus.HistogramVec
	nodes    prometheus.Gauge
	edges    prometheus.Gauge
}

// newCollector builds the instruments and registers them with reg. A nil
// reg leaves them unregistered.
func newCollector(reg prometheus.Registerer, namespace string) *collector {
	f := promauto.With(reg)

	return &collector{
		batches: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Number of batches applied.",
		}),
		edits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_total",
			Help:      "Number of updates by kind and outcome.",
		}, []string{"kind", "outcome"}),
		repairs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repaired_roots_total",
			Help:      "Number of shortest-path trees recomputed after an inconsistency.",
		}, []string{"metric"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of Apply.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		metric: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "metric_duration_seconds",
			Help:      "Time spent in each metric per batch.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"metric"}),
		nodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Live nodes after the last batch.",
		}),
		edges: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edges after the last batch.",
		}),
	}
}

func (c *collector) edit(k diff.Kind, outcome string) {
	c.edits.WithLabelValues(k.String(), outcome).Inc()
}

func (c *collector) repaired(metric string, roots int) {
	c.repairs.WithLabelValues(metric).Add(float64(roots))
}

func (c *collector) observe(r *Result, nodes, edges int) {
	c.batches.Inc()
	c.duration.Observe(r.Timings.Total.Seconds())
	for name, d := range r.Timings.Metrics {
		c.metric.WithLabelValues(name).Observe(d.Seconds())
	}
	c.nodes.Set(float64(nodes))
	c.edges.Set(float64(edges))
}
