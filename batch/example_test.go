// SPDX-License-Identifier: MIT
package batch_test

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/katalvlaran/dynlath/batch"
	"github.com/katalvlaran/dynlath/betweenness"
	"github.com/katalvlaran/dynlath/builder"
	"github.com/katalvlaran/dynlath/core"
	"github.com/katalvlaran/dynlath/diff"
	"github.com/katalvlaran/dynlath/metric"
)

// ExampleDriver closes the path 0-1-2-3 into a cycle. Every node then lies
// on one of the two shortest paths between its two neighbors.
func ExampleDriver() {
	ctx := context.Background()
	g, _ := builder.BuildGraph(nil, nil, builder.Path(4))

	d, err := batch.New(g, []metric.Metric{betweenness.NewIncremental()})
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := d.Init(ctx); err != nil {
		fmt.Println(err)
		return
	}

	b, _ := diff.New(0, 1, diff.AddEdge(core.Edge{U: 0, V: 3}))
	res, err := d.Apply(ctx, b)
	if err != nil {
		fmt.Println(err)
		return
	}

	vals := res.Values[betweenness.NameIncremental]
	for _, n := range slices.Sorted(maps.Keys(vals)) {
		fmt.Printf("%d: %.2f\n", n, vals[n])
	}
	// Output:
	// 0: 0.50
	// 1: 0.50
	// 2: 0.50
	// 3: 0.50
}
