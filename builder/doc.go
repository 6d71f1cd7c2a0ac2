// SPDX-License-Identifier: MIT

// Package builder provides deterministic topology constructors (path, cycle,
// star, wheel, complete, grid, Erdős–Rényi) that populate any core.Store.
//
// Constructors are composable closures applied in order by Build or
// BuildGraph. Indices map to node identities through the configured ID
// function (identity by default, see WithOffset), and stochastic
// constructors draw only from the configured RNG (see WithSeed).
//
//	g, err := builder.BuildGraph(nil, nil, builder.Star(5))
//	// hub 0 linked to leaves 1..4
package builder
