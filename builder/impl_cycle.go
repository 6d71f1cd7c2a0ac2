// SPDX-License-Identifier: MIT
// Package: dynlath/builder
//
// impl_cycle.go - implementation of Cycle(n) constructor.
//
// Contract:
//   - n ≥ 3 (else ErrTooFewVertices); a simple graph has no 2-cycles.
//   - Path on idFn(0..n-1) plus the closing edge idFn(n-1)-idFn(0).
//
// Complexity: O(n).

package builder

import (
	"fmt"

	"github.com/katalvlaran/dynlath/core"
)

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that builds a ring on n nodes.
func Cycle(n int) Constructor {
	return func(store core.Store, cfg builderConfig) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		if err := Path(n)(store, cfg); err != nil {
			return fmt.Errorf("%s: %w", methodCycle, err)
		}

		return link(store, methodCycle, cfg.idFn(n-1), cfg.idFn(0))
	}
}
