// SPDX-License-Identifier: MIT
// Package: dynlath/builder
//
// impl_path.go - implementation of Path(n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices).
//   - Nodes idFn(0..n-1), edges idFn(i)-idFn(i+1) in ascending i.
//
// Complexity: O(n).

package builder

import (
	"fmt"

	"github.com/katalvlaran/dynlath/core"
)

const (
	methodPath   = "Path"
	minPathNodes = 1
)

// Path returns a Constructor that builds a simple path on n nodes.
func Path(n int) Constructor {
	return func(store core.Store, cfg builderConfig) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		for i := 0; i < n; i++ {
			if err := ensureNode(store, methodPath, cfg.idFn(i)); err != nil {
				return err
			}
		}
		for i := 0; i+1 < n; i++ {
			if err := link(store, methodPath, cfg.idFn(i), cfg.idFn(i+1)); err != nil {
				return err
			}
		}

		return nil
	}
}
