// SPDX-License-Identifier: MIT
// Package: dynlath/builder
//
// impl_grid.go - implementation of Grid(rows, cols) constructor.
//
// Contract:
//   - rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//   - Cell (r, c) is index r*cols+c; links go right then down, row-major.
//
// Complexity: O(rows·cols).

package builder

import (
	"fmt"

	"github.com/katalvlaran/dynlath/core"
)

const (
	methodGrid  = "Grid"
	minGridSide = 1
)

// Grid returns a Constructor that builds a rows×cols 4-neighbor lattice.
func Grid(rows, cols int) Constructor {
	return func(store core.Store, cfg builderConfig) error {
		if rows < minGridSide || cols < minGridSide {
			return fmt.Errorf("%s: %dx%d < min=%d: %w", methodGrid, rows, cols, minGridSide, ErrTooFewVertices)
		}
		for i := 0; i < rows*cols; i++ {
			if err := ensureNode(store, methodGrid, cfg.idFn(i)); err != nil {
				return err
			}
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				at := r*cols + c
				if c+1 < cols {
					if err := link(store, methodGrid, cfg.idFn(at), cfg.idFn(at+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := link(store, methodGrid, cfg.idFn(at), cfg.idFn(at+cols)); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
