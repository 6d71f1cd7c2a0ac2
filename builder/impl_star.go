// SPDX-License-Identifier: MIT
// Package: dynlath/builder
//
// impl_star.go - implementation of Star(n) and Wheel(n) constructors.
//
// Contract:
//   - Star: n ≥ 2 (else ErrTooFewVertices); hub idFn(0), leaves idFn(1..n-1),
//     spokes emitted in ascending leaf index.
//   - Wheel: n ≥ 4; a Star(n) whose leaves are also joined into a ring.
//
// Complexity: O(n).

package builder

import (
	"fmt"

	"github.com/katalvlaran/dynlath/core"
)

const (
	methodStar    = "Star"
	minStarNodes  = 2
	methodWheel   = "Wheel"
	minWheelNodes = 4
)

// Star returns a Constructor that builds a star with one hub and n-1 leaves.
func Star(n int) Constructor {
	return func(store core.Store, cfg builderConfig) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		hub := cfg.idFn(0)
		if err := ensureNode(store, methodStar, hub); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			leaf := cfg.idFn(i)
			if err := ensureNode(store, methodStar, leaf); err != nil {
				return err
			}
			if err := link(store, methodStar, hub, leaf); err != nil {
				return err
			}
		}

		return nil
	}
}

// Wheel returns a Constructor that builds a hub joined to a ring of n-1 nodes.
func Wheel(n int) Constructor {
	return func(store core.Store, cfg builderConfig) error {
		if n < minWheelNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodWheel, n, minWheelNodes, ErrTooFewVertices)
		}
		if err := Star(n)(store, cfg); err != nil {
			return fmt.Errorf("%s: %w", methodWheel, err)
		}
		for i := 1; i < n; i++ {
			next := i + 1
			if next == n {
				next = 1
			}
			if err := link(store, methodWheel, cfg.idFn(i), cfg.idFn(next)); err != nil {
				return err
			}
		}

		return nil
	}
}
