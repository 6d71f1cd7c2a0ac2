// SPDX-License-Identifier: MIT
// Package: dynlath/builder
//
// impl_diamond.go - implementation of DiamondChain(k) constructor.
//
// Contract:
//   - k ≥ 1 (else ErrTooFewVertices).
//   - Hubs idFn(3i) for i in 0..k; diamond i joins hub 3i to hub 3i+3
//     through idFn(3i+1) and idFn(3i+2).
//   - There are exactly 2^k shortest paths between the end hubs.
//
// Complexity: O(k).

package builder

import (
	"fmt"

	"github.com/katalvlaran/dynlath/core"
)

const (
	methodDiamondChain = "DiamondChain"
	minDiamonds        = 1
)

// DiamondChain returns a Constructor that chains k diamonds hub to hub.
func DiamondChain(k int) Constructor {
	return func(store core.Store, cfg builderConfig) error {
		if k < minDiamonds {
			return fmt.Errorf("%s: k=%d < min=%d: %w", methodDiamondChain, k, minDiamonds, ErrTooFewVertices)
		}
		for i := 0; i <= 3*k; i++ {
			if err := ensureNode(store, methodDiamondChain, cfg.idFn(i)); err != nil {
				return err
			}
		}
		for i := 0; i < k; i++ {
			hub, next := 3*i, 3*i+3
			for _, mid := range []int{hub + 1, hub + 2} {
				if err := link(store, methodDiamondChain, cfg.idFn(hub), cfg.idFn(mid)); err != nil {
					return err
				}
				if err := link(store, methodDiamondChain, cfg.idFn(mid), cfg.idFn(next)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
