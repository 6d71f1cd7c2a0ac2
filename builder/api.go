// SPDX-License-Identifier: MIT
// Package: dynlath/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator per target: Build(store, ...) for any core.Store and
//     BuildGraph(...) for a fresh core.Graph. Both run constructors in order.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.
//   - Node insertion is idempotent inside constructors, so constructors compose
//     on shared identities (e.g. Star(5) then Path(3) shares node 0).

package builder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dynlath/core"
)

// Constructor applies a deterministic topology to store using the resolved
// builderConfig. Constructors validate parameters before touching the store
// and return sentinel errors, never panic.
type Constructor func(store core.Store, cfg builderConfig) error

// Build resolves bopts and applies every constructor to store in order.
// Any constructor error is wrapped with "Build: %w" and returned immediately.
func Build(store core.Store, bopts []BuilderOption, cons ...Constructor) error {
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(store, cfg); err != nil {
			return fmt.Errorf("Build: %w", err)
		}
	}

	return nil
}

// BuildGraph creates a new core.Graph with gopts and applies the constructors.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	if err := Build(g, bopts, cons...); err != nil {
		return nil, err
	}

	return g, nil
}

// ensureNode inserts id unless it already exists.
func ensureNode(store core.Store, method string, id core.NodeID) error {
	if err := store.AddNode(id); err != nil && !errors.Is(err, core.ErrNodeExists) {
		return fmt.Errorf("%s: AddNode(%d): %w", method, id, err)
	}

	return nil
}

// link adds edge u-v unless it already exists.
func link(store core.Store, method string, u, v core.NodeID) error {
	if err := store.AddEdge(core.Edge{U: u, V: v}); err != nil && !errors.Is(err, core.ErrEdgeExists) {
		return fmt.Errorf("%s: AddEdge(%d-%d): %w", method, u, v, err)
	}

	return nil
}
