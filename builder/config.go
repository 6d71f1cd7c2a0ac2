// SPDX-License-Identifier: MIT
// Package: dynlath/builder
//
// config.go - resolved builder configuration and option constructors.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/dynlath/core"
)

// builderConfig is the immutable, resolved view of all BuilderOptions.
type builderConfig struct {
	// Node ID strategy: index -> ID (deterministic).
	idFn func(int) core.NodeID
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand
}

// BuilderOption customizes a builderConfig.
type BuilderOption func(*builderConfig)

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{idFn: func(i int) core.NodeID { return core.NodeID(i) }}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithOffset shifts every constructor index by base, so that index i maps to
// node base+i. Useful to place several components side by side.
func WithOffset(base core.NodeID) BuilderOption {
	return func(c *builderConfig) {
		c.idFn = func(i int) core.NodeID { return base + core.NodeID(i) }
	}
}

// WithIDFn overrides the index -> NodeID mapping. Panics on nil.
func WithIDFn(fn func(int) core.NodeID) BuilderOption {
	if fn == nil {
		panic("builder: WithIDFn(nil)")
	}

	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG for stochastic builders. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}
