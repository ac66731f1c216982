// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   - Option constructors validate and panic on meaningless inputs.
//     Constructors themselves never panic.
//   - Seeding is explicit via WithSeed or WithRand.

package builder

import "math/rand"

// BuilderOption customizes constructor behavior by mutating a builderConfig
// before the first constructor runs.
type BuilderOption func(*builderConfig)

// WithNumberScheme sets the bus number generator: network index -> number.
// The scheme must be injective; AddBus rejects duplicate numbers.
// Panics on nil.
func WithNumberScheme(fn func(int) int) BuilderOption {
	if fn == nil {
		panic("builder: WithNumberScheme(nil)")
	}
	return func(c *builderConfig) {
		c.numberFn = fn
	}
}

// WithRand provides an explicit RNG for stochastic builders.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithInjectionFn overrides the active power generator used by Loads and
// generator dispatch. The function receives the (possibly nil) RNG.
// Panics on nil.
func WithInjectionFn(fn func(*rand.Rand) float64) BuilderOption {
	if fn == nil {
		panic("builder: WithInjectionFn(nil)")
	}
	return func(c *builderConfig) {
		c.injectionFn = fn
	}
}

// WithCapacity sets the generator active power capacity in p.u.
// Panics if pMax <= 0.
func WithCapacity(pMax float64) BuilderOption {
	if !(pMax > 0) {
		panic("builder: WithCapacity(pMax<=0)")
	}
	return func(c *builderConfig) {
		c.capacity = pMax
	}
}
