// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - numberFn    = i+1              (bus numbers are 1-based)
//   - rng         = nil              (first-k placement, no RandomSparse)
//   - injectionFn = defaultInjection (1.0 p.u., ±50% when an RNG is set)
//   - capacity    = defaultCapacity  (generator PMax, ±QMax/2)

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	// Bus number strategy: network index -> external bus number.
	numberFn func(int) int
	// RNG for stochastic choices; nil means no randomness.
	rng *rand.Rand
	// Active power drawn for loads and initial generator dispatch.
	injectionFn func(*rand.Rand) float64
	// Generator active power capacity in p.u.
	capacity float64
}

const (
	defaultInjection = 1.0
	defaultCapacity  = 2.0
	injectionSpread  = 0.5
)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		numberFn:    oneBased,
		rng:         nil,
		injectionFn: uniformInjection,
		capacity:    defaultCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func oneBased(i int) int { return i + 1 }

// uniformInjection returns defaultInjection, or a draw from
// defaultInjection·[1-spread, 1+spread) when r is set.
func uniformInjection(r *rand.Rand) float64 {
	if r == nil {
		return defaultInjection
	}

	return defaultInjection * (1 - injectionSpread + 2*injectionSpread*r.Float64())
}
