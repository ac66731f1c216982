// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// api.go - public entry-point for the builder package.
//
// Design contract:
//   - One orchestrator: BuildNetwork(nopts, bopts, cons...). Creates n, resolves cfg, runs cons in order.
//   - Factories are declared below and implemented in impl_*.go.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical networks.
//   - Safety: never panic at runtime; constructors return sentinel errors.
//
// AI-Hints:
//   - Compose a topology constructor (Path/Cycle/Grid/RandomSparse) with device
//     constructors (Slack/RegulatingGenerators/Loads/...) to assemble fixtures.
//   - Topologies append buses; calling two of them yields disjoint islands.
//   - Use WithSeed(...) to freeze RandomSparse and randomized device placement.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvlgrid/network"
)

// Constructor applies a deterministic network mutation using the resolved
// builderConfig. Constructors validate parameters before touching n and
// return sentinel errors; they never panic.
type Constructor func(n *network.Network, cfg builderConfig) error

// BuildNetwork creates a new network.Network with options nopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped with "BuildNetwork: %w" and returned
// immediately; the partially built network is discarded.
//
// Complexity: O(len(bopts)) to resolve options plus the sum of constructor costs.
func BuildNetwork(nopts []network.Option, bopts []BuilderOption, cons ...Constructor) (*network.Network, error) {
	n := network.NewNetwork(nopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildNetwork: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(n, cfg); err != nil {
			return nil, fmt.Errorf("BuildNetwork: %w", err)
		}
	}

	return n, nil
}

// Apply runs constructors against an existing network. It is the entry point
// for callers that already own a Network (e.g. one decoded from a case file).
func Apply(n *network.Network, bopts []BuilderOption, cons ...Constructor) error {
	if n == nil {
		return fmt.Errorf("Apply: nil network: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("Apply: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(n, cfg); err != nil {
			return fmt.Errorf("Apply: %w", err)
		}
	}

	return nil
}

// =============================================================================
// Topology factories - implemented in impl_path.go, impl_cycle.go,
// impl_grid.go and impl_random_sparse.go.
// =============================================================================
//
// Each topology appends its buses after the existing ones, numbering them via
// cfg.numberFn(index), and connects them with BranchLine branches.
//
//   Path(n)            - n ≥ 2 buses, n-1 lines.
//   Cycle(n)           - n ≥ 3 buses, n lines.
//   Grid(rows, cols)   - rows*cols buses in row-major order, 4-neighborhood.
//   RandomSparse(n, p) - n ≥ 1 buses, each pair i<j joined with probability p.
//
// =============================================================================
// Device factories - implemented in impl_devices.go.
// =============================================================================
//
// Each device factory places k devices on k distinct buses. Without an RNG
// the first k buses are used; with WithSeed/WithRand the buses are a random
// sample drawn from cfg.rng.
//
//   Slack(k), RegulatingGenerators(k), Generators(k), Loads(k),
//   TapChangers(k), PhaseShifters(k), SwitchedShunts(k), FixedShunts(k).
