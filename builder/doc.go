// SPDX-License-Identifier: MIT

// Package builder assembles synthetic power networks for tests, benchmarks
// and the lvlgrid CLI.
//
// What:
//
//   - Topologies: Path, Cycle, Grid, RandomSparse. Each appends buses and
//     connects them with lines.
//   - Devices: Slack, RegulatingGenerators, Generators, Loads, TapChangers,
//     PhaseShifters, SwitchedShunts, FixedShunts. Each places k devices on k
//     distinct existing buses.
//   - BuildNetwork composes constructors over a fresh network.Network; Apply
//     runs them against an existing one.
//
// Example:
//
//	n, err := builder.BuildNetwork(
//		[]network.Option{network.WithNumPeriods(4)},
//		[]builder.BuilderOption{builder.WithSeed(7)},
//		builder.Grid(5, 5),
//		builder.Slack(1),
//		builder.RegulatingGenerators(5),
//		builder.Loads(12),
//	)
//
// Determinism:
//
//	Without an RNG every constructor is a pure function of its arguments and
//	the network it runs on. With WithSeed the same seed and constructor order
//	give the same network.
//
// Errors:
//
//	ErrTooFewBuses, ErrInvalidCount, ErrInvalidProbability, ErrNeedRandSource,
//	ErrConstructFailed. Network errors are wrapped, never replaced.
package builder
