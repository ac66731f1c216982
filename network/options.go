// SPDX-License-Identifier: MIT
// Package network: functional configuration.
//
// Option constructors validate their argument and panic on nonsensical values
// (programmer error); NewNetwork itself never fails.

package network

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvlgrid/metrics"
)

// Defaults.
const (
	// DefaultNumPeriods is the number of time snapshots of a fresh network.
	DefaultNumPeriods = 1

	// DefaultBasePower is the system base power in MVA.
	DefaultBasePower = 100.0
)

const (
	panicNumPeriods = "network: WithNumPeriods: periods must be >= 1"
	panicBasePower  = "network: WithBasePower: base power must be finite and > 0"
	panicNilLogger  = "network: WithLogger(nil)"
	panicNilMetrics = "network: WithMetrics(nil)"
)

// Option configures a Network before creation.
type Option func(n *Network)

// WithNumPeriods sets T, the number of independent time snapshots.
func WithNumPeriods(t int) Option {
	if t < 1 {
		panic(panicNumPeriods)
	}

	return func(n *Network) { n.numPeriods = t }
}

// WithBasePower sets the system base power (MVA).
func WithBasePower(mva float64) Option {
	if math.IsNaN(mva) || math.IsInf(mva, 0) || mva <= 0 {
		panic(panicBasePower)
	}

	return func(n *Network) { n.basePower = mva }
}

// WithLogger attaches a structured logger. Recompute passes log at Debug,
// rejected SetFlags calls at Warn.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(n *Network) { n.logger = l }
}

// WithMetrics attaches a Prometheus registry that observes SetFlags calls and
// recompute passes.
func WithMetrics(r *metrics.Registry) Option {
	if r == nil {
		panic(panicNilMetrics)
	}

	return func(n *Network) { n.metrics = r }
}

// discardLogger is the default: structured calls stay cheap and silent.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
