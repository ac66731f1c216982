// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Implementations attach method context with %w.
//   - Errors returned by the network package pass through wrapped, so
//     errors.Is(err, network.ErrDuplicateBusNumber) also works.

package builder

import "errors"

// ErrTooFewBuses indicates that a size parameter (n, rows, cols) is smaller
// than the constructor's minimum, or that the network holds fewer buses than a
// device constructor needs.
var ErrTooFewBuses = errors.New("builder: too few buses")

// ErrInvalidCount indicates a negative device count.
var ErrInvalidCount = errors.New("builder: invalid device count")

// ErrInvalidProbability indicates a probability outside [0,1] (or NaN).
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor was run without
// WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a programmer error at the orchestration level
// (nil constructor, nil network).
var ErrConstructFailed = errors.New("builder: construction failed")
