// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// validators.go - shared argument checks. Each returns a sentinel wrapped with
// the method tag, or nil.

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlgrid/network"
)

func validateMinBuses(method string, n, min int) error {
	if n < min {
		return fmt.Errorf("%s: n=%d (must be ≥ %d): %w", method, n, min, ErrTooFewBuses)
	}

	return nil
}

func validateProbability(method string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%s: p=%v: %w", method, p, ErrInvalidProbability)
	}

	return nil
}

func validateRNG(method string, cfg builderConfig) error {
	if cfg.rng == nil {
		return fmt.Errorf("%s: %w", method, ErrNeedRandSource)
	}

	return nil
}

// validateCount checks 0 ≤ k ≤ NumBuses and that at least min buses exist
// whenever k > 0.
func validateCount(method string, n *network.Network, k, min int) error {
	if k < 0 {
		return fmt.Errorf("%s: k=%d: %w", method, k, ErrInvalidCount)
	}
	if k == 0 {
		return nil
	}
	buses := n.NumBuses()
	if buses < min || k > buses {
		return fmt.Errorf("%s: k=%d with %d buses: %w", method, k, buses, ErrTooFewBuses)
	}

	return nil
}
