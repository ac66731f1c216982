// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// impl_random_sparse.go - RandomSparse(n, p): Erdős–Rényi G(n,p) over new buses.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewBuses); 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - Requires cfg.rng (else ErrNeedRandSource). Validation happens before any
//     bus is added.
//   - For i<j in lexicographic order, one Float64 draw per pair; a line is
//     added when the draw is < p. The result may be disconnected.
//
// Complexity: O(n^2) draws. Deterministic for a fixed seed.

package builder

import "github.com/katalvlaran/lvlgrid/network"

// RandomSparse returns a Constructor that appends n buses joined at random.
func RandomSparse(n int, p float64) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMinBuses(methodRandomSparse, n, minSparseBuses); err != nil {
			return err
		}
		if err := validateProbability(methodRandomSparse, p); err != nil {
			return err
		}
		if err := validateRNG(methodRandomSparse, cfg); err != nil {
			return err
		}
		first, err := addBuses(methodRandomSparse, net, cfg, n)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if cfg.rng.Float64() >= p {
					continue
				}
				if err = addLine(methodRandomSparse, net, first+i, first+j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
