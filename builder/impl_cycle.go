// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// impl_cycle.go - Cycle(n): a ring of n buses.
//
// Contract:
//   - n ≥ 3 (else ErrTooFewBuses).
//   - Emits lines (i, i+1) for i ascending, then the closing line (n-1, 0).
//
// Complexity: O(n) buses + O(n) branches.

package builder

import "github.com/katalvlaran/lvlgrid/network"

// Cycle returns a Constructor that appends a ring of n buses.
func Cycle(n int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMinBuses(methodCycle, n, minCycleBuses); err != nil {
			return err
		}
		first, err := addBuses(methodCycle, net, cfg, n)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err = addLine(methodCycle, net, first+i, first+(i+1)%n); err != nil {
				return err
			}
		}

		return nil
	}
}
