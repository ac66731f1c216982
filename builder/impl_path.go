// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// impl_path.go - Path(n): a radial feeder of n buses.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewBuses).
//   - Appends n buses, then lines (b, b+1) for b ascending.
//
// Complexity: O(n) buses + O(n-1) branches.

package builder

import "github.com/katalvlaran/lvlgrid/network"

// Path returns a Constructor that appends a chain of n buses.
func Path(n int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMinBuses(methodPath, n, minPathBuses); err != nil {
			return err
		}
		first, err := addBuses(methodPath, net, cfg, n)
		if err != nil {
			return err
		}
		for i := 0; i < n-1; i++ {
			if err = addLine(methodPath, net, first+i, first+i+1); err != nil {
				return err
			}
		}

		return nil
	}
}
