// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// impl_grid.go - Grid(rows, cols): a meshed rows×cols transmission grid.
//
// Contract:
//   - rows ≥ 1 and cols ≥ 1 (else ErrTooFewBuses).
//   - Buses are appended in row-major order; bus (r,c) has index first+r*cols+c.
//   - For each (r,c) emit the Right line, then the Bottom line, where present.
//
// Complexity: O(rows*cols) buses + O(2*rows*cols) branches.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvlgrid/network"
)

// Grid returns a Constructor that appends a rows×cols grid.
func Grid(rows, cols int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewBuses)
		}
		first, err := addBuses(methodGrid, net, cfg, rows*cols)
		if err != nil {
			return err
		}
		at := func(r, c int) int { return first + r*cols + c }
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err = addLine(methodGrid, net, at(r, c), at(r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err = addLine(methodGrid, net, at(r, c), at(r+1, c)); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
