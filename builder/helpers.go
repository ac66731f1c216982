// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// helpers.go - bus appending, line emission and bus sampling.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvlgrid/network"
)

// addBuses appends count buses numbered by cfg.numberFn and returns the index
// of the first one.
func addBuses(method string, n *network.Network, cfg builderConfig, count int) (int, error) {
	first := n.NumBuses()
	for i := 0; i < count; i++ {
		idx := first + i
		if _, err := n.AddBus(network.BusParams{Number: cfg.numberFn(idx)}); err != nil {
			return 0, fmt.Errorf("%s: AddBus(%d): %w", method, idx, err)
		}
	}

	return first, nil
}

func addLine(method string, n *network.Network, k, m int) error {
	_, err := n.AddBranch(network.BranchParams{
		Kind:   network.BranchLine,
		BusK:   k,
		BusM:   m,
		RegBus: network.NoBus,
		G:      lineG,
		B:      lineB,
	})
	if err != nil {
		return fmt.Errorf("%s: AddBranch(%d,%d): %w", method, k, m, err)
	}

	return nil
}

// pickBuses returns k distinct bus indices: the first k without an RNG, a
// random sample otherwise.
func pickBuses(n *network.Network, cfg builderConfig, k int) []int {
	total := n.NumBuses()
	if cfg.rng == nil {
		out := make([]int, k)
		for i := range out {
			out[i] = i
		}

		return out
	}

	return cfg.rng.Perm(total)[:k]
}

// neighbor returns the bus paired with i for two-terminal devices.
func neighbor(n *network.Network, i int) int {
	return (i + 1) % n.NumBuses()
}
