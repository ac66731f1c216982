// SPDX-License-Identifier: MIT
package network_test

import (
	"testing"

	"github.com/katalvlaran/lvlgrid/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIslands(t *testing.T) {
	n := network.NewNetwork()
	for i := 1; i <= 6; i++ {
		_, err := n.AddBus(network.BusParams{Number: i})
		require.NoError(t, err)
	}
	line := func(k, m int) *network.Branch {
		br, err := n.AddBranch(network.BranchParams{Kind: network.BranchLine, BusK: k, BusM: m, RegBus: network.NoBus})
		require.NoError(t, err)
		return br
	}
	line(0, 1)
	line(2, 1)
	cut := line(3, 4)

	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4}, {5}}, n.Islands())
	assert.Equal(t, 3, n.NumIslands())

	cut.SetOutage(true)
	assert.Equal(t, 4, n.NumIslands())

	assert.Equal(t, 1, newScenario(t, 1).NumIslands())
	assert.Empty(t, network.NewNetwork().Islands())
}
