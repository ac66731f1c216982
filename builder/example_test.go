// SPDX-License-Identifier: MIT
package builder_test

import (
	"fmt"

	"github.com/katalvlaran/lvlgrid/builder"
	"github.com/katalvlaran/lvlgrid/network"
	"github.com/katalvlaran/lvlgrid/quantity"
)

// ExampleBuildNetwork builds a small meshed grid and flags regulated buses.
func ExampleBuildNetwork() {
	n, err := builder.BuildNetwork(
		[]network.Option{network.WithNumPeriods(3)},
		nil,
		builder.Grid(3, 3),
		builder.Slack(1),
		builder.RegulatingGenerators(3),
		builder.Loads(6),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = n.SetFlags(quantity.ObjBus, quantity.FlagVars, network.BusPropRegByGen, quantity.BusVMag|quantity.BusVAng)
	fmt.Println(n.NumBuses(), n.NumBranches(), n.NumVars())

	// Output:
	// 9 12 18
}
