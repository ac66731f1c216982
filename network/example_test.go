// SPDX-License-Identifier: MIT
package network_test

import (
	"fmt"

	"github.com/katalvlaran/lvlgrid/network"
	"github.com/katalvlaran/lvlgrid/quantity"
)

// ExampleNetwork_SetFlags flags slack and regulated buses the way an OPF
// setup does and reads back the layout.
func ExampleNetwork_SetFlags() {
	// 1) Three buses: 1 is slack and regulated, 2 is regulated, 3 is free.
	n := network.NewNetwork()
	for i := 1; i <= 3; i++ {
		_, _ = n.AddBus(network.BusParams{Number: i, Slack: i == 1})
	}
	_, _ = n.AddGenerator(network.GeneratorParams{Bus: 0, RegBus: 0, PMax: 1})
	_, _ = n.AddGenerator(network.GeneratorParams{Bus: 1, RegBus: 1, PMax: 1})

	// 2) Slack first, then every regulated bus; the slack bus is not recounted.
	_ = n.SetFlags(quantity.ObjBus, quantity.FlagVars, network.BusPropSlack, quantity.BusVMag|quantity.BusVAng)
	fmt.Println("after slack:", n.NumVars())
	_ = n.SetFlags(quantity.ObjBus, quantity.FlagVars, network.BusPropRegByGen, quantity.BusVMag|quantity.BusVAng)
	fmt.Println("after reg_by_gen:", n.NumVars())

	// 3) An invalid object type is rejected and changes nothing.
	err := n.SetFlags(quantity.ObjLoad, quantity.FlagVars, network.PropAny)
	fmt.Println("load rejected:", err != nil, n.NumVars())

	b1, _ := n.Bus(1)
	fmt.Println("bus 2 VMAG/VANG:", b1.IndexVMag(0), b1.IndexVAng(0))

	// Output:
	// after slack: 2
	// after reg_by_gen: 4
	// load rejected: true 4
	// bus 2 VMAG/VANG: 2 3
}

// ExampleNetwork_GetVarValues shows a multi-period layout: each variable owns
// T contiguous entries.
func ExampleNetwork_GetVarValues() {
	n := network.NewNetwork(network.WithNumPeriods(2))
	_, _ = n.AddBus(network.BusParams{Number: 1})
	sh, _ := n.AddShunt(network.ShuntParams{Kind: network.ShuntSwitchedV, Bus: 0, RegBus: 0, B: 0.25, BMax: 0.5, BMin: -0.5})
	_ = sh.SetB(1, 0.3)

	_ = n.SetFlags(quantity.ObjShunt, quantity.FlagVars, network.ShuntPropSwitchedV, quantity.ShuntSusc)
	fmt.Println(n.GetVarValues(), sh.IndexB(0), sh.IndexB(1))

	// Output:
	// [0.25 0.3] 0 1
}
