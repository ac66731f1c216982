// SPDX-License-Identifier: MIT
// Package network_test contains shared fixtures for the network tests.
//
// The scenario network has a fully known topology, so every count asserted in
// the tests can be derived by hand from the constants below.

package network_test

import (
	"testing"

	"github.com/katalvlaran/lvlgrid/network"
	"github.com/katalvlaran/lvlgrid/quantity"
	"github.com/stretchr/testify/require"
)

// Scenario topology.
const (
	scenBuses       = 200
	scenSlack       = 5  // buses 0..4
	scenRegByGen    = 40 // buses 0..39, each regulated by its own generator
	scenPlainGens   = 10 // non-regulating generators on buses 100..109
	scenTapV        = 20 // tap-changer-V transformers regulating buses 40..59
	scenTapQ        = 3
	scenPhase       = 4
	scenSwitched    = 10 // switched-V shunts regulating buses 60..69
	scenFixedShunts = 5  // fixed shunts on buses 150..154
	scenLoads       = 100
	scenLines       = scenBuses - 1

	// Overlaps: one extra tap-V on bus 10 (already reg-by-gen), one extra
	// switched shunt on bus 45 (reg-by-tran) and one on bus 0 (slack).
	scenRegByTran       = scenTapV + 1
	scenRegByShunt      = scenSwitched + 2
	scenAllTapV         = scenTapV + 1
	scenAllSwitched     = scenSwitched + 2
	scenGens            = scenRegByGen + scenPlainGens
	scenFreeBuses       = scenBuses - scenRegByGen - scenTapV - scenSwitched
	scenBranches        = scenLines + scenAllTapV + scenTapQ + scenPhase
	scenShunts          = scenAllSwitched + scenFixedShunts
	susceptanceStep     = 0.01
	voltageStep         = 1e-4
	scenGenPMax         = 2.0
	scenLoadP           = 0.5
	scenSlackGenVoltage = 1.02
)

// newScenario builds the reference network with T = periods.
func newScenario(t *testing.T, periods int) *network.Network {
	t.Helper()
	n := network.NewNetwork(network.WithNumPeriods(periods))

	// 1) Buses, slack first.
	for i := 0; i < scenBuses; i++ {
		v := 1 + voltageStep*float64(i)
		if i < scenSlack {
			v = scenSlackGenVoltage
		}
		_, err := n.AddBus(network.BusParams{Number: i + 1, Slack: i < scenSlack, VMag: v, VAng: 0.001 * float64(i)})
		require.NoError(t, err)
	}

	// 2) Lines forming a chain.
	for i := 0; i < scenLines; i++ {
		_, err := n.AddBranch(network.BranchParams{Kind: network.BranchLine, BusK: i, BusM: i + 1, RegBus: network.NoBus, B: -10})
		require.NoError(t, err)
	}

	// 3) Transformers.
	for i := 0; i < scenTapV; i++ {
		addBranch(t, n, network.BranchParams{Kind: network.BranchTapV, BusK: 40 + i, BusM: 120 + i, RegBus: 40 + i, Ratio: 1, RatioMax: 1.1, RatioMin: 0.9})
	}
	addBranch(t, n, network.BranchParams{Kind: network.BranchTapV, BusK: 10, BusM: 11, RegBus: 10, Ratio: 1.01, RatioMax: 1.1, RatioMin: 0.9})
	for i := 0; i < scenTapQ; i++ {
		addBranch(t, n, network.BranchParams{Kind: network.BranchTapQ, BusK: 70 + i, BusM: 170 + i, RegBus: network.NoBus, Ratio: 0.98, RatioMax: 1.05, RatioMin: 0.95})
	}
	for i := 0; i < scenPhase; i++ {
		addBranch(t, n, network.BranchParams{Kind: network.BranchPhaseShifter, BusK: 80 + i, BusM: 180 + i, RegBus: network.NoBus, Phase: 0.1, PhaseMax: 0.5, PhaseMin: -0.5})
	}

	// 4) Generators.
	for i := 0; i < scenRegByGen; i++ {
		_, err := n.AddGenerator(network.GeneratorParams{Bus: i, RegBus: i, P: 1, PMax: scenGenPMax, PMin: 0, QMax: 1, QMin: -1})
		require.NoError(t, err)
	}
	for i := 0; i < scenPlainGens; i++ {
		_, err := n.AddGenerator(network.GeneratorParams{Bus: 100 + i, RegBus: network.NoBus, P: 0.5, PMax: 1, PMin: 0.5, QMax: 0.5, QMin: -0.5})
		require.NoError(t, err)
	}

	// 5) Loads on the upper half.
	for i := 0; i < scenLoads; i++ {
		_, err := n.AddLoad(network.LoadParams{Bus: 100 + i, P: scenLoadP, Q: 0.1})
		require.NoError(t, err)
	}

	// 6) Shunts.
	for i := 0; i < scenSwitched; i++ {
		addShunt(t, n, network.ShuntParams{Kind: network.ShuntSwitchedV, Bus: 60 + i, RegBus: 60 + i})
	}
	addShunt(t, n, network.ShuntParams{Kind: network.ShuntSwitchedV, Bus: 45, RegBus: 45})
	addShunt(t, n, network.ShuntParams{Kind: network.ShuntSwitchedV, Bus: 0, RegBus: 0})
	for i := 0; i < scenFixedShunts; i++ {
		addShunt(t, n, network.ShuntParams{Kind: network.ShuntFixed, Bus: 150 + i, RegBus: network.NoBus})
	}

	return n
}

func addBranch(t *testing.T, n *network.Network, p network.BranchParams) {
	t.Helper()
	_, err := n.AddBranch(p)
	require.NoError(t, err)
}

// addShunt gives every shunt a distinct susceptance inside wide limits.
func addShunt(t *testing.T, n *network.Network, p network.ShuntParams) {
	t.Helper()
	p.B = susceptanceStep * float64(n.NumShunts()+1)
	p.BMax, p.BMin = 1, -1
	_, err := n.AddShunt(p)
	require.NoError(t, err)
}

// flagAll marks every quantity of every flaggable type with fs.
func flagAll(t *testing.T, n *network.Network, fs quantity.FlagSet) {
	t.Helper()
	for _, typ := range quantity.CanonicalOrder {
		require.NoError(t, n.SetFlags(typ, fs, network.PropAny, quantity.FullMask(typ)))
	}
}

// totalWidth sums the slot widths of every registered quantity of typ.
func totalWidth(typ quantity.ObjectType) int {
	w := 0
	for _, q := range quantity.Quantities(typ) {
		w += q.Width
	}

	return w
}
