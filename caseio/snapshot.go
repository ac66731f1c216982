// SPDX-License-Identifier: MIT
package caseio

import (
	"fmt"

	"github.com/katalvlaran/lvlgrid/network"
)

// FromNetwork captures the period-0 state of n as a Case. Flags are not part
// of a case; use a Plan to restore them.
func FromNetwork(n *network.Network) (*Case, error) {
	if n == nil {
		return nil, fmt.Errorf("FromNetwork: %w: nil network", ErrInvalidCase)
	}
	c := &Case{BasePower: n.BasePower(), NumPeriods: n.NumPeriods()}

	number := make([]int, n.NumBuses())
	for _, b := range n.Buses() {
		number[b.Index()] = b.Number()
		c.Buses = append(c.Buses, BusSpec{
			Number: b.Number(), Name: b.Name(), Slack: b.IsSlack(),
			VMag: b.VMag(0), VAng: b.VAng(0), VMax: b.VMax(), VMin: b.VMin(),
		})
	}
	ref := func(i int) *int {
		if i == network.NoBus {
			return nil
		}
		v := number[i]
		return &v
	}

	for i := 0; i < n.NumBranches(); i++ {
		br, err := n.Branch(i)
		if err != nil {
			return nil, fmt.Errorf("FromNetwork: %w", err)
		}
		c.Branches = append(c.Branches, BranchSpec{
			Type: br.Kind().String(), BusK: number[br.BusK()], BusM: number[br.BusM()], RegBus: ref(br.RegBus()),
			G: br.G(), B: br.B(), Ratio: br.Ratio(0), Phase: br.Phase(0),
			RatioMax: br.RatioMax(), RatioMin: br.RatioMin(), PhaseMax: br.PhaseMax(), PhaseMin: br.PhaseMin(),
			Outage: br.IsOnOutage(),
		})
	}
	for _, g := range n.Generators() {
		c.Generators = append(c.Generators, GeneratorSpec{
			Bus: number[g.Bus()], RegBus: ref(g.RegBus()), Outage: g.IsOnOutage(),
			P: g.P(0), Q: g.Q(0), PMax: g.PMax(), PMin: g.PMin(), QMax: g.QMax(), QMin: g.QMin(),
		})
	}
	for i := 0; i < n.NumLoads(); i++ {
		l, err := n.Load(i)
		if err != nil {
			return nil, fmt.Errorf("FromNetwork: %w", err)
		}
		c.Loads = append(c.Loads, LoadSpec{Bus: number[l.Bus()], P: l.P(0), Q: l.Q(0)})
	}
	for _, s := range n.Shunts() {
		c.Shunts = append(c.Shunts, ShuntSpec{
			Bus: number[s.Bus()], Type: s.Kind().String(), RegBus: ref(s.RegBus()),
			G: s.G(), B: s.B(0), BMax: s.BMax(), BMin: s.BMin(),
		})
	}
	for i := 0; i < n.NumVarGenerators(); i++ {
		v, err := n.VarGenerator(i)
		if err != nil {
			return nil, fmt.Errorf("FromNetwork: %w", err)
		}
		c.VarGenerators = append(c.VarGenerators, VarGeneratorSpec{
			Bus: number[v.Bus()], Name: v.Name(), P: v.P(0), Q: v.Q(0),
			PMax: v.PMax(), PMin: v.PMin(), PStd: v.PStd(), QMax: v.QMax(), QMin: v.QMin(),
		})
	}
	for i := 0; i < n.NumBatteries(); i++ {
		b, err := n.Battery(i)
		if err != nil {
			return nil, fmt.Errorf("FromNetwork: %w", err)
		}
		c.Batteries = append(c.Batteries, BatterySpec{
			Bus: number[b.Bus()], P: b.P(0), E: b.E(0), PMax: b.PMax(), PMin: b.PMin(),
			EMax: b.EMax(), EtaC: b.EtaC(), EtaD: b.EtaD(),
		})
	}

	return c, nil
}
