// SPDX-License-Identifier: MIT
// Package network: topology counters.
//
// Counters are pure reads of the current topology; they never touch the flag
// state or the index cache.

package network

// NumSlackBuses counts slack buses.
func (n *Network) NumSlackBuses() int {
	return n.countBuses(func(b *Bus) bool { return b.IsSlack() })
}

// NumBusesRegByGen counts buses regulated by at least one generator.
func (n *Network) NumBusesRegByGen() int {
	return n.countBuses(func(b *Bus) bool { return b.IsRegulatedByGen() })
}

// NumBusesRegByTran counts buses regulated by at least one tap-changer-V branch.
func (n *Network) NumBusesRegByTran() int {
	return n.countBuses(func(b *Bus) bool { return b.IsRegulatedByTran() })
}

// NumBusesRegByTranOnly counts buses whose precedence class is BusClassRegByTran.
func (n *Network) NumBusesRegByTranOnly() int {
	return n.countBuses(func(b *Bus) bool { return classify(b) == BusClassRegByTran })
}

// NumBusesRegByShunt counts buses regulated by at least one switched-V shunt.
func (n *Network) NumBusesRegByShunt() int {
	return n.countBuses(func(b *Bus) bool { return b.IsRegulatedByShunt() })
}

// NumBusesRegByShuntOnly counts buses whose precedence class is BusClassRegByShunt.
func (n *Network) NumBusesRegByShuntOnly() int {
	return n.countBuses(func(b *Bus) bool { return classify(b) == BusClassRegByShunt })
}

// NumRegGens counts voltage regulating generators.
func (n *Network) NumRegGens() int {
	return n.countGens(func(g *Generator) bool { return g.IsRegulator() })
}

// NumSlackGens counts generators on slack buses.
func (n *Network) NumSlackGens() int {
	return n.countGens(func(g *Generator) bool { return g.IsSlack() })
}

// NumTapChangers counts tap changers of either kind.
func (n *Network) NumTapChangers() int {
	return n.countBranches(func(br *Branch) bool { return br.IsTapChanger() })
}

// NumTapChangersV counts voltage regulating tap changers.
func (n *Network) NumTapChangersV() int {
	return n.countBranches(func(br *Branch) bool { return br.IsTapChangerV() })
}

// NumTapChangersQ counts reactive flow regulating tap changers.
func (n *Network) NumTapChangersQ() int {
	return n.countBranches(func(br *Branch) bool { return br.IsTapChangerQ() })
}

// NumPhaseShifters counts phase shifters.
func (n *Network) NumPhaseShifters() int {
	return n.countBranches(func(br *Branch) bool { return br.IsPhaseShifter() })
}

// NumLines counts transmission lines.
func (n *Network) NumLines() int {
	return n.countBranches(func(br *Branch) bool { return br.IsLine() })
}

// NumFixedTrans counts fixed-tap transformers.
func (n *Network) NumFixedTrans() int {
	return n.countBranches(func(br *Branch) bool { return br.IsFixedTran() })
}

// NumSwitchedShunts counts switched-V shunts.
func (n *Network) NumSwitchedShunts() int {
	return n.countShunts(func(s *Shunt) bool { return s.IsSwitchedV() })
}

// NumFixedShunts counts fixed shunts.
func (n *Network) NumFixedShunts() int {
	return n.countShunts(func(s *Shunt) bool { return s.IsFixed() })
}

func (n *Network) countBuses(pred func(*Bus) bool) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	c := 0
	for _, b := range n.buses {
		if pred(b) {
			c++
		}
	}

	return c
}

func (n *Network) countGens(pred func(*Generator) bool) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	c := 0
	for _, g := range n.gens {
		if pred(g) {
			c++
		}
	}

	return c
}

func (n *Network) countBranches(pred func(*Branch) bool) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	c := 0
	for _, br := range n.branches {
		if pred(br) {
			c++
		}
	}

	return c
}

func (n *Network) countShunts(pred func(*Shunt) bool) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	c := 0
	for _, s := range n.shunts {
		if pred(s) {
			c++
		}
	}

	return c
}
