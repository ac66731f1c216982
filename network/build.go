// SPDX-License-Identifier: MIT
// Package network: construction.
//
// Add* methods validate their parameters, append a new component with the next
// free index and maintain the bus back-references (connected and regulating
// components). References use indices into the network's collections; pass
// NoBus in a RegBus field for a component that regulates nothing.
//
// Every Add* marks the index cache dirty.

package network

import (
	"fmt"
	"math"
)

// BusParams describes a new bus. Zero VMag defaults to 1.0 p.u.; zero VMax and
// VMin default to 1.1 / 0.9.
type BusParams struct {
	Number int
	Name   string
	Slack  bool
	VMag   float64
	VAng   float64
	VMax   float64
	VMin   float64
}

// BranchParams describes a new branch. Zero Ratio defaults to 1; zero limits
// collapse onto the initial ratio/phase. RegBus is required for BranchTapV and
// ignored for every other kind.
type BranchParams struct {
	Kind     BranchKind
	BusK     int
	BusM     int
	RegBus   int
	G, B     float64
	Ratio    float64
	Phase    float64
	RatioMax float64
	RatioMin float64
	PhaseMax float64
	PhaseMin float64
	Outage   bool
}

// GeneratorParams describes a new generator. RegBus is NoBus for a unit that
// does not regulate voltage.
type GeneratorParams struct {
	Bus    int
	RegBus int
	Outage bool
	P, Q   float64
	PMax   float64
	PMin   float64
	QMax   float64
	QMin   float64
}

// LoadParams describes a new load.
type LoadParams struct {
	Bus  int
	P, Q float64
}

// ShuntParams describes a new shunt. RegBus is required for ShuntSwitchedV and
// ignored for fixed shunts. Zero BMax and BMin collapse onto B.
type ShuntParams struct {
	Kind   ShuntKind
	Bus    int
	RegBus int
	G, B   float64
	BMax   float64
	BMin   float64
}

// VarGeneratorParams describes a new variable generator.
type VarGeneratorParams struct {
	Bus  int
	Name string
	P, Q float64
	PMax float64
	PMin float64
	PStd float64
	QMax float64
	QMin float64
}

// BatteryParams describes a new battery. P is the net charging power: positive
// values charge, negative values discharge. Zero efficiencies default to 1.
type BatteryParams struct {
	Bus  int
	P    float64
	E    float64
	PMax float64
	PMin float64
	EMax float64
	EtaC float64
	EtaD float64
}

// AddBus appends a bus.
func (n *Network) AddBus(p BusParams) (*Bus, error) {
	if p.VMag == 0 {
		p.VMag = 1
	}
	if p.VMax == 0 && p.VMin == 0 {
		p.VMax, p.VMin = 1.1, 0.9
	}
	if !finite(p.VMag, p.VAng, p.VMax, p.VMin) || p.VMin > p.VMax {
		return nil, fmt.Errorf("AddBus: bus %d: %w", p.Number, ErrInvalidParams)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, dup := n.busIndex[p.Number]; dup {
		return nil, fmt.Errorf("AddBus: number %d: %w", p.Number, ErrDuplicateBusNumber)
	}
	b := &Bus{
		number: p.Number,
		name:   p.Name,
		slack:  p.Slack,
		vMag:   fill(n.numPeriods, p.VMag),
		vAng:   fill(n.numPeriods, p.VAng),
		vMax:   p.VMax,
		vMin:   p.VMin,
	}
	b.init(n, len(n.buses))
	n.buses = append(n.buses, b)
	n.busIndex[p.Number] = b.index
	n.dirty = true

	return b, nil
}

// AddBranch appends a branch between two existing buses.
func (n *Network) AddBranch(p BranchParams) (*Branch, error) {
	if p.Kind < BranchLine || p.Kind > BranchPhaseShifter {
		return nil, fmt.Errorf("AddBranch: kind %d: %w", int(p.Kind), ErrInvalidParams)
	}
	if p.Ratio == 0 {
		p.Ratio = 1
	}
	if p.RatioMax == 0 && p.RatioMin == 0 {
		p.RatioMax, p.RatioMin = p.Ratio, p.Ratio
	}
	if p.PhaseMax == 0 && p.PhaseMin == 0 {
		p.PhaseMax, p.PhaseMin = p.Phase, p.Phase
	}
	if !finite(p.G, p.B, p.Ratio, p.Phase, p.RatioMax, p.RatioMin, p.PhaseMax, p.PhaseMin) ||
		p.RatioMin > p.RatioMax || p.PhaseMin > p.PhaseMax {
		return nil, fmt.Errorf("AddBranch: %w", ErrInvalidParams)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.hasBus(p.BusK) || !n.hasBus(p.BusM) {
		return nil, fmt.Errorf("AddBranch: terminals %d-%d: %w", p.BusK, p.BusM, ErrBusNotFound)
	}
	reg := NoBus
	if p.Kind == BranchTapV {
		if !n.hasBus(p.RegBus) {
			return nil, fmt.Errorf("AddBranch: regulated bus %d: %w", p.RegBus, ErrBusNotFound)
		}
		reg = p.RegBus
	}
	br := &Branch{
		kind:     p.Kind,
		busK:     p.BusK,
		busM:     p.BusM,
		regBus:   reg,
		outage:   p.Outage,
		g:        p.G,
		b:        p.B,
		ratio:    fill(n.numPeriods, p.Ratio),
		phase:    fill(n.numPeriods, p.Phase),
		ratioMax: p.RatioMax,
		ratioMin: p.RatioMin,
		phaseMax: p.PhaseMax,
		phaseMin: p.PhaseMin,
	}
	br.init(n, len(n.branches))
	n.branches = append(n.branches, br)
	n.buses[p.BusK].branchesK = append(n.buses[p.BusK].branchesK, br.index)
	n.buses[p.BusM].branchesM = append(n.buses[p.BusM].branchesM, br.index)
	if reg != NoBus {
		n.buses[reg].regTrans = append(n.buses[reg].regTrans, br.index)
	}
	n.dirty = true

	return br, nil
}

// AddGenerator appends a generator.
func (n *Network) AddGenerator(p GeneratorParams) (*Generator, error) {
	if !finite(p.P, p.Q, p.PMax, p.PMin, p.QMax, p.QMin) || p.PMin > p.PMax || p.QMin > p.QMax {
		return nil, fmt.Errorf("AddGenerator: %w", ErrInvalidParams)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.hasBus(p.Bus) {
		return nil, fmt.Errorf("AddGenerator: bus %d: %w", p.Bus, ErrBusNotFound)
	}
	if p.RegBus != NoBus && !n.hasBus(p.RegBus) {
		return nil, fmt.Errorf("AddGenerator: regulated bus %d: %w", p.RegBus, ErrBusNotFound)
	}
	g := &Generator{
		bus:    p.Bus,
		regBus: p.RegBus,
		outage: p.Outage,
		p:      fill(n.numPeriods, p.P),
		q:      fill(n.numPeriods, p.Q),
		pMax:   p.PMax,
		pMin:   p.PMin,
		qMax:   p.QMax,
		qMin:   p.QMin,
	}
	g.init(n, len(n.gens))
	n.gens = append(n.gens, g)
	n.buses[p.Bus].gens = append(n.buses[p.Bus].gens, g.index)
	if p.RegBus != NoBus {
		n.buses[p.RegBus].regGens = append(n.buses[p.RegBus].regGens, g.index)
	}
	n.dirty = true

	return g, nil
}

// AddLoad appends a load.
func (n *Network) AddLoad(p LoadParams) (*Load, error) {
	if !finite(p.P, p.Q) {
		return nil, fmt.Errorf("AddLoad: %w", ErrInvalidParams)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.hasBus(p.Bus) {
		return nil, fmt.Errorf("AddLoad: bus %d: %w", p.Bus, ErrBusNotFound)
	}
	l := &Load{bus: p.Bus, p: fill(n.numPeriods, p.P), q: fill(n.numPeriods, p.Q)}
	l.init(n, len(n.loads))
	n.loads = append(n.loads, l)
	n.buses[p.Bus].loads = append(n.buses[p.Bus].loads, l.index)
	n.dirty = true

	return l, nil
}

// AddShunt appends a shunt.
func (n *Network) AddShunt(p ShuntParams) (*Shunt, error) {
	if p.Kind != ShuntFixed && p.Kind != ShuntSwitchedV {
		return nil, fmt.Errorf("AddShunt: kind %d: %w", int(p.Kind), ErrInvalidParams)
	}
	if p.BMax == 0 && p.BMin == 0 {
		p.BMax, p.BMin = p.B, p.B
	}
	if !finite(p.G, p.B, p.BMax, p.BMin) || p.BMin > p.BMax {
		return nil, fmt.Errorf("AddShunt: %w", ErrInvalidParams)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.hasBus(p.Bus) {
		return nil, fmt.Errorf("AddShunt: bus %d: %w", p.Bus, ErrBusNotFound)
	}
	reg := NoBus
	if p.Kind == ShuntSwitchedV {
		if !n.hasBus(p.RegBus) {
			return nil, fmt.Errorf("AddShunt: regulated bus %d: %w", p.RegBus, ErrBusNotFound)
		}
		reg = p.RegBus
	}
	s := &Shunt{
		kind:   p.Kind,
		bus:    p.Bus,
		regBus: reg,
		g:      p.G,
		b:      fill(n.numPeriods, p.B),
		bMax:   p.BMax,
		bMin:   p.BMin,
	}
	s.init(n, len(n.shunts))
	n.shunts = append(n.shunts, s)
	n.buses[p.Bus].shunts = append(n.buses[p.Bus].shunts, s.index)
	if reg != NoBus {
		n.buses[reg].regShunts = append(n.buses[reg].regShunts, s.index)
	}
	n.dirty = true

	return s, nil
}

// AddVarGenerator appends a variable generator.
func (n *Network) AddVarGenerator(p VarGeneratorParams) (*VarGenerator, error) {
	if !finite(p.P, p.Q, p.PMax, p.PMin, p.PStd, p.QMax, p.QMin) || p.PMin > p.PMax || p.QMin > p.QMax || p.PStd < 0 {
		return nil, fmt.Errorf("AddVarGenerator: %w", ErrInvalidParams)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	return n.addVarGen(p)
}

func (n *Network) addVarGen(p VarGeneratorParams) (*VarGenerator, error) {
	if !n.hasBus(p.Bus) {
		return nil, fmt.Errorf("AddVarGenerator: bus %d: %w", p.Bus, ErrBusNotFound)
	}
	v := &VarGenerator{
		bus:  p.Bus,
		name: p.Name,
		p:    fill(n.numPeriods, p.P),
		q:    fill(n.numPeriods, p.Q),
		pMax: p.PMax,
		pMin: p.PMin,
		pStd: p.PStd,
		qMax: p.QMax,
		qMin: p.QMin,
	}
	v.init(n, len(n.varGens))
	n.varGens = append(n.varGens, v)
	n.buses[p.Bus].varGens = append(n.buses[p.Bus].varGens, v.index)
	n.dirty = true

	return v, nil
}

// AddBattery appends a battery.
func (n *Network) AddBattery(p BatteryParams) (*Battery, error) {
	if p.EtaC == 0 {
		p.EtaC = 1
	}
	if p.EtaD == 0 {
		p.EtaD = 1
	}
	if !finite(p.P, p.E, p.PMax, p.PMin, p.EMax, p.EtaC, p.EtaD) ||
		p.PMin > 0 || p.PMax < 0 || p.EMax < 0 || p.E < 0 || p.E > p.EMax {
		return nil, fmt.Errorf("AddBattery: %w", ErrInvalidParams)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	return n.addBattery(p)
}

func (n *Network) addBattery(p BatteryParams) (*Battery, error) {
	if !n.hasBus(p.Bus) {
		return nil, fmt.Errorf("AddBattery: bus %d: %w", p.Bus, ErrBusNotFound)
	}
	pc, pd := math.Max(p.P, 0), math.Max(-p.P, 0)
	b := &Battery{
		bus:  p.Bus,
		pc:   fill(n.numPeriods, pc),
		pd:   fill(n.numPeriods, pd),
		e:    fill(n.numPeriods, p.E),
		pMax: p.PMax,
		pMin: p.PMin,
		eMax: p.EMax,
		etaC: p.EtaC,
		etaD: p.EtaD,
	}
	b.init(n, len(n.batteries))
	n.batteries = append(n.batteries, b)
	n.buses[p.Bus].batteries = append(n.buses[p.Bus].batteries, b.index)
	n.dirty = true

	return b, nil
}

// AddBatteries places one battery on each listed bus. Capacities are
// percentages of the peak total load P, split evenly: each unit gets
// P_max = -P_min = powerPct% * peak / len(buses) and
// E_max = energyPct% * peak / len(buses), starting half charged.
//
// All bus indices are checked before anything is added.
func (n *Network) AddBatteries(buses []int, powerPct, energyPct float64) error {
	if !finite(powerPct, energyPct) || powerPct < 0 || energyPct < 0 {
		return fmt.Errorf("AddBatteries: %w", ErrInvalidParams)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.checkBuses(buses); err != nil {
		return fmt.Errorf("AddBatteries: %w", err)
	}
	if len(buses) == 0 {
		return nil
	}
	share := n.peakLoadP() / float64(len(buses))
	pMax := powerPct / 100 * share
	eMax := energyPct / 100 * share
	for _, bus := range buses {
		if _, err := n.addBattery(BatteryParams{Bus: bus, PMax: pMax, PMin: -pMax, EMax: eMax, E: eMax / 2, EtaC: 1, EtaD: 1}); err != nil {
			return fmt.Errorf("AddBatteries: %w", err)
		}
	}

	return nil
}

// AddVarGenerators places one variable generator on each listed bus.
// capacityPct is the total capacity as a percentage of the peak total load P,
// split evenly. Each unit starts at basePct% of its capacity with a forecast
// standard deviation of stdPct% of its capacity.
func (n *Network) AddVarGenerators(buses []int, capacityPct, basePct, stdPct float64) error {
	if !finite(capacityPct, basePct, stdPct) || capacityPct < 0 || basePct < 0 || basePct > 100 || stdPct < 0 {
		return fmt.Errorf("AddVarGenerators: %w", ErrInvalidParams)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.checkBuses(buses); err != nil {
		return fmt.Errorf("AddVarGenerators: %w", err)
	}
	if len(buses) == 0 {
		return nil
	}
	pMax := capacityPct / 100 * n.peakLoadP() / float64(len(buses))
	for _, bus := range buses {
		p := VarGeneratorParams{
			Bus:  bus,
			Name: fmt.Sprintf("VARGEN %d", len(n.varGens)),
			P:    basePct / 100 * pMax,
			PMax: pMax,
			PStd: stdPct / 100 * pMax,
		}
		if _, err := n.addVarGen(p); err != nil {
			return fmt.Errorf("AddVarGenerators: %w", err)
		}
	}

	return nil
}

// peakLoadP is the largest total load P over all periods. Caller holds n.mu.
func (n *Network) peakLoadP() float64 {
	peak := 0.0
	for t := 0; t < n.numPeriods; t++ {
		total := 0.0
		for _, l := range n.loads {
			total += l.p[t]
		}
		peak = math.Max(peak, total)
	}

	return peak
}

func (n *Network) checkBuses(buses []int) error {
	for _, b := range buses {
		if !n.hasBus(b) {
			return fmt.Errorf("bus %d: %w", b, ErrBusNotFound)
		}
	}

	return nil
}

func (n *Network) hasBus(i int) bool {
	return i >= 0 && i < len(n.buses)
}

// SetBusSlack changes the slack status of bus i. Properties are evaluated at
// SetFlags time, so flags already set are not revisited.
func (n *Network) SetBusSlack(i int, slack bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.hasBus(i) {
		return fmt.Errorf("SetBusSlack: %d: %w", i, ErrBusNotFound)
	}
	n.buses[i].slack = slack

	return nil
}

// ---------- lookups ----------

// NumBuses returns the number of buses.
func (n *Network) NumBuses() int { return n.count(func() int { return len(n.buses) }) }

// NumBranches returns the number of branches.
func (n *Network) NumBranches() int { return n.count(func() int { return len(n.branches) }) }

// NumGenerators returns the number of generators.
func (n *Network) NumGenerators() int { return n.count(func() int { return len(n.gens) }) }

// NumLoads returns the number of loads.
func (n *Network) NumLoads() int { return n.count(func() int { return len(n.loads) }) }

// NumShunts returns the number of shunts.
func (n *Network) NumShunts() int { return n.count(func() int { return len(n.shunts) }) }

// NumVarGenerators returns the number of variable generators.
func (n *Network) NumVarGenerators() int { return n.count(func() int { return len(n.varGens) }) }

// NumBatteries returns the number of batteries.
func (n *Network) NumBatteries() int { return n.count(func() int { return len(n.batteries) }) }

func (n *Network) count(f func() int) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return f()
}

// Bus returns bus i.
func (n *Network) Bus(i int) (*Bus, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.hasBus(i) {
		return nil, fmt.Errorf("Bus: %d: %w", i, ErrBusNotFound)
	}

	return n.buses[i], nil
}

// BusByNumber returns the bus with external number num.
func (n *Network) BusByNumber(num int) (*Bus, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	i, ok := n.busIndex[num]
	if !ok {
		return nil, fmt.Errorf("BusByNumber: %d: %w", num, ErrBusNotFound)
	}

	return n.buses[i], nil
}

// Branch returns branch i.
func (n *Network) Branch(i int) (*Branch, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if i < 0 || i >= len(n.branches) {
		return nil, fmt.Errorf("Branch: %d: %w", i, ErrComponentNotFound)
	}

	return n.branches[i], nil
}

// Generator returns generator i.
func (n *Network) Generator(i int) (*Generator, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if i < 0 || i >= len(n.gens) {
		return nil, fmt.Errorf("Generator: %d: %w", i, ErrComponentNotFound)
	}

	return n.gens[i], nil
}

// Load returns load i.
func (n *Network) Load(i int) (*Load, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if i < 0 || i >= len(n.loads) {
		return nil, fmt.Errorf("Load: %d: %w", i, ErrComponentNotFound)
	}

	return n.loads[i], nil
}

// Shunt returns shunt i.
func (n *Network) Shunt(i int) (*Shunt, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if i < 0 || i >= len(n.shunts) {
		return nil, fmt.Errorf("Shunt: %d: %w", i, ErrComponentNotFound)
	}

	return n.shunts[i], nil
}

// VarGenerator returns variable generator i.
func (n *Network) VarGenerator(i int) (*VarGenerator, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if i < 0 || i >= len(n.varGens) {
		return nil, fmt.Errorf("VarGenerator: %d: %w", i, ErrComponentNotFound)
	}

	return n.varGens[i], nil
}

// Battery returns battery i.
func (n *Network) Battery(i int) (*Battery, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if i < 0 || i >= len(n.batteries) {
		return nil, fmt.Errorf("Battery: %d: %w", i, ErrComponentNotFound)
	}

	return n.batteries[i], nil
}

// Buses returns every bus ordered by index.
func (n *Network) Buses() []*Bus {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]*Bus(nil), n.buses...)
}

// Shunts returns every shunt ordered by index.
func (n *Network) Shunts() []*Shunt {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]*Shunt(nil), n.shunts...)
}

// Generators returns every generator ordered by index.
func (n *Network) Generators() []*Generator {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]*Generator(nil), n.gens...)
}

// LoadBuses returns the indices of buses with at least one load, ascending.
func (n *Network) LoadBuses() []int {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []int
	for _, b := range n.buses {
		if len(b.loads) > 0 {
			out = append(out, b.index)
		}
	}

	return out
}

// GeneratorBuses returns the indices of buses with at least one generator, ascending.
func (n *Network) GeneratorBuses() []int {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []int
	for _, b := range n.buses {
		if len(b.gens) > 0 {
			out = append(out, b.index)
		}
	}

	return out
}
