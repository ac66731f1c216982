// SPDX-License-Identifier: MIT
// Package network: component records.
//
// Components are owned by their Network and referenced by index. Relations
// (branch terminals, regulated buses, bus back-references) are plain indices,
// never pointers to siblings. Per-period values are slices of length NumPeriods.
//
// Reads of values are lock-free; every write goes through a Network method or a
// setter that takes the network lock.

package network

import (
	"math"

	"github.com/katalvlaran/lvlgrid/quantity"
)

// NoBus marks an absent bus reference (e.g. a generator that regulates nothing).
const NoBus = -1

// component is the bundle every record embeds: identity, flags and the
// allocator's derived variable starts.
type component struct {
	net   *Network
	index int
	flags Flags
	start [quantity.MaxQuantities]int // first index of each variable quantity, -1 otherwise
}

func (c *component) init(n *Network, index int) {
	c.net = n
	c.index = index
	c.resetStarts()
}

func (c *component) resetStarts() {
	for i := range c.start {
		c.start[i] = -1
	}
}

// Index returns the stable position of the component in its collection.
func (c *component) Index() int {
	return c.index
}

// Flags returns a copy of the component's four masks.
func (c *component) Flags() Flags {
	c.net.mu.Lock()
	defer c.net.mu.Unlock()

	return c.flags
}

// HasFlags reports whether every mask named by fs contains every bit of m.
func (c *component) HasFlags(fs quantity.FlagSet, m quantity.Mask) bool {
	c.net.mu.Lock()
	defer c.net.mu.Unlock()

	return c.flags.Has(fs, m)
}

// at returns v[t] or 0 when t is out of range.
func at(v []float64, t int) float64 {
	if t < 0 || t >= len(v) {
		return 0
	}

	return v[t]
}

// fill returns a T-length slice holding x in every period.
func fill(t int, x float64) []float64 {
	out := make([]float64, t)
	for i := range out {
		out[i] = x
	}

	return out
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

// ---------- Bus ----------

// Bus is a network node.
type Bus struct {
	component

	number int
	name   string
	slack  bool

	vMag []float64 // p.u.
	vAng []float64 // rad
	vMax float64
	vMin float64

	gens      []int // generators connected here
	regGens   []int // generators regulating this bus
	regTrans  []int // tap-changer-V branches regulating this bus
	regShunts []int // switched-V shunts regulating this bus
	loads     []int
	shunts    []int
	branchesK []int // branches with this bus as terminal k
	branchesM []int // branches with this bus as terminal m
	varGens   []int
	batteries []int
}

// Number returns the external bus number.
func (b *Bus) Number() int { return b.number }

// Name returns the bus name (may be empty).
func (b *Bus) Name() string { return b.name }

// VMag returns the voltage magnitude in period t.
func (b *Bus) VMag(t int) float64 { return at(b.vMag, t) }

// VAng returns the voltage angle in period t.
func (b *Bus) VAng(t int) float64 { return at(b.vAng, t) }

// VMax returns the upper voltage limit.
func (b *Bus) VMax() float64 { return b.vMax }

// VMin returns the lower voltage limit.
func (b *Bus) VMin() float64 { return b.vMin }

// IsSlack reports whether the bus is a slack (reference) bus.
func (b *Bus) IsSlack() bool { return b.slack }

// IsRegulatedByGen reports whether at least one generator regulates the bus voltage.
func (b *Bus) IsRegulatedByGen() bool { return len(b.regGens) > 0 }

// IsRegulatedByTran reports whether at least one tap-changer-V transformer regulates the bus.
func (b *Bus) IsRegulatedByTran() bool {
	for _, j := range b.regTrans {
		if b.net.branches[j].IsTapChangerV() {
			return true
		}
	}

	return false
}

// IsRegulatedByShunt reports whether at least one switched-V shunt regulates the bus.
func (b *Bus) IsRegulatedByShunt() bool {
	for _, j := range b.regShunts {
		if b.net.shunts[j].IsSwitchedV() {
			return true
		}
	}

	return false
}

// Generators returns indices of generators connected to the bus.
func (b *Bus) Generators() []int { return append([]int(nil), b.gens...) }

// RegGenerators returns indices of generators regulating the bus.
func (b *Bus) RegGenerators() []int { return append([]int(nil), b.regGens...) }

// RegTransformers returns indices of tap-changer-V branches regulating the bus.
func (b *Bus) RegTransformers() []int { return append([]int(nil), b.regTrans...) }

// RegShunts returns indices of switched-V shunts regulating the bus.
func (b *Bus) RegShunts() []int { return append([]int(nil), b.regShunts...) }

// Loads returns indices of loads connected to the bus.
func (b *Bus) Loads() []int { return append([]int(nil), b.loads...) }

// Shunts returns indices of shunts connected to the bus.
func (b *Bus) Shunts() []int { return append([]int(nil), b.shunts...) }

// Branches returns indices of incident branches (k side first, then m side).
func (b *Bus) Branches() []int {
	out := make([]int, 0, len(b.branchesK)+len(b.branchesM))
	out = append(out, b.branchesK...)

	return append(out, b.branchesM...)
}

// SetVMag sets the voltage magnitude of period t.
func (b *Bus) SetVMag(t int, v float64) error { return b.net.setValue(b.vMag, t, v) }

// SetVAng sets the voltage angle of period t.
func (b *Bus) SetVAng(t int, v float64) error { return b.net.setValue(b.vAng, t, v) }

// IndexVMag returns the variable index of VMAG in period t, or -1.
func (b *Bus) IndexVMag(t int) int { return b.net.indexOf(&b.component, quantity.ObjBus, 0, 0, t) }

// IndexVAng returns the variable index of VANG in period t, or -1.
func (b *Bus) IndexVAng(t int) int { return b.net.indexOf(&b.component, quantity.ObjBus, 1, 0, t) }

// IndexVVio returns the variable indices of the (high, low) violation pair in period t.
func (b *Bus) IndexVVio(t int) (hi, lo int) {
	return b.net.indexOf(&b.component, quantity.ObjBus, 2, 0, t), b.net.indexOf(&b.component, quantity.ObjBus, 2, 1, t)
}

// ---------- Branch ----------

// BranchKind classifies a branch.
type BranchKind int

const (
	BranchLine         BranchKind = iota // transmission line
	BranchTranFixed                      // transformer with fixed tap
	BranchTapV                           // tap changer regulating a bus voltage
	BranchTapQ                           // tap changer regulating reactive flow
	BranchPhaseShifter                   // phase-shifting transformer
)

var branchKindNames = [...]string{"line", "fixed", "tap_v", "tap_q", "phase"}

// String returns the case-file token of k.
func (k BranchKind) String() string {
	if k < BranchLine || k > BranchPhaseShifter {
		return "unknown"
	}

	return branchKindNames[k]
}

// ParseBranchKind resolves a case-file token.
func ParseBranchKind(s string) (BranchKind, bool) {
	for i, name := range branchKindNames {
		if name == s {
			return BranchKind(i), true
		}
	}

	return 0, false
}

// Branch connects bus k to bus m.
type Branch struct {
	component

	kind   BranchKind
	busK   int
	busM   int
	regBus int
	outage bool

	g, b float64 // series conductance / susceptance (p.u.)

	ratio    []float64
	phase    []float64
	ratioMax float64
	ratioMin float64
	phaseMax float64
	phaseMin float64
}

// Kind returns the branch classification.
func (br *Branch) Kind() BranchKind { return br.kind }

// BusK returns the index of terminal k.
func (br *Branch) BusK() int { return br.busK }

// BusM returns the index of terminal m.
func (br *Branch) BusM() int { return br.busM }

// RegBus returns the index of the regulated bus, or NoBus.
func (br *Branch) RegBus() int { return br.regBus }

// G returns the series conductance.
func (br *Branch) G() float64 { return br.g }

// B returns the series susceptance.
func (br *Branch) B() float64 { return br.b }

// Ratio returns the tap ratio in period t.
func (br *Branch) Ratio(t int) float64 { return at(br.ratio, t) }

// Phase returns the phase shift in period t.
func (br *Branch) Phase(t int) float64 { return at(br.phase, t) }

// RatioMax returns the upper tap ratio limit.
func (br *Branch) RatioMax() float64 { return br.ratioMax }

// RatioMin returns the lower tap ratio limit.
func (br *Branch) RatioMin() float64 { return br.ratioMin }

// PhaseMax returns the upper phase limit.
func (br *Branch) PhaseMax() float64 { return br.phaseMax }

// PhaseMin returns the lower phase limit.
func (br *Branch) PhaseMin() float64 { return br.phaseMin }

// IsOnOutage reports whether the branch is out of service.
func (br *Branch) IsOnOutage() bool { return br.outage }

// IsLine reports whether the branch is a transmission line.
func (br *Branch) IsLine() bool { return br.kind == BranchLine }

// IsFixedTran reports whether the branch is a fixed-tap transformer.
func (br *Branch) IsFixedTran() bool { return br.kind == BranchTranFixed }

// IsTapChanger reports whether the branch is a tap changer of either kind.
func (br *Branch) IsTapChanger() bool { return br.kind == BranchTapV || br.kind == BranchTapQ }

// IsTapChangerV reports whether the branch is a tap changer regulating a bus voltage.
func (br *Branch) IsTapChangerV() bool { return br.kind == BranchTapV }

// IsTapChangerQ reports whether the branch is a tap changer regulating reactive flow.
func (br *Branch) IsTapChangerQ() bool { return br.kind == BranchTapQ }

// IsPhaseShifter reports whether the branch is a phase shifter.
func (br *Branch) IsPhaseShifter() bool { return br.kind == BranchPhaseShifter }

// SetRatio sets the tap ratio of period t.
func (br *Branch) SetRatio(t int, v float64) error { return br.net.setValue(br.ratio, t, v) }

// SetPhase sets the phase shift of period t.
func (br *Branch) SetPhase(t int, v float64) error { return br.net.setValue(br.phase, t, v) }

// SetOutage changes the service status of the branch.
func (br *Branch) SetOutage(outage bool) { br.net.setOutage(&br.outage, outage) }

// IndexRatio returns the variable index of RATIO in period t, or -1.
func (br *Branch) IndexRatio(t int) int {
	return br.net.indexOf(&br.component, quantity.ObjBranch, 0, 0, t)
}

// IndexPhase returns the variable index of PHASE in period t, or -1.
func (br *Branch) IndexPhase(t int) int {
	return br.net.indexOf(&br.component, quantity.ObjBranch, 1, 0, t)
}

// ---------- Generator ----------

// Generator is a conventional dispatchable unit.
type Generator struct {
	component

	bus    int
	regBus int
	outage bool

	p, q       []float64
	pMax, pMin float64
	qMax, qMin float64
}

// Bus returns the index of the connection bus.
func (g *Generator) Bus() int { return g.bus }

// RegBus returns the index of the regulated bus, or NoBus.
func (g *Generator) RegBus() int { return g.regBus }

// P returns the active power in period t.
func (g *Generator) P(t int) float64 { return at(g.p, t) }

// Q returns the reactive power in period t.
func (g *Generator) Q(t int) float64 { return at(g.q, t) }

// PMax returns the active power upper limit.
func (g *Generator) PMax() float64 { return g.pMax }

// PMin returns the active power lower limit.
func (g *Generator) PMin() float64 { return g.pMin }

// QMax returns the reactive power upper limit.
func (g *Generator) QMax() float64 { return g.qMax }

// QMin returns the reactive power lower limit.
func (g *Generator) QMin() float64 { return g.qMin }

// IsSlack reports whether the generator sits on a slack bus.
func (g *Generator) IsSlack() bool { return g.net.buses[g.bus].slack }

// IsRegulator reports whether the generator regulates a bus voltage.
func (g *Generator) IsRegulator() bool { return g.regBus != NoBus }

// IsOnOutage reports whether the generator is out of service.
func (g *Generator) IsOnOutage() bool { return g.outage }

// IsPAdjustable reports whether the active power range is non-degenerate.
func (g *Generator) IsPAdjustable() bool { return g.pMin < g.pMax }

// SetP sets the active power of period t.
func (g *Generator) SetP(t int, v float64) error { return g.net.setValue(g.p, t, v) }

// SetQ sets the reactive power of period t.
func (g *Generator) SetQ(t int, v float64) error { return g.net.setValue(g.q, t, v) }

// SetOutage changes the service status of the generator.
func (g *Generator) SetOutage(outage bool) { g.net.setOutage(&g.outage, outage) }

// IndexP returns the variable index of P in period t, or -1.
func (g *Generator) IndexP(t int) int { return g.net.indexOf(&g.component, quantity.ObjGen, 0, 0, t) }

// IndexQ returns the variable index of Q in period t, or -1.
func (g *Generator) IndexQ(t int) int { return g.net.indexOf(&g.component, quantity.ObjGen, 1, 0, t) }

// ---------- Load ----------

// Load is a demand; it carries no flaggable quantities.
type Load struct {
	component

	bus  int
	p, q []float64
}

// Bus returns the index of the connection bus.
func (l *Load) Bus() int { return l.bus }

// P returns the active demand in period t.
func (l *Load) P(t int) float64 { return at(l.p, t) }

// Q returns the reactive demand in period t.
func (l *Load) Q(t int) float64 { return at(l.q, t) }

// SetP sets the active demand of period t.
func (l *Load) SetP(t int, v float64) error { return l.net.setValue(l.p, t, v) }

// SetQ sets the reactive demand of period t.
func (l *Load) SetQ(t int, v float64) error { return l.net.setValue(l.q, t, v) }

// ---------- Shunt ----------

// ShuntKind classifies a shunt.
type ShuntKind int

const (
	ShuntFixed     ShuntKind = iota // constant admittance
	ShuntSwitchedV                  // switched, regulating a bus voltage
)

// String returns the case-file token of k.
func (k ShuntKind) String() string {
	switch k {
	case ShuntFixed:
		return "fixed"
	case ShuntSwitchedV:
		return "switched_v"
	}

	return "unknown"
}

// ParseShuntKind resolves a case-file token.
func ParseShuntKind(s string) (ShuntKind, bool) {
	switch s {
	case "fixed":
		return ShuntFixed, true
	case "switched_v":
		return ShuntSwitchedV, true
	}

	return 0, false
}

// Shunt is a shunt admittance at a bus.
type Shunt struct {
	component

	kind   ShuntKind
	bus    int
	regBus int

	g          float64
	b          []float64
	bMax, bMin float64
}

// Kind returns the shunt classification.
func (s *Shunt) Kind() ShuntKind { return s.kind }

// Bus returns the index of the connection bus.
func (s *Shunt) Bus() int { return s.bus }

// RegBus returns the index of the regulated bus, or NoBus.
func (s *Shunt) RegBus() int { return s.regBus }

// G returns the conductance.
func (s *Shunt) G() float64 { return s.g }

// B returns the susceptance in period t.
func (s *Shunt) B(t int) float64 { return at(s.b, t) }

// BMax returns the susceptance upper limit.
func (s *Shunt) BMax() float64 { return s.bMax }

// BMin returns the susceptance lower limit.
func (s *Shunt) BMin() float64 { return s.bMin }

// IsFixed reports whether the shunt has constant admittance.
func (s *Shunt) IsFixed() bool { return s.kind == ShuntFixed }

// IsSwitchedV reports whether the shunt is switched for voltage support.
func (s *Shunt) IsSwitchedV() bool { return s.kind == ShuntSwitchedV }

// SetB sets the susceptance of period t.
func (s *Shunt) SetB(t int, v float64) error { return s.net.setValue(s.b, t, v) }

// IndexB returns the variable index of SUSC in period t, or -1.
func (s *Shunt) IndexB(t int) int { return s.net.indexOf(&s.component, quantity.ObjShunt, 0, 0, t) }

// IndexBDev returns the variable indices of the (up, down) deviation pair in period t.
func (s *Shunt) IndexBDev(t int) (y, z int) {
	return s.net.indexOf(&s.component, quantity.ObjShunt, 1, 0, t), s.net.indexOf(&s.component, quantity.ObjShunt, 1, 1, t)
}

// ---------- VarGenerator ----------

// VarGenerator is a variable (renewable) generator.
type VarGenerator struct {
	component

	bus  int
	name string

	p, q       []float64
	pMax, pMin float64
	pStd       float64 // forecast standard deviation
	qMax, qMin float64
}

// Bus returns the index of the connection bus.
func (v *VarGenerator) Bus() int { return v.bus }

// Name returns the generator name (may be empty).
func (v *VarGenerator) Name() string { return v.name }

// P returns the active power in period t.
func (v *VarGenerator) P(t int) float64 { return at(v.p, t) }

// Q returns the reactive power in period t.
func (v *VarGenerator) Q(t int) float64 { return at(v.q, t) }

// PMax returns the active power capacity.
func (v *VarGenerator) PMax() float64 { return v.pMax }

// PMin returns the active power lower limit.
func (v *VarGenerator) PMin() float64 { return v.pMin }

// PStd returns the forecast standard deviation of P.
func (v *VarGenerator) PStd() float64 { return v.pStd }

// QMax returns the reactive power upper limit.
func (v *VarGenerator) QMax() float64 { return v.qMax }

// QMin returns the reactive power lower limit.
func (v *VarGenerator) QMin() float64 { return v.qMin }

// SetP sets the active power of period t.
func (v *VarGenerator) SetP(t int, x float64) error { return v.net.setValue(v.p, t, x) }

// IndexP returns the variable index of P in period t, or -1.
func (v *VarGenerator) IndexP(t int) int {
	return v.net.indexOf(&v.component, quantity.ObjVarGen, 0, 0, t)
}

// IndexQ returns the variable index of Q in period t, or -1.
func (v *VarGenerator) IndexQ(t int) int {
	return v.net.indexOf(&v.component, quantity.ObjVarGen, 1, 0, t)
}

// ---------- Battery ----------

// Battery is a storage unit. Power is split into a charging and a discharging
// component, both non-negative.
type Battery struct {
	component

	bus int

	pc, pd     []float64 // charging / discharging power (p.u.)
	e          []float64 // stored energy
	pMax, pMin float64   // pMin <= 0 bounds discharging
	eMax       float64
	etaC, etaD float64 // charge / discharge efficiency
}

// Bus returns the index of the connection bus.
func (b *Battery) Bus() int { return b.bus }

// P returns the net injection -(charging) + discharging in period t.
func (b *Battery) P(t int) float64 { return at(b.pc, t) - at(b.pd, t) }

// PCharge returns the charging power in period t.
func (b *Battery) PCharge(t int) float64 { return at(b.pc, t) }

// PDischarge returns the discharging power in period t.
func (b *Battery) PDischarge(t int) float64 { return at(b.pd, t) }

// E returns the stored energy in period t.
func (b *Battery) E(t int) float64 { return at(b.e, t) }

// PMax returns the charging limit.
func (b *Battery) PMax() float64 { return b.pMax }

// PMin returns the (non-positive) discharging limit.
func (b *Battery) PMin() float64 { return b.pMin }

// EMax returns the energy capacity.
func (b *Battery) EMax() float64 { return b.eMax }

// EtaC is the charging efficiency.
func (b *Battery) EtaC() float64 { return b.etaC }

// EtaD is the discharging efficiency.
func (b *Battery) EtaD() float64 { return b.etaD }

// SetE sets the stored energy of period t.
func (b *Battery) SetE(t int, v float64) error { return b.net.setValue(b.e, t, v) }

// IndexP returns the (charge, discharge) variable indices in period t.
func (b *Battery) IndexP(t int) (c, d int) {
	return b.net.indexOf(&b.component, quantity.ObjBattery, 0, 0, t), b.net.indexOf(&b.component, quantity.ObjBattery, 0, 1, t)
}

// IndexE returns the variable index of E in period t, or -1.
func (b *Battery) IndexE(t int) int {
	return b.net.indexOf(&b.component, quantity.ObjBattery, 1, 0, t)
}
