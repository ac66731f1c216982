// SPDX-License-Identifier: MIT
// Package network: JSON snapshots.
//
// Snapshots are built from plain view structs under the network lock and then
// marshalled with encoding/json, so the text is always valid JSON and always
// agrees with the index table of the same moment. Serialization reads flag and
// index state (running a pending recompute) but never changes flags.
//
// Every component object carries "index", its per-period values, its four masks
// rendered as "VMAG|VANG" and "var_index": per quantity name, width*T indices
// (slot-major, then period), -1 where the quantity is not a variable.

package network

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/lvlgrid/quantity"
)

type flagsView struct {
	Vars    string `json:"vars"`
	Fixed   string `json:"fixed"`
	Bounded string `json:"bounded"`
	Sparse  string `json:"sparse"`
}

type busView struct {
	Index         int              `json:"index"`
	Number        int              `json:"number"`
	Name          string           `json:"name"`
	Slack         bool             `json:"slack"`
	Class         string           `json:"class"`
	VMag          []float64        `json:"v_mag"`
	VAng          []float64        `json:"v_ang"`
	VMax          float64          `json:"v_max"`
	VMin          float64          `json:"v_min"`
	Generators    []int            `json:"generators"`
	RegGenerators []int            `json:"reg_generators"`
	RegTrans      []int            `json:"reg_transformers"`
	RegShunts     []int            `json:"reg_shunts"`
	Loads         []int            `json:"loads"`
	Shunts        []int            `json:"shunts"`
	BranchesK     []int            `json:"branches_k"`
	BranchesM     []int            `json:"branches_m"`
	VarGenerators []int            `json:"var_generators"`
	Batteries     []int            `json:"batteries"`
	Flags         flagsView        `json:"flags"`
	VarIndex      map[string][]int `json:"var_index"`
}

type branchView struct {
	Index    int              `json:"index"`
	Kind     string           `json:"type"`
	BusK     int              `json:"bus_k"`
	BusM     int              `json:"bus_m"`
	RegBus   int              `json:"reg_bus"`
	Outage   bool             `json:"outage"`
	G        float64          `json:"g"`
	B        float64          `json:"b"`
	Ratio    []float64        `json:"ratio"`
	Phase    []float64        `json:"phase"`
	RatioMax float64          `json:"ratio_max"`
	RatioMin float64          `json:"ratio_min"`
	PhaseMax float64          `json:"phase_max"`
	PhaseMin float64          `json:"phase_min"`
	Flags    flagsView        `json:"flags"`
	VarIndex map[string][]int `json:"var_index"`
}

type generatorView struct {
	Index    int              `json:"index"`
	Bus      int              `json:"bus"`
	RegBus   int              `json:"reg_bus"`
	Outage   bool             `json:"outage"`
	P        []float64        `json:"P"`
	Q        []float64        `json:"Q"`
	PMax     float64          `json:"P_max"`
	PMin     float64          `json:"P_min"`
	QMax     float64          `json:"Q_max"`
	QMin     float64          `json:"Q_min"`
	Flags    flagsView        `json:"flags"`
	VarIndex map[string][]int `json:"var_index"`
}

type loadView struct {
	Index int       `json:"index"`
	Bus   int       `json:"bus"`
	P     []float64 `json:"P"`
	Q     []float64 `json:"Q"`
}

type shuntView struct {
	Index    int              `json:"index"`
	Kind     string           `json:"type"`
	Bus      int              `json:"bus"`
	RegBus   int              `json:"reg_bus"`
	G        float64          `json:"g"`
	B        []float64        `json:"b"`
	BMax     float64          `json:"b_max"`
	BMin     float64          `json:"b_min"`
	Flags    flagsView        `json:"flags"`
	VarIndex map[string][]int `json:"var_index"`
}

type varGenView struct {
	Index    int              `json:"index"`
	Name     string           `json:"name"`
	Bus      int              `json:"bus"`
	P        []float64        `json:"P"`
	Q        []float64        `json:"Q"`
	PMax     float64          `json:"P_max"`
	PMin     float64          `json:"P_min"`
	PStd     float64          `json:"P_std"`
	QMax     float64          `json:"Q_max"`
	QMin     float64          `json:"Q_min"`
	Flags    flagsView        `json:"flags"`
	VarIndex map[string][]int `json:"var_index"`
}

type batteryView struct {
	Index    int              `json:"index"`
	Bus      int              `json:"bus"`
	PC       []float64        `json:"P_charge"`
	PD       []float64        `json:"P_discharge"`
	E        []float64        `json:"E"`
	PMax     float64          `json:"P_max"`
	PMin     float64          `json:"P_min"`
	EMax     float64          `json:"E_max"`
	EtaC     float64          `json:"eta_c"`
	EtaD     float64          `json:"eta_d"`
	Flags    flagsView        `json:"flags"`
	VarIndex map[string][]int `json:"var_index"`
}

type networkView struct {
	NumPeriods    int             `json:"num_periods"`
	BasePower     float64         `json:"base_power"`
	NumVars       int             `json:"num_vars"`
	NumFixed      int             `json:"num_fixed"`
	NumBounded    int             `json:"num_bounded"`
	NumSparse     int             `json:"num_sparse"`
	Buses         []busView       `json:"buses"`
	Branches      []branchView    `json:"branches"`
	Generators    []generatorView `json:"generators"`
	Loads         []loadView      `json:"loads"`
	Shunts        []shuntView     `json:"shunts"`
	VarGenerators []varGenView    `json:"var_generators"`
	Batteries     []batteryView   `json:"batteries"`
}

// JSONString returns a snapshot of the bus.
func (b *Bus) JSONString() (string, error) {
	return b.net.snapshot(func() any { return b.net.busView(b) })
}

// JSONString returns a snapshot of the branch.
func (br *Branch) JSONString() (string, error) {
	return br.net.snapshot(func() any { return br.net.branchView(br) })
}

// JSONString returns a snapshot of the generator.
func (g *Generator) JSONString() (string, error) {
	return g.net.snapshot(func() any { return g.net.generatorView(g) })
}

// JSONString returns a snapshot of the load.
func (l *Load) JSONString() (string, error) {
	return l.net.snapshot(func() any { return loadView{Index: l.index, Bus: l.bus, P: l.p, Q: l.q} })
}

// JSONString returns a snapshot of the shunt.
func (s *Shunt) JSONString() (string, error) {
	return s.net.snapshot(func() any { return s.net.shuntView(s) })
}

// JSONString returns a snapshot of the variable generator.
func (v *VarGenerator) JSONString() (string, error) {
	return v.net.snapshot(func() any { return v.net.varGenView(v) })
}

// JSONString returns a snapshot of the battery.
func (b *Battery) JSONString() (string, error) {
	return b.net.snapshot(func() any { return b.net.batteryView(b) })
}

// JSONString returns a snapshot of the whole network.
func (n *Network) JSONString() (string, error) {
	return n.snapshot(func() any {
		v := networkView{
			NumPeriods:    n.numPeriods,
			BasePower:     n.basePower,
			NumVars:       n.alloc.numVars,
			NumFixed:      n.alloc.numFixed,
			NumBounded:    n.alloc.numBounded,
			NumSparse:     n.alloc.numSparse,
			Buses:         make([]busView, 0, len(n.buses)),
			Branches:      make([]branchView, 0, len(n.branches)),
			Generators:    make([]generatorView, 0, len(n.gens)),
			Loads:         make([]loadView, 0, len(n.loads)),
			Shunts:        make([]shuntView, 0, len(n.shunts)),
			VarGenerators: make([]varGenView, 0, len(n.varGens)),
			Batteries:     make([]batteryView, 0, len(n.batteries)),
		}
		for _, b := range n.buses {
			v.Buses = append(v.Buses, n.busView(b))
		}
		for _, br := range n.branches {
			v.Branches = append(v.Branches, n.branchView(br))
		}
		for _, g := range n.gens {
			v.Generators = append(v.Generators, n.generatorView(g))
		}
		for _, l := range n.loads {
			v.Loads = append(v.Loads, loadView{Index: l.index, Bus: l.bus, P: l.p, Q: l.q})
		}
		for _, s := range n.shunts {
			v.Shunts = append(v.Shunts, n.shuntView(s))
		}
		for _, vg := range n.varGens {
			v.VarGenerators = append(v.VarGenerators, n.varGenView(vg))
		}
		for _, bat := range n.batteries {
			v.Batteries = append(v.Batteries, n.batteryView(bat))
		}

		return v
	})
}

// snapshot builds a view under the lock (after a pending recompute) and
// marshals it.
func (n *Network) snapshot(build func() any) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ensureClean()

	data, err := json.Marshal(build())
	if err != nil {
		return "", fmt.Errorf("JSONString: %w", err)
	}

	return string(data), nil
}

func (n *Network) busView(b *Bus) busView {
	return busView{
		Index:         b.index,
		Number:        b.number,
		Name:          b.name,
		Slack:         b.slack,
		Class:         classify(b).String(),
		VMag:          b.vMag,
		VAng:          b.vAng,
		VMax:          b.vMax,
		VMin:          b.vMin,
		Generators:    ints(b.gens),
		RegGenerators: ints(b.regGens),
		RegTrans:      ints(b.regTrans),
		RegShunts:     ints(b.regShunts),
		Loads:         ints(b.loads),
		Shunts:        ints(b.shunts),
		BranchesK:     ints(b.branchesK),
		BranchesM:     ints(b.branchesM),
		VarGenerators: ints(b.varGens),
		Batteries:     ints(b.batteries),
		Flags:         flagsOf(quantity.ObjBus, b.flags),
		VarIndex:      n.varIndexView(&b.component, quantity.ObjBus),
	}
}

func (n *Network) branchView(br *Branch) branchView {
	return branchView{
		Index:    br.index,
		Kind:     br.kind.String(),
		BusK:     br.busK,
		BusM:     br.busM,
		RegBus:   br.regBus,
		Outage:   br.outage,
		G:        br.g,
		B:        br.b,
		Ratio:    br.ratio,
		Phase:    br.phase,
		RatioMax: br.ratioMax,
		RatioMin: br.ratioMin,
		PhaseMax: br.phaseMax,
		PhaseMin: br.phaseMin,
		Flags:    flagsOf(quantity.ObjBranch, br.flags),
		VarIndex: n.varIndexView(&br.component, quantity.ObjBranch),
	}
}

func (n *Network) generatorView(g *Generator) generatorView {
	return generatorView{
		Index:    g.index,
		Bus:      g.bus,
		RegBus:   g.regBus,
		Outage:   g.outage,
		P:        g.p,
		Q:        g.q,
		PMax:     g.pMax,
		PMin:     g.pMin,
		QMax:     g.qMax,
		QMin:     g.qMin,
		Flags:    flagsOf(quantity.ObjGen, g.flags),
		VarIndex: n.varIndexView(&g.component, quantity.ObjGen),
	}
}

func (n *Network) shuntView(s *Shunt) shuntView {
	return shuntView{
		Index:    s.index,
		Kind:     s.kind.String(),
		Bus:      s.bus,
		RegBus:   s.regBus,
		G:        s.g,
		B:        s.b,
		BMax:     s.bMax,
		BMin:     s.bMin,
		Flags:    flagsOf(quantity.ObjShunt, s.flags),
		VarIndex: n.varIndexView(&s.component, quantity.ObjShunt),
	}
}

func (n *Network) varGenView(v *VarGenerator) varGenView {
	return varGenView{
		Index:    v.index,
		Name:     v.name,
		Bus:      v.bus,
		P:        v.p,
		Q:        v.q,
		PMax:     v.pMax,
		PMin:     v.pMin,
		PStd:     v.pStd,
		QMax:     v.qMax,
		QMin:     v.qMin,
		Flags:    flagsOf(quantity.ObjVarGen, v.flags),
		VarIndex: n.varIndexView(&v.component, quantity.ObjVarGen),
	}
}

func (n *Network) batteryView(b *Battery) batteryView {
	return batteryView{
		Index:    b.index,
		Bus:      b.bus,
		PC:       b.pc,
		PD:       b.pd,
		E:        b.e,
		PMax:     b.pMax,
		PMin:     b.pMin,
		EMax:     b.eMax,
		EtaC:     b.etaC,
		EtaD:     b.etaD,
		Flags:    flagsOf(quantity.ObjBattery, b.flags),
		VarIndex: n.varIndexView(&b.component, quantity.ObjBattery),
	}
}

// varIndexView lists width*T indices per quantity name. Caller holds n.mu and
// the cache is clean.
func (n *Network) varIndexView(c *component, typ quantity.ObjectType) map[string][]int {
	out := make(map[string][]int, quantity.Count(typ))
	for _, q := range quantity.Quantities(typ) {
		idx := make([]int, 0, q.Width*n.numPeriods)
		for k := 0; k < q.Width; k++ {
			for t := 0; t < n.numPeriods; t++ {
				idx = append(idx, c.varIndex(typ, q.Bit, k, t, n.numPeriods))
			}
		}
		out[q.Name] = idx
	}

	return out
}

func flagsOf(typ quantity.ObjectType, f Flags) flagsView {
	return flagsView{
		Vars:    quantity.FormatMask(typ, f.Vars),
		Fixed:   quantity.FormatMask(typ, f.Fixed),
		Bounded: quantity.FormatMask(typ, f.Bounded),
		Sparse:  quantity.FormatMask(typ, f.Sparse),
	}
}

func ints(xs []int) []int {
	if xs == nil {
		return []int{}
	}

	return xs
}
