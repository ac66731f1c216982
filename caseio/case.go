// SPDX-License-Identifier: MIT
package caseio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/lvlgrid/network"
	"gopkg.in/yaml.v3"
)

// Case is the YAML form of a network. Component values are the period-0
// values; every period starts from them.
type Case struct {
	BasePower     float64            `yaml:"base_power,omitempty" validate:"omitempty,gt=0"`
	NumPeriods    int                `yaml:"num_periods,omitempty" validate:"omitempty,min=1"`
	Buses         []BusSpec          `yaml:"buses" validate:"required,min=1,dive"`
	Branches      []BranchSpec       `yaml:"branches,omitempty" validate:"omitempty,dive"`
	Generators    []GeneratorSpec    `yaml:"generators,omitempty" validate:"omitempty,dive"`
	Loads         []LoadSpec         `yaml:"loads,omitempty" validate:"omitempty,dive"`
	Shunts        []ShuntSpec        `yaml:"shunts,omitempty" validate:"omitempty,dive"`
	VarGenerators []VarGeneratorSpec `yaml:"var_generators,omitempty" validate:"omitempty,dive"`
	Batteries     []BatterySpec      `yaml:"batteries,omitempty" validate:"omitempty,dive"`
}

// BusSpec describes a bus. Zero voltage fields take the network defaults.
type BusSpec struct {
	Number int     `yaml:"number" validate:"gte=0"`
	Name   string  `yaml:"name,omitempty" validate:"max=64"`
	Slack  bool    `yaml:"slack,omitempty"`
	VMag   float64 `yaml:"v_mag,omitempty" validate:"gte=0"`
	VAng   float64 `yaml:"v_ang,omitempty"`
	VMax   float64 `yaml:"v_max,omitempty" validate:"gtefield=VMin"`
	VMin   float64 `yaml:"v_min,omitempty" validate:"gte=0"`
}

// BranchSpec describes a branch. Type defaults to "line".
type BranchSpec struct {
	Type     string  `yaml:"type,omitempty" validate:"omitempty,oneof=line fixed tap_v tap_q phase"`
	BusK     int     `yaml:"bus_k"`
	BusM     int     `yaml:"bus_m"`
	RegBus   *int    `yaml:"reg_bus,omitempty" validate:"required_if=Type tap_v"`
	G        float64 `yaml:"g,omitempty"`
	B        float64 `yaml:"b,omitempty"`
	Ratio    float64 `yaml:"ratio,omitempty" validate:"gte=0"`
	Phase    float64 `yaml:"phase,omitempty"`
	RatioMax float64 `yaml:"ratio_max,omitempty" validate:"gtefield=RatioMin"`
	RatioMin float64 `yaml:"ratio_min,omitempty"`
	PhaseMax float64 `yaml:"phase_max,omitempty" validate:"gtefield=PhaseMin"`
	PhaseMin float64 `yaml:"phase_min,omitempty"`
	Outage   bool    `yaml:"outage,omitempty"`
}

// GeneratorSpec describes a generator; RegBus is omitted for non-regulating units.
type GeneratorSpec struct {
	Bus    int     `yaml:"bus"`
	RegBus *int    `yaml:"reg_bus,omitempty"`
	Outage bool    `yaml:"outage,omitempty"`
	P      float64 `yaml:"p,omitempty"`
	Q      float64 `yaml:"q,omitempty"`
	PMax   float64 `yaml:"p_max,omitempty" validate:"gtefield=PMin"`
	PMin   float64 `yaml:"p_min,omitempty"`
	QMax   float64 `yaml:"q_max,omitempty" validate:"gtefield=QMin"`
	QMin   float64 `yaml:"q_min,omitempty"`
}

// LoadSpec describes a load.
type LoadSpec struct {
	Bus int     `yaml:"bus"`
	P   float64 `yaml:"p,omitempty"`
	Q   float64 `yaml:"q,omitempty"`
}

// ShuntSpec describes a shunt. Type defaults to "fixed".
type ShuntSpec struct {
	Bus    int     `yaml:"bus"`
	Type   string  `yaml:"type,omitempty" validate:"omitempty,oneof=fixed switched_v"`
	RegBus *int    `yaml:"reg_bus,omitempty" validate:"required_if=Type switched_v"`
	G      float64 `yaml:"g,omitempty"`
	B      float64 `yaml:"b,omitempty"`
	BMax   float64 `yaml:"b_max,omitempty" validate:"gtefield=BMin"`
	BMin   float64 `yaml:"b_min,omitempty"`
}

// VarGeneratorSpec describes a variable generator.
type VarGeneratorSpec struct {
	Bus  int     `yaml:"bus"`
	Name string  `yaml:"name,omitempty" validate:"max=64"`
	P    float64 `yaml:"p,omitempty"`
	Q    float64 `yaml:"q,omitempty"`
	PMax float64 `yaml:"p_max,omitempty" validate:"gtefield=PMin"`
	PMin float64 `yaml:"p_min,omitempty"`
	PStd float64 `yaml:"p_std,omitempty" validate:"gte=0"`
	QMax float64 `yaml:"q_max,omitempty" validate:"gtefield=QMin"`
	QMin float64 `yaml:"q_min,omitempty"`
}

// BatterySpec describes a battery. P is the net charging power.
type BatterySpec struct {
	Bus  int     `yaml:"bus"`
	P    float64 `yaml:"p,omitempty"`
	E    float64 `yaml:"e,omitempty" validate:"gte=0"`
	PMax float64 `yaml:"p_max,omitempty" validate:"gte=0"`
	PMin float64 `yaml:"p_min,omitempty" validate:"lte=0"`
	EMax float64 `yaml:"e_max,omitempty" validate:"gtefield=E"`
	EtaC float64 `yaml:"eta_c,omitempty" validate:"omitempty,gt=0,lte=1"`
	EtaD float64 `yaml:"eta_d,omitempty" validate:"omitempty,gt=0,lte=1"`
}

// Validate checks the struct-tag rules of c.
func (c *Case) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil case", ErrInvalidCase)
	}

	return check(c, ErrInvalidCase)
}

// Decode reads one YAML case document from r. Unknown keys are rejected.
func Decode(r io.Reader) (*Case, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Case
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("Decode: %w: empty document", ErrInvalidCase)
		}
		return nil, fmt.Errorf("Decode: %w: %w", ErrInvalidCase, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	return &c, nil
}

// Load reads and validates the case file at path.
func Load(path string) (*Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("Load: %s: %w", path, err)
	}

	return c, nil
}

// Encode writes c to w as YAML with two-space indentation.
func Encode(w io.Writer, c *Case) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}

	return enc.Close()
}

// Build validates c and constructs the network it describes. Case-level
// num_periods and base_power are applied before opts, so opts win.
func (c *Case) Build(opts ...network.Option) (*network.Network, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	var all []network.Option
	if c.NumPeriods > 0 {
		all = append(all, network.WithNumPeriods(c.NumPeriods))
	}
	if c.BasePower > 0 {
		all = append(all, network.WithBasePower(c.BasePower))
	}
	n := network.NewNetwork(append(all, opts...)...)

	b := caseBuilder{n: n}
	b.buses(c.Buses)
	b.branches(c.Branches)
	b.generators(c.Generators)
	b.loads(c.Loads)
	b.shunts(c.Shunts)
	b.varGenerators(c.VarGenerators)
	b.batteries(c.Batteries)
	if b.err != nil {
		return nil, fmt.Errorf("Build: %w", b.err)
	}

	return n, nil
}

// caseBuilder adds components until the first error, which sticks.
type caseBuilder struct {
	n   *network.Network
	err error
}

// bus maps a bus number to its index.
func (b *caseBuilder) bus(num int) int {
	if b.err != nil {
		return network.NoBus
	}
	bus, err := b.n.BusByNumber(num)
	if err != nil {
		b.err = fmt.Errorf("%w: %d", ErrUnknownBus, num)
		return network.NoBus
	}

	return bus.Index()
}

func (b *caseBuilder) regBus(num *int) int {
	if num == nil {
		return network.NoBus
	}

	return b.bus(*num)
}

func (b *caseBuilder) fail(what string, i int, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("%s %d: %w", what, i, err)
	}
}

func (b *caseBuilder) buses(specs []BusSpec) {
	for i, s := range specs {
		if b.err != nil {
			return
		}
		_, err := b.n.AddBus(network.BusParams{
			Number: s.Number, Name: s.Name, Slack: s.Slack,
			VMag: s.VMag, VAng: s.VAng, VMax: s.VMax, VMin: s.VMin,
		})
		b.fail("bus", i, err)
	}
}

func (b *caseBuilder) branches(specs []BranchSpec) {
	for i, s := range specs {
		kind := network.BranchLine
		if s.Type != "" {
			kind, _ = network.ParseBranchKind(s.Type)
		}
		p := network.BranchParams{
			Kind: kind, BusK: b.bus(s.BusK), BusM: b.bus(s.BusM), RegBus: b.regBus(s.RegBus),
			G: s.G, B: s.B, Ratio: s.Ratio, Phase: s.Phase,
			RatioMax: s.RatioMax, RatioMin: s.RatioMin, PhaseMax: s.PhaseMax, PhaseMin: s.PhaseMin,
			Outage: s.Outage,
		}
		if b.err != nil {
			return
		}
		_, err := b.n.AddBranch(p)
		b.fail("branch", i, err)
	}
}

func (b *caseBuilder) generators(specs []GeneratorSpec) {
	for i, s := range specs {
		p := network.GeneratorParams{
			Bus: b.bus(s.Bus), RegBus: b.regBus(s.RegBus), Outage: s.Outage,
			P: s.P, Q: s.Q, PMax: s.PMax, PMin: s.PMin, QMax: s.QMax, QMin: s.QMin,
		}
		if b.err != nil {
			return
		}
		_, err := b.n.AddGenerator(p)
		b.fail("generator", i, err)
	}
}

func (b *caseBuilder) loads(specs []LoadSpec) {
	for i, s := range specs {
		p := network.LoadParams{Bus: b.bus(s.Bus), P: s.P, Q: s.Q}
		if b.err != nil {
			return
		}
		_, err := b.n.AddLoad(p)
		b.fail("load", i, err)
	}
}

func (b *caseBuilder) shunts(specs []ShuntSpec) {
	for i, s := range specs {
		kind := network.ShuntFixed
		if s.Type != "" {
			kind, _ = network.ParseShuntKind(s.Type)
		}
		p := network.ShuntParams{
			Kind: kind, Bus: b.bus(s.Bus), RegBus: b.regBus(s.RegBus),
			G: s.G, B: s.B, BMax: s.BMax, BMin: s.BMin,
		}
		if b.err != nil {
			return
		}
		_, err := b.n.AddShunt(p)
		b.fail("shunt", i, err)
	}
}

func (b *caseBuilder) varGenerators(specs []VarGeneratorSpec) {
	for i, s := range specs {
		p := network.VarGeneratorParams{
			Bus: b.bus(s.Bus), Name: s.Name, P: s.P, Q: s.Q,
			PMax: s.PMax, PMin: s.PMin, PStd: s.PStd, QMax: s.QMax, QMin: s.QMin,
		}
		if b.err != nil {
			return
		}
		_, err := b.n.AddVarGenerator(p)
		b.fail("var generator", i, err)
	}
}

func (b *caseBuilder) batteries(specs []BatterySpec) {
	for i, s := range specs {
		p := network.BatteryParams{
			Bus: b.bus(s.Bus), P: s.P, E: s.E, PMax: s.PMax, PMin: s.PMin,
			EMax: s.EMax, EtaC: s.EtaC, EtaD: s.EtaD,
		}
		if b.err != nil {
			return
		}
		_, err := b.n.AddBattery(p)
		b.fail("battery", i, err)
	}
}
