// SPDX-License-Identifier: MIT
// Package network: property evaluator.
//
// A Property is a per-type bitmask of structural predicates. A component
// matches a Property when every set bit holds (conjunction); PropAny matches
// everything. Predicates are pure functions of the live topology and are
// evaluated on every SetFlags call, never cached.
//
// Overlapping bus properties are resolved by one explicit precedence table,
// busClassTable: Slack > RegByGen > RegByTran > RegByShunt > Free. Every bus
// falls into exactly one BusClass, and the *_ONLY properties are defined
// through it, so the "exclusive" sets partition the bus collection.

package network

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvlgrid/quantity"
)

// Property is a conjunction of structural predicates of one object type.
type Property uint16

// PropAny matches every component of any type.
const PropAny Property = 0

// Bus properties.
const (
	BusPropSlack          Property = 1 << iota // slack bus
	BusPropRegByGen                            // voltage regulated by a generator
	BusPropRegByTran                           // voltage regulated by a tap-changer-V transformer
	BusPropRegByShunt                          // voltage regulated by a switched-V shunt
	BusPropNotRegByGen                         // not regulated by any generator
	BusPropNotSlack                            // not a slack bus
	BusPropRegByTranOnly                       // class RegByTran under the precedence table
	BusPropRegByShuntOnly                      // class RegByShunt under the precedence table
)

// Generator properties.
const (
	GenPropSlack    Property = 1 << iota // connected to a slack bus
	GenPropReg                           // regulates a bus voltage
	GenPropNotReg                        // regulates nothing
	GenPropNotSlack                      // not on a slack bus
	GenPropNotOut                        // in service
	GenPropPAdjust                       // P_min < P_max
)

// Branch properties.
const (
	BranchPropTapChanger   Property = 1 << iota // tap changer, either kind
	BranchPropTapChangerV                       // tap changer regulating a bus voltage
	BranchPropTapChangerQ                       // tap changer regulating reactive flow
	BranchPropPhaseShifter                      // phase shifter
	BranchPropNotOut                            // in service
)

// Shunt properties.
const (
	ShuntPropSwitchedV Property = 1 << iota // switched shunt with voltage support
)

// BusClass is the single exclusive class of a bus under the precedence table.
type BusClass int

const (
	BusClassSlack      BusClass = iota // slack buses, whatever else holds
	BusClassRegByGen                   // generator regulated, not slack
	BusClassRegByTran                  // transformer regulated, neither of the above
	BusClassRegByShunt                 // shunt regulated, none of the above
	BusClassFree                       // everything else
)

var busClassNames = [...]string{"slack", "reg_by_gen", "reg_by_tran", "reg_by_shunt", "free"}

// String returns the lower-case class name.
func (c BusClass) String() string {
	if c < BusClassSlack || c > BusClassFree {
		return "unknown"
	}

	return busClassNames[c]
}

// busClassTable is the ordered precedence: the first test that holds wins.
var busClassTable = []struct {
	class BusClass
	test  func(*Bus) bool
}{
	{BusClassSlack, (*Bus).IsSlack},
	{BusClassRegByGen, (*Bus).IsRegulatedByGen},
	{BusClassRegByTran, (*Bus).IsRegulatedByTran},
	{BusClassRegByShunt, (*Bus).IsRegulatedByShunt},
}

func classify(b *Bus) BusClass {
	for _, row := range busClassTable {
		if row.test(b) {
			return row.class
		}
	}

	return BusClassFree
}

// propRule binds one property bit to its token and predicate.
type propRule struct {
	bit  Property
	name string
	test func(n *Network, i int) bool
}

var propTable = map[quantity.ObjectType][]propRule{
	quantity.ObjBus: {
		{BusPropSlack, "slack", func(n *Network, i int) bool { return n.buses[i].IsSlack() }},
		{BusPropRegByGen, "reg_by_gen", func(n *Network, i int) bool { return n.buses[i].IsRegulatedByGen() }},
		{BusPropRegByTran, "reg_by_tran", func(n *Network, i int) bool { return n.buses[i].IsRegulatedByTran() }},
		{BusPropRegByShunt, "reg_by_shunt", func(n *Network, i int) bool { return n.buses[i].IsRegulatedByShunt() }},
		{BusPropNotRegByGen, "not_reg_by_gen", func(n *Network, i int) bool { return !n.buses[i].IsRegulatedByGen() }},
		{BusPropNotSlack, "not_slack", func(n *Network, i int) bool { return !n.buses[i].IsSlack() }},
		{BusPropRegByTranOnly, "reg_by_tran_only", func(n *Network, i int) bool { return classify(n.buses[i]) == BusClassRegByTran }},
		{BusPropRegByShuntOnly, "reg_by_shunt_only", func(n *Network, i int) bool { return classify(n.buses[i]) == BusClassRegByShunt }},
	},
	quantity.ObjGen: {
		{GenPropSlack, "slack", func(n *Network, i int) bool { return n.gens[i].IsSlack() }},
		{GenPropReg, "reg", func(n *Network, i int) bool { return n.gens[i].IsRegulator() }},
		{GenPropNotReg, "not_reg", func(n *Network, i int) bool { return !n.gens[i].IsRegulator() }},
		{GenPropNotSlack, "not_slack", func(n *Network, i int) bool { return !n.gens[i].IsSlack() }},
		{GenPropNotOut, "not_out", func(n *Network, i int) bool { return !n.gens[i].IsOnOutage() }},
		{GenPropPAdjust, "p_adjust", func(n *Network, i int) bool { return n.gens[i].IsPAdjustable() }},
	},
	quantity.ObjBranch: {
		{BranchPropTapChanger, "tap_changer", func(n *Network, i int) bool { return n.branches[i].IsTapChanger() }},
		{BranchPropTapChangerV, "tap_changer_v", func(n *Network, i int) bool { return n.branches[i].IsTapChangerV() }},
		{BranchPropTapChangerQ, "tap_changer_q", func(n *Network, i int) bool { return n.branches[i].IsTapChangerQ() }},
		{BranchPropPhaseShifter, "phase_shifter", func(n *Network, i int) bool { return n.branches[i].IsPhaseShifter() }},
		{BranchPropNotOut, "not_out", func(n *Network, i int) bool { return !n.branches[i].IsOnOutage() }},
	},
	quantity.ObjShunt: {
		{ShuntPropSwitchedV, "switched_v", func(n *Network, i int) bool { return n.shunts[i].IsSwitchedV() }},
	},
}

// validProps returns the union of property bits defined for t.
func validProps(t quantity.ObjectType) Property {
	var all Property
	for _, r := range propTable[t] {
		all |= r.bit
	}

	return all
}

// checkProperty rejects bits outside t's property table.
func checkProperty(t quantity.ObjectType, p Property) error {
	if extra := p &^ validProps(t); extra != 0 {
		return fmt.Errorf("%s property %#x: %w", t, uint16(extra), ErrUnknownProperty)
	}

	return nil
}

// matches evaluates the conjunction p against component i of type t.
// Caller holds n.mu and has validated p.
func (n *Network) matches(t quantity.ObjectType, i int, p Property) bool {
	if p == PropAny {
		return true
	}
	for _, r := range propTable[t] {
		if p&r.bit != 0 && !r.test(n, i) {
			return false
		}
	}

	return true
}

// Matches reports whether component i of type t satisfies every bit of p.
//
// Errors:
//   - ErrInvalidObjectType for unknown or non-flaggable types.
//   - ErrUnknownProperty for bits not defined for t.
//   - ErrComponentNotFound if i is out of range.
func (n *Network) Matches(t quantity.ObjectType, i int, p Property) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !t.Flaggable() {
		return false, fmt.Errorf("Matches: %v: %w", t, ErrInvalidObjectType)
	}
	if err := checkProperty(t, p); err != nil {
		return false, fmt.Errorf("Matches: %w", err)
	}
	if i < 0 || i >= n.countOf(t) {
		return false, fmt.Errorf("Matches: %s %d: %w", t, i, ErrComponentNotFound)
	}

	return n.matches(t, i, p), nil
}

// ClassifyBus returns the exclusive precedence class of bus i.
func (n *Network) ClassifyBus(i int) (BusClass, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if i < 0 || i >= len(n.buses) {
		return 0, fmt.Errorf("ClassifyBus: bus %d: %w", i, ErrBusNotFound)
	}

	return classify(n.buses[i]), nil
}

// ParseProperty parses tokens like "slack|not_out" for type t.
// "any" and the empty string yield PropAny.
func ParseProperty(t quantity.ObjectType, s string) (Property, error) {
	var p Property
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), isSeparator) {
		if tok == "any" {
			continue
		}
		found := false
		for _, r := range propTable[t] {
			if r.name == tok {
				p |= r.bit
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("ParseProperty: %v has no property %q: %w", t, tok, ErrUnknownProperty)
		}
	}

	return p, nil
}

// FormatProperty renders p as "slack|not_out"; PropAny renders as "any".
func FormatProperty(t quantity.ObjectType, p Property) string {
	if p == PropAny {
		return "any"
	}
	parts := make([]string, 0, 2)
	for _, r := range propTable[t] {
		if p&r.bit != 0 {
			parts = append(parts, r.name)
		}
	}
	if extra := p &^ validProps(t); extra != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint16(extra)))
	}

	return strings.Join(parts, "|")
}

func isSeparator(r rune) bool {
	return r == '|' || r == ',' || r == '+' || r == ' ' || r == '\t'
}
