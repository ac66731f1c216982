// SPDX-License-Identifier: MIT
// Package quantity: the per-type quantity registry.
//
// Contract:
//   - Quantities(t) is ordered by bit and immutable after package init.
//   - No two quantities of one type share a bit; bits are dense from 0.
//   - Normalize is the only way a caller-supplied mask enters the engine, so a
//     bit that is not registered for the type never reaches the flag store.
//
// Widths: most quantities are a single scalar. Deviation-style quantities come
// in pairs (high/low, up/down, charge/discharge) and occupy two slots.

package quantity

import (
	"fmt"
	"strings"
)

// MaxQuantities bounds the number of quantities per type (Mask has 16 bits).
const MaxQuantities = 16

// Quantity is a named physical scalar attribute of one object type.
type Quantity struct {
	Type  ObjectType // owning type
	Name  string     // upper-case token, e.g. "VMAG"
	Bit   uint8      // stable bit position within the type's masks
	Width int        // number of scalar slots (1 or 2)
}

// Mask returns the single-bit mask of q.
func (q Quantity) Mask() Mask {
	return 1 << q.Bit
}

// Bus quantities.
const (
	BusVMag Mask = 1 << iota // voltage magnitude (p.u.)
	BusVAng                  // voltage angle (rad)
	BusVVio                  // voltage limit violation pair (high, low)
)

// Generator quantities.
const (
	GenP Mask = 1 << iota // active power (p.u.)
	GenQ                  // reactive power (p.u.)
)

// Branch quantities.
const (
	BranchRatio    Mask = 1 << iota // tap ratio
	BranchPhase                     // phase shift (rad)
	BranchRatioDev                  // tap ratio deviation pair (up, down)
)

// Shunt quantities.
const (
	ShuntSusc    Mask = 1 << iota // susceptance (p.u.)
	ShuntSuscDev                  // susceptance deviation pair (up, down)
)

// Variable generator quantities.
const (
	VarGenP Mask = 1 << iota // active power (p.u.)
	VarGenQ                  // reactive power (p.u.)
)

// Battery quantities.
const (
	BatteryP Mask = 1 << iota // charging / discharging power pair (p.u.)
	BatteryE                  // stored energy (p.u. times period)
)

// registry is indexed by ObjectType; every slice is ordered by Bit.
var registry = [numObjectTypes][]Quantity{
	ObjBus: {
		{ObjBus, "VMAG", 0, 1},
		{ObjBus, "VANG", 1, 1},
		{ObjBus, "VVIO", 2, 2},
	},
	ObjGen: {
		{ObjGen, "P", 0, 1},
		{ObjGen, "Q", 1, 1},
	},
	ObjBranch: {
		{ObjBranch, "RATIO", 0, 1},
		{ObjBranch, "PHASE", 1, 1},
		{ObjBranch, "RATIO_DEV", 2, 2},
	},
	ObjShunt: {
		{ObjShunt, "SUSC", 0, 1},
		{ObjShunt, "SUSC_DEV", 1, 2},
	},
	ObjVarGen: {
		{ObjVarGen, "P", 0, 1},
		{ObjVarGen, "Q", 1, 1},
	},
	ObjBattery: {
		{ObjBattery, "P", 0, 2},
		{ObjBattery, "E", 1, 1},
	},
	ObjLoad: nil,
}

// fullMasks caches the union of registered bits per type.
var fullMasks [numObjectTypes]Mask

func init() {
	for t, qs := range registry {
		for i, q := range qs {
			// Bits must be dense and ordered; a broken table is a programmer error.
			if int(q.Bit) != i || q.Type != ObjectType(t) || q.Width < 1 || int(q.Bit) >= MaxQuantities {
				panic(fmt.Sprintf("quantity: malformed registry entry %s/%s", ObjectType(t), q.Name))
			}
			fullMasks[t] |= q.Mask()
		}
	}
}

// Quantities returns the registered quantities of t ordered by bit.
// The returned slice is a copy; nil for unknown or non-flaggable types.
func Quantities(t ObjectType) []Quantity {
	if !t.Valid() || len(registry[t]) == 0 {
		return nil
	}
	out := make([]Quantity, len(registry[t]))
	copy(out, registry[t])

	return out
}

// At returns the quantity of t at bit position bit.
func At(t ObjectType, bit uint8) (Quantity, bool) {
	if !t.Valid() || int(bit) >= len(registry[t]) {
		return Quantity{}, false
	}

	return registry[t][bit], true
}

// Lookup finds a quantity of t by name, case-insensitively.
func Lookup(t ObjectType, name string) (Quantity, bool) {
	if !t.Valid() {
		return Quantity{}, false
	}
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, q := range registry[t] {
		if q.Name == key {
			return q, true
		}
	}

	return Quantity{}, false
}

// FullMask returns the union of every registered bit of t (0 for loads/unknown).
func FullMask(t ObjectType) Mask {
	if !t.Valid() {
		return 0
	}

	return fullMasks[t]
}

// Count returns the number of registered quantities of t.
func Count(t ObjectType) int {
	if !t.Valid() {
		return 0
	}

	return len(registry[t])
}

// Width returns the slot width of the quantity at bit, or 0 if unregistered.
func Width(t ObjectType, bit uint8) int {
	q, ok := At(t, bit)
	if !ok {
		return 0
	}

	return q.Width
}

// Normalize folds a single quantity, an OR'd mask or a list of either into one
// mask and validates it against the registry of t.
//
// Errors:
//   - ErrUnknownObjectType if t is outside the enumeration.
//   - ErrUnknownQuantity if any bit is not registered for t.
//
// Complexity: O(len(qs)).
func Normalize(t ObjectType, qs ...Mask) (Mask, error) {
	if !t.Valid() {
		return 0, fmt.Errorf("Normalize: type %d: %w", int(t), ErrUnknownObjectType)
	}
	var m Mask
	for _, q := range qs {
		m |= q
	}
	if extra := m &^ fullMasks[t]; extra != 0 {
		return 0, fmt.Errorf("Normalize: %s mask %#x has unregistered bits %#x: %w", t, m, extra, ErrUnknownQuantity)
	}

	return m, nil
}

// ParseMask parses "vmag|vang" (names of t's quantities) into a mask.
// "all" selects every registered quantity; an empty string yields 0.
func ParseMask(t ObjectType, s string) (Mask, error) {
	if !t.Valid() {
		return 0, fmt.Errorf("ParseMask: type %d: %w", int(t), ErrUnknownObjectType)
	}
	var m Mask
	for _, tok := range splitTokens(s) {
		if tok == "all" {
			m |= fullMasks[t]
			continue
		}
		q, ok := Lookup(t, tok)
		if !ok {
			return 0, fmt.Errorf("ParseMask: %s has no quantity %q: %w", t, tok, ErrUnknownQuantity)
		}
		m |= q.Mask()
	}

	return m, nil
}

// FormatMask renders m as "VMAG|VANG" using the names registered for t.
// Unregistered bits are rendered as hex so nothing is silently dropped.
func FormatMask(t ObjectType, m Mask) string {
	if m == 0 {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, b := range m.Bits() {
		if q, ok := At(t, b); ok {
			parts = append(parts, q.Name)
		} else {
			parts = append(parts, fmt.Sprintf("%#x", Mask(1)<<b))
		}
	}

	return strings.Join(parts, "|")
}
