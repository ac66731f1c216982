// SPDX-License-Identifier: MIT
// Package quantity: object types, flag sets and quantity masks.
//
// This file declares the closed enumerations the rest of lvlgrid dispatches on:
//   - ObjectType - the kind of network component (bus, generator, ...).
//   - FlagSet    - which of the four per-component masks an operation targets.
//   - Mask       - a union of quantity bits, interpreted per ObjectType.
//
// All three are plain integers so they can be OR'd, compared and used as table
// keys without allocation.

package quantity

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for registry lookups and token parsing.
var (
	// ErrUnknownObjectType indicates an object type outside the closed enumeration.
	ErrUnknownObjectType = errors.New("quantity: unknown object type")

	// ErrUnknownFlagSet indicates an empty flag set or one with bits outside {vars,fixed,bounded,sparse}.
	ErrUnknownFlagSet = errors.New("quantity: unknown flag set")

	// ErrUnknownQuantity indicates a quantity bit or name not registered for the object type.
	ErrUnknownQuantity = errors.New("quantity: unknown quantity for object type")
)

// ObjectType identifies a component kind. The declaration order of the
// flaggable kinds IS the canonical allocation order used by the index allocator.
type ObjectType int

const (
	ObjBus     ObjectType = iota // bus (node)
	ObjGen                       // conventional generator
	ObjBranch                    // line or transformer
	ObjShunt                     // shunt device
	ObjVarGen                    // variable (renewable) generator
	ObjBattery                   // storage unit
	ObjLoad                      // load; carries no flaggable quantities
)

// numObjectTypes is the size of per-type lookup tables.
const numObjectTypes = int(ObjLoad) + 1

// CanonicalOrder lists the flaggable object types in allocation order.
var CanonicalOrder = [...]ObjectType{ObjBus, ObjGen, ObjBranch, ObjShunt, ObjVarGen, ObjBattery}

var objectTypeNames = [numObjectTypes]string{
	ObjBus:     "bus",
	ObjGen:     "gen",
	ObjBranch:  "branch",
	ObjShunt:   "shunt",
	ObjVarGen:  "vargen",
	ObjBattery: "battery",
	ObjLoad:    "load",
}

// Valid reports whether t belongs to the enumeration.
func (t ObjectType) Valid() bool {
	return t >= ObjBus && t <= ObjLoad
}

// Flaggable reports whether components of type t carry registered quantities.
func (t ObjectType) Flaggable() bool {
	return t.Valid() && len(registry[t]) > 0
}

// String returns the lower-case token for t, or "unknown".
func (t ObjectType) String() string {
	if !t.Valid() {
		return "unknown"
	}

	return objectTypeNames[t]
}

// ParseObjectType resolves a token ("bus", "gen", ...) case-insensitively.
// Returns ErrUnknownObjectType for anything else.
func ParseObjectType(s string) (ObjectType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for t, name := range objectTypeNames {
		if name == key {
			return ObjectType(t), nil
		}
	}
	// a couple of spellings used by case files
	switch key {
	case "generator":
		return ObjGen, nil
	case "var_generator", "var_gen":
		return ObjVarGen, nil
	case "bat":
		return ObjBattery, nil
	}

	return 0, fmt.Errorf("ParseObjectType: token %q: %w", s, ErrUnknownObjectType)
}

// FlagSet selects one or more of the four per-component masks.
type FlagSet uint8

const (
	FlagVars    FlagSet = 1 << iota // treated as optimization variables
	FlagFixed                       // fixed at their current value
	FlagBounded                     // bounded by their limits
	FlagSparse                      // participate in the sparse perturbation set

	flagAll = FlagVars | FlagFixed | FlagBounded | FlagSparse
)

var flagSetNames = [...]struct {
	f    FlagSet
	name string
}{
	{FlagVars, "vars"},
	{FlagFixed, "fixed"},
	{FlagBounded, "bounded"},
	{FlagSparse, "sparse"},
}

// Valid reports whether f is a non-empty combination of the four known flags.
func (f FlagSet) Valid() bool {
	return f != 0 && f&^flagAll == 0
}

// Contains reports whether every flag of other is present in f.
func (f FlagSet) Contains(other FlagSet) bool {
	return f&other == other
}

// String renders f as "vars|sparse"; invalid sets render as "invalid".
func (f FlagSet) String() string {
	if !f.Valid() {
		return "invalid"
	}
	parts := make([]string, 0, len(flagSetNames))
	for _, fn := range flagSetNames {
		if f&fn.f != 0 {
			parts = append(parts, fn.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseFlagSet parses "vars", "fixed|bounded", ... into a FlagSet.
func ParseFlagSet(s string) (FlagSet, error) {
	var out FlagSet
	for _, tok := range splitTokens(s) {
		found := false
		for _, fn := range flagSetNames {
			if tok == fn.name {
				out |= fn.f
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("ParseFlagSet: token %q: %w", tok, ErrUnknownFlagSet)
		}
	}
	if !out.Valid() {
		return 0, fmt.Errorf("ParseFlagSet: empty set %q: %w", s, ErrUnknownFlagSet)
	}

	return out, nil
}

// Mask is a union of quantity bits. Its meaning depends on the ObjectType it
// is paired with: bit 0 is VMAG for a bus but P for a generator.
type Mask uint16

// Has reports whether every bit of m2 is set in m.
func (m Mask) Has(m2 Mask) bool {
	return m&m2 == m2
}

// Bits returns the positions of the set bits in ascending order.
func (m Mask) Bits() []uint8 {
	out := make([]uint8, 0, 4)
	for b := uint8(0); b < MaxQuantities; b++ {
		if m&(1<<b) != 0 {
			out = append(out, b)
		}
	}

	return out
}

// splitTokens splits "a|b, c" into lower-case, trimmed, non-empty tokens.
func splitTokens(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == ',' || r == ' ' || r == '+'
	})

	return fields
}
