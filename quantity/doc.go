// Package quantity is the quantity registry of lvlgrid.
//
// Every component type of a power network (bus, generator, branch, shunt,
// variable generator, battery) exposes a fixed, ordered set of physical
// quantities. Each quantity owns a stable bit inside a type-scoped Mask, so a
// caller can say "VMAG|VANG of buses" as one integer.
//
//	Bus:     VMAG(0) VANG(1) VVIO(2, width 2)
//	Gen:     P(0) Q(1)
//	Branch:  RATIO(0) PHASE(1) RATIO_DEV(2, width 2)
//	Shunt:   SUSC(0) SUSC_DEV(1, width 2)
//	VarGen:  P(0) Q(1)
//	Battery: P(0, width 2) E(1)
//
// The package also owns the two other closed enumerations the engine keys on:
// ObjectType and FlagSet. Token parsers (ParseObjectType, ParseFlagSet,
// ParseMask) are provided for case files and the CLI.
//
// Errors:
//
//	ErrUnknownObjectType – object type outside the enumeration
//	ErrUnknownFlagSet    – empty or malformed flag set
//	ErrUnknownQuantity   – quantity bit/name not registered for the type
package quantity
