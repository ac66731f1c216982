// SPDX-License-Identifier: MIT
// Package network: per-component flag store.
//
// Each component owns exactly one Flags value: four independent masks, one bit
// per registered quantity of the component's type. Masks are structural, they
// apply to every period at once. Flags never count anything itself; counting
// and indexing happen in the allocator after the aggregator marks its cache dirty.

package network

import "github.com/katalvlaran/lvlgrid/quantity"

// Flags is the four-mask bundle of one component.
type Flags struct {
	Vars    quantity.Mask `json:"vars"`
	Fixed   quantity.Mask `json:"fixed"`
	Bounded quantity.Mask `json:"bounded"`
	Sparse  quantity.Mask `json:"sparse"`
}

// Set ORs m into every mask named by fs. Repeating a call is a no-op.
func (f *Flags) Set(fs quantity.FlagSet, m quantity.Mask) {
	if fs&quantity.FlagVars != 0 {
		f.Vars |= m
	}
	if fs&quantity.FlagFixed != 0 {
		f.Fixed |= m
	}
	if fs&quantity.FlagBounded != 0 {
		f.Bounded |= m
	}
	if fs&quantity.FlagSparse != 0 {
		f.Sparse |= m
	}
}

// Clear zeroes all four masks.
func (f *Flags) Clear() {
	*f = Flags{}
}

// Has reports whether every mask named by fs contains every bit of m.
// An invalid fs never matches.
func (f Flags) Has(fs quantity.FlagSet, m quantity.Mask) bool {
	if !fs.Valid() {
		return false
	}
	if fs&quantity.FlagVars != 0 && !f.Vars.Has(m) {
		return false
	}
	if fs&quantity.FlagFixed != 0 && !f.Fixed.Has(m) {
		return false
	}
	if fs&quantity.FlagBounded != 0 && !f.Bounded.Has(m) {
		return false
	}
	if fs&quantity.FlagSparse != 0 && !f.Sparse.Has(m) {
		return false
	}

	return true
}

// IsZero reports whether no bit is set in any mask.
func (f Flags) IsZero() bool {
	return f == Flags{}
}
