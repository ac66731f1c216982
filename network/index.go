// SPDX-License-Identifier: MIT
// Package network: index allocator.
//
// allocate walks every flaggable component once, in the canonical type order
// (Bus, Gen, Branch, Shunt, VarGen, Battery), ascending component index and
// ascending quantity bit. Each slot of a variable quantity receives a block of
// T contiguous indices, so period t of slot k of quantity q sits at
//
//	start(q) + k*T + t
//
// Fixed, bounded and sparse counts grow by one per flagged slot regardless of T.
//
// Complexity: O(C*Q + V) where C is the number of components, Q the number of
// quantities per type (at most 3) and V the number of variable slots.
// Determinism: identical flag state always yields an identical table.

package network

import "github.com/katalvlaran/lvlgrid/quantity"

// varEntry locates one variable slot: component, quantity bit, slot and the
// index of period 0.
type varEntry struct {
	typ   quantity.ObjectType
	index int
	bit   uint8
	slot  int
	start int
}

// allocation is the derived, cached product of one recompute pass.
type allocation struct {
	numVars    int
	numFixed   int
	numBounded int
	numSparse  int
	entries    []varEntry // ordered by start
}

// allocate recomputes counts and writes each component's start table.
// Caller holds n.mu.
func allocate(n *Network) allocation {
	var a allocation
	t := n.numPeriods

	for _, typ := range quantity.CanonicalOrder {
		qs := quantity.Quantities(typ)
		size := n.countOf(typ)
		for i := 0; i < size; i++ {
			c := n.componentAt(typ, i)
			c.resetStarts()
			if c.flags.IsZero() {
				continue
			}
			for _, q := range qs {
				m := q.Mask()
				if c.flags.Vars&m != 0 {
					c.start[q.Bit] = a.numVars
					for k := 0; k < q.Width; k++ {
						a.entries = append(a.entries, varEntry{typ: typ, index: i, bit: q.Bit, slot: k, start: a.numVars})
						a.numVars += t
					}
				}
				if c.flags.Fixed&m != 0 {
					a.numFixed += q.Width
				}
				if c.flags.Bounded&m != 0 {
					a.numBounded += q.Width
				}
				if c.flags.Sparse&m != 0 {
					a.numSparse += q.Width
				}
			}
		}
	}

	return a
}

// varIndex resolves (bit, slot, t) against the start table; -1 when the
// quantity is not a variable or the coordinates are out of range.
func (c *component) varIndex(typ quantity.ObjectType, bit uint8, slot, t, periods int) int {
	if int(bit) >= quantity.MaxQuantities || t < 0 || t >= periods {
		return -1
	}
	if slot < 0 || slot >= quantity.Width(typ, bit) {
		return -1
	}
	s := c.start[bit]
	if s < 0 {
		return -1
	}

	return s + slot*periods + t
}
