// SPDX-License-Identifier: MIT
// Package network: gather/scatter of the variable vector.
//
// The vector has exactly NumVars entries; entry i holds the value (or a limit)
// of the quantity slot whose block contains i. Every entry is finite: deviation
// and violation pairs report 0 as current value and DeviationLimit as upper
// limit.

package network

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlgrid/quantity"
)

// DeviationLimit is the finite upper limit of deviation and violation slots.
const DeviationLimit = 1e8

// ValueCode selects what GetVarValuesFor reports.
type ValueCode int

const (
	CurrentValues ValueCode = iota // present per-period values
	UpperLimits                    // upper bounds
	LowerLimits                    // lower bounds
)

// String returns the CLI token of c.
func (c ValueCode) String() string {
	switch c {
	case CurrentValues:
		return "current"
	case UpperLimits:
		return "upper"
	case LowerLimits:
		return "lower"
	}

	return "unknown"
}

// ParseValueCode resolves "current", "upper" or "lower".
func ParseValueCode(s string) (ValueCode, bool) {
	for _, c := range []ValueCode{CurrentValues, UpperLimits, LowerLimits} {
		if c.String() == s {
			return c, true
		}
	}

	return 0, false
}

// GetVarValues returns the current values of every variable, len == NumVars.
func (n *Network) GetVarValues() []float64 {
	out, _ := n.GetVarValuesFor(CurrentValues)

	return out
}

// GetVarValuesFor returns current values or limits of every variable.
//
// Complexity: O(NumVars) after the lazy recompute.
func (n *Network) GetVarValuesFor(code ValueCode) ([]float64, error) {
	if code < CurrentValues || code > LowerLimits {
		return nil, fmt.Errorf("GetVarValuesFor: code %d: %w", int(code), ErrInvalidParams)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.ensureClean()

	out := make([]float64, n.alloc.numVars)
	for _, e := range n.alloc.entries {
		for t := 0; t < n.numPeriods; t++ {
			out[e.start+t] = n.slotValue(e, t, code)
		}
	}

	return out, nil
}

// SetVarValues scatters a solver vector back into the component values.
// Deviation and violation slots carry no stored value and are skipped.
//
// Errors:
//   - ErrVectorLength if len(values) != NumVars.
//   - ErrInvalidParams if any entry is NaN or Inf; nothing is written then.
func (n *Network) SetVarValues(values []float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ensureClean()

	if len(values) != n.alloc.numVars {
		return fmt.Errorf("SetVarValues: got %d want %d: %w", len(values), n.alloc.numVars, ErrVectorLength)
	}
	for i, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("SetVarValues: entry %d: %w", i, ErrInvalidParams)
		}
	}
	for _, e := range n.alloc.entries {
		dst := n.slotStorage(e)
		if dst == nil {
			continue
		}
		for t := 0; t < n.numPeriods; t++ {
			dst[t] = values[e.start+t]
		}
	}

	return nil
}

// slotStorage returns the per-period slice backing a variable slot, or nil for
// slots without stored values. Caller holds n.mu.
func (n *Network) slotStorage(e varEntry) []float64 {
	switch e.typ {
	case quantity.ObjBus:
		b := n.buses[e.index]
		switch quantity.Mask(1) << e.bit {
		case quantity.BusVMag:
			return b.vMag
		case quantity.BusVAng:
			return b.vAng
		}
	case quantity.ObjGen:
		g := n.gens[e.index]
		switch quantity.Mask(1) << e.bit {
		case quantity.GenP:
			return g.p
		case quantity.GenQ:
			return g.q
		}
	case quantity.ObjBranch:
		br := n.branches[e.index]
		switch quantity.Mask(1) << e.bit {
		case quantity.BranchRatio:
			return br.ratio
		case quantity.BranchPhase:
			return br.phase
		}
	case quantity.ObjShunt:
		if quantity.Mask(1)<<e.bit == quantity.ShuntSusc {
			return n.shunts[e.index].b
		}
	case quantity.ObjVarGen:
		v := n.varGens[e.index]
		switch quantity.Mask(1) << e.bit {
		case quantity.VarGenP:
			return v.p
		case quantity.VarGenQ:
			return v.q
		}
	case quantity.ObjBattery:
		b := n.batteries[e.index]
		switch quantity.Mask(1) << e.bit {
		case quantity.BatteryP:
			if e.slot == 0 {
				return b.pc
			}
			return b.pd
		case quantity.BatteryE:
			return b.e
		}
	}

	return nil
}

// slotValue reports the value or limit of one slot in period t.
// Caller holds n.mu.
func (n *Network) slotValue(e varEntry, t int, code ValueCode) float64 {
	lo, hi := n.slotLimits(e)
	switch code {
	case UpperLimits:
		return hi
	case LowerLimits:
		return lo
	}
	if dst := n.slotStorage(e); dst != nil {
		return dst[t]
	}

	return 0
}

// slotLimits returns the (lower, upper) bounds of a slot.
func (n *Network) slotLimits(e varEntry) (lo, hi float64) {
	q := quantity.Mask(1) << e.bit
	switch e.typ {
	case quantity.ObjBus:
		b := n.buses[e.index]
		switch q {
		case quantity.BusVMag:
			return b.vMin, b.vMax
		case quantity.BusVAng:
			return -math.Pi, math.Pi
		}
	case quantity.ObjGen:
		g := n.gens[e.index]
		switch q {
		case quantity.GenP:
			return g.pMin, g.pMax
		case quantity.GenQ:
			return g.qMin, g.qMax
		}
	case quantity.ObjBranch:
		br := n.branches[e.index]
		switch q {
		case quantity.BranchRatio:
			return br.ratioMin, br.ratioMax
		case quantity.BranchPhase:
			return br.phaseMin, br.phaseMax
		}
	case quantity.ObjShunt:
		s := n.shunts[e.index]
		if q == quantity.ShuntSusc {
			return s.bMin, s.bMax
		}
	case quantity.ObjVarGen:
		v := n.varGens[e.index]
		switch q {
		case quantity.VarGenP:
			return v.pMin, v.pMax
		case quantity.VarGenQ:
			return v.qMin, v.qMax
		}
	case quantity.ObjBattery:
		b := n.batteries[e.index]
		switch q {
		case quantity.BatteryP:
			if e.slot == 0 {
				return 0, b.pMax
			}
			return 0, -b.pMin
		case quantity.BatteryE:
			return 0, b.eMax
		}
	}

	// violation / deviation pairs
	return 0, DeviationLimit
}
