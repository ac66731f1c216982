// SPDX-License-Identifier: MIT
// Package network: the aggregator.
//
// Network exclusively owns every component and the derived index table. Its
// cache follows an explicit two-state machine:
//
//	clean --SetFlags/SetFlagsOf/ClearFlags/Add*--> dirty
//	dirty --any read of counts, indices or vectors--> clean (recompute)
//
// A single sync.Mutex guards each mutate-then-recompute sequence and each lazy
// read. Nothing blocks inside the lock, so no context is taken.

package network

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/lvlgrid/metrics"
	"github.com/katalvlaran/lvlgrid/quantity"
)

// Network is a multi-period power network with a flag and index engine.
type Network struct {
	mu sync.Mutex

	basePower  float64
	numPeriods int

	buses     []*Bus
	branches  []*Branch
	gens      []*Generator
	loads     []*Load
	shunts    []*Shunt
	varGens   []*VarGenerator
	batteries []*Battery
	busIndex  map[int]int // bus number -> index

	dirty      bool
	alloc      allocation
	recomputes int

	logger  *slog.Logger
	metrics *metrics.Registry
}

// NewNetwork creates an empty network. Options are applied in order.
func NewNetwork(opts ...Option) *Network {
	n := &Network{
		basePower:  DefaultBasePower,
		numPeriods: DefaultNumPeriods,
		busIndex:   make(map[int]int),
		logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// NumPeriods returns T.
func (n *Network) NumPeriods() int { return n.numPeriods }

// BasePower returns the system base power in MVA.
func (n *Network) BasePower() float64 { return n.basePower }

// SetFlags ORs the quantities qs into the masks named by fs of every component
// of type obj that satisfies prop.
//
// Every argument is validated before any mask is written, so a failed call
// leaves the network untouched. Zero matches is a silent success. Repeating a
// call is a no-op on the counts.
//
// Errors:
//   - ErrInvalidObjectType (unknown type, or loads).
//   - ErrInvalidFlagSet (empty or unknown bits).
//   - ErrUnknownProperty (bits not defined for obj).
//   - quantity.ErrUnknownQuantity (bits not registered for obj).
func (n *Network) SetFlags(obj quantity.ObjectType, fs quantity.FlagSet, prop Property, qs ...quantity.Mask) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	mask, err := validateFlags(obj, fs, prop, qs)
	if err != nil {
		return n.reject("SetFlags", obj, err)
	}

	matched := 0
	for i, size := 0, n.countOf(obj); i < size; i++ {
		if !n.matches(obj, i, prop) {
			continue
		}
		n.componentAt(obj, i).flags.Set(fs, mask)
		matched++
	}
	n.dirty = true
	n.metrics.ObserveSetFlags(obj.String(), metrics.ResultOK)
	n.logger.Debug("set flags",
		slog.String("object", obj.String()),
		slog.String("flags", fs.String()),
		slog.String("property", FormatProperty(obj, prop)),
		slog.String("quantities", quantity.FormatMask(obj, mask)),
		slog.Int("matched", matched))

	return nil
}

// SetFlagsOf flags a single component of type obj.
func (n *Network) SetFlagsOf(obj quantity.ObjectType, index int, fs quantity.FlagSet, qs ...quantity.Mask) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	mask, err := validateFlags(obj, fs, PropAny, qs)
	if err != nil {
		return n.reject("SetFlagsOf", obj, err)
	}
	if index < 0 || index >= n.countOf(obj) {
		return n.reject("SetFlagsOf", obj, fmt.Errorf("%s %d: %w", obj, index, ErrComponentNotFound))
	}
	n.componentAt(obj, index).flags.Set(fs, mask)
	n.dirty = true
	n.metrics.ObserveSetFlags(obj.String(), metrics.ResultOK)

	return nil
}

// ClearFlags zeroes every mask of every component.
func (n *Network) ClearFlags() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, typ := range quantity.CanonicalOrder {
		for i, size := 0, n.countOf(typ); i < size; i++ {
			n.componentAt(typ, i).flags.Clear()
		}
	}
	n.dirty = true
}

// HasFlags reports whether component index of type obj has every bit of m in
// every mask named by fs.
func (n *Network) HasFlags(obj quantity.ObjectType, index int, fs quantity.FlagSet, m quantity.Mask) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !obj.Flaggable() {
		return false, fmt.Errorf("HasFlags: %v: %w", obj, ErrInvalidObjectType)
	}
	if !fs.Valid() {
		return false, fmt.Errorf("HasFlags: flag set %#x: %w", uint8(fs), ErrInvalidFlagSet)
	}
	if index < 0 || index >= n.countOf(obj) {
		return false, fmt.Errorf("HasFlags: %s %d: %w", obj, index, ErrComponentNotFound)
	}

	return n.componentAt(obj, index).flags.Has(fs, m), nil
}

// NumVars returns the length of the variable vector.
func (n *Network) NumVars() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ensureClean()

	return n.alloc.numVars
}

// NumFixed returns the number of fixed quantity slots.
func (n *Network) NumFixed() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ensureClean()

	return n.alloc.numFixed
}

// NumBounded returns the number of bounded quantity slots.
func (n *Network) NumBounded() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ensureClean()

	return n.alloc.numBounded
}

// NumSparse returns the number of sparse quantity slots.
func (n *Network) NumSparse() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ensureClean()

	return n.alloc.numSparse
}

// Recomputations returns how many allocator passes have run.
func (n *Network) Recomputations() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.recomputes
}

// VarIndex returns the variable index of slot of quantity q (a single bit) of
// component index of type obj in period t. ok is false when the quantity is not
// a variable or any coordinate is out of range.
func (n *Network) VarIndex(obj quantity.ObjectType, index int, q quantity.Mask, slot, t int) (int, bool) {
	bits := q.Bits()
	if !obj.Flaggable() || len(bits) != 1 {
		return -1, false
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if index < 0 || index >= n.countOf(obj) {
		return -1, false
	}
	n.ensureClean()
	idx := n.componentAt(obj, index).varIndex(obj, bits[0], slot, t, n.numPeriods)

	return idx, idx >= 0
}

// validateFlags folds qs and checks every token; it never touches state.
func validateFlags(obj quantity.ObjectType, fs quantity.FlagSet, prop Property, qs []quantity.Mask) (quantity.Mask, error) {
	if !obj.Flaggable() {
		return 0, fmt.Errorf("object type %v: %w", obj, ErrInvalidObjectType)
	}
	if !fs.Valid() {
		return 0, fmt.Errorf("flag set %#x: %w", uint8(fs), ErrInvalidFlagSet)
	}
	if err := checkProperty(obj, prop); err != nil {
		return 0, err
	}

	return quantity.Normalize(obj, qs...)
}

func (n *Network) reject(op string, obj quantity.ObjectType, err error) error {
	n.metrics.ObserveSetFlags(obj.String(), metrics.ResultRejected)
	n.logger.Warn("flags rejected", slog.String("op", op), slog.String("object", obj.String()), slog.Any("err", err))

	return fmt.Errorf("%s: %w", op, err)
}

// ensureClean runs the allocator when the cache is dirty. Caller holds n.mu.
func (n *Network) ensureClean() {
	if !n.dirty {
		return
	}
	began := time.Now()
	n.alloc = allocate(n)
	n.dirty = false
	n.recomputes++
	elapsed := time.Since(began)

	n.metrics.ObserveRecompute(elapsed, n.alloc.numVars, n.alloc.numFixed, n.alloc.numBounded, n.alloc.numSparse)
	n.logger.Debug("recompute",
		slog.Int("num_vars", n.alloc.numVars),
		slog.Int("num_fixed", n.alloc.numFixed),
		slog.Int("num_bounded", n.alloc.numBounded),
		slog.Int("num_sparse", n.alloc.numSparse),
		slog.Duration("elapsed", elapsed))
}

// countOf returns the size of the collection of t (0 for loads and unknown types
// in the flaggable sense, the load count for ObjLoad).
func (n *Network) countOf(t quantity.ObjectType) int {
	switch t {
	case quantity.ObjBus:
		return len(n.buses)
	case quantity.ObjGen:
		return len(n.gens)
	case quantity.ObjBranch:
		return len(n.branches)
	case quantity.ObjShunt:
		return len(n.shunts)
	case quantity.ObjVarGen:
		return len(n.varGens)
	case quantity.ObjBattery:
		return len(n.batteries)
	case quantity.ObjLoad:
		return len(n.loads)
	}

	return 0
}

// componentAt returns the embedded record of component i of type t.
// Caller guarantees 0 <= i < countOf(t).
func (n *Network) componentAt(t quantity.ObjectType, i int) *component {
	switch t {
	case quantity.ObjBus:
		return &n.buses[i].component
	case quantity.ObjGen:
		return &n.gens[i].component
	case quantity.ObjBranch:
		return &n.branches[i].component
	case quantity.ObjShunt:
		return &n.shunts[i].component
	case quantity.ObjVarGen:
		return &n.varGens[i].component
	case quantity.ObjBattery:
		return &n.batteries[i].component
	case quantity.ObjLoad:
		return &n.loads[i].component
	}

	return nil
}

// indexOf serves the per-component Index* shortcuts.
func (n *Network) indexOf(c *component, typ quantity.ObjectType, bit uint8, slot, t int) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ensureClean()

	return c.varIndex(typ, bit, slot, t, n.numPeriods)
}

// setValue writes one per-period value under the lock.
func (n *Network) setValue(v []float64, t int, x float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t < 0 || t >= len(v) {
		return fmt.Errorf("period %d of %d: %w", t, len(v), ErrPeriodOutOfRange)
	}
	if !finite(x) {
		return fmt.Errorf("value %v: %w", x, ErrInvalidParams)
	}
	v[t] = x

	return nil
}

func (n *Network) setOutage(dst *bool, outage bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	*dst = outage
}
