// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// impl_devices.go - device placement constructors.
//
// Contract:
//   - 0 ≤ k ≤ NumBuses (else ErrInvalidCount / ErrTooFewBuses); k = 0 is a no-op.
//   - Buses come from pickBuses: the first k, or a seeded random sample.
//   - Two-terminal devices (tap changers, phase shifters) need at least two
//     buses and connect bus i to (i+1) mod NumBuses.
//   - Regulating devices regulate the bus they are placed on (tap changers
//     regulate their m-side bus).

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvlgrid/network"
)

// Slack marks k buses as slack.
func Slack(k int) Constructor {
	return func(n *network.Network, cfg builderConfig) error {
		if err := validateCount(methodSlack, n, k, 1); err != nil {
			return err
		}
		for _, i := range pickBuses(n, cfg, k) {
			if err := n.SetBusSlack(i, true); err != nil {
				return fmt.Errorf("%s: %w", methodSlack, err)
			}
		}

		return nil
	}
}

// RegulatingGenerators places k generators, each regulating its own bus.
func RegulatingGenerators(k int) Constructor {
	return generators(methodRegGens, k, true)
}

// Generators places k generators that regulate nothing.
func Generators(k int) Constructor {
	return generators(methodGens, k, false)
}

func generators(method string, k int, regulating bool) Constructor {
	return func(n *network.Network, cfg builderConfig) error {
		if err := validateCount(method, n, k, 1); err != nil {
			return err
		}
		for _, i := range pickBuses(n, cfg, k) {
			reg := network.NoBus
			if regulating {
				reg = i
			}
			p := cfg.injectionFn(cfg.rng)
			if p > cfg.capacity {
				p = cfg.capacity
			}
			_, err := n.AddGenerator(network.GeneratorParams{
				Bus:    i,
				RegBus: reg,
				P:      p,
				PMax:   cfg.capacity,
				QMax:   cfg.capacity / 2,
				QMin:   -cfg.capacity / 2,
			})
			if err != nil {
				return fmt.Errorf("%s: AddGenerator(bus %d): %w", method, i, err)
			}
		}

		return nil
	}
}

// Loads places k loads with P drawn from cfg.injectionFn.
func Loads(k int) Constructor {
	return func(n *network.Network, cfg builderConfig) error {
		if err := validateCount(methodLoads, n, k, 1); err != nil {
			return err
		}
		for _, i := range pickBuses(n, cfg, k) {
			p := cfg.injectionFn(cfg.rng)
			if _, err := n.AddLoad(network.LoadParams{Bus: i, P: p, Q: loadPowerFactorQ * p}); err != nil {
				return fmt.Errorf("%s: AddLoad(bus %d): %w", methodLoads, i, err)
			}
		}

		return nil
	}
}

// TapChangers places k voltage-regulating transformers.
func TapChangers(k int) Constructor {
	return func(n *network.Network, cfg builderConfig) error {
		if err := validateCount(methodTapChangers, n, k, minBranchBuses); err != nil {
			return err
		}
		for _, i := range pickBuses(n, cfg, k) {
			m := neighbor(n, i)
			_, err := n.AddBranch(network.BranchParams{
				Kind:     network.BranchTapV,
				BusK:     i,
				BusM:     m,
				RegBus:   m,
				G:        lineG,
				B:        lineB,
				RatioMax: ratioMax,
				RatioMin: ratioMin,
			})
			if err != nil {
				return fmt.Errorf("%s: AddBranch(%d,%d): %w", methodTapChangers, i, m, err)
			}
		}

		return nil
	}
}

// PhaseShifters places k phase-shifting transformers.
func PhaseShifters(k int) Constructor {
	return func(n *network.Network, cfg builderConfig) error {
		if err := validateCount(methodPhaseShift, n, k, minBranchBuses); err != nil {
			return err
		}
		for _, i := range pickBuses(n, cfg, k) {
			m := neighbor(n, i)
			_, err := n.AddBranch(network.BranchParams{
				Kind:     network.BranchPhaseShifter,
				BusK:     i,
				BusM:     m,
				RegBus:   network.NoBus,
				G:        lineG,
				B:        lineB,
				PhaseMax: phaseMax,
				PhaseMin: phaseMin,
			})
			if err != nil {
				return fmt.Errorf("%s: AddBranch(%d,%d): %w", methodPhaseShift, i, m, err)
			}
		}

		return nil
	}
}

// SwitchedShunts places k voltage-regulating shunts.
func SwitchedShunts(k int) Constructor {
	return shunts(methodSwitched, k, network.ShuntSwitchedV)
}

// FixedShunts places k fixed shunts with susceptance fixedShuntB.
func FixedShunts(k int) Constructor {
	return shunts(methodFixedShunts, k, network.ShuntFixed)
}

func shunts(method string, k int, kind network.ShuntKind) Constructor {
	return func(n *network.Network, cfg builderConfig) error {
		if err := validateCount(method, n, k, 1); err != nil {
			return err
		}
		for _, i := range pickBuses(n, cfg, k) {
			p := network.ShuntParams{Kind: kind, Bus: i, RegBus: network.NoBus, B: fixedShuntB}
			if kind == network.ShuntSwitchedV {
				p.RegBus = i
				p.B = 0
				p.BMax, p.BMin = switchedBMax, switchedBMin
			}
			if _, err := n.AddShunt(p); err != nil {
				return fmt.Errorf("%s: AddShunt(bus %d): %w", method, i, err)
			}
		}

		return nil
	}
}
