// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/katalvlaran/lvlgrid/metrics"
	"github.com/katalvlaran/lvlgrid/network"
	"github.com/katalvlaran/lvlgrid/quantity"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

func (a *app) countsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Print flag counts and topology counters",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			n, err := a.load(nil)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 1, ' ', 0)
			rows := []struct {
				name string
				val  int
			}{
				{"num_periods", n.NumPeriods()},
				{"num_vars", n.NumVars()},
				{"num_fixed", n.NumFixed()},
				{"num_bounded", n.NumBounded()},
				{"num_sparse", n.NumSparse()},
				{"buses", n.NumBuses()},
				{"slack_buses", n.NumSlackBuses()},
				{"buses_reg_by_gen", n.NumBusesRegByGen()},
				{"buses_reg_by_tran", n.NumBusesRegByTran()},
				{"buses_reg_by_tran_only", n.NumBusesRegByTranOnly()},
				{"buses_reg_by_shunt", n.NumBusesRegByShunt()},
				{"buses_reg_by_shunt_only", n.NumBusesRegByShuntOnly()},
				{"islands", n.NumIslands()},
				{"branches", n.NumBranches()},
				{"lines", n.NumLines()},
				{"fixed_trans", n.NumFixedTrans()},
				{"tap_changers_v", n.NumTapChangersV()},
				{"tap_changers_q", n.NumTapChangersQ()},
				{"phase_shifters", n.NumPhaseShifters()},
				{"generators", n.NumGenerators()},
				{"reg_gens", n.NumRegGens()},
				{"slack_gens", n.NumSlackGens()},
				{"loads", n.NumLoads()},
				{"shunts", n.NumShunts()},
				{"switched_shunts", n.NumSwitchedShunts()},
				{"fixed_shunts", n.NumFixedShunts()},
				{"var_generators", n.NumVarGenerators()},
				{"batteries", n.NumBatteries()},
			}
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d\n", r.name, r.val)
			}

			return w.Flush()
		},
	}
}

func (a *app) jsonCmd() *cobra.Command {
	var (
		component string
		index     int
	)
	cmd := &cobra.Command{
		Use:   "json",
		Short: "Print the network, or one component, as JSON",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			n, err := a.load(nil)
			if err != nil {
				return err
			}
			var s string
			if component == "" {
				s, err = n.JSONString()
			} else {
				s, err = componentJSON(n, component, index)
			}
			if err != nil {
				return err
			}
			a.printf("%s\n", s)

			return nil
		},
	}
	cmd.Flags().StringVar(&component, "component", "", "component type (bus, gen, branch, shunt, vargen, battery, load)")
	cmd.Flags().IntVar(&index, "index", 0, "component index")

	return cmd
}

func componentJSON(n *network.Network, component string, index int) (string, error) {
	typ, err := quantity.ParseObjectType(component)
	if err != nil {
		return "", err
	}
	var c interface{ JSONString() (string, error) }
	switch typ {
	case quantity.ObjBus:
		c, err = n.Bus(index)
	case quantity.ObjGen:
		c, err = n.Generator(index)
	case quantity.ObjBranch:
		c, err = n.Branch(index)
	case quantity.ObjShunt:
		c, err = n.Shunt(index)
	case quantity.ObjVarGen:
		c, err = n.VarGenerator(index)
	case quantity.ObjBattery:
		c, err = n.Battery(index)
	case quantity.ObjLoad:
		c, err = n.Load(index)
	}
	if err != nil {
		return "", err
	}

	return c.JSONString()
}

func (a *app) varsCmd() *cobra.Command {
	var limits string
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "Print the variable vector (or its limits), one entry per line",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			code, ok := network.ParseValueCode(limits)
			if !ok {
				return fmt.Errorf("--limits: unknown value %q", limits)
			}
			n, err := a.load(nil)
			if err != nil {
				return err
			}
			values, err := n.GetVarValuesFor(code)
			if err != nil {
				return err
			}
			for i, v := range values {
				a.printf("%d\t%g\n", i, v)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&limits, "limits", network.CurrentValues.String(), "current, upper or lower")

	return cmd
}

func (a *app) metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Load and flag the case, then dump the Prometheus text exposition",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			reg := metrics.NewRegistry()
			n, err := a.load(reg)
			if err != nil {
				return err
			}
			// Force the recompute so the gauges reflect the plan.
			_ = n.NumVars()

			families, err := reg.Prometheus().Gather()
			if err != nil {
				return err
			}
			for _, mf := range families {
				if _, err = expfmt.MetricFamilyToText(a.out, mf); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
