// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlgrid/builder"
	"github.com/katalvlaran/lvlgrid/caseio"
	"github.com/katalvlaran/lvlgrid/network"
	"github.com/spf13/cobra"
)

var errTopology = errors.New("exactly one of --path, --cycle, --grid, --sparse is required")

// genSpec collects the generate flags.
type genSpec struct {
	path, cycle, sparse int
	grid                string
	prob                float64
	seed                int64
	seeded              bool

	slack, regGens, gens, loads   int
	taps, phase, switched, fixedS int

	batteryPower, batteryEnergy float64
	varGenCapacity              float64
}

func (a *app) generateCmd() *cobra.Command {
	var g genSpec
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic case and write it as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g.seeded = cmd.Flags().Changed("seed")
			n, err := a.generate(g)
			if err != nil {
				return err
			}
			c, err := caseio.FromNetwork(n)
			if err != nil {
				return err
			}

			return caseio.Encode(a.out, c)
		},
	}
	f := cmd.Flags()
	f.IntVar(&g.path, "path", 0, "radial feeder with N buses")
	f.IntVar(&g.cycle, "cycle", 0, "ring with N buses")
	f.StringVar(&g.grid, "grid", "", "meshed grid ROWSxCOLS")
	f.IntVar(&g.sparse, "sparse", 0, "random network with N buses (needs --seed)")
	f.Float64Var(&g.prob, "p", 0.1, "line probability for --sparse")
	f.Int64Var(&g.seed, "seed", 0, "seed for random topology and device placement")
	f.IntVar(&g.slack, "slack", 1, "slack buses")
	f.IntVar(&g.regGens, "reg-gens", 0, "voltage-regulating generators")
	f.IntVar(&g.gens, "gens", 0, "non-regulating generators")
	f.IntVar(&g.loads, "loads", 0, "loads")
	f.IntVar(&g.taps, "tap-changers", 0, "voltage-regulating tap changers")
	f.IntVar(&g.phase, "phase-shifters", 0, "phase shifters")
	f.IntVar(&g.switched, "switched-shunts", 0, "voltage-regulating switched shunts")
	f.IntVar(&g.fixedS, "fixed-shunts", 0, "fixed shunts")
	f.Float64Var(&g.batteryPower, "battery-power", 0, "battery power on generator buses, percent of peak load (0 disables)")
	f.Float64Var(&g.batteryEnergy, "battery-energy", 0, "battery energy, percent of peak load")
	f.Float64Var(&g.varGenCapacity, "vargen-capacity", 0, "variable generation on load buses, percent of peak load (0 disables)")

	return cmd
}

func (a *app) generate(g genSpec) (*network.Network, error) {
	topo, err := g.topology()
	if err != nil {
		return nil, err
	}

	var bopts []builder.BuilderOption
	if g.seeded {
		bopts = append(bopts, builder.WithSeed(g.seed))
	}
	nopts := []network.Option{network.WithLogger(a.logger)}
	if a.periods > 0 {
		nopts = append(nopts, network.WithNumPeriods(a.periods))
	}

	n, err := builder.BuildNetwork(nopts, bopts,
		topo,
		builder.Slack(g.slack),
		builder.RegulatingGenerators(g.regGens),
		builder.Generators(g.gens),
		builder.Loads(g.loads),
		builder.TapChangers(g.taps),
		builder.PhaseShifters(g.phase),
		builder.SwitchedShunts(g.switched),
		builder.FixedShunts(g.fixedS),
	)
	if err != nil {
		return nil, err
	}

	if g.batteryPower > 0 {
		if err = n.AddBatteries(n.GeneratorBuses(), g.batteryPower, g.batteryEnergy); err != nil {
			return nil, err
		}
	}
	if g.varGenCapacity > 0 {
		if err = n.AddVarGenerators(n.LoadBuses(), g.varGenCapacity, 50, 30); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (g genSpec) topology() (builder.Constructor, error) {
	var (
		con   builder.Constructor
		count int
	)
	if g.path > 0 {
		con, count = builder.Path(g.path), count+1
	}
	if g.cycle > 0 {
		con, count = builder.Cycle(g.cycle), count+1
	}
	if g.sparse > 0 {
		con, count = builder.RandomSparse(g.sparse, g.prob), count+1
	}
	if g.grid != "" {
		var rows, cols int
		if _, err := fmt.Sscanf(g.grid, "%dx%d", &rows, &cols); err != nil {
			return nil, fmt.Errorf("--grid %q: want ROWSxCOLS: %w", g.grid, err)
		}
		con, count = builder.Grid(rows, cols), count+1
	}
	if count != 1 {
		return nil, errTopology
	}

	return con, nil
}
