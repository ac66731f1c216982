// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/lvlgrid/caseio"
	"github.com/katalvlaran/lvlgrid/metrics"
	"github.com/katalvlaran/lvlgrid/network"
	"github.com/spf13/cobra"
)

var errNoCase = errors.New("--case is required")

// app holds the flags shared by every subcommand.
type app struct {
	out, errOut io.Writer

	casePath string
	planPath string
	verbose  bool
	periods  int

	logger *slog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "lvlgrid",
		Short:         "Flag classification and variable indexing for power network cases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.casePath, "case", "", "YAML case file")
	pf.StringVar(&a.planPath, "plan", "", "YAML flag plan applied after loading")
	pf.IntVar(&a.periods, "periods", 0, "override the number of periods of the case")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log recompute passes and rejected steps to stderr")

	root.AddCommand(
		a.countsCmd(),
		a.jsonCmd(),
		a.varsCmd(),
		a.metricsCmd(),
		a.generateCmd(),
	)

	return root
}

// load builds the case network and applies the plan, if any.
func (a *app) load(reg *metrics.Registry) (*network.Network, error) {
	if a.casePath == "" {
		return nil, errNoCase
	}
	c, err := caseio.Load(a.casePath)
	if err != nil {
		return nil, err
	}

	opts := []network.Option{network.WithLogger(a.logger)}
	if a.periods > 0 {
		opts = append(opts, network.WithNumPeriods(a.periods))
	}
	if reg != nil {
		opts = append(opts, network.WithMetrics(reg))
	}
	n, err := c.Build(opts...)
	if err != nil {
		return nil, err
	}

	if a.planPath != "" {
		p, err := caseio.LoadPlan(a.planPath)
		if err != nil {
			return nil, err
		}
		if err = caseio.ApplyPlan(n, p); err != nil {
			return nil, err
		}
		a.logger.Debug("plan applied", slog.String("plan", p.Name), slog.Int("steps", len(p.Steps)))
	}

	return n, nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
