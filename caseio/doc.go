// SPDX-License-Identifier: MIT

// Package caseio reads and writes network case files and flag plans.
//
// A case file is YAML describing the components of one network; every bus
// reference uses the external bus number. A plan is an ordered list of
// SetFlags steps (or clear steps) applied to a built network.
//
//	c, err := caseio.Load("ieee14.yaml")
//	n, err := c.Build(network.WithLogger(logger))
//	p, err := caseio.LoadPlan("acopf.yaml")
//	err = caseio.ApplyPlan(n, p)
//
// Both documents are decoded strictly (unknown keys fail) and validated with
// struct tags before anything is built.
package caseio
