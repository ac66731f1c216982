// SPDX-License-Identifier: MIT
// Package: lvlgrid/builder
//
// constants.go - method tags and electrical defaults shared by constructors.

package builder

import "math"

// Method tags used as error prefixes.
const (
	methodPath         = "Path"
	methodCycle        = "Cycle"
	methodGrid         = "Grid"
	methodRandomSparse = "RandomSparse"
	methodSlack        = "Slack"
	methodRegGens      = "RegulatingGenerators"
	methodGens         = "Generators"
	methodLoads        = "Loads"
	methodTapChangers  = "TapChangers"
	methodPhaseShift   = "PhaseShifters"
	methodSwitched     = "SwitchedShunts"
	methodFixedShunts  = "FixedShunts"
)

// Minimum sizes.
const (
	minPathBuses   = 2
	minCycleBuses  = 3
	minGridDim     = 1
	minSparseBuses = 1
	minBranchBuses = 2
)

// Line admittance in p.u.
const (
	lineG = 1.0
	lineB = -10.0
)

// Device defaults in p.u.
const (
	loadPowerFactorQ = 0.2
	ratioMax         = 1.1
	ratioMin         = 0.9
	switchedBMax     = 0.5
	switchedBMin     = -0.5
	fixedShuntB      = 0.05
)

var (
	phaseMax = math.Pi / 6
	phaseMin = -math.Pi / 6
)
