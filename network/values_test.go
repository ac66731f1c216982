// SPDX-License-Identifier: MIT
package network_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvlgrid/network"
	"github.com/katalvlaran/lvlgrid/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const susceptanceTol = 1e-10

func TestGetVarValues_LengthAndFinite(t *testing.T) {
	n := newScenario(t, 2)
	require.NoError(t, n.AddBatteries(n.GeneratorBuses(), 20, 50))
	require.NoError(t, n.AddVarGenerators(n.LoadBuses(), 100, 50, 30))
	flagAll(t, n, quantity.FlagVars)

	for _, code := range []network.ValueCode{network.CurrentValues, network.UpperLimits, network.LowerLimits} {
		values, err := n.GetVarValuesFor(code)
		require.NoError(t, err)
		require.Len(t, values, n.NumVars(), "code %s", code)
		for i, x := range values {
			require.False(t, math.IsNaN(x) || math.IsInf(x, 0), "entry %d of %s", i, code)
		}
	}

	_, err := n.GetVarValuesFor(network.ValueCode(9))
	require.ErrorIs(t, err, network.ErrInvalidParams)
}

func TestGetVarValues_SwitchedShuntSusceptance(t *testing.T) {
	n := newScenario(t, 1)
	require.NoError(t, n.SetFlags(quantity.ObjShunt, quantity.FlagVars, network.ShuntPropSwitchedV, quantity.ShuntSusc))
	values := n.GetVarValues()
	require.Len(t, values, scenAllSwitched)

	for _, sh := range n.Shunts() {
		if !sh.IsSwitchedV() {
			assert.Equal(t, -1, sh.IndexB(0))
			continue
		}
		idx := sh.IndexB(0)
		require.GreaterOrEqual(t, idx, 0)
		assert.InDelta(t, sh.B(0), values[idx], susceptanceTol)
	}
}

func TestGetVarValues_Limits(t *testing.T) {
	n := newScenario(t, 1)
	require.NoError(t, n.AddBatteries(n.GeneratorBuses(), 20, 50))
	require.NoError(t, n.SetFlags(quantity.ObjGen, quantity.FlagVars, network.PropAny, quantity.GenP))
	require.NoError(t, n.SetFlags(quantity.ObjBus, quantity.FlagVars, network.BusPropSlack, quantity.BusVAng|quantity.BusVVio))
	require.NoError(t, n.SetFlags(quantity.ObjBattery, quantity.FlagVars, network.PropAny, quantity.BatteryP))

	current := n.GetVarValues()
	upper, err := n.GetVarValuesFor(network.UpperLimits)
	require.NoError(t, err)
	lower, err := n.GetVarValuesFor(network.LowerLimits)
	require.NoError(t, err)

	g, err := n.Generator(0)
	require.NoError(t, err)
	i := g.IndexP(0)
	assert.Equal(t, g.P(0), current[i])
	assert.Equal(t, g.PMax(), upper[i])
	assert.Equal(t, g.PMin(), lower[i])

	bus, err := n.Bus(0)
	require.NoError(t, err)
	i = bus.IndexVAng(0)
	assert.Equal(t, math.Pi, upper[i])
	assert.Equal(t, -math.Pi, lower[i])
	hi, lo := bus.IndexVVio(0)
	assert.Zero(t, current[hi])
	assert.Equal(t, network.DeviationLimit, upper[lo])

	// Peak load 50 over 50 generator buses: each battery gets 20% and 50% of 1.
	bat, err := n.Battery(0)
	require.NoError(t, err)
	c, d := bat.IndexP(0)
	assert.InDelta(t, 0.2, upper[c], 1e-12)
	assert.InDelta(t, 0.2, upper[d], 1e-12)
	assert.Zero(t, lower[d])
	assert.InDelta(t, 0.5, bat.EMax(), 1e-12)
	assert.InDelta(t, 0.25, bat.E(0), 1e-12)
}

func TestSetVarValues(t *testing.T) {
	const periods = 2
	n := newScenario(t, periods)
	require.NoError(t, n.SetFlags(quantity.ObjGen, quantity.FlagVars, network.GenPropReg, quantity.GenP))
	require.NoError(t, n.SetFlags(quantity.ObjShunt, quantity.FlagVars, network.ShuntPropSwitchedV, quantity.ShuntSusc|quantity.ShuntSuscDev))

	values := n.GetVarValues()
	for i := range values {
		values[i] = float64(i) / 1000
	}
	require.NoError(t, n.SetVarValues(values))

	g, err := n.Generator(3)
	require.NoError(t, err)
	for p := 0; p < periods; p++ {
		assert.Equal(t, float64(g.IndexP(p))/1000, g.P(p))
	}
	sh, err := n.Shunt(0)
	require.NoError(t, err)
	assert.Equal(t, float64(sh.IndexB(1))/1000, sh.B(1))

	// Round trip of the gathered vector.
	assert.Equal(t, values[:scenRegByGen*periods], n.GetVarValues()[:scenRegByGen*periods])

	require.ErrorIs(t, n.SetVarValues(values[1:]), network.ErrVectorLength)
	values[1] = 0.9
	values[0] = math.NaN()
	require.ErrorIs(t, n.SetVarValues(values), network.ErrInvalidParams)
	g0, err := n.Generator(0)
	require.NoError(t, err)
	assert.Equal(t, 0.001, g0.P(1), "rejected vector writes nothing")
}

func TestParseValueCode(t *testing.T) {
	c, ok := network.ParseValueCode("upper")
	require.True(t, ok)
	assert.Equal(t, network.UpperLimits, c)
	_, ok = network.ParseValueCode("middle")
	assert.False(t, ok)
}
