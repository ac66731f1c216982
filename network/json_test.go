// SPDX-License-Identifier: MIT
package network_test

import (
	"encoding/json"
	"testing"

	"github.com/katalvlaran/lvlgrid/network"
	"github.com/katalvlaran/lvlgrid/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jsonComponent interface {
	Index() int
	JSONString() (string, error)
}

// decodeIndex parses s and returns its "index" field.
func decodeIndex(t *testing.T, s string) int {
	t.Helper()
	var obj map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &obj), s)
	idx, ok := obj["index"].(float64)
	require.True(t, ok, "index missing in %s", s)

	return int(idx)
}

func TestJSON_ComponentIndex(t *testing.T) {
	n := newScenario(t, 2)
	require.NoError(t, n.AddBatteries(n.GeneratorBuses(), 20, 50))
	require.NoError(t, n.AddVarGenerators(n.LoadBuses(), 100, 50, 30))
	flagAll(t, n, quantity.FlagVars|quantity.FlagSparse)

	var comps []jsonComponent
	for i := 0; i < n.NumBuses(); i++ {
		c, err := n.Bus(i)
		require.NoError(t, err)
		comps = append(comps, c)
	}
	for i := 0; i < n.NumBranches(); i++ {
		c, err := n.Branch(i)
		require.NoError(t, err)
		comps = append(comps, c)
	}
	for i := 0; i < n.NumGenerators(); i++ {
		c, err := n.Generator(i)
		require.NoError(t, err)
		comps = append(comps, c)
	}
	for i := 0; i < n.NumLoads(); i++ {
		c, err := n.Load(i)
		require.NoError(t, err)
		comps = append(comps, c)
	}
	for i := 0; i < n.NumShunts(); i++ {
		c, err := n.Shunt(i)
		require.NoError(t, err)
		comps = append(comps, c)
	}
	for i := 0; i < n.NumVarGenerators(); i++ {
		c, err := n.VarGenerator(i)
		require.NoError(t, err)
		comps = append(comps, c)
	}
	for i := 0; i < n.NumBatteries(); i++ {
		c, err := n.Battery(i)
		require.NoError(t, err)
		comps = append(comps, c)
	}

	for _, c := range comps {
		s, err := c.JSONString()
		require.NoError(t, err)
		assert.Equal(t, c.Index(), decodeIndex(t, s))
	}
}

func TestJSON_VarIndexMatchesAllocator(t *testing.T) {
	n := newScenario(t, 2)
	require.NoError(t, n.SetFlags(quantity.ObjBus, quantity.FlagVars, network.BusPropRegByShunt, quantity.BusVMag|quantity.BusVVio))

	bus, err := n.Bus(60)
	require.NoError(t, err)
	s, err := bus.JSONString()
	require.NoError(t, err)

	var obj struct {
		Index    int              `json:"index"`
		Class    string           `json:"class"`
		VarIndex map[string][]int `json:"var_index"`
		Flags    struct {
			Vars string `json:"vars"`
		} `json:"flags"`
	}
	require.NoError(t, json.Unmarshal([]byte(s), &obj))
	assert.Equal(t, "reg_by_shunt", obj.Class)
	assert.Equal(t, "VMAG|VVIO", obj.Flags.Vars)
	assert.Equal(t, []int{bus.IndexVMag(0), bus.IndexVMag(1)}, obj.VarIndex["VMAG"])
	assert.Equal(t, []int{-1, -1}, obj.VarIndex["VANG"])
	hi0, lo0 := bus.IndexVVio(0)
	hi1, lo1 := bus.IndexVVio(1)
	assert.Equal(t, []int{hi0, hi1, lo0, lo1}, obj.VarIndex["VVIO"])
}

func TestJSON_Network(t *testing.T) {
	n := network.NewNetwork(network.WithNumPeriods(3), network.WithBasePower(50))
	s, err := n.JSONString()
	require.NoError(t, err)

	var empty map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &empty))
	assert.Equal(t, 3.0, empty["num_periods"])
	assert.Equal(t, 50.0, empty["base_power"])
	assert.Equal(t, []any{}, empty["buses"])

	m := newScenario(t, 1)
	require.NoError(t, m.SetFlags(quantity.ObjBus, quantity.FlagVars, network.BusPropSlack, quantity.BusVMag))
	s, err = m.JSONString()
	require.NoError(t, err)

	var full struct {
		NumPeriods int               `json:"num_periods"`
		BasePower  float64           `json:"base_power"`
		NumVars    int               `json:"num_vars"`
		Buses      []json.RawMessage `json:"buses"`
		Shunts     []json.RawMessage `json:"shunts"`
	}
	require.NoError(t, json.Unmarshal([]byte(s), &full))
	assert.Equal(t, 1, full.NumPeriods)
	assert.Equal(t, network.DefaultBasePower, full.BasePower)
	assert.Equal(t, scenSlack, full.NumVars)
	require.Len(t, full.Buses, scenBuses)
	require.Len(t, full.Shunts, scenShunts)
	for i, raw := range full.Buses {
		assert.Equal(t, i, decodeIndex(t, string(raw)))
	}
}

func TestJSON_DoesNotMutateFlags(t *testing.T) {
	n := newScenario(t, 1)
	require.NoError(t, n.SetFlags(quantity.ObjGen, quantity.FlagVars, network.PropAny, quantity.GenP))
	before := n.NumVars()

	_, err := n.JSONString()
	require.NoError(t, err)
	assert.Equal(t, before, n.NumVars())
}
