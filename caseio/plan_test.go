// SPDX-License-Identifier: MIT
package caseio_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/lvlgrid/caseio"
	"github.com/katalvlaran/lvlgrid/network"
	"github.com/katalvlaran/lvlgrid/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPlan_ACOPF(t *testing.T) {
	n := loadCase5(t)
	p, err := caseio.LoadPlan("testdata/acopf.yaml")
	require.NoError(t, err)
	assert.Equal(t, "acopf", p.Name)
	require.Len(t, p.Steps, 5)

	require.NoError(t, caseio.ApplyPlan(n, p))

	// 5 buses × 2 + 3 gens × 2 + 1 tap + 1 shunt, each over 2 periods.
	assert.Equal(t, 36, n.NumVars())
	assert.Equal(t, 5, n.NumBounded())
	assert.Zero(t, n.NumFixed())

	sh, err := n.Shunt(0)
	require.NoError(t, err)
	assert.Equal(t, 34, sh.IndexB(0))
	assert.Equal(t, 35, sh.IndexB(1))
}

func TestApplyPlan_StopsAtFirstFailure(t *testing.T) {
	n := loadCase5(t)
	p, err := caseio.LoadPlan("testdata/bad_plan.yaml")
	require.NoError(t, err)

	err = caseio.ApplyPlan(n, p)
	require.ErrorIs(t, err, network.ErrInvalidObjectType)
	assert.Contains(t, err.Error(), "step 1")
	assert.Equal(t, 10, n.NumVars())
}

func TestApplyPlan_IndexAndClear(t *testing.T) {
	n := loadCase5(t)
	p, err := caseio.DecodePlan(strings.NewReader(`
steps:
  - {object: battery, flags: vars|sparse, index: 0, quantities: all}
  - {object: vargen, flags: fixed, quantities: p}
`))
	require.NoError(t, err)
	require.NoError(t, caseio.ApplyPlan(n, p))

	// Battery P takes two slots, E one; two periods each.
	assert.Equal(t, 6, n.NumVars())
	assert.Equal(t, 3, n.NumSparse())
	assert.Equal(t, 1, n.NumFixed())

	ok, err := n.HasFlags(quantity.ObjBattery, 0, quantity.FlagVars, quantity.BatteryP|quantity.BatteryE)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, caseio.ApplyPlan(n, &caseio.Plan{Steps: []caseio.Step{{Clear: true}}}))
	assert.Zero(t, n.NumVars())
	assert.Zero(t, n.NumFixed())
}

func TestDecodePlan_Errors(t *testing.T) {
	docs := map[string]string{
		"empty":              "",
		"no steps":           "name: x\n",
		"missing object":     "steps: [{flags: vars}]\n",
		"missing flags":      "steps: [{object: bus}]\n",
		"index and property": "steps: [{object: bus, flags: vars, index: 1, property: slack}]\n",
		"unknown key":        "steps: [{object: bus, flags: vars, bogus: 1}]\n",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := caseio.DecodePlan(strings.NewReader(doc))
			require.ErrorIs(t, err, caseio.ErrInvalidPlan)
		})
	}

	require.ErrorIs(t, caseio.ApplyPlan(network.NewNetwork(), nil), caseio.ErrInvalidPlan)
}

func TestApplyPlan_TokenErrors(t *testing.T) {
	n := loadCase5(t)
	cases := []struct {
		step caseio.Step
		want error
	}{
		{caseio.Step{Object: "transformer", Flags: "vars"}, quantity.ErrUnknownObjectType},
		{caseio.Step{Object: "bus", Flags: "free"}, quantity.ErrUnknownFlagSet},
		{caseio.Step{Object: "bus", Flags: "vars", Quantities: "p"}, quantity.ErrUnknownQuantity},
		{caseio.Step{Object: "shunt", Flags: "vars", Property: "slack"}, network.ErrUnknownProperty},
		{caseio.Step{Object: "gen", Flags: "vars", Index: intPtr(9)}, network.ErrComponentNotFound},
	}
	for _, tc := range cases {
		err := caseio.ApplyPlan(n, &caseio.Plan{Steps: []caseio.Step{tc.step}})
		require.ErrorIs(t, err, tc.want, tc.step.String())
	}
	assert.Zero(t, n.NumVars())
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "clear", caseio.Step{Clear: true}.String())
	assert.Equal(t, "bus any vars vmag", caseio.Step{Object: "bus", Flags: "vars", Quantities: "vmag"}.String())
	assert.Equal(t, "gen #2 fixed p", caseio.Step{Object: "gen", Flags: "fixed", Index: intPtr(2), Quantities: "p"}.String())
}

func intPtr(i int) *int { return &i }
