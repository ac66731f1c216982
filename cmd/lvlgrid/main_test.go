// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/katalvlaran/lvlgrid/caseio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	case5 = "../../caseio/testdata/case5.yaml"
	acopf = "../../caseio/testdata/acopf.yaml"
)

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), errOut.String(), err
}

// table parses "name value" lines.
func table(t *testing.T, s string) map[string]int {
	t.Helper()
	m := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		f := strings.Fields(line)
		require.Len(t, f, 2, line)
		v, err := strconv.Atoi(f[1])
		require.NoError(t, err)
		m[f[0]] = v
	}

	return m
}

func TestCounts(t *testing.T) {
	out, _, err := run(t, "counts", "--case", case5, "--plan", acopf)
	require.NoError(t, err)

	m := table(t, out)
	assert.Equal(t, 2, m["num_periods"])
	assert.Equal(t, 36, m["num_vars"])
	assert.Equal(t, 5, m["num_bounded"])
	assert.Equal(t, 1, m["buses_reg_by_tran_only"])
	assert.Equal(t, 1, m["batteries"])
	assert.Equal(t, 1, m["islands"])

	out, _, err = run(t, "counts", "--case", case5, "--periods", "3")
	require.NoError(t, err)
	m = table(t, out)
	assert.Equal(t, 3, m["num_periods"])
	assert.Zero(t, m["num_vars"])
}

func TestVars(t *testing.T) {
	out, _, err := run(t, "vars", "--case", case5, "--plan", acopf, "--limits", "upper")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 36)
	// Bus 0 VMAG upper limit in period 0.
	assert.Equal(t, "0\t1.1", lines[0])

	_, _, err = run(t, "vars", "--case", case5, "--limits", "middle")
	require.Error(t, err)
}

func TestJSON(t *testing.T) {
	out, _, err := run(t, "json", "--case", case5, "--plan", acopf, "--component", "bus", "--index", "4")
	require.NoError(t, err)

	var bus struct {
		Index int    `json:"index"`
		Class string `json:"class"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &bus))
	assert.Equal(t, 4, bus.Index)
	assert.Equal(t, "reg_by_tran", bus.Class)

	out, _, err = run(t, "json", "--case", case5)
	require.NoError(t, err)
	var net map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &net))
	assert.Equal(t, 2.0, net["num_periods"])

	_, _, err = run(t, "json", "--case", case5, "--component", "gen", "--index", "7")
	require.Error(t, err)
	_, _, err = run(t, "json", "--case", case5, "--component", "hvdc")
	require.Error(t, err)
}

func TestMetrics(t *testing.T) {
	out, _, err := run(t, "metrics", "--case", case5, "--plan", acopf)
	require.NoError(t, err)

	assert.Contains(t, out, `lvlgrid_set_flags_total{object="bus",result="ok"} 2`)
	assert.Contains(t, out, `lvlgrid_flagged_quantities{set="vars"} 36`)
	assert.Contains(t, out, "# TYPE lvlgrid_recompute_duration_seconds histogram")
}

func TestVerboseLogsRecompute(t *testing.T) {
	_, errOut, err := run(t, "counts", "--case", case5, "--plan", acopf, "-v")
	require.NoError(t, err)
	assert.Contains(t, errOut, "msg=recompute")
	assert.Contains(t, errOut, "num_vars=36")

	_, errOut, err = run(t, "counts", "--case", case5, "--plan", acopf)
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestGenerate(t *testing.T) {
	out, _, err := run(t, "generate", "--grid", "3x3", "--reg-gens", "3", "--loads", "4",
		"--switched-shunts", "2", "--seed", "11", "--battery-power", "20", "--battery-energy", "50",
		"--vargen-capacity", "40", "--periods", "2")
	require.NoError(t, err)

	c, err := caseio.Decode(strings.NewReader(out))
	require.NoError(t, err)
	n, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, n.NumPeriods())
	assert.Equal(t, 9, n.NumBuses())
	assert.Equal(t, 12, n.NumBranches())
	assert.Equal(t, 1, n.NumSlackBuses())
	assert.Equal(t, 3, n.NumBusesRegByGen())
	assert.Equal(t, 3, n.NumBatteries())
	assert.Equal(t, 4, n.NumVarGenerators())

	again, _, err := run(t, "generate", "--grid", "3x3", "--reg-gens", "3", "--loads", "4",
		"--switched-shunts", "2", "--seed", "11", "--battery-power", "20", "--battery-energy", "50",
		"--vargen-capacity", "40", "--periods", "2")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestErrors(t *testing.T) {
	_, _, err := run(t, "counts")
	require.ErrorIs(t, err, errNoCase)

	_, _, err = run(t, "generate")
	require.ErrorIs(t, err, errTopology)
	_, _, err = run(t, "generate", "--path", "3", "--cycle", "4")
	require.ErrorIs(t, err, errTopology)
	_, _, err = run(t, "generate", "--grid", "three")
	require.Error(t, err)

	_, _, err = run(t, "counts", "--case", case5, "--plan", "../../caseio/testdata/bad_plan.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1")
}
