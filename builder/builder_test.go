// SPDX-License-Identifier: MIT
package builder_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvlgrid/builder"
	"github.com/katalvlaran/lvlgrid/network"
	"github.com/katalvlaran/lvlgrid/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endpoints lists every branch as a (k, m) pair in index order.
func endpoints(t *testing.T, n *network.Network) [][2]int {
	t.Helper()
	out := make([][2]int, n.NumBranches())
	for i := range out {
		br, err := n.Branch(i)
		require.NoError(t, err)
		out[i] = [2]int{br.BusK(), br.BusM()}
	}

	return out
}

func TestTopologies(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		con      builder.Constructor
		buses    int
		branches int
	}{
		{"path", builder.Path(5), 5, 4},
		{"cycle", builder.Cycle(4), 4, 4},
		{"grid 3x4", builder.Grid(3, 4), 12, 17},
		{"grid 1x1", builder.Grid(1, 1), 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := builder.BuildNetwork(nil, nil, tc.con)
			require.NoError(t, err)
			assert.Equal(t, tc.buses, n.NumBuses())
			assert.Equal(t, tc.branches, n.NumBranches())
			assert.Equal(t, tc.branches, n.NumLines())
		})
	}
}

func TestPathAndCycle_Order(t *testing.T) {
	n, err := builder.BuildNetwork(nil, nil, builder.Path(3), builder.Cycle(3))
	require.NoError(t, err)

	// The cycle starts after the path's buses.
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {3, 4}, {4, 5}, {5, 3}}, endpoints(t, n))

	b, err := n.Bus(5)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Number())
}

func TestGrid_RowMajor(t *testing.T) {
	n, err := builder.BuildNetwork(nil, nil, builder.Grid(2, 2))
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, endpoints(t, n))
}

func TestRandomSparse(t *testing.T) {
	n, err := builder.BuildNetwork(nil, []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomSparse(10, 0))
	require.NoError(t, err)
	assert.Equal(t, 10, n.NumBuses())
	assert.Zero(t, n.NumBranches())
	assert.Equal(t, 10, n.NumIslands())

	n, err = builder.BuildNetwork(nil, []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomSparse(10, 1))
	require.NoError(t, err)
	assert.Equal(t, 45, n.NumBranches())
	assert.Equal(t, 1, n.NumIslands())

	a, err := builder.BuildNetwork(nil, []builder.BuilderOption{builder.WithSeed(42)}, builder.RandomSparse(30, 0.2))
	require.NoError(t, err)
	b, err := builder.BuildNetwork(nil, []builder.BuilderOption{builder.WithRand(rand.New(rand.NewSource(42)))}, builder.RandomSparse(30, 0.2))
	require.NoError(t, err)
	assert.Equal(t, endpoints(t, a), endpoints(t, b))
}

func TestNumberScheme(t *testing.T) {
	n, err := builder.BuildNetwork(nil,
		[]builder.BuilderOption{builder.WithNumberScheme(func(i int) int { return 100 + 10*i })},
		builder.Path(3))
	require.NoError(t, err)

	b, err := n.BusByNumber(120)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Index())

	// A constant scheme collides on the second bus.
	_, err = builder.BuildNetwork(nil,
		[]builder.BuilderOption{builder.WithNumberScheme(func(int) int { return 7 })},
		builder.Path(3))
	require.ErrorIs(t, err, network.ErrDuplicateBusNumber)
}

func TestDevices_FirstK(t *testing.T) {
	n, err := builder.BuildNetwork(
		[]network.Option{network.WithNumPeriods(2)},
		nil,
		builder.Grid(4, 5),
		builder.Slack(1),
		builder.RegulatingGenerators(4),
		builder.Generators(2),
		builder.TapChangers(3),
		builder.PhaseShifters(2),
		builder.SwitchedShunts(2),
		builder.FixedShunts(1),
		builder.Loads(10),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, n.NumSlackBuses())
	assert.Equal(t, 6, n.NumGenerators())
	assert.Equal(t, 4, n.NumRegGens())
	assert.Equal(t, 4, n.NumBusesRegByGen())
	assert.Equal(t, 3, n.NumTapChangersV())
	assert.Equal(t, 2, n.NumPhaseShifters())
	assert.Equal(t, 3, n.NumBusesRegByTran())
	// Tap changers regulate buses 1..3, all of which have a regulating generator.
	assert.Zero(t, n.NumBusesRegByTranOnly())
	assert.Equal(t, 2, n.NumSwitchedShunts())
	assert.Equal(t, 1, n.NumFixedShunts())
	assert.Equal(t, 10, n.NumLoads())

	require.NoError(t, n.SetFlags(quantity.ObjBus, quantity.FlagVars, network.BusPropRegByGen, quantity.BusVMag))
	assert.Equal(t, 4*2, n.NumVars())

	l, err := n.Load(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, l.P(0), 1e-12)
	assert.InDelta(t, 0.2, l.Q(1), 1e-12)
}

func TestDevices_Seeded(t *testing.T) {
	build := func() *network.Network {
		n, err := builder.BuildNetwork(nil,
			[]builder.BuilderOption{builder.WithSeed(3)},
			builder.Cycle(30),
			builder.Slack(3),
			builder.RegulatingGenerators(8),
			builder.Loads(15),
		)
		require.NoError(t, err)

		return n
	}
	a, b := build(), build()

	assert.Equal(t, 3, a.NumSlackBuses())
	assert.Equal(t, 8, a.NumBusesRegByGen())
	assert.Equal(t, a.GeneratorBuses(), b.GeneratorBuses())
	assert.Equal(t, a.LoadBuses(), b.LoadBuses())
	for i := 0; i < a.NumLoads(); i++ {
		la, _ := a.Load(i)
		lb, _ := b.Load(i)
		assert.Equal(t, la.P(0), lb.P(0))
		assert.GreaterOrEqual(t, la.P(0), 0.5)
		assert.Less(t, la.P(0), 1.5)
	}
}

func TestCapacityClampsDispatch(t *testing.T) {
	n, err := builder.BuildNetwork(nil,
		[]builder.BuilderOption{
			builder.WithCapacity(0.5),
			builder.WithInjectionFn(func(*rand.Rand) float64 { return 3 }),
		},
		builder.Path(2), builder.Generators(2))
	require.NoError(t, err)

	g, err := n.Generator(1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, g.P(0))
	assert.Equal(t, 0.5, g.PMax())
	assert.Equal(t, -0.25, g.QMin())
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name string
		opts []builder.BuilderOption
		cons []builder.Constructor
		want error
	}{
		{"path too short", nil, []builder.Constructor{builder.Path(1)}, builder.ErrTooFewBuses},
		{"cycle too short", nil, []builder.Constructor{builder.Cycle(2)}, builder.ErrTooFewBuses},
		{"grid zero", nil, []builder.Constructor{builder.Grid(0, 3)}, builder.ErrTooFewBuses},
		{"sparse needs rng", nil, []builder.Constructor{builder.RandomSparse(5, 0.5)}, builder.ErrNeedRandSource},
		{"sparse bad p", []builder.BuilderOption{builder.WithSeed(1)}, []builder.Constructor{builder.RandomSparse(5, 1.5)}, builder.ErrInvalidProbability},
		{"nil constructor", nil, []builder.Constructor{builder.Path(2), nil}, builder.ErrConstructFailed},
		{"negative count", nil, []builder.Constructor{builder.Path(2), builder.Loads(-1)}, builder.ErrInvalidCount},
		{"too many devices", nil, []builder.Constructor{builder.Path(2), builder.Slack(3)}, builder.ErrTooFewBuses},
		{"devices on empty network", nil, []builder.Constructor{builder.Loads(1)}, builder.ErrTooFewBuses},
		{"tap changer needs two buses", nil, []builder.Constructor{builder.Grid(1, 1), builder.TapChangers(1)}, builder.ErrTooFewBuses},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := builder.BuildNetwork(nil, tc.opts, tc.cons...)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, n)
		})
	}

	// Zero devices on an empty network is a no-op.
	n, err := builder.BuildNetwork(nil, nil, builder.Loads(0))
	require.NoError(t, err)
	assert.Zero(t, n.NumLoads())
}

func TestApply(t *testing.T) {
	n := network.NewNetwork()
	require.NoError(t, builder.Apply(n, nil, builder.Path(4), builder.Slack(1)))
	assert.Equal(t, 1, n.NumSlackBuses())

	require.ErrorIs(t, builder.Apply(nil, nil), builder.ErrConstructFailed)
	require.ErrorIs(t, builder.Apply(n, nil, nil), builder.ErrConstructFailed)
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { builder.WithNumberScheme(nil) })
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithInjectionFn(nil) })
	assert.Panics(t, func() { builder.WithCapacity(0) })
}
