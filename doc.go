// Package lvlgrid classifies the quantities of a multi-period power network
// into variables, fixed, bounded and sparse sets, and gives every variable a
// dense global index for an optimization layer.
//
// What is in the box?
//
//	quantity/    - object types, flag sets and the per-type quantity registry
//	network/     - components, property evaluator, flag store, index allocator
//	metrics/     - Prometheus counters and gauges for flag calls and recomputes
//	builder/     - synthetic topologies and device placement for tests and demos
//	caseio/      - YAML case files and flag plans, validated
//	cmd/lvlgrid/ - CLI: counts, json, vars, metrics, generate
//	examples/    - runnable scenarios (voltage control, storage, sparse controls)
//
// Quick example:
//
//	n, _ := builder.BuildNetwork(nil, nil, builder.Grid(3, 3), builder.Slack(1))
//	_ = n.SetFlags(quantity.ObjBus, quantity.FlagVars, network.BusPropSlack,
//		quantity.BusVMag|quantity.BusVAng)
//	fmt.Println(n.NumVars()) // 2
//
// Layout guarantees: variables are allocated in the order Bus, Gen, Branch,
// Shunt, VarGen, Battery; within a type by component index, then quantity bit;
// each variable slot owns NumPeriods contiguous indices.
//
//	go get github.com/katalvlaran/lvlgrid
package lvlgrid
