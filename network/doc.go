// Package network models a multi-period power network and maintains, for every
// run of an optimization layer, which component quantities are variables,
// fixed, bounded or sparse, together with a dense global variable index.
//
// What:
//
//   - Components: Bus, Branch, Generator, Load, Shunt, VarGenerator, Battery.
//     Each is owned by its Network, identified by a stable index and related to
//     other components by index only.
//   - Property evaluator: per-type Property bitmasks (BusPropSlack,
//     GenPropReg, BranchPropTapChangerV, ShuntPropSwitchedV, ...). A component
//     matches when every bit holds; PropAny matches all. Overlapping bus
//     properties resolve through one precedence table:
//     Slack > RegByGen > RegByTran > RegByShunt > Free (see ClassifyBus).
//   - Flag store: four masks per component (Flags).
//   - Index allocator: a single canonical pass (Bus, Gen, Branch, Shunt,
//     VarGen, Battery; ascending index; ascending quantity bit). Each variable
//     slot takes T contiguous indices.
//   - Aggregator: SetFlags / ClearFlags mark a dirty cache; NumVars, VarIndex,
//     GetVarValues and JSONString recompute lazily.
//
// Example:
//
//	n := network.NewNetwork(network.WithNumPeriods(2))
//	b0, _ := n.AddBus(network.BusParams{Number: 1, Slack: true})
//	_ = n.SetFlags(quantity.ObjBus, quantity.FlagVars, network.BusPropSlack,
//		quantity.BusVMag|quantity.BusVAng)
//	fmt.Println(n.NumVars(), b0.IndexVAng(1)) // 4 3
//
// See ExampleNetwork_SetFlags for a full flagging sequence.
//
// Concurrency:
//
//	Network is safe for concurrent use; one mutex serializes every
//	mutate-then-recompute sequence. Plain value getters on components are not
//	synchronized against concurrent setters.
//
// Errors:
//
//	ErrClassification      – root of every rejected SetFlags token
//	ErrInvalidObjectType   – unknown type or a type without quantities (loads)
//	ErrInvalidFlagSet      – empty or unknown flag set
//	ErrUnknownProperty     – property bits not defined for the type
//	ErrBusNotFound, ErrComponentNotFound, ErrDuplicateBusNumber,
//	ErrPeriodOutOfRange, ErrInvalidParams, ErrVectorLength
package network
