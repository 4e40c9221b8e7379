// Package sim provides the reference simulation world scenarios run against:
// analytic lane maps, kinematic vehicles, and the fixed-step tick loop that
// advances them.
//
// # Reading Guide
//
// Start with these three files to understand the world:
//   - map.go: the Map interface and the analytic straight/ring implementations
//   - vehicle.go: kinematic vehicle state and per-tick integration
//   - world.go: actor lifecycle, the tick pipeline, and the collision ledger
//
// # Architecture
//
// The sim package is a collaborator implementation; the engines live in
// sub-packages and never depend on its concrete types:
//   - sim/geom/: lane-relative geometry (offset placement, signed projection,
//     time-to-arrival)
//   - sim/btree/: behavior tree composites and the tick/status protocol
//   - sim/behaviors/: atomic trigger conditions, vehicle actions, criteria
//   - sim/scenario/: scenario assembly, registry, and the run loop
//   - sim/record/: per-frame actor-state recording and frame queries
//   - sim/metrics/: offline lateral-deviation extraction
//
// Everything is single-threaded and tick-driven: the runner alternates one
// world tick with one behavior tree tick, so nothing in this package locks.
// Nodes reach the world through the small consumer interfaces declared in
// sim/behaviors (Vehicle, Clock, LaneMap, CollisionLedger), all of which the
// types here satisfy.
package sim
