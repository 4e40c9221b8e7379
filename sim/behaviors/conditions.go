package behaviors

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/scenario-sim/scenario-sim/sim/btree"
	"github.com/scenario-sim/scenario-sim/sim/geom"
)

// Conditions are monotone: each one latches SUCCESS on the first tick its
// predicate holds and never downgrades, even if the actors later separate
// again. None of them can fail; an unreachable trigger leaves the node
// RUNNING until the scenario timeout ends the run.

// InTriggerDistanceToVehicle succeeds once the distance between the two
// actors drops to threshold meters or less.
func InTriggerDistanceToVehicle(a, b Vehicle, threshold float64) btree.Node {
	name := fmt.Sprintf("InTriggerDistanceToVehicle(%.1fm)", threshold)
	return btree.NewCondition(name, func() bool {
		return geom.Distance(a.Pose().Location, b.Pose().Location) <= threshold
	})
}

// InTimeToArrivalToVehicle succeeds once the closing-speed estimate of the
// time until other reaches ego drops to seconds or less.
func InTimeToArrivalToVehicle(other, ego Vehicle, seconds float64) btree.Node {
	name := fmt.Sprintf("InTimeToArrivalToVehicle(%.1fs)", seconds)
	return btree.NewCondition(name, func() bool {
		tta := geom.TimeToArrival(other.Pose(), other.Velocity(), ego.Pose(), ego.Velocity())
		return tta <= seconds
	})
}

// DriveDistance succeeds once the actor has accumulated the given travel
// distance, measured over successive poses starting from the node's first
// tick. The threshold is inclusive.
func DriveDistance(v Vehicle, meters float64) btree.Node {
	var traveled float64
	var last r3.Vec
	started := false
	name := fmt.Sprintf("DriveDistance(%.1fm)", meters)
	return btree.NewCondition(name, func() bool {
		loc := v.Pose().Location
		if !started {
			last = loc
			started = true
		}
		traveled += geom.Distance(loc, last)
		last = loc
		return traveled >= meters
	})
}

// TimeOut succeeds once the given amount of simulation time has elapsed
// since the node's first tick.
func TimeOut(clock Clock, seconds float64) btree.Node {
	start := math.NaN()
	name := fmt.Sprintf("TimeOut(%.1fs)", seconds)
	return btree.NewCondition(name, func() bool {
		if math.IsNaN(start) {
			start = clock.SimTime()
		}
		return clock.SimTime()-start >= seconds
	})
}
