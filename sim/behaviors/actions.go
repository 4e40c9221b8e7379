package behaviors

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/scenario-sim/scenario-sim/sim/btree"
)

// HandBrakeVehicle engages or releases the actor's hand brake. One-shot: it
// applies the flag and immediately succeeds, so a sequence moves straight on.
func HandBrakeVehicle(v Vehicle, engaged bool) btree.Node {
	name := fmt.Sprintf("HandBrakeVehicle(%v)", engaged)
	return btree.NewAction(name, func() btree.Status {
		v.SetHandBrake(engaged)
		return btree.Success
	})
}

// KeepVelocity commands the target speed on every tick and never completes;
// a sibling under a Parallel decides when the drive is over.
func KeepVelocity(v Vehicle, speed float64) btree.Node {
	name := fmt.Sprintf("KeepVelocity(%.1fm/s)", speed)
	return btree.NewAction(name, func() btree.Status {
		v.SetTargetSpeed(speed)
		return btree.Running
	})
}

// AccelerateToVelocity ramps the actor toward the target speed at the given
// rate and succeeds once the actual speed reaches it. If the actor is
// already at or above the target it succeeds without touching the controls.
func AccelerateToVelocity(v Vehicle, rate, speed float64) btree.Node {
	name := fmt.Sprintf("AccelerateToVelocity(%.1fm/s)", speed)
	return btree.NewAction(name, func() btree.Status {
		if v.Speed() >= speed {
			return btree.Success
		}
		v.SetAccelRate(rate)
		v.SetTargetSpeed(speed)
		return btree.Running
	})
}

// StopVehicle applies the given brake fraction until the actor stands still.
// The brake stays applied after success, keeping the vehicle stopped.
func StopVehicle(v Vehicle, maxBrake float64) btree.Node {
	name := fmt.Sprintf("StopVehicle(%.2f)", maxBrake)
	return btree.NewAction(name, func() btree.Status {
		v.SetBrake(maxBrake)
		if v.Speed() < stoppedEpsilon {
			return btree.Success
		}
		return btree.Running
	})
}

// WaypointFollower drives the actor along its lane at the target speed,
// re-aiming the heading at a speed-scaled lookahead point on the centerline
// every tick, which pulls off-center vehicles back onto the lane. It never
// completes on its own; it fails only if the map cannot place the actor on a
// lane.
func WaypointFollower(v Vehicle, speed float64, m LaneMap) btree.Node {
	name := fmt.Sprintf("WaypointFollower(%.1fm/s)", speed)
	return btree.NewAction(name, func() btree.Status {
		wp, err := m.NearestWaypoint(v.Pose().Location)
		if err != nil {
			logrus.Warnf("%s: no lane under actor: %v", name, err)
			return btree.Failure
		}
		lookahead := max(2.0, v.Speed()*0.5)
		ahead, _, err := m.WaypointAtDistanceAhead(wp, lookahead)
		if err != nil {
			logrus.Warnf("%s: lane walk failed: %v", name, err)
			return btree.Failure
		}
		to := r3.Sub(ahead.Pose.Location, v.Pose().Location)
		v.SetHeading(math.Atan2(to.Y, to.X) * 180 / math.Pi)
		v.SetTargetSpeed(speed)
		return btree.Running
	})
}
