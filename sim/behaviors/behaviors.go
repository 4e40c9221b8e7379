// Package behaviors provides the atomic trigger conditions and vehicle
// actions scenario trees are built from, plus the pass/fail criteria tracked
// beside a tree. Nodes reach actors and the map through small consumer
// interfaces, so anything with a pose, a velocity and control setters can be
// scripted.
package behaviors

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/scenario-sim/scenario-sim/sim/geom"
)

// Speeds below this count as stopped.
const stoppedEpsilon = 0.001

// Vehicle is the actor surface nodes consume. sim.Vehicle satisfies it.
type Vehicle interface {
	Pose() geom.Pose
	Velocity() r3.Vec
	Speed() float64
	SetTargetSpeed(mps float64)
	SetAccelRate(mps2 float64)
	SetBrake(frac float64)
	SetHandBrake(on bool)
	SetHeading(yawDeg float64)
}

// Clock reports simulation seconds; the world satisfies it.
type Clock interface {
	SimTime() float64
}

// LaneMap is the slice of the map service waypoint followers consume.
type LaneMap interface {
	NearestWaypoint(loc r3.Vec) (geom.Waypoint, error)
	WaypointAtDistanceAhead(wp geom.Waypoint, distance float64) (geom.Waypoint, float64, error)
}
