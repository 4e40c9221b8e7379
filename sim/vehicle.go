package sim

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/scenario-sim/scenario-sim/sim/geom"
	"github.com/scenario-sim/scenario-sim/sim/record"
)

// Vehicle is a kinematic actor: it ramps toward a commanded target speed with
// constant acceleration and advances along its heading each tick. It stands
// in for a physics vehicle; there is no tire model and no collision response,
// overlaps only land in the world's collision ledger.
type Vehicle struct {
	id        record.ActorID
	blueprint Blueprint
	role      string

	pose        geom.Pose
	speed       float64 // along heading, m/s, never negative
	targetSpeed float64
	accelRate   float64 // m/s^2 toward a higher target speed
	brake       float64 // 0..1 fraction of full-brake deceleration
	handBrake   bool

	world *World
}

// ID returns the world-assigned actor identifier.
func (v *Vehicle) ID() record.ActorID { return v.id }

// Role returns the role the actor was spawned with ("hero", "scenario", ...).
func (v *Vehicle) Role() string { return v.role }

// BlueprintName returns the catalog name the actor was spawned from.
func (v *Vehicle) BlueprintName() string { return v.blueprint.Name }

// Pose returns the vehicle's current world-frame pose.
func (v *Vehicle) Pose() geom.Pose { return v.pose }

// Speed returns the scalar speed in m/s.
func (v *Vehicle) Speed() float64 { return v.speed }

// Velocity returns the velocity vector: speed along the current heading.
func (v *Vehicle) Velocity() r3.Vec {
	return r3.Scale(v.speed, v.pose.Forward())
}

// LaneWaypoint projects the vehicle onto the nearest lane centerline.
func (v *Vehicle) LaneWaypoint() (geom.Waypoint, error) {
	return v.world.Map().NearestWaypoint(v.pose.Location)
}

// SetTargetSpeed commands a cruise speed; the vehicle ramps toward it at the
// current acceleration rate. Clamped to the blueprint's maximum.
func (v *Vehicle) SetTargetSpeed(mps float64) {
	if mps < 0 {
		mps = 0
	}
	v.targetSpeed = min(mps, v.blueprint.MaxSpeed)
}

// SetAccelRate overrides the ramp-up rate in m/s^2. Non-positive rates fall
// back to the blueprint default.
func (v *Vehicle) SetAccelRate(mps2 float64) {
	if mps2 <= 0 {
		mps2 = v.blueprint.Accel
	}
	v.accelRate = mps2
}

// SetBrake applies service braking as a fraction [0, 1] of the blueprint's
// full-brake deceleration. Braking overrides the target speed while applied.
func (v *Vehicle) SetBrake(frac float64) {
	v.brake = min(max(frac, 0), 1)
}

// SetHandBrake locks or releases the hand brake. While locked the vehicle
// decelerates to a stop and ignores its target speed.
func (v *Vehicle) SetHandBrake(on bool) { v.handBrake = on }

// SetHeading steers kinematically: the heading is snapped to the given yaw.
// Waypoint-following behaviors call this once per tick with a lookahead
// heading, which approximates steering without a steering model.
func (v *Vehicle) SetHeading(yawDeg float64) {
	v.pose.Rotation.Yaw = yawDeg
}

// step integrates one tick of dt seconds.
func (v *Vehicle) step(dt float64) {
	switch {
	case v.handBrake:
		v.speed = max(0, v.speed-v.blueprint.HandBrakeDecel*dt)
	case v.brake > 0:
		v.speed = max(0, v.speed-v.brake*v.blueprint.BrakeDecel*dt)
	case v.speed < v.targetSpeed:
		v.speed = min(v.targetSpeed, v.speed+v.accelRate*dt)
	case v.speed > v.targetSpeed:
		// Trailing off without brake input: engine drag, gentler than a
		// full-brake stop.
		v.speed = max(v.targetSpeed, v.speed-v.blueprint.BrakeDecel*dt/2)
	}
	v.pose.Location = r3.Add(v.pose.Location, r3.Scale(v.speed*dt, v.pose.Forward()))
}
