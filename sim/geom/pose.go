// Package geom converts world-frame actor poses into lane-relative quantities:
// signed lateral offsets, trigger distances, time-to-arrival estimates and
// lane-relative spawn poses. This package has no dependencies on sim/ — it
// stores pure data types and functions.
//
// The world frame is left-handed z-up, as is conventional in driving
// simulators: x points along the road, yaw grows toward +y, so a heading
// rotated +90 degrees about Z faces the right-hand side of travel.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Norms below this are treated as zero.
const epsilon = 1e-9

// Rotation holds an orientation as Euler angles in degrees.
type Rotation struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// Pose is a world-frame position plus orientation. Poses are immutable value
// snapshots: operations return new poses and never mutate their inputs.
type Pose struct {
	Location r3.Vec   `json:"location"`
	Rotation Rotation `json:"rotation"`
}

// Forward returns the unit vector the pose is facing, from yaw and pitch.
func (p Pose) Forward() r3.Vec {
	yaw := radians(p.Rotation.Yaw)
	pitch := radians(p.Rotation.Pitch)
	return r3.Vec{
		X: math.Cos(pitch) * math.Cos(yaw),
		Y: math.Cos(pitch) * math.Sin(yaw),
		Z: math.Sin(pitch),
	}
}

// Right returns the horizontal unit vector toward the right-hand side of the
// pose heading, i.e. the heading rotated +90 degrees about Z.
func (p Pose) Right() r3.Vec {
	yaw := radians(p.Rotation.Yaw + 90)
	return r3.Vec{X: math.Cos(yaw), Y: math.Sin(yaw)}
}

// Distance is the full 3D Euclidean distance between two locations.
// Trigger-distance conditions use this form.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// PlanarDistance is the distance between the ground projections of two
// locations, ignoring elevation.
func PlanarDistance(a, b r3.Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// TimeToArrival estimates the seconds until two actors reach a shared point,
// assuming both keep closing at their current speeds. Returns +Inf when
// neither actor is moving, so a threshold test on the result stays pending
// instead of firing spuriously.
func TimeToArrival(poseA Pose, velA r3.Vec, poseB Pose, velB r3.Vec) float64 {
	closing := r3.Norm(velA) + r3.Norm(velB)
	if closing < epsilon {
		return math.Inf(1)
	}
	return 2 * Distance(poseA.Location, poseB.Location) / closing
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
