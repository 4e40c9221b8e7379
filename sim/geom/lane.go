package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerateWaypoint reports a waypoint whose lane axes are unusable
// (zero-length right vector). Callers receive this error instead of NaN
// offsets.
var ErrDegenerateWaypoint = errors.New("degenerate waypoint: zero-length lane axis")

// Waypoint is a sample of a lane centerline: the lane pose at that point, the
// lane width, and the lane axes. Waypoints come from map lookups and are
// transient; nothing retains them across ticks.
type Waypoint struct {
	Pose      Pose
	LaneWidth float64
	Forward   r3.Vec // unit tangent along the direction of travel
	Right     r3.Vec // unit vector toward the right-hand side of travel
}

// NewWaypoint builds a waypoint at pose, deriving the lane axes from the pose
// heading. Map implementations use this; tests may construct Waypoint values
// directly to exercise malformed axes.
func NewWaypoint(pose Pose, laneWidth float64) Waypoint {
	return Waypoint{
		Pose:      pose,
		LaneWidth: laneWidth,
		Forward:   pose.Forward(),
		Right:     pose.Right(),
	}
}

// LaneOffset describes a placement relative to a lane waypoint. Scenario
// definitions use it to stage actors off the lane center, e.g. a cyclist
// waiting on the sidewalk edge.
type LaneOffset struct {
	OrientationDeg float64 // yaw delta applied to the lane heading
	PositionDeg    float64 // direction of the lateral displacement, relative to the lane heading
	K              float64 // displacement magnitude as a fraction of lane width
	Z              float64 // height offset
}

// LaneWalker is the slice of the map service needed to advance along a lane.
type LaneWalker interface {
	// WaypointAtDistanceAhead walks the lane forward from wp and returns the
	// waypoint reached plus the distance actually traveled, which may fall
	// short of the request at a road end.
	WaypointAtDistanceAhead(wp Waypoint, distance float64) (Waypoint, float64, error)
}

// LaneOffsetPose computes a spawn pose staged relative to a lane: it walks the
// lane ahead of ref by longitudinal meters via the map, displaces the result
// laterally by off.K lane widths in the off.PositionDeg direction, raises it
// by off.Z, and yaws the final heading by off.OrientationDeg from the lane
// heading. PositionDeg = +90 displaces toward positive lateral offsets, the
// same side SignedLateralOffset reports as positive.
func LaneOffsetPose(m LaneWalker, ref Waypoint, longitudinal float64, off LaneOffset) (Pose, error) {
	wp := ref
	if longitudinal != 0 {
		var err error
		wp, _, err = m.WaypointAtDistanceAhead(ref, longitudinal)
		if err != nil {
			return Pose{}, fmt.Errorf("walk %.1f m along lane: %w", longitudinal, err)
		}
	}

	positionYaw := radians(wp.Pose.Rotation.Yaw + off.PositionDeg)
	lateral := off.K * wp.LaneWidth

	loc := wp.Pose.Location
	loc.X += lateral * math.Cos(positionYaw)
	loc.Y += lateral * math.Sin(positionYaw)
	loc.Z += off.Z

	rot := wp.Pose.Rotation
	rot.Yaw += off.OrientationDeg
	return Pose{Location: loc, Rotation: rot}, nil
}

// SignedLateralOffset returns the distance from loc to the lane centerline at
// wp, measured along the waypoint's right vector: positive toward the
// right-hand side of travel, negative toward the left. The sign convention
// matches LaneOffsetPose, so a staged placement measures back with the sign
// it was staged with.
func SignedLateralOffset(wp Waypoint, loc r3.Vec) (float64, error) {
	norm2 := r3.Norm2(wp.Right)
	if norm2 < epsilon {
		return 0, ErrDegenerateWaypoint
	}

	v := r3.Sub(loc, wp.Pose.Location)
	scale := r3.Dot(wp.Right, v) / norm2
	magnitude := r3.Norm(r3.Scale(scale, wp.Right))

	// The projection alone loses the side; the horizontal cross of the lane
	// tangent with v recovers it.
	if r3.Cross(wp.Forward, v).Z < 0 {
		magnitude = -magnitude
	}
	return magnitude, nil
}
