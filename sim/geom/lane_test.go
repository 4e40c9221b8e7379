package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// straightWalker advances waypoints along their own heading, as a straight
// road would.
type straightWalker struct{}

func (straightWalker) WaypointAtDistanceAhead(wp Waypoint, distance float64) (Waypoint, float64, error) {
	pose := wp.Pose
	pose.Location = r3.Add(pose.Location, r3.Scale(distance, wp.Forward))
	return NewWaypoint(pose, wp.LaneWidth), distance, nil
}

type failingWalker struct{ err error }

func (f failingWalker) WaypointAtDistanceAhead(Waypoint, float64) (Waypoint, float64, error) {
	return Waypoint{}, 0, f.err
}

func laneEast(width float64) Waypoint {
	return NewWaypoint(Pose{}, width) // yaw 0: travel along +x
}

func TestSignedLateralOffset_SignConvention(t *testing.T) {
	// GIVEN a lane heading east (+x) with its right side toward +y
	wp := laneEast(3.5)

	// WHEN measuring points on either side of the centerline
	right, err := SignedLateralOffset(wp, r3.Vec{X: 2, Y: 1.2})
	require.NoError(t, err)
	left, err := SignedLateralOffset(wp, r3.Vec{X: 2, Y: -1.2})
	require.NoError(t, err)

	// THEN the right side is positive and the left side negative
	assert.InDelta(t, 1.2, right, 1e-9)
	assert.InDelta(t, -1.2, left, 1e-9)
}

func TestSignedLateralOffset_ProportionalToDisplacement(t *testing.T) {
	// GIVEN a lane heading east
	wp := laneEast(3.5)

	// WHEN the lateral displacement doubles
	one, err := SignedLateralOffset(wp, r3.Vec{Y: 0.7})
	require.NoError(t, err)
	two, err := SignedLateralOffset(wp, r3.Vec{Y: 1.4})
	require.NoError(t, err)

	// THEN the reported magnitude doubles with it
	assert.InDelta(t, 2*one, two, 1e-9)
}

func TestSignedLateralOffset_IgnoresLongitudinalComponent(t *testing.T) {
	// GIVEN a point far ahead along the lane but only 0.5 m off center
	wp := laneEast(3.5)

	off, err := SignedLateralOffset(wp, r3.Vec{X: 120, Y: 0.5})

	require.NoError(t, err)
	assert.InDelta(t, 0.5, off, 1e-9)
}

func TestSignedLateralOffset_RotatedLane(t *testing.T) {
	// GIVEN a lane heading north (+y); its right side faces -x
	wp := NewWaypoint(Pose{Rotation: Rotation{Yaw: 90}}, 3.0)

	toMinusX, err := SignedLateralOffset(wp, r3.Vec{X: -2})
	require.NoError(t, err)
	toPlusX, err := SignedLateralOffset(wp, r3.Vec{X: 2})
	require.NoError(t, err)

	assert.InDelta(t, 2.0, toMinusX, 1e-9)
	assert.InDelta(t, -2.0, toPlusX, 1e-9)
}

func TestSignedLateralOffset_DegenerateAxes(t *testing.T) {
	// GIVEN a malformed waypoint with zero lane axes (not built via NewWaypoint)
	var wp Waypoint

	// WHEN measuring any point
	_, err := SignedLateralOffset(wp, r3.Vec{X: 1, Y: 1})

	// THEN the call fails instead of returning NaN
	assert.ErrorIs(t, err, ErrDegenerateWaypoint)
}

func TestLaneOffsetPose_RoundTripsThroughSignedOffset(t *testing.T) {
	// GIVEN the staging used by crossing scenarios: 20% of the lane width to
	// the right, facing across the lane, raised 0.2 m
	wp := laneEast(3.5)
	off := LaneOffset{OrientationDeg: 270, PositionDeg: 90, K: 0.2, Z: 0.2}

	// WHEN staging a pose 40 m ahead and measuring it back
	pose, err := LaneOffsetPose(straightWalker{}, wp, 40, off)
	require.NoError(t, err)

	ahead, _, err := straightWalker{}.WaypointAtDistanceAhead(wp, 40)
	require.NoError(t, err)
	measured, err := SignedLateralOffset(ahead, pose.Location)
	require.NoError(t, err)

	// THEN the measured offset is +K*laneWidth on the staged side
	assert.InDelta(t, 0.2*3.5, measured, 1e-9)
	assert.InDelta(t, 40.0, pose.Location.X, 1e-9)
	assert.InDelta(t, 0.2, pose.Location.Z, 1e-9)
	assert.InDelta(t, 270.0, pose.Rotation.Yaw, 1e-9)
}

func TestLaneOffsetPose_NegativeSideStaging(t *testing.T) {
	// GIVEN a displacement direction of -90 degrees (the left side)
	wp := laneEast(4.0)
	off := LaneOffset{PositionDeg: -90, K: 0.5}

	pose, err := LaneOffsetPose(straightWalker{}, wp, 0, off)
	require.NoError(t, err)
	measured, err := SignedLateralOffset(wp, pose.Location)
	require.NoError(t, err)

	assert.InDelta(t, -0.5*4.0, measured, 1e-9)
}

func TestLaneOffsetPose_WalkErrorSurfaces(t *testing.T) {
	// GIVEN a map that cannot walk the requested distance
	walkErr := errors.New("road ends")

	_, err := LaneOffsetPose(failingWalker{err: walkErr}, laneEast(3.5), 10, LaneOffset{})

	assert.ErrorIs(t, err, walkErr)
}

func TestTimeToArrival_ClosingSpeeds(t *testing.T) {
	// GIVEN two actors 100 m apart closing at a combined 10 m/s
	a := Pose{}
	b := Pose{Location: r3.Vec{X: 100}}

	tta := TimeToArrival(a, r3.Vec{X: 10}, b, r3.Vec{})

	// THEN the estimate is 2*d / (|vA|+|vB|)
	assert.InDelta(t, 20.0, tta, 1e-9)
}

func TestTimeToArrival_BothStopped(t *testing.T) {
	a := Pose{}
	b := Pose{Location: r3.Vec{X: 50}}

	tta := TimeToArrival(a, r3.Vec{}, b, r3.Vec{})

	assert.True(t, math.IsInf(tta, 1), "expected +Inf for two stopped actors, got %v", tta)
}
