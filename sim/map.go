package sim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/scenario-sim/scenario-sim/sim/geom"
	"github.com/scenario-sim/scenario-sim/sim/record"
)

// Map answers lane queries for the world. Implementations here are analytic
// stand-ins for a road-network service; the engines only ever see this
// interface (it also satisfies geom.LaneWalker).
type Map interface {
	// NearestWaypoint projects loc onto the closest lane centerline.
	NearestWaypoint(loc r3.Vec) (geom.Waypoint, error)
	// WaypointAtDistanceAhead walks the lane forward from wp, returning the
	// waypoint reached and the distance actually traveled.
	WaypointAtDistanceAhead(wp geom.Waypoint, distance float64) (geom.Waypoint, float64, error)
	// LeftLane returns the waypoint directly left of wp on the adjacent
	// lane, or false when there is none. On a two-way road the left lane
	// carries oncoming traffic, so the returned heading is reversed.
	LeftLane(wp geom.Waypoint) (geom.Waypoint, bool)
	// Spec describes the map for recording headers.
	Spec() record.MapSpec
}

// BuildMap constructs a map from a recorded or configured spec.
func BuildMap(spec record.MapSpec) (Map, error) {
	switch spec.Kind {
	case "straight":
		lanes := spec.Lanes
		if lanes < 1 {
			lanes = 1
		}
		return NewStraightMap(lanes, spec.LaneWidth), nil
	case "ring":
		return NewRingMap(spec.Radius, spec.LaneWidth)
	default:
		return nil, fmt.Errorf("unknown map kind %q", spec.Kind)
	}
}

// StraightMap is an unbounded multi-lane road along +x. Lane 0 is centered on
// y=0 heading east; each further lane sits one width to the left of the one
// before and alternates direction, so lane 1 of a two-lane road is the
// oncoming lane.
type StraightMap struct {
	lanes     int
	laneWidth float64
}

// NewStraightMap builds a straight road with the given lane count and width.
func NewStraightMap(lanes int, laneWidth float64) *StraightMap {
	if lanes < 1 || laneWidth <= 0 {
		panic(fmt.Sprintf("NewStraightMap: bad geometry lanes=%d width=%.2f", lanes, laneWidth))
	}
	return &StraightMap{lanes: lanes, laneWidth: laneWidth}
}

func (m *StraightMap) Spec() record.MapSpec {
	return record.MapSpec{Kind: "straight", Lanes: m.lanes, LaneWidth: m.laneWidth}
}

// laneCenterY places lane i one width further left (-y of eastbound travel)
// than lane i-1.
func (m *StraightMap) laneCenterY(lane int) float64 {
	return -float64(lane) * m.laneWidth
}

func (m *StraightMap) laneYaw(lane int) float64 {
	if lane%2 == 1 {
		return 180
	}
	return 0
}

// laneIndexAt picks the lane whose center is closest to y.
func (m *StraightMap) laneIndexAt(y float64) int {
	lane := int(math.Round(-y / m.laneWidth))
	if lane < 0 {
		lane = 0
	}
	if lane > m.lanes-1 {
		lane = m.lanes - 1
	}
	return lane
}

func (m *StraightMap) waypointAt(x float64, lane int) geom.Waypoint {
	pose := geom.Pose{
		Location: r3.Vec{X: x, Y: m.laneCenterY(lane)},
		Rotation: geom.Rotation{Yaw: m.laneYaw(lane)},
	}
	return geom.NewWaypoint(pose, m.laneWidth)
}

func (m *StraightMap) NearestWaypoint(loc r3.Vec) (geom.Waypoint, error) {
	return m.waypointAt(loc.X, m.laneIndexAt(loc.Y)), nil
}

func (m *StraightMap) WaypointAtDistanceAhead(wp geom.Waypoint, distance float64) (geom.Waypoint, float64, error) {
	lane := m.laneIndexAt(wp.Pose.Location.Y)
	x := wp.Pose.Location.X
	if m.laneYaw(lane) == 180 {
		x -= distance
	} else {
		x += distance
	}
	return m.waypointAt(x, lane), distance, nil
}

func (m *StraightMap) LeftLane(wp geom.Waypoint) (geom.Waypoint, bool) {
	lane := m.laneIndexAt(wp.Pose.Location.Y)
	// Left of eastbound travel is the next lane out; left of oncoming
	// travel is the next lane back.
	left := lane + 1
	if m.laneYaw(lane) == 180 {
		left = lane - 1
	}
	if left < 0 || left > m.lanes-1 {
		return geom.Waypoint{}, false
	}
	return m.waypointAt(wp.Pose.Location.X, left), true
}

// RingMap is a single circular lane of the given radius centered on the
// origin, traveled counterclockwise. It exercises the lane-relative geometry
// on a heading field that changes continuously.
type RingMap struct {
	radius    float64
	laneWidth float64
}

// NewRingMap builds a ring road. The radius must comfortably exceed the lane
// width or the inner edge would cross the center.
func NewRingMap(radius, laneWidth float64) (*RingMap, error) {
	if radius <= laneWidth {
		return nil, fmt.Errorf("ring radius %.2f must exceed lane width %.2f", radius, laneWidth)
	}
	return &RingMap{radius: radius, laneWidth: laneWidth}, nil
}

func (m *RingMap) Spec() record.MapSpec {
	return record.MapSpec{Kind: "ring", LaneWidth: m.laneWidth, Radius: m.radius}
}

func (m *RingMap) waypointAt(theta float64) geom.Waypoint {
	pose := geom.Pose{
		Location: r3.Vec{X: m.radius * math.Cos(theta), Y: m.radius * math.Sin(theta)},
		Rotation: geom.Rotation{Yaw: theta*180/math.Pi + 90}, // tangent, counterclockwise
	}
	return geom.NewWaypoint(pose, m.laneWidth)
}

func (m *RingMap) NearestWaypoint(loc r3.Vec) (geom.Waypoint, error) {
	if math.Hypot(loc.X, loc.Y) < 1e-9 {
		return geom.Waypoint{}, errors.New("ring center is equidistant from the whole lane")
	}
	return m.waypointAt(math.Atan2(loc.Y, loc.X)), nil
}

func (m *RingMap) WaypointAtDistanceAhead(wp geom.Waypoint, distance float64) (geom.Waypoint, float64, error) {
	theta := math.Atan2(wp.Pose.Location.Y, wp.Pose.Location.X)
	return m.waypointAt(theta + distance/m.radius), distance, nil
}

func (m *RingMap) LeftLane(geom.Waypoint) (geom.Waypoint, bool) {
	return geom.Waypoint{}, false
}
