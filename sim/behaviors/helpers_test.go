package behaviors

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/scenario-sim/scenario-sim/sim/geom"
	"github.com/scenario-sim/scenario-sim/sim/record"
)

// fakeVehicle implements Vehicle with directly settable state, recording the
// last control commands applied.
type fakeVehicle struct {
	pose  geom.Pose
	speed float64

	target     float64
	accelRate  float64
	brake      float64
	handBrake  bool
	heading    float64
	headingSet bool
}

func (f *fakeVehicle) Pose() geom.Pose  { return f.pose }
func (f *fakeVehicle) Speed() float64   { return f.speed }
func (f *fakeVehicle) Velocity() r3.Vec { return r3.Scale(f.speed, f.pose.Forward()) }

func (f *fakeVehicle) SetTargetSpeed(mps float64) { f.target = mps }
func (f *fakeVehicle) SetAccelRate(mps2 float64)  { f.accelRate = mps2 }
func (f *fakeVehicle) SetBrake(frac float64)      { f.brake = frac }
func (f *fakeVehicle) SetHandBrake(on bool)       { f.handBrake = on }
func (f *fakeVehicle) SetHeading(yawDeg float64) {
	f.heading = yawDeg
	f.headingSet = true
}

func (f *fakeVehicle) moveTo(x, y float64) {
	f.pose.Location = r3.Vec{X: x, Y: y}
}

// fakeClock hands out a settable simulation time.
type fakeClock struct{ now float64 }

func (c *fakeClock) SimTime() float64 { return c.now }

// fakeLaneMap is a straight eastbound lane centered on y=0.
type fakeLaneMap struct{ laneWidth float64 }

func (m fakeLaneMap) NearestWaypoint(loc r3.Vec) (geom.Waypoint, error) {
	pose := geom.Pose{Location: r3.Vec{X: loc.X}}
	return geom.NewWaypoint(pose, m.laneWidth), nil
}

func (m fakeLaneMap) WaypointAtDistanceAhead(wp geom.Waypoint, d float64) (geom.Waypoint, float64, error) {
	pose := wp.Pose
	pose.Location.X += d
	return geom.NewWaypoint(pose, m.laneWidth), d, nil
}

// brokenLaneMap fails every lookup.
type brokenLaneMap struct{}

func (brokenLaneMap) NearestWaypoint(r3.Vec) (geom.Waypoint, error) {
	return geom.Waypoint{}, errors.New("no road here")
}

func (brokenLaneMap) WaypointAtDistanceAhead(geom.Waypoint, float64) (geom.Waypoint, float64, error) {
	return geom.Waypoint{}, 0, errors.New("no road here")
}

// fakeLedger reports a settable contact count for every actor.
type fakeLedger struct{ count int }

func (l *fakeLedger) CollisionCount(record.ActorID) int { return l.count }
