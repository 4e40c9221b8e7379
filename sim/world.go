package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/scenario-sim/scenario-sim/sim/geom"
	"github.com/scenario-sim/scenario-sim/sim/record"
)

// Spawn roles. The hero is the agent under test and keeps the bare role as
// its actor ID; scenario-owned actors get numbered IDs.
const (
	RoleHero     = "hero"
	RoleScenario = "scenario"
)

// ErrSpawnCollision reports a spawn pose overlapping an existing actor.
var ErrSpawnCollision = errors.New("spawn pose occupied")

// Collision is one contact event between two actors, reported on the tick
// the footprints first overlap.
type Collision struct {
	Frame int64
	A, B  record.ActorID
}

type contactKey struct {
	a, b record.ActorID
}

// World is the reference simulation world: a lane map, a set of kinematic
// vehicles advanced in lockstep, and a collision ledger. Everything runs on
// one goroutine; the scenario runner alternates world ticks with tree ticks,
// so nothing here locks.
type World struct {
	mapSvc Map
	dt     float64
	frame  int64

	vehicles []*Vehicle // spawn order, also the tick traversal order
	byID     map[record.ActorID]*Vehicle
	nextSeq  int

	collisions []Collision
	contacts   map[contactKey]bool // pairs currently overlapping

	rec *record.Recording
}

// NewWorld builds an empty world over the given map, ticking dt seconds per
// frame.
func NewWorld(m Map, dt float64) *World {
	if dt <= 0 {
		panic(fmt.Sprintf("NewWorld: dt must be positive, got %v", dt))
	}
	return &World{
		mapSvc:   m,
		dt:       dt,
		byID:     make(map[record.ActorID]*Vehicle),
		contacts: make(map[contactKey]bool),
	}
}

// Map returns the world's lane map.
func (w *World) Map() Map { return w.mapSvc }

// DT returns the tick period in seconds.
func (w *World) DT() float64 { return w.dt }

// Frame returns the number of completed ticks; the recording numbers frames
// the same way.
func (w *World) Frame() int64 { return w.frame }

// SimTime returns the simulation time in seconds at the end of the last tick.
func (w *World) SimTime() float64 { return float64(w.frame) * w.dt }

// AttachRecording starts capturing one frame per tick into rec. Attach before
// the first tick so recording frame numbers line up with world frames.
func (w *World) AttachRecording(rec *record.Recording) {
	if w.frame > 0 {
		logrus.Warnf("recording attached at frame %d; earlier frames are lost", w.frame)
	}
	w.rec = rec
	for _, v := range w.vehicles {
		rec.RegisterActor(record.ActorInfo{ID: v.id, Blueprint: v.blueprint.Name, Role: v.role})
	}
}

// Recording returns the attached recording, nil when none.
func (w *World) Recording() *record.Recording { return w.rec }

// SpawnActor places a new vehicle in the world. It fails fast on an unknown
// blueprint or a pose overlapping an existing actor, leaving the world
// unchanged.
func (w *World) SpawnActor(blueprint string, pose geom.Pose, role string) (*Vehicle, error) {
	bp, err := LookupBlueprint(blueprint)
	if err != nil {
		return nil, err
	}
	for _, other := range w.vehicles {
		if geom.PlanarDistance(other.pose.Location, pose.Location) < other.blueprint.Radius+bp.Radius {
			return nil, fmt.Errorf("%w: %s at (%.1f, %.1f) overlaps %q",
				ErrSpawnCollision, blueprint, pose.Location.X, pose.Location.Y, other.id)
		}
	}

	id := w.assignID(role)
	if _, taken := w.byID[id]; taken {
		return nil, fmt.Errorf("actor id %q already in use", id)
	}

	v := &Vehicle{
		id:        id,
		blueprint: bp,
		role:      role,
		pose:      pose,
		accelRate: bp.Accel,
		world:     w,
	}
	w.vehicles = append(w.vehicles, v)
	w.byID[id] = v
	if w.rec != nil {
		w.rec.RegisterActor(record.ActorInfo{ID: id, Blueprint: bp.Name, Role: role})
	}
	logrus.Infof("[frame %06d] spawned %q (%s) at (%.1f, %.1f)",
		w.frame, id, blueprint, pose.Location.X, pose.Location.Y)
	return v, nil
}

func (w *World) assignID(role string) record.ActorID {
	if role == RoleHero {
		return record.ActorID(RoleHero)
	}
	if role == "" {
		role = "actor"
	}
	w.nextSeq++
	return record.ActorID(fmt.Sprintf("%s.%d", role, w.nextSeq))
}

// Actor looks up a live actor by ID.
func (w *World) Actor(id record.ActorID) (*Vehicle, bool) {
	v, ok := w.byID[id]
	return v, ok
}

// Actors returns the live actors in spawn order.
func (w *World) Actors() []*Vehicle {
	out := make([]*Vehicle, len(w.vehicles))
	copy(out, w.vehicles)
	return out
}

// DestroyActor removes an actor from the world. Destroying an unknown ID is
// a no-op, so teardown paths may run more than once.
func (w *World) DestroyActor(id record.ActorID) {
	v, ok := w.byID[id]
	if !ok {
		return
	}
	delete(w.byID, id)
	for i, other := range w.vehicles {
		if other == v {
			w.vehicles = append(w.vehicles[:i], w.vehicles[i+1:]...)
			break
		}
	}
	logrus.Infof("[frame %06d] destroyed %q", w.frame, id)
}

// Tick advances every actor one step, updates the collision ledger, and
// appends the frame to the attached recording. Returns the frame number just
// completed.
func (w *World) Tick() int64 {
	w.frame++
	for _, v := range w.vehicles {
		v.step(w.dt)
	}
	w.detectCollisions()

	if w.rec != nil {
		states := make(map[record.ActorID]record.ActorState, len(w.vehicles))
		for _, v := range w.vehicles {
			states[v.id] = record.ActorState{Pose: v.pose, Velocity: v.Velocity()}
		}
		w.rec.Append(w.SimTime(), states)
	}
	logrus.Debugf("[frame %06d] ticked %d actors", w.frame, len(w.vehicles))
	return w.frame
}

// detectCollisions reports each bounding-circle contact once, on the tick
// the pair first overlaps; sustained contact is not re-reported.
func (w *World) detectCollisions() {
	seen := make(map[contactKey]bool)
	for i := 0; i < len(w.vehicles); i++ {
		for j := i + 1; j < len(w.vehicles); j++ {
			a, b := w.vehicles[i], w.vehicles[j]
			key := contactKey{a: a.id, b: b.id}
			touching := geom.PlanarDistance(a.pose.Location, b.pose.Location) < a.blueprint.Radius+b.blueprint.Radius
			if touching {
				seen[key] = true
				if !w.contacts[key] {
					w.collisions = append(w.collisions, Collision{Frame: w.frame, A: a.id, B: b.id})
					logrus.Warnf("[frame %06d] collision between %q and %q", w.frame, a.id, b.id)
				}
			}
		}
	}
	w.contacts = seen
}

// Collisions returns a copy of the collision ledger.
func (w *World) Collisions() []Collision {
	out := make([]Collision, len(w.collisions))
	copy(out, w.collisions)
	return out
}

// CollisionsInvolving filters the ledger for one actor.
func (w *World) CollisionsInvolving(id record.ActorID) []Collision {
	var out []Collision
	for _, c := range w.collisions {
		if c.A == id || c.B == id {
			out = append(out, c)
		}
	}
	return out
}

// CollisionCount returns how many distinct contacts have involved the actor.
func (w *World) CollisionCount(id record.ActorID) int {
	return len(w.CollisionsInvolving(id))
}
